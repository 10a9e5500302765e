package models

import (
	"gorm.io/gorm"
)

// User represents an account that owns whiteboards and credits
type User struct {
	gorm.Model
	FirstName        string  `gorm:"not null" json:"first_name"`
	LastName         string  `gorm:"not null" json:"last_name"`
	Email            string  `gorm:"unique;not null" json:"email"`
	PasswordHash     string  `gorm:"not null" json:"-"`
	Password         string  `gorm:"-" json:"password"`
	StripeCustomerID *string `gorm:"index" json:"-"`
}

func (user *User) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func (user *User) FullName() string {
	return user.FirstName + " " + user.LastName
}

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token"`
}
