package repositories

import (
	"errors"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/utils"

	"gorm.io/gorm"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, []error) {
	var errors []error
	result := ar.db.Create(user)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return nil, errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(email string) *models.User {
	var user models.User
	result := ar.db.Where("email = ?", email).First(&user)
	if result.Error == nil && result.RowsAffected > 0 {
		return &user
	}
	return nil
}

func (ar *AuthenticationRepository) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := ar.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (ar *AuthenticationRepository) Login(login *models.LoginRequestBody) (*models.User, []error) {
	var errors []error
	user := ar.CheckIfUserExists(login.Email)
	if user == nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, login.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) SetStripeCustomerID(userID uint, customerID string) error {
	result := ar.db.Model(&models.User{}).Where("id = ?", userID).Update("stripe_customer_id", customerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// GetUserIdsWithCustomer lists every user already linked to the payment provider.
func (ar *AuthenticationRepository) GetUserIdsWithCustomer() ([]uint, error) {
	var ids []uint
	err := ar.db.Model(&models.User{}).
		Where("stripe_customer_id IS NOT NULL AND stripe_customer_id <> ''").
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
