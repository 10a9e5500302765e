package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription mirrors the payment provider's view of a user's plan.
type Subscription struct {
	gorm.Model
	UserID               uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	CustomerID           string     `json:"customer_id"`
	SubscriptionID       string     `json:"subscription_id"`
	PriceID              string     `json:"price_id"`
	Plan                 string     `gorm:"not null;default:free" json:"plan"`
	Status               string     `gorm:"not null" json:"status"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd    bool       `json:"cancel_at_period_end"`
	LastGrantedPeriodEnd *time.Time `json:"-"`
}

// ProviderSubscription is what a payment provider reports for a customer.
type ProviderSubscription struct {
	ID                string
	Status            string
	PriceID           string
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
}
