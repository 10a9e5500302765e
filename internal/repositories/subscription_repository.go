package repositories

import (
	"errors"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
	}
}

func (sr *SubscriptionRepository) FindByUserID(userID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := sr.db.Where("user_id = ?", userID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

// Save inserts or overwrites the user's mirror row, last sync wins, and
// writes any plan grants in the same transaction so a period is never
// granted without being recorded.
func (sr *SubscriptionRepository) Save(subscription *models.Subscription, grants ...models.CreditTransaction) error {
	return sr.db.Transaction(func(tx *gorm.DB) error {
		if subscription.ID == 0 {
			var existing models.Subscription
			err := tx.Where("user_id = ?", subscription.UserID).First(&existing).Error
			if err == nil {
				subscription.ID = existing.ID
				subscription.CreatedAt = existing.CreatedAt
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := tx.Save(subscription).Error; err != nil {
			return err
		}
		if len(grants) > 0 {
			return tx.Create(&grants).Error
		}
		return nil
	})
}
