package interfaces

import (
	"context"
	"nodeBoard/internal/models"
)

type PaymentProvider interface {
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	ListSubscriptions(ctx context.Context, customerID string) ([]models.ProviderSubscription, error)
}
