// Package payments adapts the Stripe API to the subscription service.
package payments

import (
	"context"
	"fmt"
	"time"

	"nodeBoard/configs"
	"nodeBoard/internal/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	api *client.API
}

// NewStripeProvider returns nil when no secret key is configured so the
// subscription service can report payments as disabled.
func NewStripeProvider(config *configs.Config) *StripeProvider {
	secretKey := config.Viper.GetString("stripe.secret_key")
	if secretKey == "" {
		return nil
	}
	return newStripeProvider(secretKey, config.Viper.GetString("stripe.backend_url"))
}

func newStripeProvider(secretKey, backendURL string) *StripeProvider {
	var backends *stripe.Backends
	if backendURL != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:           stripe.String(backendURL),
			LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeProvider{api: api}
}

func (sp *StripeProvider) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	customer, err := sp.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: creating customer: %w", err)
	}
	return customer.ID, nil
}

// ListSubscriptions returns every subscription of the customer, canceled
// ones included, so the caller can pick the most relevant.
func (sp *StripeProvider) ListSubscriptions(ctx context.Context, customerID string) ([]models.ProviderSubscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	var subscriptions []models.ProviderSubscription
	iter := sp.api.Subscriptions.List(params)
	for iter.Next() {
		subscriptions = append(subscriptions, toProviderSubscription(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: listing subscriptions: %w", err)
	}
	return subscriptions, nil
}

func toProviderSubscription(s *stripe.Subscription) models.ProviderSubscription {
	subscription := models.ProviderSubscription{
		ID:                s.ID,
		Status:            string(s.Status),
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
	}
	if s.CurrentPeriodEnd > 0 {
		subscription.CurrentPeriodEnd = time.Unix(s.CurrentPeriodEnd, 0).UTC()
	}
	if s.Items != nil && len(s.Items.Data) > 0 && s.Items.Data[0].Price != nil {
		subscription.PriceID = s.Items.Data[0].Price.ID
	}
	return subscription
}
