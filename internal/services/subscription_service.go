package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"nodeBoard/configs"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"time"
)

type SubscriptionService struct {
	subscriptionRepo *repositories.SubscriptionRepository
	authRepo         *repositories.AuthenticationRepository
	provider         interfaces.PaymentProvider
	config           *configs.Config
}

// NewSubscriptionService accepts a nil provider; Sync then fails with
// ErrPaymentsNotConfigured while Get keeps working.
func NewSubscriptionService(
	subscriptionRepo *repositories.SubscriptionRepository,
	authRepo *repositories.AuthenticationRepository,
	provider interfaces.PaymentProvider,
	config *configs.Config,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		authRepo:         authRepo,
		provider:         provider,
		config:           config,
	}
}

// Get returns the mirrored subscription, or a free plan for users that
// were never synced.
func (ss *SubscriptionService) Get(userID uint) (*models.Subscription, error) {
	subscription, err := ss.subscriptionRepo.FindByUserID(userID)
	if errors.Is(err, errs.ErrSubscriptionNotFound) {
		return &models.Subscription{
			UserID: userID,
			Plan:   enums.PLAN_FREE,
			Status: enums.SUBSCRIPTION_STATUS_NONE,
		}, nil
	}
	return subscription, err
}

// Sync pulls the user's subscriptions from the provider and overwrites the
// mirror row. Plan credits are granted once per billing period.
func (ss *SubscriptionService) Sync(ctx context.Context, userID uint) (*models.Subscription, error) {
	if ss.provider == nil {
		return nil, errs.ErrPaymentsNotConfigured
	}

	user, err := ss.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	customerID, err := ss.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	providerSubscriptions, err := ss.provider.ListSubscriptions(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions for customer %s: %w", customerID, err)
	}

	subscription, err := ss.subscriptionRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, errs.ErrSubscriptionNotFound) {
			return nil, err
		}
		subscription = &models.Subscription{UserID: userID}
	}
	subscription.CustomerID = customerID
	applyProviderSubscription(subscription, chooseSubscription(providerSubscriptions), ss.config)

	var grants []models.CreditTransaction
	if ss.grantDue(subscription) {
		amounts := ss.config.CreditAmounts("plans." + subscription.Plan + ".credits")
		reference := fmt.Sprintf("subscription:%s:%s", subscription.SubscriptionID, subscription.CurrentPeriodEnd.UTC().Format(time.RFC3339))
		grants = GrantTransactions(userID, amounts, models.CreditReference{Reference: reference})
		periodEnd := *subscription.CurrentPeriodEnd
		subscription.LastGrantedPeriodEnd = &periodEnd
	}

	if err := ss.subscriptionRepo.Save(subscription, grants...); err != nil {
		return nil, err
	}
	slog.Info("subscription synced",
		"user_id", userID,
		"plan", subscription.Plan,
		"status", subscription.Status,
		"granted", len(grants),
	)
	return subscription, nil
}

// SyncAll syncs every user linked to the provider. Failures are logged and
// counted; the loop only stops when ctx is done.
func (ss *SubscriptionService) SyncAll(ctx context.Context) (int, int, error) {
	userIDs, err := ss.authRepo.GetUserIdsWithCustomer()
	if err != nil {
		return 0, 0, err
	}

	synced, failed := 0, 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return synced, failed, err
		}
		if _, err := ss.Sync(ctx, userID); err != nil {
			failed++
			slog.Error("subscription sync failed", "user_id", userID, "error", err)
			continue
		}
		synced++
	}
	return synced, failed, nil
}

// RunPeriodicSync calls SyncAll every interval until ctx is done.
func (ss *SubscriptionService) RunPeriodicSync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		synced, failed, err := ss.SyncAll(ctx)
		if err != nil && ctx.Err() == nil {
			slog.Error("subscription sync round failed", "error", err)
		} else {
			slog.Info("subscription sync round finished", "synced", synced, "failed", failed)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (ss *SubscriptionService) ensureCustomer(ctx context.Context, user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}
	customerID, err := ss.provider.CreateCustomer(ctx, user.Email, user.FullName())
	if err != nil {
		return "", fmt.Errorf("creating customer for user %d: %w", user.ID, err)
	}
	if err := ss.authRepo.SetStripeCustomerID(user.ID, customerID); err != nil {
		return "", err
	}
	return customerID, nil
}

func (ss *SubscriptionService) grantDue(subscription *models.Subscription) bool {
	if !isEntitled(subscription.Status) || subscription.CurrentPeriodEnd == nil {
		return false
	}
	last := subscription.LastGrantedPeriodEnd
	return last == nil || subscription.CurrentPeriodEnd.After(*last)
}

func isEntitled(status string) bool {
	return status == enums.SUBSCRIPTION_STATUS_ACTIVE || status == enums.SUBSCRIPTION_STATUS_TRIALING
}

// chooseSubscription prefers active or trialing subscriptions, then the
// latest period end.
func chooseSubscription(subscriptions []models.ProviderSubscription) *models.ProviderSubscription {
	var best *models.ProviderSubscription
	for i := range subscriptions {
		candidate := &subscriptions[i]
		if best == nil {
			best = candidate
			continue
		}
		candidateEntitled, bestEntitled := isEntitled(candidate.Status), isEntitled(best.Status)
		if candidateEntitled != bestEntitled {
			if candidateEntitled {
				best = candidate
			}
			continue
		}
		if candidate.CurrentPeriodEnd.After(best.CurrentPeriodEnd) {
			best = candidate
		}
	}
	return best
}

// applyProviderSubscription copies the provider's view onto the mirror row.
// Only active and trialing subscriptions carry a paid plan.
func applyProviderSubscription(subscription *models.Subscription, chosen *models.ProviderSubscription, config *configs.Config) {
	if chosen == nil {
		subscription.SubscriptionID = ""
		subscription.PriceID = ""
		subscription.Plan = enums.PLAN_FREE
		subscription.Status = enums.SUBSCRIPTION_STATUS_NONE
		subscription.CurrentPeriodEnd = nil
		subscription.CancelAtPeriodEnd = false
		return
	}

	subscription.SubscriptionID = chosen.ID
	subscription.PriceID = chosen.PriceID
	subscription.Status = chosen.Status
	subscription.CancelAtPeriodEnd = chosen.CancelAtPeriodEnd
	if chosen.CurrentPeriodEnd.IsZero() {
		subscription.CurrentPeriodEnd = nil
	} else {
		periodEnd := chosen.CurrentPeriodEnd.UTC()
		subscription.CurrentPeriodEnd = &periodEnd
	}
	subscription.Plan = enums.PLAN_FREE
	if isEntitled(chosen.Status) {
		subscription.Plan = config.PlanForPrice(chosen.PriceID)
	}
}
