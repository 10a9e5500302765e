package enums

const (
	SUBSCRIPTION_STATUS_NONE     = "none"
	SUBSCRIPTION_STATUS_ACTIVE   = "active"
	SUBSCRIPTION_STATUS_TRIALING = "trialing"
	SUBSCRIPTION_STATUS_PAST_DUE = "past_due"
	SUBSCRIPTION_STATUS_CANCELED = "canceled"

	PLAN_FREE = "free"
)
