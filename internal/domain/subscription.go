package domain

import "time"

// SubscriptionTier enumerates billing tiers.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "FREE"
	TierPremium SubscriptionTier = "PREMIUM"
)

// Subscription tracks a user's tier. At most one record exists per user.
type Subscription struct {
	ID        string
	UserID    string
	Tier      SubscriptionTier
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPremium reports whether the subscription grants unlimited generation.
func (s Subscription) IsPremium() bool {
	return s.IsActive && s.Tier == TierPremium
}

// DailyUsage counts generations for one user on one calendar day. The day is
// normalized to midnight in the configured quota timezone; a missing row for a
// new date means zero.
type DailyUsage struct {
	UserID   string
	Day      time.Time
	WodCount int
}
