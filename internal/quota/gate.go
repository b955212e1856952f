// Package quota decides whether a user may generate a workout right now and
// records consumption against a per-day counter.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"server/internal/domain"
)

// Unlimited is the Remaining sentinel for premium subscriptions.
const Unlimited = -1

// Decision is the outcome of a gate check. Reason is set when not allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

// Gate enforces the free-tier daily generation limit. The calendar day is
// delimited at midnight in the configured location for every user, so the
// counter resets without a background job.
type Gate struct {
	subs  domain.SubscriptionRepository
	usage domain.UsageRepository
	limit int
	loc   *time.Location
	now   func() time.Time
}

// NewGate constructs a Gate. The location must not be nil.
func NewGate(subs domain.SubscriptionRepository, usage domain.UsageRepository, limit int, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &Gate{subs: subs, usage: usage, limit: limit, loc: loc, now: time.Now}
}

// Limit returns the daily free-tier limit.
func (g *Gate) Limit() int {
	return g.limit
}

// Today returns the current quota day, normalized to midnight.
func (g *Gate) Today() time.Time {
	t := g.now().In(g.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.loc)
}

// NextReset returns the instant the daily counter rolls over.
func (g *Gate) NextReset() time.Time {
	return g.Today().AddDate(0, 0, 1)
}

// CheckAllowed answers whether the user may generate a WOD right now. It fails
// closed when no active subscription exists.
func (g *Gate) CheckAllowed(ctx context.Context, userID string) (Decision, error) {
	sub, err := g.subs.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Decision{Allowed: false, Reason: "No active subscription"}, nil
		}
		return Decision{}, fmt.Errorf("load subscription: %w", err)
	}
	if !sub.IsActive {
		return Decision{Allowed: false, Reason: "No active subscription"}, nil
	}
	if sub.Tier == domain.TierPremium {
		return Decision{Allowed: true}, nil
	}

	count, err := g.usage.CountForDay(ctx, userID, g.Today())
	if err != nil {
		return Decision{}, fmt.Errorf("load daily usage: %w", err)
	}
	if count >= g.limit {
		return Decision{Allowed: false, Reason: fmt.Sprintf("Daily limit of %d WODs reached", g.limit)}, nil
	}
	return Decision{Allowed: true}, nil
}

// Remaining reports how many generations the user has left today. Premium
// subscriptions return Unlimited; missing or inactive subscriptions return 0.
func (g *Gate) Remaining(ctx context.Context, userID string) (int, error) {
	sub, err := g.subs.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load subscription: %w", err)
	}
	if !sub.IsActive {
		return 0, nil
	}
	if sub.Tier == domain.TierPremium {
		return Unlimited, nil
	}

	count, err := g.usage.CountForDay(ctx, userID, g.Today())
	if err != nil {
		return 0, fmt.Errorf("load daily usage: %w", err)
	}
	if remaining := g.limit - count; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

// RecordUsage increments today's counter for the user, creating the day's row
// with count 1 when absent. The underlying store performs the increment
// atomically so concurrent calls never lose an update.
func (g *Gate) RecordUsage(ctx context.Context, userID string) (int, error) {
	count, err := g.usage.Increment(ctx, userID, g.Today())
	if err != nil {
		return 0, fmt.Errorf("record usage: %w", err)
	}
	return count, nil
}
