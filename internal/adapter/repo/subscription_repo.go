package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// SubscriptionRepositoryPG implements domain.SubscriptionRepository.
type SubscriptionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepositoryPG.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepositoryPG {
	return &SubscriptionRepositoryPG{pool: pool}
}

// GetByUser returns the subscription for a user, or domain.ErrNotFound when
// the user has none.
func (r *SubscriptionRepositoryPG) GetByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, tier, is_active, created_at, updated_at FROM subscriptions WHERE user_id = $1`, userID)
	return scanSubscription(row)
}

// Upsert creates or replaces the single subscription row for a user.
func (r *SubscriptionRepositoryPG) Upsert(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO subscriptions (id, user_id, tier, is_active)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET tier = EXCLUDED.tier,
    is_active = EXCLUDED.is_active,
    updated_at = NOW()
RETURNING id, user_id, tier, is_active, created_at, updated_at;
`,
		sub.ID,
		sub.UserID,
		sub.Tier,
		sub.IsActive,
	)
	return scanSubscription(row)
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	if err := row.Scan(&s.ID, &s.UserID, &s.Tier, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
