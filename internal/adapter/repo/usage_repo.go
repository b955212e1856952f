package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRepositoryPG implements domain.UsageRepository. Counters are keyed by
// (user_id, day) where day is a date column; callers pass midnight in the
// quota timezone.
type UsageRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(pool *pgxpool.Pool) *UsageRepositoryPG {
	return &UsageRepositoryPG{pool: pool}
}

// CountForDay returns the generation count for a user on a day. A missing row
// means zero.
func (r *UsageRepositoryPG) CountForDay(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT wod_count FROM daily_usage WHERE user_id = $1 AND day = $2`,
		userID, day,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Increment bumps the counter for (user, day), creating the row on first use.
// The increment-or-create runs as a single statement so concurrent calls never
// lose an update.
func (r *UsageRepositoryPG) Increment(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
INSERT INTO daily_usage (user_id, day, wod_count)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, day) DO UPDATE
SET wod_count = daily_usage.wod_count + 1
RETURNING wod_count;
`, userID, day).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
