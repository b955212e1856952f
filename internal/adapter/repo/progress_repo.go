package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ProgressRepositoryPG implements domain.ProgressRepository.
type ProgressRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepositoryPG.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepositoryPG {
	return &ProgressRepositoryPG{pool: pool}
}

// Create records a completion. A second completion for the same (user, WOD)
// trips the unique constraint and maps to domain.ErrConflict.
func (r *ProgressRepositoryPG) Create(ctx context.Context, progress *domain.WodProgress) (*domain.WodProgress, error) {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO wod_progress (id, user_id, wod_id, duration, notes, rating, perceived_effort)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING completed_at;
`,
		progress.ID,
		progress.UserID,
		progress.WodID,
		progress.Duration,
		progress.Notes,
		progress.Rating,
		progress.PerceivedEffort,
	).Scan(&progress.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return progress, nil
}
