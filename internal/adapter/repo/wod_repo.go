package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// WodRepositoryPG implements domain.WodRepository.
type WodRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewWodRepository creates a new WodRepositoryPG.
func NewWodRepository(pool *pgxpool.Pool) *WodRepositoryPG {
	return &WodRepositoryPG{pool: pool}
}

// CreateWithSections inserts the WOD and all of its sections in one
// transaction. Either everything lands or nothing does.
func (r *WodRepositoryPG) CreateWithSections(ctx context.Context, wod *domain.GeneratedWod) (*domain.GeneratedWod, error) {
	if wod.ID == "" {
		wod.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO wods (id, user_id, title, saved, location, equipment, level, injury)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at;
`,
		wod.ID,
		wod.UserID,
		wod.Title,
		wod.Saved,
		wod.Parameters.Location,
		wod.Parameters.Equipment,
		wod.Parameters.Level,
		wod.Parameters.Injury,
	).Scan(&wod.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert wod: %w", err)
	}

	for i := range wod.Sections {
		sec := &wod.Sections[i]
		if sec.ID == "" {
			sec.ID = uuid.NewString()
		}
		sec.WodID = wod.ID
		_, err = tx.Exec(ctx, `
INSERT INTO wod_sections (id, wod_id, title, type, duration, description, movements, notes, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`,
			sec.ID,
			sec.WodID,
			sec.Title,
			sec.Type,
			sec.Duration,
			sec.Description,
			sec.Movements,
			sec.Notes,
			sec.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("insert section %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return wod, nil
}

// GetByID fetches a WOD with its sections in position order.
func (r *WodRepositoryPG) GetByID(ctx context.Context, id string) (*domain.GeneratedWod, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, title, saved, location, equipment, level, injury, created_at FROM wods WHERE id = $1`, id)
	wod, err := scanWod(row)
	if err != nil {
		return nil, err
	}
	sections, err := r.sectionsFor(ctx, []string{wod.ID})
	if err != nil {
		return nil, err
	}
	wod.Sections = sections[wod.ID]
	return wod, nil
}

// MarkSaved flips the saved flag for a WOD owned by userID.
func (r *WodRepositoryPG) MarkSaved(ctx context.Context, id, userID string) (*domain.GeneratedWod, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE wods
SET saved = TRUE
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, title, saved, location, equipment, level, injury, created_at;
`, id, userID)
	return scanWod(row)
}

// ListByUser returns all WODs for a user, newest first, with sections and any
// completion record attached.
func (r *WodRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	return r.list(ctx, `SELECT id, user_id, title, saved, location, equipment, level, injury, created_at FROM wods WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListSaved returns only the saved WODs for a user, newest first.
func (r *WodRepositoryPG) ListSaved(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	return r.list(ctx, `SELECT id, user_id, title, saved, location, equipment, level, injury, created_at FROM wods WHERE user_id = $1 AND saved = TRUE ORDER BY created_at DESC`, userID)
}

func (r *WodRepositoryPG) list(ctx context.Context, query, userID string) ([]domain.GeneratedWod, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wods []domain.GeneratedWod
	var ids []string
	for rows.Next() {
		wod, err := scanWod(rows)
		if err != nil {
			return nil, err
		}
		wods = append(wods, *wod)
		ids = append(ids, wod.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(wods) == 0 {
		return wods, nil
	}

	sections, err := r.sectionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	progress, err := r.progressFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range wods {
		wods[i].Sections = sections[wods[i].ID]
		wods[i].Progress = progress[wods[i].ID]
	}
	return wods, nil
}

func (r *WodRepositoryPG) sectionsFor(ctx context.Context, wodIDs []string) (map[string][]domain.WodSection, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, wod_id, title, type, duration, description, movements, notes, position
FROM wod_sections
WHERE wod_id = ANY($1)
ORDER BY wod_id, position;
`, wodIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.WodSection, len(wodIDs))
	for rows.Next() {
		var sec domain.WodSection
		if err := rows.Scan(&sec.ID, &sec.WodID, &sec.Title, &sec.Type, &sec.Duration, &sec.Description, &sec.Movements, &sec.Notes, &sec.Order); err != nil {
			return nil, err
		}
		out[sec.WodID] = append(out[sec.WodID], sec)
	}
	return out, rows.Err()
}

func (r *WodRepositoryPG) progressFor(ctx context.Context, wodIDs []string) (map[string]*domain.WodProgress, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, wod_id, duration, notes, rating, perceived_effort, completed_at
FROM wod_progress
WHERE wod_id = ANY($1);
`, wodIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*domain.WodProgress)
	for rows.Next() {
		var p domain.WodProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.WodID, &p.Duration, &p.Notes, &p.Rating, &p.PerceivedEffort, &p.CompletedAt); err != nil {
			return nil, err
		}
		out[p.WodID] = &p
	}
	return out, rows.Err()
}

func scanWod(row pgx.Row) (*domain.GeneratedWod, error) {
	var w domain.GeneratedWod
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Title,
		&w.Saved,
		&w.Parameters.Location,
		&w.Parameters.Equipment,
		&w.Parameters.Level,
		&w.Parameters.Injury,
		&w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}
