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

// PresetRepositoryPG implements domain.PresetRepository.
type PresetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPresetRepository creates a new PresetRepositoryPG.
func NewPresetRepository(pool *pgxpool.Pool) *PresetRepositoryPG {
	return &PresetRepositoryPG{pool: pool}
}

// ListActive returns all active presets ordered by title, with sections.
func (r *PresetRepositoryPG) ListActive(ctx context.Context) ([]domain.PresetWod, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, difficulty, duration, equipment, location, category, tags, is_active, created_at
FROM preset_wods
WHERE is_active = TRUE
ORDER BY title;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []domain.PresetWod
	var ids []string
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return presets, nil
	}

	sections, err := r.sectionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range presets {
		presets[i].Sections = sections[presets[i].ID]
	}
	return presets, nil
}

// GetByID fetches one preset with its sections.
func (r *PresetRepositoryPG) GetByID(ctx context.Context, id string) (*domain.PresetWod, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, description, difficulty, duration, equipment, location, category, tags, is_active, created_at
FROM preset_wods
WHERE id = $1;
`, id)
	preset, err := scanPreset(row)
	if err != nil {
		return nil, err
	}
	sections, err := r.sectionsFor(ctx, []string{preset.ID})
	if err != nil {
		return nil, err
	}
	preset.Sections = sections[preset.ID]
	return preset, nil
}

// Upsert creates or replaces a preset keyed by title, replacing its sections.
// Used by the seeding CLI so reruns are idempotent.
func (r *PresetRepositoryPG) Upsert(ctx context.Context, preset *domain.PresetWod) error {
	if preset.ID == "" {
		preset.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO preset_wods (id, title, description, difficulty, duration, equipment, location, category, tags, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (title) DO UPDATE
SET description = EXCLUDED.description,
    difficulty = EXCLUDED.difficulty,
    duration = EXCLUDED.duration,
    equipment = EXCLUDED.equipment,
    location = EXCLUDED.location,
    category = EXCLUDED.category,
    tags = EXCLUDED.tags,
    is_active = EXCLUDED.is_active
RETURNING id;
`,
		preset.ID,
		preset.Title,
		preset.Description,
		preset.Difficulty,
		preset.Duration,
		preset.Equipment,
		preset.Location,
		preset.Category,
		preset.Tags,
		preset.IsActive,
	).Scan(&preset.ID)
	if err != nil {
		return fmt.Errorf("upsert preset: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM preset_sections WHERE preset_id = $1`, preset.ID); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	for i := range preset.Sections {
		sec := &preset.Sections[i]
		if sec.ID == "" {
			sec.ID = uuid.NewString()
		}
		_, err = tx.Exec(ctx, `
INSERT INTO preset_sections (id, preset_id, title, type, duration, description, movements, notes, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`,
			sec.ID,
			preset.ID,
			sec.Title,
			sec.Type,
			sec.Duration,
			sec.Description,
			sec.Movements,
			sec.Notes,
			sec.Order,
		)
		if err != nil {
			return fmt.Errorf("insert section %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PresetRepositoryPG) sectionsFor(ctx context.Context, presetIDs []string) (map[string][]domain.WodSection, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, preset_id, title, type, duration, description, movements, notes, position
FROM preset_sections
WHERE preset_id = ANY($1)
ORDER BY preset_id, position;
`, presetIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.WodSection, len(presetIDs))
	for rows.Next() {
		var sec domain.WodSection
		if err := rows.Scan(&sec.ID, &sec.WodID, &sec.Title, &sec.Type, &sec.Duration, &sec.Description, &sec.Movements, &sec.Notes, &sec.Order); err != nil {
			return nil, err
		}
		out[sec.WodID] = append(out[sec.WodID], sec)
	}
	return out, rows.Err()
}

func scanPreset(row pgx.Row) (*domain.PresetWod, error) {
	var p domain.PresetWod
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Difficulty,
		&p.Duration,
		&p.Equipment,
		&p.Location,
		&p.Category,
		&p.Tags,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
