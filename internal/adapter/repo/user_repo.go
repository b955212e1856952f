package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const uniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user. A duplicate email maps to domain.ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, email, name, password_hash, level, location, equipment, injuries)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, email, name, password_hash, level, location, equipment, injuries, created_at, updated_at;
`,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Level,
		user.Location,
		user.Equipment,
		user.Injuries,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, name, password_hash, level, location, equipment, injuries, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email address.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, name, password_hash, level, location, equipment, injuries, created_at, updated_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateProfile updates the workout profile fields.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE users
SET name = $2,
    level = $3,
    location = $4,
    equipment = $5,
    injuries = $6,
    updated_at = NOW()
WHERE id = $1
RETURNING id, email, name, password_hash, level, location, equipment, injuries, created_at, updated_at;
`,
		user.ID,
		user.Name,
		user.Level,
		user.Location,
		user.Equipment,
		user.Injuries,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Level, &u.Location, &u.Equipment, &u.Injuries, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
