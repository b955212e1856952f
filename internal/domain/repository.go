package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) (*User, error)
}

// SubscriptionRepository defines persistence for subscriptions.
type SubscriptionRepository interface {
	GetByUser(ctx context.Context, userID string) (*Subscription, error)
	Upsert(ctx context.Context, sub *Subscription) (*Subscription, error)
}

// UsageRepository tracks per-day generation counters. Increment must be
// atomic increment-or-create; concurrent calls must never lose an update.
type UsageRepository interface {
	CountForDay(ctx context.Context, userID string, day time.Time) (int, error)
	Increment(ctx context.Context, userID string, day time.Time) (int, error)
}

// WodRepository persists generated WODs. CreateWithSections writes the WOD and
// all of its sections as one atomic unit.
type WodRepository interface {
	CreateWithSections(ctx context.Context, wod *GeneratedWod) (*GeneratedWod, error)
	GetByID(ctx context.Context, id string) (*GeneratedWod, error)
	MarkSaved(ctx context.Context, id, userID string) (*GeneratedWod, error)
	ListByUser(ctx context.Context, userID string) ([]GeneratedWod, error)
	ListSaved(ctx context.Context, userID string) ([]GeneratedWod, error)
}

// PresetRepository serves curated benchmark WODs.
type PresetRepository interface {
	ListActive(ctx context.Context) ([]PresetWod, error)
	GetByID(ctx context.Context, id string) (*PresetWod, error)
	Upsert(ctx context.Context, preset *PresetWod) error
}

// ProgressRepository records workout completions.
type ProgressRepository interface {
	Create(ctx context.Context, progress *WodProgress) (*WodProgress, error)
}
