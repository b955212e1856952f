package domain

import "time"

// SectionType enumerates WOD section categories. Machine-generated WODs carry
// exactly one of WARMUP, STRENGTH, METCON and COOLDOWN in that order; preset
// WODs may additionally use SKILL.
type SectionType string

const (
	SectionWarmup   SectionType = "WARMUP"
	SectionStrength SectionType = "STRENGTH"
	SectionSkill    SectionType = "SKILL"
	SectionMetcon   SectionType = "METCON"
	SectionCooldown SectionType = "COOLDOWN"
)

// WodSection is one ordered block of a workout.
type WodSection struct {
	ID          string
	WodID       string
	Title       string
	Type        SectionType
	Duration    string
	Description string
	Movements   []string
	Notes       string
	Order       int
}

// WodParameters are the inputs a WOD was generated from.
type WodParameters struct {
	Location  Location  `json:"location"`
	Equipment Equipment `json:"equipment"`
	Level     Level     `json:"level"`
	Injury    string    `json:"injury"`
}

// GeneratedWod is a persisted workout plan. It is created atomically with its
// sections and never mutated afterwards except to flip Saved or to receive a
// completion record.
type GeneratedWod struct {
	ID         string
	UserID     string
	Title      string
	Saved      bool
	Parameters WodParameters
	Sections   []WodSection
	Progress   *WodProgress
	CreatedAt  time.Time
}

// PresetWod is a curated benchmark workout available to all users.
type PresetWod struct {
	ID          string
	Title       string
	Description string
	Difficulty  Level
	Duration    string
	Equipment   Equipment
	Location    Location
	Category    string
	Tags        []string
	IsActive    bool
	Sections    []WodSection
	CreatedAt   time.Time
}

// WodProgress records a completed workout. One record per (user, WOD).
type WodProgress struct {
	ID              string
	UserID          string
	WodID           string
	Duration        *int
	Notes           string
	Rating          *int
	PerceivedEffort *int
	CompletedAt     time.Time
}
