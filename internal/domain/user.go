package domain

import "time"

// Location enumerates where a workout takes place.
type Location string

const (
	LocationHome Location = "HOME"
	LocationGym  Location = "GYM"
)

// Valid reports whether the location is a known value.
func (l Location) Valid() bool {
	return l == LocationHome || l == LocationGym
}

// Equipment enumerates available equipment tiers.
type Equipment string

const (
	EquipmentBodyweight Equipment = "BODYWEIGHT"
	EquipmentLimited    Equipment = "LIMITED"
	EquipmentFull       Equipment = "FULL"
)

func (e Equipment) Valid() bool {
	return e == EquipmentBodyweight || e == EquipmentLimited || e == EquipmentFull
}

// Level enumerates athlete experience levels.
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

func (l Level) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// User represents a registered account with workout profile defaults.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Level        Level
	Location     Location
	Equipment    Equipment
	Injuries     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
