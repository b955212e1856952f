package wodgen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/domain"
)

// StaticGenerator produces a deterministic plan without calling any external
// service. It backs local development and acts as the offline provider choice.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (s *StaticGenerator) Generate(_ context.Context, params Params) (*Plan, error) {
	c := cases.Title(language.Und)
	title := fmt.Sprintf("%s %s Grinder", c.String(strings.ToLower(string(params.Level))), c.String(strings.ToLower(string(params.Location))))

	strength := StrengthBlock{
		Title:   "Strength: Front Squat",
		Details: []string{"5x5 Front Squats", "Build to a moderate working weight"},
	}
	metconMovements := []string{"10 Dumbbell Thrusters", "15 Kettlebell Swings", "200m Run"}
	if params.Equipment == domain.EquipmentBodyweight {
		strength = StrengthBlock{
			Title:   "Skill: Push-up Progression",
			Details: []string{"5x10 Push-ups", "Rest 60 seconds between sets"},
		}
		metconMovements = []string{"10 Burpees", "15 Air Squats", "20 Sit-ups"}
	}

	rounds := 3
	switch params.Level {
	case domain.LevelIntermediate:
		rounds = 4
	case domain.LevelAdvanced:
		rounds = 5
	}

	notes := "Scale movements and loads as needed."
	if strings.TrimSpace(params.Injury) != "" {
		notes = fmt.Sprintf("Avoid movements that aggravate: %s. Substitute as needed.", params.Injury)
	}

	return &Plan{
		Title: title,
		WarmUp: WarmupBlock{
			Title:    "Warm-up",
			Duration: "10 minutes",
			Parts:    []string{"2 rounds:", "10 Air Squats", "10 Arm Circles", "30s Jumping Jacks"},
		},
		StrengthSkill: strength,
		Metcon: MetconBlock{
			Title:       "Metcon",
			Type:        "For Time",
			Description: fmt.Sprintf("%d rounds for time of:", rounds),
			Movements:   metconMovements,
			Notes:       notes,
		},
		CoolDown: WarmupBlock{
			Title:    "Cool-down",
			Duration: "5 minutes",
			Parts:    []string{"Easy 200m walk", "Hamstring stretch: 30 seconds each side", "Deep breathing"},
		},
	}, nil
}

var _ Generator = (*StaticGenerator)(nil)
