// Command seedpresets loads the curated benchmark WODs. Safe to rerun; presets
// are keyed by title.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/adapter/repo"
	"server/internal/domain"
)

func main() {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	presets := repo.NewPresetRepository(pool)
	for _, preset := range benchmarkPresets() {
		p := preset
		if err := presets.Upsert(ctx, &p); err != nil {
			exitWithError(fmt.Errorf("failed to seed %q: %w", p.Title, err))
		}
		fmt.Printf("seeded %s\n", p.Title)
	}
}

func benchmarkPresets() []domain.PresetWod {
	return []domain.PresetWod{
		{
			Title:       "Fran",
			Description: "The classic CrossFit benchmark couplet. Short, intense and unforgiving.",
			Difficulty:  domain.LevelAdvanced,
			Duration:    "5-10 min",
			Equipment:   domain.EquipmentFull,
			Location:    domain.LocationGym,
			Category:    "BENCHMARK",
			Tags:        []string{"benchmark", "couplet", "for-time"},
			IsActive:    true,
			Sections: []domain.WodSection{
				{
					Title:       "Fran",
					Type:        domain.SectionMetcon,
					Description: "21-15-9 reps, for time",
					Movements:   []string{"Thrusters 95/65 lb", "Pull-ups"},
					Notes:       "Scale the thruster weight or use ring rows to keep the rounds unbroken.",
					Order:       0,
				},
			},
		},
		{
			Title:       "Cindy",
			Description: "A 20 minute bodyweight AMRAP that rewards pacing over sprinting.",
			Difficulty:  domain.LevelBeginner,
			Duration:    "20 min",
			Equipment:   domain.EquipmentBodyweight,
			Location:    domain.LocationHome,
			Category:    "BENCHMARK",
			Tags:        []string{"benchmark", "bodyweight", "amrap"},
			IsActive:    true,
			Sections: []domain.WodSection{
				{
					Title:       "Cindy",
					Type:        domain.SectionMetcon,
					Description: "AMRAP in 20 minutes",
					Movements:   []string{"5 Pull-ups", "10 Push-ups", "15 Air squats"},
					Notes:       "Pick a round pace you can hold for all 20 minutes.",
					Order:       0,
				},
			},
		},
		{
			Title:       "Murph",
			Description: "The Memorial Day hero WOD. Long, grinding chipper with a weight vest for advanced athletes.",
			Difficulty:  domain.LevelAdvanced,
			Duration:    "40-60 min",
			Equipment:   domain.EquipmentLimited,
			Location:    domain.LocationGym,
			Category:    "HERO",
			Tags:        []string{"hero", "chipper", "for-time"},
			IsActive:    true,
			Sections: []domain.WodSection{
				{
					Title:       "Murph",
					Type:        domain.SectionMetcon,
					Description: "For time, partition the middle work as needed",
					Movements:   []string{"1 mile Run", "100 Pull-ups", "200 Push-ups", "300 Air squats", "1 mile Run"},
					Notes:       "Wear a 20/14 lb vest if prescribed. Partition into rounds of Cindy for most athletes.",
					Order:       0,
				},
			},
		},
		{
			Title:       "Helen",
			Description: "Three rounds of running, kettlebell swings and pull-ups. A pacing benchmark.",
			Difficulty:  domain.LevelIntermediate,
			Duration:    "10-15 min",
			Equipment:   domain.EquipmentLimited,
			Location:    domain.LocationGym,
			Category:    "BENCHMARK",
			Tags:        []string{"benchmark", "triplet", "for-time"},
			IsActive:    true,
			Sections: []domain.WodSection{
				{
					Title:       "Helen",
					Type:        domain.SectionMetcon,
					Description: "3 rounds for time",
					Movements:   []string{"400 m Run", "21 Kettlebell swings 53/35 lb", "12 Pull-ups"},
					Order:       0,
				},
			},
		},
		{
			Title:       "Strict Press Ladder",
			Description: "A pure strength session building to a heavy single on the strict press.",
			Difficulty:  domain.LevelIntermediate,
			Duration:    "25 min",
			Equipment:   domain.EquipmentFull,
			Location:    domain.LocationGym,
			Category:    "STRENGTH",
			Tags:        []string{"strength", "press"},
			IsActive:    true,
			Sections: []domain.WodSection{
				{
					Title:     "Shoulder prep",
					Type:      domain.SectionSkill,
					Duration:  "10 min",
					Movements: []string{"Band pull-aparts", "Scap push-ups", "Empty bar press"},
					Order:     0,
				},
				{
					Title:       "Strict press",
					Type:        domain.SectionStrength,
					Description: "5-4-3-2-1, building to a heavy single",
					Movements:   []string{"Strict press"},
					Notes:       "Rest 2-3 minutes between sets.",
					Order:       1,
				},
			},
		},
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
