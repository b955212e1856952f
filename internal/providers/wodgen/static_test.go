package wodgen

import (
	"context"
	"testing"

	"server/internal/domain"
)

func TestStaticGeneratorProducesCompletePlan(t *testing.T) {
	gen := NewStaticGenerator()
	plan, err := gen.Generate(context.Background(), Params{
		Location:  domain.LocationGym,
		Equipment: domain.EquipmentFull,
		Level:     domain.LevelAdvanced,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if plan.Title == "" {
		t.Fatal("expected a title")
	}
	if len(plan.WarmUp.Parts) == 0 || len(plan.StrengthSkill.Details) == 0 || len(plan.Metcon.Movements) == 0 || len(plan.CoolDown.Parts) == 0 {
		t.Fatalf("plan has empty sections: %+v", plan)
	}
}

func TestStaticGeneratorRespectsBodyweightAndInjury(t *testing.T) {
	gen := NewStaticGenerator()
	plan, err := gen.Generate(context.Background(), Params{
		Location:  domain.LocationHome,
		Equipment: domain.EquipmentBodyweight,
		Level:     domain.LevelBeginner,
		Injury:    "lower back pain",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for _, movement := range plan.Metcon.Movements {
		if movement == "15 Kettlebell Swings" {
			t.Fatal("bodyweight plan should not require kettlebells")
		}
	}
	if plan.Metcon.Notes == "Scale movements and loads as needed." {
		t.Fatal("expected injury note to replace the default scaling note")
	}
}
