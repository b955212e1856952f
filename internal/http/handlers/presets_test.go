package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
)

type fakePresets struct {
	presets []domain.PresetWod
}

func (f *fakePresets) ListActive(context.Context) ([]domain.PresetWod, error) {
	return f.presets, nil
}

func (f *fakePresets) GetByID(_ context.Context, id string) (*domain.PresetWod, error) {
	for i := range f.presets {
		if f.presets[i].ID == id {
			return &f.presets[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePresets) Upsert(_ context.Context, preset *domain.PresetWod) error {
	f.presets = append(f.presets, *preset)
	return nil
}

func TestListPresets(t *testing.T) {
	app, _, _ := newTestApp()
	app.Presets = &fakePresets{presets: []domain.PresetWod{
		{
			ID:         "preset-1",
			Title:      "Fran",
			Difficulty: domain.LevelAdvanced,
			Duration:   "5-10 min",
			Equipment:  domain.EquipmentFull,
			Location:   domain.LocationGym,
			Category:   "BENCHMARK",
			IsActive:   true,
			Sections: []domain.WodSection{
				{Title: "Fran", Type: domain.SectionMetcon, Description: "21-15-9", Movements: []string{"Thrusters 95/65", "Pull-ups"}, Order: 0},
			},
		},
	}}

	rec := httptest.NewRecorder()
	app.ListPresets(rec, httptest.NewRequest(http.MethodGet, "/v1/presets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Presets []presetDTO `json:"presets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Presets) != 1 || resp.Presets[0].Title != "Fran" {
		t.Fatalf("presets = %+v", resp.Presets)
	}
	if resp.Presets[0].Tags == nil {
		t.Fatal("tags should render as empty list")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	app, _, _ := newTestApp()
	app.Presets = &fakePresets{}

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/v1/presets/nope", nil), "id", "nope")
	app.GetPreset(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
