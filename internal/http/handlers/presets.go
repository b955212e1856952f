package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type presetDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Difficulty  string       `json:"difficulty"`
	Duration    string       `json:"duration"`
	Equipment   string       `json:"equipment"`
	Location    string       `json:"location"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Sections    []sectionDTO `json:"sections"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ListPresets returns the active curated benchmark WODs. No auth required.
func (a *App) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := a.Presets.ListActive(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]presetDTO, 0, len(presets))
	for i := range presets {
		items = append(items, presetToDTO(&presets[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"presets": items})
}

// GetPreset returns one preset with its sections.
func (a *App) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := a.Presets.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, presetToDTO(preset))
}

func presetToDTO(p *domain.PresetWod) presetDTO {
	sections := make([]sectionDTO, 0, len(p.Sections))
	for _, sec := range p.Sections {
		sections = append(sections, sectionDTO{
			Title:       sec.Title,
			Type:        string(sec.Type),
			Duration:    sec.Duration,
			Description: sec.Description,
			Movements:   sec.Movements,
			Notes:       sec.Notes,
			Order:       sec.Order,
		})
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return presetDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Difficulty:  string(p.Difficulty),
		Duration:    p.Duration,
		Equipment:   string(p.Equipment),
		Location:    string(p.Location),
		Category:    p.Category,
		Tags:        tags,
		Sections:    sections,
		CreatedAt:   p.CreatedAt,
	}
}
