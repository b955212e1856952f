package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/providers/wodgen"
	"server/internal/wod"
)

type generateRequest struct {
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
	Level     string `json:"level"`
	Injury    string `json:"injury"`
}

// GenerateWod runs the generation pipeline for the authenticated user.
func (a *App) GenerateWod(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	view, err := a.Wods.Generate(r.Context(), userID, wodgen.Params{
		Location:  domain.Location(req.Location),
		Equipment: domain.Equipment(req.Equipment),
		Level:     domain.Level(req.Level),
		Injury:    req.Injury,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, view)
}

// SaveWod marks a generated WOD as saved.
func (a *App) SaveWod(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	saved, err := a.Wods.Save(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": saved.ID, "saved": saved.Saved})
}

type completeRequest struct {
	Duration        *int   `json:"duration"`
	Notes           string `json:"notes"`
	Rating          *int   `json:"rating"`
	PerceivedEffort *int   `json:"perceived_effort"`
}

type progressDTO struct {
	ID              string    `json:"id"`
	WodID           string    `json:"wod_id"`
	Duration        *int      `json:"duration,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Rating          *int      `json:"rating,omitempty"`
	PerceivedEffort *int      `json:"perceived_effort,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}

// CompleteWod records a workout completion.
func (a *App) CompleteWod(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req completeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		a.error(w, http.StatusBadRequest, "bad_request", "rating must be between 1 and 5")
		return
	}

	progress, err := a.Wods.Complete(r.Context(), userID, chi.URLParam(r, "id"), wod.CompleteInput{
		Duration:        req.Duration,
		Notes:           req.Notes,
		Rating:          req.Rating,
		PerceivedEffort: req.PerceivedEffort,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, progressToDTO(progress))
}

type historyItemDTO struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Saved      bool                 `json:"saved"`
	Parameters domain.WodParameters `json:"parameters"`
	Sections   []sectionDTO         `json:"sections"`
	Progress   *progressDTO         `json:"progress,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type sectionDTO struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Movements   []string `json:"movements"`
	Notes       string   `json:"notes,omitempty"`
	Order       int      `json:"order"`
}

// WodHistory lists the user's generated WODs, newest first. With ?saved=true
// only explicitly saved ones are returned.
func (a *App) WodHistory(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var (
		wods []domain.GeneratedWod
		err  error
	)
	if r.URL.Query().Get("saved") == "true" {
		wods, err = a.Wods.SavedWods(r.Context(), userID)
	} else {
		wods, err = a.Wods.History(r.Context(), userID)
	}
	if err != nil {
		a.domainError(w, err)
		return
	}

	items := make([]historyItemDTO, 0, len(wods))
	for i := range wods {
		items = append(items, historyToDTO(&wods[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"wods": items})
}

// ExportWods streams the user's saved WODs as a zip of plain-text files.
func (a *App) ExportWods(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	wods, err := a.Wods.SavedWods(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	archive := wod.ExportArchive(wods)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "wods-"+time.Now().Format("2006-01-02")+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func historyToDTO(w *domain.GeneratedWod) historyItemDTO {
	sections := make([]sectionDTO, 0, len(w.Sections))
	for _, sec := range w.Sections {
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
	item := historyItemDTO{
		ID:         w.ID,
		Title:      w.Title,
		Saved:      w.Saved,
		Parameters: w.Parameters,
		Sections:   sections,
		CreatedAt:  w.CreatedAt,
	}
	if w.Progress != nil {
		dto := progressToDTO(w.Progress)
		item.Progress = &dto
	}
	return item
}

func progressToDTO(p *domain.WodProgress) progressDTO {
	return progressDTO{
		ID:              p.ID,
		WodID:           p.WodID,
		Duration:        p.Duration,
		Notes:           p.Notes,
		Rating:          p.Rating,
		PerceivedEffort: p.PerceivedEffort,
		CompletedAt:     p.CompletedAt,
	}
}
