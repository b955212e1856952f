package wod

import "server/internal/domain"

// View is the client-facing shape of a generated WOD, rebuilt from the
// persisted sections rather than the raw model output so follow-up save and
// complete calls can reference the stable id.
type View struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	WarmUp        WarmupView   `json:"warmUp"`
	StrengthSkill StrengthView `json:"strengthSkill"`
	Metcon        MetconView   `json:"metcon"`
	CoolDown      WarmupView   `json:"coolDown"`
}

type WarmupView struct {
	Title    string   `json:"title"`
	Duration string   `json:"duration,omitempty"`
	Parts    []string `json:"parts"`
}

type StrengthView struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

type MetconView struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Movements   []string `json:"movements"`
	Notes       string   `json:"notes,omitempty"`
}

func viewFromWod(w *domain.GeneratedWod) *View {
	view := &View{
		ID:            w.ID,
		Title:         w.Title,
		WarmUp:        WarmupView{Title: "Warm-up", Parts: []string{}},
		StrengthSkill: StrengthView{Title: "Strength", Details: []string{}},
		// The section row has no column for the metcon scheme, so the view
		// reports the generic default.
		Metcon:   MetconView{Title: "Metcon", Type: "For Time", Movements: []string{}},
		CoolDown: WarmupView{Title: "Cool-down", Parts: []string{}},
	}
	for _, section := range w.Sections {
		switch section.Type {
		case domain.SectionWarmup:
			view.WarmUp = WarmupView{Title: section.Title, Duration: section.Duration, Parts: orEmpty(section.Movements)}
		case domain.SectionStrength:
			view.StrengthSkill = StrengthView{Title: section.Title, Details: orEmpty(section.Movements)}
		case domain.SectionMetcon:
			view.Metcon = MetconView{
				Title:       section.Title,
				Type:        "For Time",
				Description: section.Description,
				Movements:   orEmpty(section.Movements),
				Notes:       section.Notes,
			}
		case domain.SectionCooldown:
			view.CoolDown = WarmupView{Title: section.Title, Duration: section.Duration, Parts: orEmpty(section.Movements)}
		}
	}
	return view
}
