package wodgen

import (
	"context"

	"server/internal/domain"
)

// Params are the validated inputs for one generation request.
type Params struct {
	Location  domain.Location
	Equipment domain.Equipment
	Level     domain.Level
	Injury    string
}

// WarmupBlock is the shape of the warmUp and coolDown plan objects.
type WarmupBlock struct {
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Parts    []string `json:"parts"`
}

// StrengthBlock is the shape of the strengthSkill plan object.
type StrengthBlock struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

// MetconBlock is the shape of the metcon plan object.
type MetconBlock struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Movements   []string `json:"movements"`
	Notes       string   `json:"notes"`
}

// Plan is the structured workout a generator produces. The five top-level
// fields mirror the JSON contract given to the completion model.
type Plan struct {
	Title         string        `json:"title"`
	WarmUp        WarmupBlock   `json:"warmUp"`
	StrengthSkill StrengthBlock `json:"strengthSkill"`
	Metcon        MetconBlock   `json:"metcon"`
	CoolDown      WarmupBlock   `json:"coolDown"`
}

// Generator produces a workout plan for the given parameters. Implementations
// report upstream failures as domain.ErrUpstream and unusable output as
// domain.ErrMalformedResponse.
type Generator interface {
	Generate(ctx context.Context, params Params) (*Plan, error)
}
