// Package wod orchestrates WOD generation: gate check, plan generation,
// atomic persistence and usage accounting.
package wod

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/providers/wodgen"
	"server/internal/quota"
)

// Service wires the usage gate, a plan generator and the persistence store.
type Service struct {
	wods      domain.WodRepository
	progress  domain.ProgressRepository
	subs      domain.SubscriptionRepository
	gate      *quota.Gate
	generator wodgen.Generator
	logger    infra.Logger
}

func NewService(
	wods domain.WodRepository,
	progress domain.ProgressRepository,
	subs domain.SubscriptionRepository,
	gate *quota.Gate,
	generator wodgen.Generator,
	logger infra.Logger,
) *Service {
	return &Service{
		wods:      wods,
		progress:  progress,
		subs:      subs,
		gate:      gate,
		generator: generator,
		logger:    logger,
	}
}

// Generate runs the full pipeline for one request. Quota, validation, upstream
// and parse failures surface as distinct error kinds; a failed generation
// never consumes quota and never leaves a partial WOD.
func (s *Service) Generate(ctx context.Context, userID string, params wodgen.Params) (*View, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	decision, err := s.gate.CheckAllowed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, decision.Reason)
	}

	plan, err := s.generator.Generate(ctx, params)
	if err != nil {
		return nil, err
	}

	saved, err := s.wods.CreateWithSections(ctx, wodFromPlan(userID, params, plan))
	if err != nil {
		return nil, fmt.Errorf("persist wod: %w", err)
	}

	// Usage is charged only once the WOD exists. The WOD is already persisted
	// at this point, so an increment failure is logged as a fault instead of
	// failing the request.
	if _, err := s.gate.RecordUsage(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("record usage failed")
	}

	return viewFromWod(saved), nil
}

// Save marks an owned WOD as explicitly saved. Premium only.
func (s *Service) Save(ctx context.Context, userID, wodID string) (*domain.GeneratedWod, error) {
	if err := s.requirePremium(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(wodID) == "" {
		return nil, fmt.Errorf("%w: wod id is required", domain.ErrValidation)
	}
	return s.wods.MarkSaved(ctx, wodID, userID)
}

// CompleteInput carries the optional details of a finished workout.
type CompleteInput struct {
	Duration        *int
	Notes           string
	Rating          *int
	PerceivedEffort *int
}

// Complete records that the user finished a WOD. Premium only; a second
// completion of the same WOD is a conflict.
func (s *Service) Complete(ctx context.Context, userID, wodID string, input CompleteInput) (*domain.WodProgress, error) {
	if err := s.requirePremium(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(wodID) == "" {
		return nil, fmt.Errorf("%w: wod id is required", domain.ErrValidation)
	}
	wod, err := s.wods.GetByID(ctx, wodID)
	if err != nil {
		return nil, err
	}
	if wod.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.progress.Create(ctx, &domain.WodProgress{
		UserID:          userID,
		WodID:           wodID,
		Duration:        input.Duration,
		Notes:           input.Notes,
		Rating:          input.Rating,
		PerceivedEffort: input.PerceivedEffort,
	})
}

// History returns the user's WODs, newest first, with ordered sections and any
// completion record. Premium only.
func (s *Service) History(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	if err := s.requirePremium(ctx, userID); err != nil {
		return nil, err
	}
	return s.wods.ListByUser(ctx, userID)
}

// SavedWods returns the user's explicitly saved WODs for export. Premium only.
func (s *Service) SavedWods(ctx context.Context, userID string) ([]domain.GeneratedWod, error) {
	if err := s.requirePremium(ctx, userID); err != nil {
		return nil, err
	}
	return s.wods.ListSaved(ctx, userID)
}

func (s *Service) requirePremium(ctx context.Context, userID string) error {
	sub, err := s.subs.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrPremiumRequired
		}
		return fmt.Errorf("load subscription: %w", err)
	}
	if !sub.IsPremium() {
		return domain.ErrPremiumRequired
	}
	return nil
}

func validateParams(p wodgen.Params) error {
	if p.Location == "" || p.Equipment == "" || p.Level == "" {
		return fmt.Errorf("%w: missing required parameters", domain.ErrValidation)
	}
	if !p.Location.Valid() {
		return fmt.Errorf("%w: unknown location %q", domain.ErrValidation, p.Location)
	}
	if !p.Equipment.Valid() {
		return fmt.Errorf("%w: unknown equipment %q", domain.ErrValidation, p.Equipment)
	}
	if !p.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", domain.ErrValidation, p.Level)
	}
	return nil
}

// wodFromPlan maps the five-field plan onto one WOD plus exactly four sections
// in canonical order. Missing movement lists become empty sequences.
func wodFromPlan(userID string, params wodgen.Params, plan *wodgen.Plan) *domain.GeneratedWod {
	return &domain.GeneratedWod{
		UserID: userID,
		Title:  plan.Title,
		Parameters: domain.WodParameters{
			Location:  params.Location,
			Equipment: params.Equipment,
			Level:     params.Level,
			Injury:    params.Injury,
		},
		Sections: []domain.WodSection{
			{
				Title:     plan.WarmUp.Title,
				Type:      domain.SectionWarmup,
				Duration:  plan.WarmUp.Duration,
				Movements: orEmpty(plan.WarmUp.Parts),
				Order:     0,
			},
			{
				Title:     plan.StrengthSkill.Title,
				Type:      domain.SectionStrength,
				Movements: orEmpty(plan.StrengthSkill.Details),
				Order:     1,
			},
			{
				Title:       plan.Metcon.Title,
				Type:        domain.SectionMetcon,
				Description: plan.Metcon.Description,
				Movements:   orEmpty(plan.Metcon.Movements),
				Notes:       plan.Metcon.Notes,
				Order:       2,
			},
			{
				Title:     plan.CoolDown.Title,
				Type:      domain.SectionCooldown,
				Duration:  plan.CoolDown.Duration,
				Movements: orEmpty(plan.CoolDown.Parts),
				Order:     3,
			},
		},
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
