package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/middleware"
	"server/internal/providers/wodgen"
	"server/internal/wod"
)

// WodService is the slice of the generation service the handlers need.
type WodService interface {
	Generate(ctx context.Context, userID string, params wodgen.Params) (*wod.View, error)
	Save(ctx context.Context, userID, wodID string) (*domain.GeneratedWod, error)
	Complete(ctx context.Context, userID, wodID string, input wod.CompleteInput) (*domain.WodProgress, error)
	History(ctx context.Context, userID string) ([]domain.GeneratedWod, error)
	SavedWods(ctx context.Context, userID string) ([]domain.GeneratedWod, error)
}

// QuotaGate exposes the gate queries the subscription endpoint renders.
type QuotaGate interface {
	Remaining(ctx context.Context, userID string) (int, error)
	Limit() int
	NextReset() time.Time
}

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Logger        infra.Logger
	JWTSecret     string
	Users         domain.UserRepository
	Subscriptions domain.SubscriptionRepository
	Presets       domain.PresetRepository
	Wods          WodService
	Gate          QuotaGate
	Timezones     geoip.TimezoneResolver
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"code": errCode, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// domainError maps sentinel errors onto HTTP responses. Anything unrecognized
// is a fault and logged as such.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrQuotaExceeded):
		a.error(w, http.StatusForbidden, "quota_exceeded", err.Error())
	case errors.Is(err, domain.ErrPremiumRequired):
		a.error(w, http.StatusForbidden, "premium_required", "premium subscription required")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "already exists")
	case errors.Is(err, domain.ErrUpstream):
		a.Logger.Error().Err(err).Msg("generation upstream failure")
		a.error(w, http.StatusBadGateway, "upstream_error", "workout generation is temporarily unavailable")
	case errors.Is(err, domain.ErrMalformedResponse):
		a.error(w, http.StatusBadGateway, "invalid_response", "workout generation returned an unusable plan")
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
