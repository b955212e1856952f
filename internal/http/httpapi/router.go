package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// RouterOptions tunes the cross-cutting request middleware.
type RouterOptions struct {
	JWTSecret       string
	RateLimitPerMin int
}

// NewRouter assembles the public and authenticated route trees.
func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Healthz)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
	})

	r.Route("/v1/presets", func(r chi.Router) {
		r.Get("/", app.ListPresets)
		r.Get("/{id}", app.GetPreset)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Get("/v1/me", app.Me)
		r.Put("/v1/me/profile", app.UpdateProfile)

		r.Route("/v1/wods", func(r chi.Router) {
			r.Post("/generate", app.GenerateWod)
			r.Post("/{id}/save", app.SaveWod)
			r.Post("/{id}/complete", app.CompleteWod)
			r.Get("/history", app.WodHistory)
			r.Get("/export", app.ExportWods)
		})

		r.Get("/v1/subscription/status", app.SubscriptionStatus)
	})

	return r
}
