// Package httpapi assembles the chi router for the REST API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/yajna-funds/server/internal/http/handlers"
	"github.com/yajna-funds/server/internal/middleware"
)

// Options carries the optional collaborators the router wires in. Zero
// values disable the corresponding middleware.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
	TokenVerifier   middleware.TokenVerifier
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Country(opts.CountryLookup),
		middleware.Locale(opts.DefaultLocale),
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/api/healthz", app.Health)

	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.Get("/{id}/contributions", app.CampaignContributionsList)
		r.With(middleware.Identity(opts.TokenVerifier)).Post("/", app.CampaignsCreate)
	})

	r.Route("/api/contributions", func(r chi.Router) {
		r.With(middleware.Identity(opts.TokenVerifier)).Post("/", app.ContributionsCreate)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/{id}", app.UsersGet)
		r.Get("/external/{ref}", app.UsersGetByExternalRef)
		r.Get("/{id}/contributions", app.UserContributionsList)
		r.Get("/{id}/campaigns", app.UserCampaignsList)
		r.With(middleware.Identity(opts.TokenVerifier)).Post("/", app.UsersCreate)
		r.With(middleware.Identity(opts.TokenVerifier)).Patch("/{id}", app.UsersUpdate)
	})

	return r
}
