package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"igpt/internal/http/handlers"
	"igpt/internal/middleware"
)

// Options configures the cross-cutting middleware around the API.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	// Static serves locally stored assets under /static when set.
	Static http.Handler
	Logger zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static", opts.Static))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Get("/catalog", app.GetCatalog)
		r.Get("/catalog/styles", app.CatalogStyles)
		r.Get("/catalog/palettes", app.CatalogPalettes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret))
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", app.CreateSession)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", app.GetSession)
					r.Delete("/", app.DeleteSession)
					r.Post("/reset", app.ResetSession)
					r.Put("/category", app.SelectCategory)
					r.Put("/subformat", app.SelectSubformat)
					r.Put("/orientation", app.SelectOrientation)
					r.Put("/style", app.SelectStyle)
					r.Put("/palette", app.SelectPalette)
					r.Post("/expert-mode/{category_id}", app.ToggleExpertMode)
					r.Post("/compose", app.Compose)
					r.Post("/generate", app.Generate)
				})
			})

			r.Get("/me/entitlement", app.MyEntitlement)
			r.Get("/me/assets", app.ListAssets)
			r.Post("/assets/{id}/download", app.DownloadAsset)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/entitlements/{user_id}/credits", app.GrantCredits)
				r.Put("/entitlements/{user_id}/plan", app.SetPlan)
			})
		})
	})

	return r
}
