package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	h := newHandler(d)

	r := chi.NewRouter()

	r.Use(SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger.With("module", "http")))
	r.Use(d.Metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", common.AuthorizationHeaderName, "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		if d.RateLimit > 0 {
			api.Use(httprate.Limit(d.RateLimit, d.RateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusTooManyRequests, errorResponse{Message: rateLimitMessage})
				}),
			))
		}

		api.Post("/auth/register", h.Register)
		api.Post("/auth/login", h.Login)

		api.Group(func(protected chi.Router) {
			protected.Use(Authenticate(d.Secret))

			protected.Get("/auth/me", h.Me)
			protected.Post("/users/me/avatar", h.Avatar)

			protected.Get("/cars", h.ListCars)
			protected.With(RequireRole(common.RoleAdmin)).Post("/cars", h.CreateCar)

			protected.Get("/bookings", h.ListBookings)
			protected.Post("/bookings", h.CreateBooking)
		})
	})

	return r
}
