package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/today
//	GET /api/v1/convert/ad/{date}
//	GET /api/v1/convert/bs/{date}
//	GET /api/v1/calendar/{year}/{month}
//	GET /api/v1/festivals
//	GET /api/v1/festivals/{key}
//	GET /api/v1/export/{year}.ics
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteNotFound(w, "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteError(w, http.StatusMethodNotAllowed, r.Method+" is not supported here", CodeMethodNotAllowed)
	})

	r.Get("/health", handlers.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/today", handlers.GetToday)
		r.Get("/convert/ad/{date}", handlers.ConvertAD)
		r.Get("/convert/bs/{date}", handlers.ConvertBS)
		r.Get("/calendar/{year}/{month}", handlers.GetMonth)
		r.Get("/festivals", handlers.ListFestivals)
		r.Get("/festivals/{key}", handlers.GetFestival)
		r.Get("/export/{year}.ics", handlers.ExportICS)
	})
	return r
}
