package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkravets/cpi-worker/internal/api"
	apiMiddleware "github.com/mkravets/cpi-worker/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// The trigger endpoint is called cross-origin from browser clients.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Auth-Token", "Authorization"},
		MaxAge:         86400,
	}))

	calculateHandler := api.NewCalculateHandler(
		app.taskRunner,
		app.taskFactory,
		app.config.Auth.Token,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate-cpi", calculateHandler.Calculate)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
