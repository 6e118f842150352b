package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"rainfolio.dev/internal/apperr"
	"rainfolio.dev/internal/config"
	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/middleware"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/internal/session"
	"rainfolio.dev/web"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, store *content.Store, sessions *session.Manager, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	// Initialize services
	projectService := services.NewProjectService(store)
	profileService := services.NewProfileService(store)

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService)
	profileHandler := NewProfileHandler(profileService, cfg.Sections)
	sessionHandler := NewSessionHandler(sessions, cfg.HTTP.AllowedOrigins, logger)
	pageHandler, err := NewPageHandler(projectService, profileService, cfg.Sections, logger)
	if err != nil {
		return nil, fmt.Errorf("page templates: %w", err)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/categories", projectHandler.ListCategories)

		// Profile endpoints
		r.Get("/profile", profileHandler.GetProfile)
		r.Get("/experience", profileHandler.ListExperience)
		r.Get("/education", profileHandler.ListEducation)
		r.Get("/sections", profileHandler.ListSections)

		// View session
		r.Get("/session", sessionHandler.Connect)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status":          "ok",
				"content_version": store.Version(),
				"sessions":        sessions.Count(),
			})
		})
	})

	// Static files
	fileServer := http.FileServer(http.FS(web.Static()))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	// Server-rendered page at root
	r.Get("/", pageHandler.Index)

	return r, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("json encode failed", zap.Error(err))
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnknownCategory), errors.Is(err, apperr.ErrUnknownSection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
