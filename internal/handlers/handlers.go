package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"avaro.dev/internal/config"
	"avaro.dev/internal/live"
	"avaro.dev/internal/logger"
	"avaro.dev/internal/middleware"
	"avaro.dev/internal/render"
	"avaro.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, renderer *render.Renderer, hub *live.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(corsOptions(cfg.Server.Origins)))

	// Initialize services
	projectService := services.NewProjectService(cfg.Catalog)
	profileService := services.NewProfileService(cfg.Catalog)

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService)
	profileHandler := NewProfileHandler(profileService)
	pageHandler := NewPageHandler(cfg.Catalog, renderer)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/skills", profileHandler.ListSkills)
		r.Get("/contact", profileHandler.GetContact)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": hub.Count(),
			})
		})
	})

	// Live session
	r.Get("/ws", hub.ServeWS)

	// Overlay fragments, fetched by the page script when no live session is open
	r.Get("/overlays/{id}", pageHandler.Overlay)

	// Static files
	fileServer := http.FileServer(http.FS(render.Static()))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	// The page itself
	r.Get("/", pageHandler.Index)

	return r
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log := logger.Get("http")
		log.Error().Err(err).Msg("Error encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
