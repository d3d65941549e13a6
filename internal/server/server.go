// Package server wires the generation pipeline behind an HTTP API with a
// websocket live-preview channel.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-uigen/pkg/orchestrator"
	"github.com/goliatone/go-uigen/pkg/preview"
)

// Config controls the HTTP surface.
type Config struct {
	// AllowedOrigins feeds the CORS middleware. Defaults to "*".
	AllowedOrigins []string
}

// Server exposes plan runs, validation, sandboxed renders, and previews over
// HTTP, with per-session live preview pushed over websockets.
type Server struct {
	orchestrator *orchestrator.Orchestrator
	sessions     *SessionStore
	hub          *previewHub
	logger       zerolog.Logger
	router       chi.Router
}

// New builds a server around the given orchestrator.
func New(orc *orchestrator.Orchestrator, logger zerolog.Logger, cfg Config) *Server {
	s := &Server{
		orchestrator: orc,
		sessions:     NewSessionStore(),
		hub:          newPreviewHub(logger),
		logger:       logger,
	}
	s.router = s.routes(cfg)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(cfg Config) chi.Router {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/validate", s.handleValidate)
		r.Post("/render", s.handleRender)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Post("/{sessionID}/plans", s.handleRunPlan)
			r.Get("/{sessionID}/preview", s.handlePreview)
			r.Get("/{sessionID}/code", s.handleCode)
		})
	})

	r.Get("/ws/sessions/{sessionID}", s.handlePreviewSocket)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(preview.AssetsFS()))))

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}
