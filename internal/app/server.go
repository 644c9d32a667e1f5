package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/api/handlers"
	appMiddleware "github.com/docglot/docglot/internal/api/middlewares"
	"github.com/docglot/docglot/internal/config"
	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/core/exporter"
	"github.com/docglot/docglot/internal/core/translation_engine"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, log zerolog.Logger, extractor core.DocumentExtractor, engine *translation_engine.Engine, store translation_engine.Store, exp *exporter.Exporter, detect translation_engine.DetectFunc) *Server {
	docHandler := handlers.NewDocumentHandler(extractor, detect, cfg.MaxUploadBytes, log)
	translationHandler := handlers.NewTranslationHandler(engine, store, log)
	exportHandler := handlers.NewExportHandler(exp, log)
	metaHandler := handlers.NewMetaHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOriginsList(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		// Streaming endpoints hold their response open; only the one-shot
		// endpoints get the blanket timeout.
		api.Group(func(oneShot chi.Router) {
			oneShot.Use(middleware.Timeout(60 * time.Second))
			oneShot.Post("/translations", translationHandler.CreateTranslation)
			oneShot.Get("/translations/current", translationHandler.GetCurrent)
			oneShot.Get("/translations/{id}", translationHandler.GetTranslation)
			oneShot.Post("/exports", exportHandler.ExportDocument)
			oneShot.Get("/formats", metaHandler.GetFormats)
			oneShot.Get("/languages", metaHandler.GetLanguages)
		})

		api.Post("/documents/extract", docHandler.ExtractDocument)
		api.Get("/translations/{id}/events", translationHandler.StreamEvents)
	})

	// No global read/write timeouts: uploads can be large and SSE responses
	// stay open until the work finishes.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
