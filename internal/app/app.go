package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/config"
	"github.com/docglot/docglot/internal/core/exporter"
	"github.com/docglot/docglot/internal/core/extraction_engine"
	"github.com/docglot/docglot/internal/core/langdetect"
	"github.com/docglot/docglot/internal/core/llm"
	"github.com/docglot/docglot/internal/core/sessionstore"
	"github.com/docglot/docglot/internal/core/translation_engine"
)

// App owns every long-lived component: the provider client, the session
// store with its janitor, the translation workers and the HTTP server.
type App struct {
	Provider *llm.GeminiLLM
	Store    *sessionstore.Memory
	Engine   *translation_engine.Engine
	Server   *Server

	log zerolog.Logger
}

// NewApp wires the service together. ctx scopes the background work: the
// translation workers and the store janitor stop when it is cancelled.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	provider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("initialize translation provider: %w", err)
	}
	log.Info().Str("model", cfg.GenModel).Msg("translation provider ready")

	store := sessionstore.NewMemory(cfg.SessionTTL, log)
	store.StartJanitor(ctx)

	engine := translation_engine.NewEngine(provider, store, langdetect.DetectISO6391, translation_engine.Config{
		ExpansionRatio: cfg.ExpansionRatio,
		Temperature:    cfg.Temperature,
		Timeout:        cfg.TranslateTimeout,
	}, log)
	engine.Start(ctx, cfg.TranslateWorkers)
	log.Info().Int("workers", cfg.TranslateWorkers).Msg("translation engine started")

	extractor := extraction_engine.New()
	exp := exporter.New()

	server := NewServer(cfg, log, extractor, engine, store, exp, langdetect.DetectISO6391)

	return &App{
		Provider: provider,
		Store:    store,
		Engine:   engine,
		Server:   server,
		log:      log,
	}, nil
}

func (a *App) Close() {
	if a.Provider != nil {
		if err := a.Provider.Close(); err != nil {
			a.log.Warn().Err(err).Msg("provider close failed")
		}
	}
}
