// Package translation_engine drives streaming translations: it owns the
// session state machine, the prompt protocol and the worker pool that pumps
// provider fragments into sessions.
package translation_engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/models"
)

// Config tunes the engine.
type Config struct {
	// ExpansionRatio scales input length into expected output length for the
	// progress heuristic.
	ExpansionRatio float64
	// Temperature for generation calls.
	Temperature float32
	// Timeout bounds one whole translation, stream included. Zero means no
	// bound.
	Timeout time.Duration
}

// DetectFunc guesses the ISO 639-1 code of a text sample, "" when unsure.
type DetectFunc func(text string) string

// Engine runs translations through a bounded job queue (64) drained by
// worker goroutines, one stream per job.
type Engine struct {
	provider core.StreamProvider
	store    Store
	detect   DetectFunc
	cfg      Config
	log      zerolog.Logger
	jobs     chan string
}

func NewEngine(provider core.StreamProvider, store Store, detect DetectFunc, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		store:    store,
		detect:   detect,
		cfg:      cfg,
		log:      log,
		jobs:     make(chan string, 64),
	}
}

// Start launches the worker goroutines. They run until ctx is cancelled;
// cancelling also tears down any in-flight provider streams.
func (e *Engine) Start(ctx context.Context, numWorkers int) {
	for w := 1; w <= numWorkers; w++ {
		go func(w int) {
			for {
				select {
				case <-ctx.Done():
					e.log.Debug().Int("worker", w).Msg("translation worker shutting down")
					return
				case id := <-e.jobs:
					if err := e.processOne(ctx, id); err != nil {
						e.log.Error().Err(err).Str("session_id", id).Int("worker", w).Msg("translation failed")
					}
				}
			}
		}(w)
	}
}

// Begin creates a session for req and schedules it. Whitespace-only input is
// a no-op: the returned session stays idle, is never stored and the provider
// is never called. Otherwise the session is stored as current and the second
// return is true. If the queue is full, Begin blocks until space frees up.
func (e *Engine) Begin(req models.TranslationRequest) (*Session, bool) {
	sess := NewSession(req, e.cfg.ExpansionRatio)
	if strings.TrimSpace(req.Text) == "" {
		return sess, false
	}
	sess.markTranslating()
	e.store.Put(sess)
	e.jobs <- sess.ID()
	return sess, true
}

// processOne runs a single session: detect, prompt, stream, accumulate.
// Provider failures land on the session as a terminal error with whatever
// fragments already arrived preserved.
func (e *Engine) processOne(ctx context.Context, id string) error {
	sess, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	src := sess.SourceLanguage()
	if e.detect != nil && (src == "" || src == models.SourceAuto) {
		sess.setDetectedLanguage(e.detect(sess.Text()))
	}

	stream, err := e.provider.Stream(ctx, core.StreamRequest{
		Instruction:  BuildInstruction(sess.Text(), src, sess.TargetLanguage()),
		SystemPrompt: translatorSystemPrompt,
		Temperature:  e.cfg.Temperature,
	})
	if err != nil {
		serr := &core.StreamError{Err: err}
		sess.Fail(serr)
		return serr
	}

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			sess.Complete()
			return nil
		}
		if err != nil {
			serr := &core.StreamError{Err: err}
			sess.Fail(serr)
			return serr
		}
		sess.Append(fragment)
	}
}
