package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/core/translation_engine"
	"github.com/docglot/docglot/internal/models"
)

// snapshotPollInterval paces the SSE loop between session changes.
const snapshotPollInterval = 150 * time.Millisecond

type TranslationHandler struct {
	engine *translation_engine.Engine
	store  translation_engine.Store
	log    zerolog.Logger
}

func NewTranslationHandler(engine *translation_engine.Engine, store translation_engine.Store, log zerolog.Logger) *TranslationHandler {
	return &TranslationHandler{engine: engine, store: store, log: log}
}

// CreateTranslation starts a streaming translation and answers 202 with the
// session snapshot. Whitespace-only text is a no-op and answers 200 with an
// idle snapshot instead.
func (h *TranslationHandler) CreateTranslation(w http.ResponseWriter, r *http.Request) {
	var req models.TranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.SourceLanguage = strings.ToLower(strings.TrimSpace(req.SourceLanguage))
	req.TargetLanguage = strings.ToLower(strings.TrimSpace(req.TargetLanguage))
	if req.SourceLanguage == "" {
		req.SourceLanguage = models.SourceAuto
	}
	if req.TargetLanguage == "" {
		http.Error(w, "target_language is required", http.StatusBadRequest)
		return
	}
	if !translation_engine.KnownLanguage(req.TargetLanguage) {
		http.Error(w, fmt.Sprintf("unknown target_language %q", req.TargetLanguage), http.StatusBadRequest)
		return
	}
	if req.SourceLanguage != models.SourceAuto && !translation_engine.KnownLanguage(req.SourceLanguage) {
		http.Error(w, fmt.Sprintf("unknown source_language %q", req.SourceLanguage), http.StatusBadRequest)
		return
	}

	sess, started := h.engine.Begin(req)
	status := http.StatusAccepted
	if !started {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(sess.Snapshot())
}

// GetTranslation answers with the snapshot for one session ID.
func (h *TranslationHandler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Snapshot())
}

// GetCurrent answers with the latest session, the one a reconnecting client
// should resume watching.
func (h *TranslationHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.store.Current()
	if !ok {
		http.Error(w, "no translation session", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Snapshot())
}

// StreamEvents pushes session snapshots as SSE until the session reaches a
// terminal state or the client goes away. Every change of status, progress
// or accumulated text emits one event; the terminal snapshot is always sent.
func (h *TranslationHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	sse, ok := newSSEWriter(w)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	lastStatus := ""
	lastProgress := -1
	lastLen := -1
	emit := func() (stop bool) {
		snap := sess.Snapshot()
		changed := snap.Status != lastStatus || snap.ProgressPercent != lastProgress || len(snap.TranslatedText) != lastLen
		if changed {
			if err := sse.Event("session", snap); err != nil {
				return true
			}
			lastStatus, lastProgress, lastLen = snap.Status, snap.ProgressPercent, len(snap.TranslatedText)
		}
		return translation_engine.Terminal(snap.Status)
	}

	if emit() {
		return
	}
	ticker := time.NewTicker(snapshotPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.Done():
			emit()
			return
		case <-ticker.C:
			if emit() {
				return
			}
		}
	}
}
