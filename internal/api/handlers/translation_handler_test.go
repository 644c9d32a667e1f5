package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/core/sessionstore"
	"github.com/docglot/docglot/internal/core/translation_engine"
	"github.com/docglot/docglot/internal/models"
)

type scriptedStream struct {
	fragments []string
	err       error
	i         int
}

func (s *scriptedStream) Recv() (string, error) {
	if s.i < len(s.fragments) {
		f := s.fragments[s.i]
		s.i++
		return f, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

type scriptedProvider struct {
	fragments []string
	err       error
}

func (p *scriptedProvider) Stream(ctx context.Context, req core.StreamRequest) (core.FragmentStream, error) {
	return &scriptedStream{fragments: p.fragments, err: p.err}, nil
}

// newTranslationAPI wires a real engine and store behind a chi router, with
// the provider scripted.
func newTranslationAPI(t *testing.T, provider core.StreamProvider) (*chi.Mux, translation_engine.Store) {
	t.Helper()
	store := sessionstore.NewMemory(time.Minute, zerolog.Nop())
	engine := translation_engine.NewEngine(provider, store, nil, translation_engine.Config{ExpansionRatio: 1.2}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	engine.Start(ctx, 1)

	h := NewTranslationHandler(engine, store, zerolog.Nop())
	r := chi.NewRouter()
	r.Post("/api/translations", h.CreateTranslation)
	r.Get("/api/translations/current", h.GetCurrent)
	r.Get("/api/translations/{id}", h.GetTranslation)
	r.Get("/api/translations/{id}/events", h.StreamEvents)
	return r, store
}

func postTranslation(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/translations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateTranslationValidation(t *testing.T) {
	router, _ := newTranslationAPI(t, &scriptedProvider{})

	rec := postTranslation(t, router, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postTranslation(t, router, `{"text":"hi","source_language":"en"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "target is required")

	rec = postTranslation(t, router, `{"text":"hi","source_language":"en","target_language":"xx"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown target rejected")

	rec = postTranslation(t, router, `{"text":"hi","source_language":"klingon","target_language":"fa"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown source rejected")
}

func TestCreateTranslationWhitespaceNoOp(t *testing.T) {
	router, _ := newTranslationAPI(t, &scriptedProvider{fragments: []string{"never"}})

	rec := postTranslation(t, router, `{"text":"   \n\t ","target_language":"fa"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, models.StatusIdle, snap.Status)
	assert.Empty(t, snap.TranslatedText)
	assert.Equal(t, 0, snap.ProgressPercent)

	req := httptest.NewRequest(http.MethodGet, "/api/translations/current", nil)
	cur := httptest.NewRecorder()
	router.ServeHTTP(cur, req)
	assert.Equal(t, http.StatusNotFound, cur.Code, "a no-op never becomes the current session")
}

func TestCreateTranslationRunsToSuccess(t *testing.T) {
	router, _ := newTranslationAPI(t, &scriptedProvider{fragments: []string{"سلام", " دنیا"}})

	rec := postTranslation(t, router, `{"text":"hello world","source_language":"en","target_language":"fa"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var snap models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.NotEmpty(t, snap.ID)
	assert.Equal(t, models.StatusTranslating, snap.Status)

	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/api/translations/"+snap.ID, nil)
		poll := httptest.NewRecorder()
		router.ServeHTTP(poll, req)
		if poll.Code != http.StatusOK {
			return false
		}
		var cur models.SessionSnapshot
		if err := json.NewDecoder(poll.Body).Decode(&cur); err != nil {
			return false
		}
		return cur.Status == models.StatusSuccess && cur.TranslatedText == "سلام دنیا" && cur.ProgressPercent == 100
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetTranslationUnknownID(t *testing.T) {
	router, _ := newTranslationAPI(t, &scriptedProvider{})
	req := httptest.NewRequest(http.MethodGet, "/api/translations/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrentFollowsLatestSession(t *testing.T) {
	router, store := newTranslationAPI(t, &scriptedProvider{fragments: []string{"out"}})

	postTranslation(t, router, `{"text":"first","source_language":"en","target_language":"de"}`)
	rec := postTranslation(t, router, `{"text":"second","source_language":"en","target_language":"de"}`)
	var second models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))

	cur, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID())

	req := httptest.NewRequest(http.MethodGet, "/api/translations/current", nil)
	r2 := httptest.NewRecorder()
	router.ServeHTTP(r2, req)
	require.Equal(t, http.StatusOK, r2.Code)
	var got models.SessionSnapshot
	require.NoError(t, json.NewDecoder(r2.Body).Decode(&got))
	assert.Equal(t, second.ID, got.ID)
}

func TestStreamEventsEndsWithTerminalSnapshot(t *testing.T) {
	router, store := newTranslationAPI(t, &scriptedProvider{fragments: []string{"done"}})

	rec := postTranslation(t, router, `{"text":"short","source_language":"en","target_language":"es"}`)
	var snap models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))

	sess, ok := store.Get(snap.ID)
	require.True(t, ok)
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session never finished")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/translations/"+snap.ID+"/events", nil)
	events := httptest.NewRecorder()
	router.ServeHTTP(events, req)

	require.Equal(t, http.StatusOK, events.Code)
	assert.Equal(t, "text/event-stream", events.Header().Get("Content-Type"))
	stream := events.Body.String()
	assert.Contains(t, stream, "event: session")
	assert.Contains(t, stream, `"status":"success"`)
	assert.Contains(t, stream, `"progress_percent":100`)
}

func TestStreamEventsReportsFailure(t *testing.T) {
	router, store := newTranslationAPI(t, &scriptedProvider{
		fragments: []string{"partial "},
		err:       io.ErrUnexpectedEOF,
	})

	rec := postTranslation(t, router, `{"text":"a longer source text","source_language":"en","target_language":"fr"}`)
	var snap models.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))

	sess, _ := store.Get(snap.ID)
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session never finished")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/translations/"+snap.ID+"/events", nil)
	events := httptest.NewRecorder()
	router.ServeHTTP(events, req)

	stream := events.Body.String()
	assert.Contains(t, stream, `"status":"error"`)
	assert.Contains(t, stream, `"partial "`, "fragments before the failure stay visible")
}
