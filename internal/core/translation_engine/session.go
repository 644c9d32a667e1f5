package translation_engine

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/docglot/docglot/internal/models"
)

// preCompletionCap is the progress ceiling while the stream is still open.
// Only a clean completion reports 100.
const preCompletionCap = 95

const defaultExpansionRatio = 1.2

// Session is one translation attempt: it owns the fragment accumulator and
// the status machine idle -> translating -> success | error. Terminal states
// are reached exactly once. Sessions are never reused; a new translate
// action always gets a fresh one.
type Session struct {
	mu sync.Mutex

	id           string
	status       string
	input        string
	sourceLang   string
	targetLang   string
	detectedLang string

	acc           strings.Builder
	accRunes      int
	expectedRunes float64
	progress      int
	errMsg        string

	createdAt time.Time
	updatedAt time.Time
	done      chan struct{}
}

// NewSession builds an idle session for one request. expansionRatio scales
// the input length into the expected output length driving the progress
// heuristic.
func NewSession(req models.TranslationRequest, expansionRatio float64) *Session {
	if expansionRatio <= 0 {
		expansionRatio = defaultExpansionRatio
	}
	now := time.Now().UTC()
	return &Session{
		id:            uuid.NewString(),
		status:        models.StatusIdle,
		input:         req.Text,
		sourceLang:    req.SourceLanguage,
		targetLang:    req.TargetLanguage,
		expectedRunes: float64(utf8.RuneCountInString(req.Text)) * expansionRatio,
		createdAt:     now,
		updatedAt:     now,
		done:          make(chan struct{}),
	}
}

func (s *Session) ID() string { return s.id }

// Done is closed once the session reaches success or error.
func (s *Session) Done() <-chan struct{} { return s.done }

// Text returns the source text being translated.
func (s *Session) Text() string { return s.input }

func (s *Session) SourceLanguage() string { return s.sourceLang }

func (s *Session) TargetLanguage() string { return s.targetLang }

func (s *Session) setDetectedLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detectedLang = code
}

// markTranslating moves an idle session into flight. Any other starting
// state is left alone.
func (s *Session) markTranslating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.StatusIdle {
		return
	}
	s.status = models.StatusTranslating
	s.updatedAt = time.Now().UTC()
}

// Append adds one fragment in arrival order and advances the progress
// heuristic, capped below completion. Fragments arriving outside the
// translating state belong to a superseded attempt and are dropped.
func (s *Session) Append(fragment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.StatusTranslating {
		return
	}
	s.acc.WriteString(fragment)
	s.accRunes += utf8.RuneCountInString(fragment)
	if s.expectedRunes > 0 {
		pct := int(float64(s.accRunes) / s.expectedRunes * 100)
		if pct > preCompletionCap {
			pct = preCompletionCap
		}
		if pct > s.progress {
			s.progress = pct
		}
	}
	s.updatedAt = time.Now().UTC()
}

// Complete marks a clean end of stream: status success, progress exactly 100.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminalLocked() {
		return
	}
	s.status = models.StatusSuccess
	s.progress = 100
	s.updatedAt = time.Now().UTC()
	close(s.done)
}

// Fail moves the session into the error state exactly once. Fragments
// accumulated before the failure stay readable.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminalLocked() {
		return
	}
	s.status = models.StatusError
	if err != nil {
		s.errMsg = err.Error()
	}
	s.updatedAt = time.Now().UTC()
	close(s.done)
}

func (s *Session) terminalLocked() bool {
	return s.status == models.StatusSuccess || s.status == models.StatusError
}

// UpdatedAt reports the time of the last mutation.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Snapshot copies the current state out of the session. The copy never
// changes after return.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionSnapshot{
		ID:               s.id,
		Status:           s.status,
		SourceLanguage:   s.sourceLang,
		TargetLanguage:   s.targetLang,
		DetectedLanguage: s.detectedLang,
		TranslatedText:   s.acc.String(),
		ProgressPercent:  s.progress,
		Error:            s.errMsg,
		CreatedAt:        s.createdAt,
		UpdatedAt:        s.updatedAt,
	}
}

// Terminal reports whether the session already finished, either way.
func Terminal(status string) bool {
	return status == models.StatusSuccess || status == models.StatusError
}
