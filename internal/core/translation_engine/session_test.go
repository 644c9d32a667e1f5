package translation_engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docglot/docglot/internal/models"
)

func newTestSession(text string) *Session {
	return NewSession(models.TranslationRequest{
		Text:           text,
		SourceLanguage: models.SourceAuto,
		TargetLanguage: "fa",
	}, 1.2)
}

func TestNewSessionStartsIdle(t *testing.T) {
	s := newTestSession("hello world")
	snap := s.Snapshot()
	assert.Equal(t, models.StatusIdle, snap.Status)
	assert.Equal(t, 0, snap.ProgressPercent)
	assert.Empty(t, snap.TranslatedText)
	assert.NotEmpty(t, snap.ID)
}

func TestAppendAccumulatesAndAdvancesProgress(t *testing.T) {
	// 11 input runes at ratio 1.2 -> expected 13.2 output runes.
	s := newTestSession("hello world")
	s.markTranslating()

	s.Append("hola ")
	snap := s.Snapshot()
	assert.Equal(t, "hola ", snap.TranslatedText)
	assert.Equal(t, 37, snap.ProgressPercent)

	s.Append("mundo!")
	snap = s.Snapshot()
	assert.Equal(t, "hola mundo!", snap.TranslatedText)
	assert.Equal(t, 83, snap.ProgressPercent)
}

func TestProgressCapsBelowCompletionWhileOpen(t *testing.T) {
	s := newTestSession("hi")
	s.markTranslating()
	// Way past the expected length; still capped until Complete.
	s.Append("a much longer translation than expected")
	assert.Equal(t, 95, s.Snapshot().ProgressPercent)

	s.Complete()
	snap := s.Snapshot()
	assert.Equal(t, models.StatusSuccess, snap.Status)
	assert.Equal(t, 100, snap.ProgressPercent)
}

func TestCompleteReportsExactlyHundred(t *testing.T) {
	s := newTestSession("some source text to translate")
	s.markTranslating()
	s.Append("short")
	s.Complete()
	snap := s.Snapshot()
	assert.Equal(t, models.StatusSuccess, snap.Status)
	assert.Equal(t, 100, snap.ProgressPercent, "completion reports 100 even when output undershoots the estimate")
}

func TestFailIsTerminalExactlyOnce(t *testing.T) {
	s := newTestSession("hello world")
	s.markTranslating()
	s.Append("partial ")

	s.Fail(errors.New("stream reset"))
	snap := s.Snapshot()
	assert.Equal(t, models.StatusError, snap.Status)
	assert.Equal(t, "stream reset", snap.Error)
	assert.Equal(t, "partial ", snap.TranslatedText, "accumulated text survives the failure")

	// A second terminal transition must not fire (or re-close done).
	s.Fail(errors.New("second"))
	s.Complete()
	snap = s.Snapshot()
	assert.Equal(t, models.StatusError, snap.Status)
	assert.Equal(t, "stream reset", snap.Error)

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel must be closed after a terminal transition")
	}
}

func TestAppendAfterTerminalIsDropped(t *testing.T) {
	s := newTestSession("hello world")
	s.markTranslating()
	s.Fail(errors.New("gone"))
	s.Append("late fragment")
	assert.Empty(t, s.Snapshot().TranslatedText)
}

func TestSnapshotIsIsolatedCopy(t *testing.T) {
	s := newTestSession("hello world")
	s.markTranslating()
	s.Append("first")
	snap := s.Snapshot()
	s.Append(" second")
	assert.Equal(t, "first", snap.TranslatedText)
	assert.Equal(t, "first second", s.Snapshot().TranslatedText)
}

func TestTerminalHelper(t *testing.T) {
	require.False(t, Terminal(models.StatusIdle))
	require.False(t, Terminal(models.StatusTranslating))
	require.True(t, Terminal(models.StatusSuccess))
	require.True(t, Terminal(models.StatusError))
}
