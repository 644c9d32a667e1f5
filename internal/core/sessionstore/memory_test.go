package sessionstore

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docglot/docglot/internal/core/translation_engine"
	"github.com/docglot/docglot/internal/models"
)

func newSession(text string) *translation_engine.Session {
	return translation_engine.NewSession(models.TranslationRequest{
		Text:           text,
		SourceLanguage: "en",
		TargetLanguage: "fa",
	}, 1.2)
}

func TestPutGetCurrent(t *testing.T) {
	m := NewMemory(time.Minute, zerolog.Nop())

	_, ok := m.Current()
	assert.False(t, ok, "empty store has no current session")

	first := newSession("one")
	m.Put(first)
	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, first.ID(), cur.ID())

	second := newSession("two")
	m.Put(second)
	cur, _ = m.Current()
	assert.Equal(t, second.ID(), cur.ID(), "newest put wins the current slot")

	got, ok := m.Get(first.ID())
	require.True(t, ok, "superseded sessions stay readable")
	assert.Equal(t, first.ID(), got.ID())

	_, ok = m.Get("nope")
	assert.False(t, ok)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	m := NewMemory(50*time.Millisecond, zerolog.Nop())

	stale := newSession("stale")
	m.Put(stale)
	fresh := newSession("fresh")

	// Let the first session age past the TTL, then store the second.
	time.Sleep(80 * time.Millisecond)
	m.Put(fresh)

	evicted := m.sweep(time.Now())
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())

	_, ok := m.Get(stale.ID())
	assert.False(t, ok)
	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, fresh.ID(), cur.ID())
}

func TestSweepClearsCurrentWhenEvicted(t *testing.T) {
	m := NewMemory(10*time.Millisecond, zerolog.Nop())
	s := newSession("only")
	m.Put(s)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, m.sweep(time.Now()))
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
