package translation_engine

// Store keeps live sessions reachable between requests. The newest Put wins
// the current slot; superseded sessions stay readable by ID until evicted.
type Store interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	Current() (*Session, bool)
}
