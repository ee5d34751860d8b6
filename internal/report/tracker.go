package report

import "sync"

// Tracker orders report fetches per session. Every fetch takes a
// generation from Next; Commit stores the resulting view only while that
// generation is still the newest issued, so a slow response can never
// overwrite the result of a later request.
type Tracker struct {
	mu     sync.Mutex
	latest map[string]uint64
	views  map[string]*View
}

func NewTracker() *Tracker {
	return &Tracker{
		latest: map[string]uint64{},
		views:  map[string]*View{},
	}
}

// Next issues the generation for a fetch about to start.
func (t *Tracker) Next(sessionID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest[sessionID]++
	return t.latest[sessionID]
}

// Commit records the fetched view if gen is still current. It reports
// whether the view was accepted; stale results are discarded.
func (t *Tracker) Commit(sessionID string, gen uint64, view *View) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.latest[sessionID] {
		return false
	}

	t.views[sessionID] = view
	return true
}

// Latest returns the most recently committed view for the session, or
// nil when nothing has been committed yet.
func (t *Tracker) Latest(sessionID string) *View {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.views[sessionID]
}

// Forget drops all state for a session, typically on logout.
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.latest, sessionID)
	delete(t.views, sessionID)
}
