package game

import (
	"sync"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
)

// ─── Test Fakes ─────────────────────────────────────────────────────────────

// fakeClock is a settable clock for deterministic accrual and build timing.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seqRand replays a fixed sequence of draws, then repeats the last one.
type seqRand struct {
	values []float64
	idx    int
}

func (r *seqRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx]
	if r.idx < len(r.values)-1 {
		r.idx++
	}
	return v
}

// memStore keeps the last saved aggregate in memory.
type memStore struct {
	saved *domain.PlayerState
	saves int
}

func (m *memStore) SavePlayerState(state domain.PlayerState) error {
	cp := state.Clone()
	m.saved = &cp
	m.saves++
	return nil
}

func (m *memStore) LoadPlayerState() (*domain.PlayerState, error) {
	if m.saved == nil {
		return nil, nil
	}
	cp := m.saved.Clone()
	return &cp, nil
}

// memCaseStore collects case upserts keyed by ID.
type memCaseStore struct {
	cases map[string]domain.CourtCase
}

func newMemCaseStore() *memCaseStore {
	return &memCaseStore{cases: make(map[string]domain.CourtCase)}
}

func (m *memCaseStore) SaveCase(c domain.CourtCase) error {
	m.cases[c.ID] = c
	return nil
}

func (m *memCaseStore) ListCases() ([]domain.CourtCase, error) {
	out := make([]domain.CourtCase, 0, len(m.cases))
	for _, c := range m.cases {
		out = append(out, c)
	}
	return out, nil
}

// recNotifier records notifications in order.
type recNotifier struct {
	titles []string
}

func (n *recNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
}

// panicShell is a host shell that fails on every popup.
type panicShell struct{}

func (panicShell) Ready()                          {}
func (panicShell) ShowPopup(title, message string) { panic("shell gone") }
func (panicShell) Confirm(message string) bool     { return false }

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestSession builds a session with deterministic collaborators.
func newTestSession(clk *fakeClock, rng *seqRand) *Session {
	return NewSession(Options{Clock: clk, Rand: rng})
}
