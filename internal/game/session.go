// Package game owns the mutable player aggregate and implements the
// idle-progression core: passive income settlement, timed builds,
// probabilistic hacks and court cases, and task rewards.
//
// One Session serves one player. All mutations are serialized behind the
// session mutex; the economy depends on that single-writer invariant.
// A build, a hack, and a court case each deduct cost before validating
// anything else would run, so two in-flight spends can never race.
package game

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/observability"
)

// TopUpAmount is the fixed balance credit granted by the payment stub.
const TopUpAmount = 10000

// NotableEarningsThreshold is the smallest offline earning worth a
// "welcome back" notification. Smaller amounts settle silently.
const NotableEarningsThreshold = 0.01

// starterItemIncome is the hourly income of the free item granted on
// faction selection.
const starterItemIncome = 1

// ─── Session ────────────────────────────────────────────────────────────────

// Options configures a Session. Zero-value fields get safe defaults:
// system clock, math/rand source, no-op notifier, no persistence.
type Options struct {
	Clock      domain.Clock
	Rand       domain.Rand
	Notifier   domain.Notifier
	Store      domain.StateStore
	CaseStore  domain.CaseStore
	DailyReset bool // allow daily tasks to be re-completed after 24h
}

// Session owns one player's state for the lifetime of a process.
type Session struct {
	mu         sync.Mutex
	state      domain.PlayerState
	cases      []domain.CourtCase
	build      *Build
	clk        domain.Clock
	rng        domain.Rand
	notifier   domain.Notifier
	store      domain.StateStore
	caseStore  domain.CaseStore
	dailyReset bool
}

// NewSession creates a session with a fresh aggregate.
func NewSession(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = SystemRand{}
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	s := &Session{
		clk:        opts.Clock,
		rng:        opts.Rand,
		notifier:   opts.Notifier,
		store:      opts.Store,
		caseStore:  opts.CaseStore,
		dailyReset: opts.DailyReset,
	}
	s.state = domain.NewPlayerState(s.clk.Now())
	return s
}

// Resume creates a session from a persisted aggregate, settles offline
// earnings once, and reports them. Earnings at or below the notable
// threshold are settled silently.
func Resume(opts Options) (*Session, float64, error) {
	s := NewSession(opts)
	if s.store != nil {
		saved, err := s.store.LoadPlayerState()
		if err != nil {
			return nil, 0, err
		}
		if saved != nil {
			s.state = *saved
			if s.state.TaskLedger == nil {
				s.state.TaskLedger = make(map[string]time.Time)
			}
		}
	}
	if s.caseStore != nil {
		cases, err := s.caseStore.ListCases()
		if err != nil {
			return nil, 0, err
		}
		s.cases = cases
	}

	earnings := s.Settle()
	if earnings > NotableEarningsThreshold {
		s.notify("Welcome Back!", "You earned while you were away.")
	}
	return s, earnings, nil
}

// State returns a deep-copied snapshot safe to read outside the lock.
func (s *Session) State() domain.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ─── Progression Clock ──────────────────────────────────────────────────────

// Settle materializes passive earnings accrued since the last observation:
// rate/3600 per elapsed second, linear, fractional currency permitted.
// Idempotent for back-to-back calls; the second settles ~0.
func (s *Session) Settle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settleLocked(s.clk.Now())
}

func (s *Session) settleLocked(now time.Time) float64 {
	elapsed := now.Sub(s.state.LastObservedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	earnings := s.state.PassiveIncome / 3600 * elapsed
	s.state.Balance += earnings
	s.state.LastObservedAt = now
	observability.EarningsSettled.Add(earnings)
	s.persistLocked()
	return earnings
}

// ─── Faction Lifecycle ──────────────────────────────────────────────────────

// SelectFaction assigns the player's side and grants the free starter item.
// Re-selection while a faction is active is invalid; a full Reset is the
// only way back to the selection screen.
func (s *Session) SelectFaction(f domain.Faction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !f.Valid() {
		return domain.ErrInvalidFaction
	}
	if s.state.Faction != domain.FactionNone {
		return domain.ErrFactionAlreadySet
	}

	s.state.Faction = f
	switch f {
	case domain.FactionDev:
		s.state.AddItem(domain.Item{Name: "Basic App", Income: starterItemIncome})
	case domain.FactionByte:
		s.state.AddItem(domain.Item{Name: "Basic Hack Tool", Income: starterItemIncome})
	}
	s.persistLocked()
	log.Printf("[session] faction selected: %s", f)
	return nil
}

// Reset wipes the aggregate back to the unassigned state. The in-flight
// build (if any) is discarded; its cost is already spent and stays spent.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.NewPlayerState(s.clk.Now())
	s.cases = nil
	s.build = nil
	s.persistLocked()
	log.Printf("[session] full reset")
}

// ─── Balance Top-Up Stub ────────────────────────────────────────────────────

// TopUp credits the fixed purchase amount. The payment itself is confirmed
// out of band; the core treats the credit as trusted.
func (s *Session) TopUp() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Balance += TopUpAmount
	s.persistLocked()
	s.notifyLocked("Purchase Complete", "Your balance has been topped up.")
	return s.state.Balance
}

// ─── Internals ──────────────────────────────────────────────────────────────

// persistLocked saves the aggregate after a mutation. Persistence failures
// are logged, never propagated: the in-memory state is authoritative for
// the session and last-writer-wins on restart is acceptable.
func (s *Session) persistLocked() {
	if s.store == nil {
		return
	}
	if err := s.store.SavePlayerState(s.state); err != nil {
		log.Printf("[session] persist failed: %v", err)
	}
}

// notify delivers a user-facing event. A panicking sink (a hostile host
// shell) is recovered here so it can never unwind a finished mutation.
func (s *Session) notify(title, message string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[session] notifier panic: %v", r)
		}
	}()
	s.notifier.Notify(title, message)
}

// notifyLocked is notify for callers already holding the session mutex.
// The sink runs outside no lock-sensitive path; it only reads its args.
func (s *Session) notifyLocked(title, message string) {
	s.notify(title, message)
}

// clampMs bounds a millisecond count to [min, max].
func clampMs(ms, min, max float64) time.Duration {
	if ms < min {
		ms = min
	}
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

// floorAmount truncates a stolen amount to whole currency.
func floorAmount(v float64) float64 {
	return math.Floor(v)
}
