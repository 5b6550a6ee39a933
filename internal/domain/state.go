// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of the engine; it depends on nothing.
package domain

import (
	"math"
	"time"
)

// ─── Faction ────────────────────────────────────────────────────────────────

// Faction is the player's side: developers build apps, bytes hack them.
type Faction string

const (
	FactionNone Faction = ""
	FactionDev  Faction = "dev"
	FactionByte Faction = "byte"
)

// Valid reports whether f is one of the two playable factions.
func (f Faction) Valid() bool {
	return f == FactionDev || f == FactionByte
}

// ─── Inventory ──────────────────────────────────────────────────────────────

// Item is an owned income source: an app (dev) or a tool (byte).
type Item struct {
	Name   string  `json:"name"`
	Income float64 `json:"income"` // currency per hour
}

// ─── Stats ──────────────────────────────────────────────────────────────────

// MaxSecurityLevel caps the dev security upgrade ladder.
const MaxSecurityLevel = 5

// DevStats are the developer faction counters.
type DevStats struct {
	AppsCreated         int `json:"apps_created"`
	SecurityLevel       int `json:"security_level"` // starts at 1, capped at MaxSecurityLevel
	CourtCasesWon       int `json:"court_cases_won"`
	OperationsCompleted int `json:"operations_completed"`
}

// ByteStats are the hacker faction counters.
type ByteStats struct {
	SystemsHacked       int `json:"systems_hacked"`
	SoftwareCreated     int `json:"software_created"`
	AppsHacked          int `json:"apps_hacked"`
	OperationsCompleted int `json:"operations_completed"`
}

// ─── Player State ───────────────────────────────────────────────────────────

// DevSide holds the developer faction's inventory and counters.
type DevSide struct {
	Apps  []Item   `json:"apps"`
	Stats DevStats `json:"stats"`
}

// ByteSide holds the hacker faction's inventory and counters.
type ByteSide struct {
	Tools []Item    `json:"tools"`
	Stats ByteStats `json:"stats"`
}

// PlayerState is the single mutable aggregate for one session.
// Invariant: PassiveIncome always equals the sum of the active inventory's
// item incomes. Mutations go through the game services, never ad hoc.
type PlayerState struct {
	Faction        Faction              `json:"faction"`
	Balance        float64              `json:"balance"`
	PassiveIncome  float64              `json:"passive_income"` // currency per hour
	LastObservedAt time.Time            `json:"last_observed_at"`
	Dev            DevSide              `json:"dev"`
	Byte           ByteSide             `json:"byte"`
	TaskLedger     map[string]time.Time `json:"task_ledger"`
}

// NewPlayerState returns a fresh aggregate with no faction assigned.
// Security level starts at 1 per the upgrade ladder.
func NewPlayerState(now time.Time) PlayerState {
	return PlayerState{
		Faction:        FactionNone,
		LastObservedAt: now,
		Dev:            DevSide{Stats: DevStats{SecurityLevel: 1}},
		Byte:           ByteSide{},
		TaskLedger:     make(map[string]time.Time),
	}
}

// Inventory returns the active faction's owned items.
func (s *PlayerState) Inventory() []Item {
	switch s.Faction {
	case FactionDev:
		return s.Dev.Apps
	case FactionByte:
		return s.Byte.Tools
	default:
		return nil
	}
}

// AddItem appends an item to the active faction's inventory and bumps the
// passive income rate by the item's contribution. The two updates are a
// single step so the income invariant cannot be observed broken.
func (s *PlayerState) AddItem(item Item) {
	switch s.Faction {
	case FactionDev:
		s.Dev.Apps = append(s.Dev.Apps, item)
	case FactionByte:
		s.Byte.Tools = append(s.Byte.Tools, item)
	default:
		return
	}
	s.PassiveIncome += item.Income
}

// IncomeSum recomputes the passive income rate from the inventory.
// Used by tests and the loader to verify the income invariant.
func (s *PlayerState) IncomeSum() float64 {
	var sum float64
	for _, it := range s.Inventory() {
		sum += it.Income
	}
	return sum
}

// OperationsCompleted returns the active faction's completed-operations counter.
func (s *PlayerState) OperationsCompleted() int {
	switch s.Faction {
	case FactionDev:
		return s.Dev.Stats.OperationsCompleted
	case FactionByte:
		return s.Byte.Stats.OperationsCompleted
	default:
		return 0
	}
}

// Clone returns a deep copy safe to hand to callers outside the session lock.
func (s *PlayerState) Clone() PlayerState {
	out := *s
	out.Dev.Apps = append([]Item(nil), s.Dev.Apps...)
	out.Byte.Tools = append([]Item(nil), s.Byte.Tools...)
	out.TaskLedger = make(map[string]time.Time, len(s.TaskLedger))
	for k, v := range s.TaskLedger {
		out.TaskLedger[k] = v
	}
	return out
}

// ─── Tier ───────────────────────────────────────────────────────────────────

// TierForOwned derives the catalog unlock tier from the number of items
// owned: one tier per two items, floor 1, cap 5. Identical for both factions.
func TierForOwned(owned int) int {
	if owned <= 0 {
		return 1
	}
	tier := int(math.Ceil(float64(owned) / 2))
	if tier < 1 {
		tier = 1
	}
	if tier > 5 {
		tier = 5
	}
	return tier
}
