package domain

import "time"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the game layer depends on them.

// Clock abstracts time so accrual and build timing are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Rand abstracts the random source behind hack and court outcomes.
// Tests supply fixed sequences; production uses math/rand.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// Notifier receives user-facing events: build completions, hack results,
// court rulings, declined actions. The core functions correctly even if
// the sink is a no-op; a failing sink never aborts a completed mutation.
type Notifier interface {
	Notify(title, message string)
}

// HostShell is the optional messaging-app integration surface. Its absence
// degrades notification rendering only; core computations are unaffected.
type HostShell interface {
	// Ready signals the shell that the session is initialized.
	Ready()
	// ShowPopup displays a native popup. May fail in hostile embeddings;
	// callers recover and fall back to a plain notification.
	ShowPopup(title, message string)
	// Confirm asks a yes/no question and reports the answer.
	Confirm(message string) bool
}

// StateStore persists the aggregate as an opaque blob between sessions.
// Last-writer-wins; exactly-once semantics are not required.
type StateStore interface {
	SavePlayerState(state PlayerState) error
	LoadPlayerState() (*PlayerState, error) // nil, nil when no save exists
}

// CaseStore persists court case records. Terminal cases are immutable;
// SaveCase upserts by case ID.
type CaseStore interface {
	SaveCase(c CourtCase) error
	ListCases() ([]CourtCase, error)
}
