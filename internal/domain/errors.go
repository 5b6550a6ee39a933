package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency.

var (
	// Economy errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Faction errors
	ErrFactionAlreadySet = errors.New("faction already selected, full reset required")
	ErrInvalidFaction    = errors.New("invalid faction")
	ErrNoFaction         = errors.New("no faction selected")

	// Build errors
	ErrBuildInFlight = errors.New("another build is already in progress")
	ErrNoActiveBuild = errors.New("no build in progress")
	ErrItemLocked    = errors.New("item requires a higher tier")
	ErrSecurityMaxed = errors.New("security is already at the maximum level")
	ErrUnknownItem   = errors.New("item not found in catalog")

	// Task errors
	ErrUnknownTask      = errors.New("task not found")
	ErrTaskNotForYou    = errors.New("task belongs to the other faction")
	ErrAlreadyCompleted = errors.New("task already completed")

	// Court errors
	ErrUnknownCase  = errors.New("court case not found")
	ErrCaseResolved = errors.New("court case already resolved")
)
