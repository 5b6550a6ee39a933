package domain

import (
	"math"
	"time"
)

// ─── Catalog Types ──────────────────────────────────────────────────────────

// CatalogItem is a purchasable app or tool from the static catalog.
type CatalogItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	Income        float64 `json:"income"`         // currency per hour once owned
	RequiredLevel int     `json:"required_level"` // unlock tier, 1–5
	HackBoost     float64 `json:"hack_boost,omitempty"`
}

// ─── Task Types ─────────────────────────────────────────────────────────────

// TaskBucket groups tasks by cadence.
type TaskBucket string

const (
	TaskDaily     TaskBucket = "daily"
	TaskLimited   TaskBucket = "limited"
	TaskMilestone TaskBucket = "milestone"
)

// Task is a statically defined objective with a flat reward.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Reward      float64    `json:"reward"`
	Bucket      TaskBucket `json:"bucket"`
	Faction     Faction    `json:"faction"` // FactionNone means common to both
}

// ─── Hack Types ─────────────────────────────────────────────────────────────

// HackTarget is an attackable system with a security rating.
type HackTarget struct {
	Name     string  `json:"name"`
	Owner    string  `json:"owner"`
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Security int     `json:"security"` // 1–5, drives cost and success odds
}

// HackCost is what an attempt against the target costs, paid win or lose.
func (t HackTarget) HackCost() float64 {
	return float64(t.Security) * 10
}

// SuccessProbability decreases with security, floored at 5%.
func (t HackTarget) SuccessProbability() float64 {
	p := 1 - float64(t.Security)*0.15
	if p < 0.05 {
		p = 0.05
	}
	return p
}

// HackDuration is the pacing delay for the attempt presentation.
// It has no bearing on the outcome, which is decided up front.
func (t HackTarget) HackDuration() time.Duration {
	sec := t.Security
	if sec < 1 {
		sec = 1
	}
	if sec > 5 {
		sec = 5
	}
	return time.Duration(sec) * time.Second
}

// HackOutcome describes a resolved hack attempt.
type HackOutcome struct {
	Target       string        `json:"target"`
	Success      bool          `json:"success"`
	Cost         float64       `json:"cost"`
	StolenAmount float64       `json:"stolen_amount"`
	Duration     time.Duration `json:"duration"`
}

// ─── Court Types ────────────────────────────────────────────────────────────

// CaseStatus is the court case lifecycle state.
type CaseStatus string

const (
	CasePending    CaseStatus = "pending"
	CaseInProgress CaseStatus = "in_progress"
	CaseWon        CaseStatus = "won"
	CaseLost       CaseStatus = "lost"
)

// Terminal reports whether the status is final and immutable.
func (s CaseStatus) Terminal() bool {
	return s == CaseWon || s == CaseLost
}

// CourtCase tracks a legal dispute over a stolen amount.
// Transitions pending → in_progress → won|lost exactly once.
type CourtCase struct {
	ID              string     `json:"id"`
	OpponentName    string     `json:"opponent_name"`
	StolenAmount    float64    `json:"stolen_amount"`
	FiledAt         time.Time  `json:"filed_at"`
	Status          CaseStatus `json:"status"`
	RecoveredAmount float64    `json:"recovered_amount"`
}

// FilingCost is 20% of the disputed amount, rounded.
func (c CourtCase) FilingCost() float64 {
	return math.Round(c.StolenAmount * 0.20)
}

// CaseDuration is the pacing delay for the court presentation, scaled by
// the disputed amount and bounded to [5s, 15s].
func (c CourtCase) CaseDuration() time.Duration {
	ms := c.StolenAmount / 100 * 1000
	if ms < 5000 {
		ms = 5000
	}
	if ms > 15000 {
		ms = 15000
	}
	return time.Duration(ms) * time.Millisecond
}

// CourtOutcome describes a resolved court case.
type CourtOutcome struct {
	CaseID          string  `json:"case_id"`
	Won             bool    `json:"won"`
	FilingCost      float64 `json:"filing_cost"`
	RecoveredAmount float64 `json:"recovered_amount"`
}

// ─── Build Types ────────────────────────────────────────────────────────────

// BuildResult describes a completed build for the caller to present.
type BuildResult struct {
	Item          Item    `json:"item"`
	PassiveIncome float64 `json:"passive_income"` // new total rate
}
