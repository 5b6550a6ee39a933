package game

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/catalog"
	"github.com/devbyte-game/devbyte/internal/infra/observability"
)

// ─── Action Resolver ────────────────────────────────────────────────────────
// Hacks and court cases share the same shape: pay an up-front cost, sample
// a random outcome, credit a magnitude-scaled reward on success. Outcomes
// are decided at the instant of resolution; any progress animation layered
// on top is pure pacing and is reported via the Duration fields.

// ─── Hack Attempts ──────────────────────────────────────────────────────────

// ResolveHack attempts to hack a known target. The cost (security × 10) is
// paid win or lose. Success odds fall with security, floored at 5%; a
// successful hack steals a uniform 10–30% of the target's balance,
// floored to whole currency.
func (s *Session) ResolveHack(targetName string) (domain.HackOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Faction != domain.FactionByte {
		return domain.HackOutcome{}, domain.ErrNoFaction
	}

	target := catalog.LookupTarget(targetName)
	if target == nil {
		return domain.HackOutcome{}, fmt.Errorf("hack target %q: %w", targetName, domain.ErrUnknownItem)
	}

	cost := target.HackCost()
	if s.state.Balance < cost {
		s.notifyLocked("Insufficient Funds", "You cannot afford this hack attempt.")
		return domain.HackOutcome{}, domain.ErrInsufficientFunds
	}

	// Paid regardless of outcome.
	s.state.Balance -= cost

	success := s.rng.Float64() <= target.SuccessProbability()
	outcome := domain.HackOutcome{
		Target:   target.Name,
		Success:  success,
		Cost:     cost,
		Duration: target.HackDuration(),
	}

	if success {
		stealFraction := 0.10 + s.rng.Float64()*0.20
		outcome.StolenAmount = floorAmount(target.Balance * stealFraction)
		s.state.Balance += outcome.StolenAmount
		s.state.Byte.Stats.SystemsHacked++
		s.state.Byte.Stats.AppsHacked++
		s.state.Byte.Stats.OperationsCompleted++
		s.notifyLocked("Hack Successful", fmt.Sprintf("You hacked %s and stole $%.0f!", target.Name, outcome.StolenAmount))
	} else {
		s.notifyLocked("Hack Failed", fmt.Sprintf("%s repelled your attack. The attempt cost $%.0f.", target.Name, cost))
	}

	s.persistLocked()
	observability.HacksResolved.WithLabelValues(hackResultLabel(success)).Inc()
	return outcome, nil
}

func hackResultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// ─── Court Cases ────────────────────────────────────────────────────────────

// RecordHackAgainst registers that a hacker stole from the player and opens
// a pending court case the player may later choose to file.
func (s *Session) RecordHackAgainst(opponentName string, stolenAmount float64) domain.CourtCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openCaseLocked(opponentName, stolenAmount)
}

// FileCase opens a pending case manually, without a recorded hack event.
func (s *Session) FileCase(opponentName string, disputedAmount float64) (domain.CourtCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Faction != domain.FactionDev {
		return domain.CourtCase{}, domain.ErrNoFaction
	}
	return s.openCaseLocked(opponentName, disputedAmount), nil
}

func (s *Session) openCaseLocked(opponentName string, amount float64) domain.CourtCase {
	c := domain.CourtCase{
		ID:           uuid.NewString(),
		OpponentName: opponentName,
		StolenAmount: amount,
		FiledAt:      s.clk.Now(),
		Status:       domain.CasePending,
	}
	s.cases = append(s.cases, c)
	s.saveCaseLocked(c)
	return c
}

// Cases returns the case list, newest first. Terminal cases form the
// immutable history; pending cases are actionable.
func (s *Session) Cases() []domain.CourtCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]domain.CourtCase(nil), s.cases...)
	sort.Slice(out, func(i, j int) bool { return out[i].FiledAt.After(out[j].FiledAt) })
	return out
}

// ResolveCase takes a pending case through filing and ruling in one step.
// The filing fee (20% of the disputed amount) is deducted up front; the
// court rules for the player with fixed 80% probability, recovering a
// uniform 75–90% of the amount when won. The operations counter advances
// win or lose; the terminal state is immutable afterward.
func (s *Session) ResolveCase(caseID string) (domain.CourtOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.cases {
		if s.cases[i].ID == caseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.CourtOutcome{}, domain.ErrUnknownCase
	}
	c := &s.cases[idx]
	if c.Status.Terminal() {
		return domain.CourtOutcome{}, domain.ErrCaseResolved
	}

	fee := c.FilingCost()
	if s.state.Balance < fee {
		s.notifyLocked("Insufficient Funds", fmt.Sprintf("You need $%.0f to file this court case.", fee))
		return domain.CourtOutcome{}, domain.ErrInsufficientFunds
	}

	s.state.Balance -= fee
	c.Status = domain.CaseInProgress

	won := s.rng.Float64() < 0.80
	if won {
		recoveryFraction := 0.75 + s.rng.Float64()*0.15
		c.RecoveredAmount = math.Round(c.StolenAmount * recoveryFraction)
		s.state.Balance += c.RecoveredAmount
		s.state.Dev.Stats.CourtCasesWon++
		c.Status = domain.CaseWon
		s.notifyLocked("Court Case Won!",
			fmt.Sprintf("You won against %s and recovered $%.0f of the stolen $%.0f.",
				c.OpponentName, c.RecoveredAmount, c.StolenAmount))
	} else {
		c.RecoveredAmount = 0
		c.Status = domain.CaseLost
		s.notifyLocked("Court Case Lost",
			fmt.Sprintf("The court ruled against you in the case against %s.", c.OpponentName))
	}
	s.state.Dev.Stats.OperationsCompleted++

	s.persistLocked()
	s.saveCaseLocked(*c)
	observability.CasesResolved.WithLabelValues(caseResultLabel(won)).Inc()

	return domain.CourtOutcome{
		CaseID:          c.ID,
		Won:             won,
		FilingCost:      fee,
		RecoveredAmount: c.RecoveredAmount,
	}, nil
}

func caseResultLabel(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

// saveCaseLocked upserts a case record; failures are logged by the store
// layer and never roll back the ruling.
func (s *Session) saveCaseLocked(c domain.CourtCase) {
	if s.caseStore == nil {
		return
	}
	if err := s.caseStore.SaveCase(c); err != nil {
		log.Printf("[session] case %s persist failed: %v", c.ID, err)
	}
}
