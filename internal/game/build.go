package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/catalog"
	"github.com/devbyte-game/devbyte/internal/infra/observability"
)

// ─── Build Engine ───────────────────────────────────────────────────────────
// A build converts currency into a permanent income source over a fixed,
// price-scaled duration. Cost is paid up front and is NOT refunded on
// cancellation. At most one build is in flight per session.

// BuildKind distinguishes catalog purchases from security upgrades.
type BuildKind string

const (
	BuildItem     BuildKind = "item"
	BuildSecurity BuildKind = "security"
)

// Build is an in-flight timed purchase. Owned by the session; callers see
// BuildStatus snapshots only.
type Build struct {
	ID        string
	Kind      BuildKind
	ItemID    string
	Name      string
	Cost      float64
	income    float64
	StartedAt time.Time
	Duration  time.Duration
}

// BuildStatus is a point-in-time view of the current build.
type BuildStatus struct {
	ID        string              `json:"id"`
	Kind      BuildKind           `json:"kind"`
	ItemID    string              `json:"item_id,omitempty"`
	Name      string              `json:"name"`
	Cost      float64             `json:"cost"`
	Progress  int                 `json:"progress"` // 0-100
	StartedAt time.Time           `json:"started_at"`
	Duration  time.Duration       `json:"duration"`
	Completed bool                `json:"completed"`
	Result    *domain.BuildResult `json:"result,omitempty"`
}

// buildDuration scales linearly with price, bounded to [2s, 10s].
func buildDuration(cost float64) time.Duration {
	return clampMs(cost/100*1000, 2000, 10000)
}

// securityUpgradeDuration scales with the current level, bounded to [3s, 10s].
func securityUpgradeDuration(level int) time.Duration {
	return clampMs(float64(level)*1500, 3000, 10000)
}

// BeginBuild starts developing a catalog item. The cost is deducted
// immediately; the item and its income are granted only on completion.
func (s *Session) BeginBuild(itemID string) (BuildStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Faction == domain.FactionNone {
		return BuildStatus{}, domain.ErrNoFaction
	}
	if s.build != nil {
		return BuildStatus{}, domain.ErrBuildInFlight
	}

	var item *domain.CatalogItem
	for _, candidate := range catalog.ItemsFor(s.state.Faction) {
		if candidate.ID == itemID {
			c := candidate
			item = &c
			break
		}
	}
	if item == nil {
		return BuildStatus{}, domain.ErrUnknownItem
	}

	owned := len(s.state.Inventory())
	if item.RequiredLevel > domain.TierForOwned(owned) {
		return BuildStatus{}, domain.ErrItemLocked
	}
	if s.state.Balance < item.Cost {
		s.notifyLocked("Insufficient Funds", "You cannot afford "+item.Name+".")
		return BuildStatus{}, domain.ErrInsufficientFunds
	}

	// Pay up front. Cancellation forfeits this.
	s.state.Balance -= item.Cost
	s.build = &Build{
		ID:        uuid.NewString(),
		Kind:      BuildItem,
		ItemID:    item.ID,
		Name:      item.Name,
		Cost:      item.Cost,
		income:    item.Income,
		StartedAt: s.clk.Now(),
		Duration:  buildDuration(item.Cost),
	}
	s.persistLocked()
	observability.BuildsStarted.Inc()
	return s.buildStatusLocked(s.clk.Now()), nil
}

// BeginSecurityUpgrade starts a timed security level upgrade (dev only).
func (s *Session) BeginSecurityUpgrade() (BuildStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Faction != domain.FactionDev {
		return BuildStatus{}, domain.ErrNoFaction
	}
	if s.build != nil {
		return BuildStatus{}, domain.ErrBuildInFlight
	}

	level := s.state.Dev.Stats.SecurityLevel
	if level >= domain.MaxSecurityLevel {
		return BuildStatus{}, domain.ErrSecurityMaxed
	}

	cost := catalog.SecurityUpgradeCost(level)
	if s.state.Balance < cost {
		s.notifyLocked("Insufficient Funds", "You cannot afford this security upgrade.")
		return BuildStatus{}, domain.ErrInsufficientFunds
	}

	s.state.Balance -= cost
	s.build = &Build{
		ID:        uuid.NewString(),
		Kind:      BuildSecurity,
		Name:      "Security Upgrade",
		Cost:      cost,
		StartedAt: s.clk.Now(),
		Duration:  securityUpgradeDuration(level),
	}
	s.persistLocked()
	observability.BuildsStarted.Inc()
	return s.buildStatusLocked(s.clk.Now()), nil
}

// CurrentBuild reports progress of the in-flight build. When the build's
// duration has elapsed it completes here, exactly once: the item joins the
// inventory, the income rate rises, and counters advance.
func (s *Session) CurrentBuild() (BuildStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.build == nil {
		return BuildStatus{}, domain.ErrNoActiveBuild
	}

	now := s.clk.Now()
	status := s.buildStatusLocked(now)
	if now.Sub(s.build.StartedAt) >= s.build.Duration {
		result := s.completeBuildLocked()
		status.Progress = 100
		status.Completed = true
		status.Result = &result
	}
	return status, nil
}

// CancelBuild discards the in-flight build. The already-deducted cost is
// not reversed; cancelling forfeits it.
func (s *Session) CancelBuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.build == nil {
		return domain.ErrNoActiveBuild
	}
	s.build = nil
	s.persistLocked()
	observability.BuildsCancelled.Inc()
	return nil
}

// buildStatusLocked snapshots the current build at the given instant.
// Progress is monotone in elapsed time and capped at 99 until completion
// fires, so 100 is observed exactly once.
func (s *Session) buildStatusLocked(now time.Time) BuildStatus {
	b := s.build
	elapsed := now.Sub(b.StartedAt)
	pct := int(float64(elapsed) / float64(b.Duration) * 100)
	if pct < 0 {
		pct = 0
	}
	if pct > 99 {
		pct = 99
	}
	return BuildStatus{
		ID:        b.ID,
		Kind:      b.Kind,
		ItemID:    b.ItemID,
		Name:      b.Name,
		Cost:      b.Cost,
		Progress:  pct,
		StartedAt: b.StartedAt,
		Duration:  b.Duration,
	}
}

// completeBuildLocked grants the build's effect and clears it.
func (s *Session) completeBuildLocked() domain.BuildResult {
	b := s.build
	s.build = nil

	var result domain.BuildResult
	switch b.Kind {
	case BuildItem:
		item := domain.Item{Name: b.Name, Income: b.income}
		s.state.AddItem(item)
		switch s.state.Faction {
		case domain.FactionDev:
			s.state.Dev.Stats.AppsCreated++
			s.state.Dev.Stats.OperationsCompleted++
		case domain.FactionByte:
			s.state.Byte.Stats.SoftwareCreated++
			s.state.Byte.Stats.OperationsCompleted++
		}
		result = domain.BuildResult{Item: item, PassiveIncome: s.state.PassiveIncome}
		s.notifyLocked("Development Complete", b.Name+" is now earning for you.")
	case BuildSecurity:
		s.state.Dev.Stats.SecurityLevel++
		s.state.Dev.Stats.OperationsCompleted++
		result = domain.BuildResult{PassiveIncome: s.state.PassiveIncome}
		s.notifyLocked("Security Upgraded", "Your apps are now better protected against hackers.")
	}

	s.persistLocked()
	observability.BuildsCompleted.Inc()
	return result
}
