package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/catalog"
)

// ─── State & Lifecycle ──────────────────────────────────────────────────────

// handleState returns the player aggregate plus derived read-model fields.
// GET /api/state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.session.State()
	tier := domain.TierForOwned(len(state.Inventory()))

	resp := map[string]interface{}{
		"state": state,
		"tier":  tier,
	}
	if state.Faction == domain.FactionDev {
		level := state.Dev.Stats.SecurityLevel
		resp["security_description"] = catalog.SecurityDescriptions[level]
		if level < domain.MaxSecurityLevel {
			resp["security_upgrade_cost"] = catalog.SecurityUpgradeCost(level)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSettle materializes passive earnings accrued since the last call.
// POST /api/settle
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	earned := s.session.Settle()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"earned":  earned,
		"balance": s.session.State().Balance,
	})
}

// handleSelectFaction assigns the player's side.
// POST /api/faction {"faction": "dev"|"byte"}
func (s *Server) handleSelectFaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Faction domain.Faction `json:"faction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.session.SelectFaction(req.Faction); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": s.session.State(),
	})
}

// handleReset wipes the aggregate back to the faction-selection screen.
// POST /api/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "reset",
	})
}

// handleTopUp credits the fixed purchase amount.
// POST /api/topup
func (s *Server) handleTopUp(w http.ResponseWriter, r *http.Request) {
	balance := s.session.TopUp()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance": balance,
	})
}

// ─── Catalog ────────────────────────────────────────────────────────────────

// catalogEntry is a catalog item annotated with the caller's unlock state.
type catalogEntry struct {
	domain.CatalogItem
	Unlocked bool `json:"unlocked"`
}

func (s *Server) writeCatalog(w http.ResponseWriter, items []domain.CatalogItem) {
	state := s.session.State()
	tier := domain.TierForOwned(len(state.Inventory()))

	out := make([]catalogEntry, 0, len(items))
	for _, item := range items {
		out = append(out, catalogEntry{
			CatalogItem: item,
			Unlocked:    item.RequiredLevel <= tier,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": out,
		"tier":  tier,
	})
}

// handleCatalogApps returns the dev catalog with unlock flags.
// GET /api/catalog/apps
func (s *Server) handleCatalogApps(w http.ResponseWriter, r *http.Request) {
	s.writeCatalog(w, catalog.DevApps)
}

// handleCatalogTools returns the byte catalog with unlock flags.
// GET /api/catalog/tools
func (s *Server) handleCatalogTools(w http.ResponseWriter, r *http.Request) {
	s.writeCatalog(w, catalog.ByteTools)
}

// targetEntry is a hack target annotated with attempt economics.
type targetEntry struct {
	domain.HackTarget
	HackCost    float64 `json:"hack_cost"`
	SuccessOdds float64 `json:"success_odds"`
}

// handleCatalogTargets returns the attackable systems.
// GET /api/catalog/targets
func (s *Server) handleCatalogTargets(w http.ResponseWriter, r *http.Request) {
	targets := catalog.HackTargets()
	out := make([]targetEntry, 0, len(targets))
	for _, t := range targets {
		out = append(out, targetEntry{
			HackTarget:  t,
			HackCost:    t.HackCost(),
			SuccessOdds: t.SuccessProbability(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"targets": out,
	})
}

// ─── Builds ─────────────────────────────────────────────────────────────────

// handleBeginBuild starts developing a catalog item.
// POST /api/builds {"item_id": "app-2"}
func (s *Server) handleBeginBuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := s.session.BeginBuild(req.ItemID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

// handleCurrentBuild reports (and may complete) the in-flight build.
// GET /api/builds/current
func (s *Server) handleCurrentBuild(w http.ResponseWriter, r *http.Request) {
	status, err := s.session.CurrentBuild()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleCancelBuild discards the in-flight build without a refund.
// POST /api/builds/cancel
func (s *Server) handleCancelBuild(w http.ResponseWriter, r *http.Request) {
	if err := s.session.CancelBuild(); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "cancelled",
	})
}

// handleSecurityUpgrade starts a timed security level upgrade.
// POST /api/security/upgrade
func (s *Server) handleSecurityUpgrade(w http.ResponseWriter, r *http.Request) {
	status, err := s.session.BeginSecurityUpgrade()
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

// ─── Hacks ──────────────────────────────────────────────────────────────────

// handleResolveHack attempts a hack against a named target.
// POST /api/hacks {"target": "Banking Portal"}
func (s *Server) handleResolveHack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	outcome, err := s.session.ResolveHack(req.Target)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// ─── Court Cases ────────────────────────────────────────────────────────────

// handleListCases returns the case list, newest first.
// GET /api/cases
func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cases": s.session.Cases(),
	})
}

// handleFileCase opens a pending case against a named opponent.
// POST /api/cases {"opponent_name": "@darkbyte", "amount": 500}
func (s *Server) handleFileCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OpponentName string  `json:"opponent_name"`
		Amount       float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OpponentName == "" || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "opponent_name and a positive amount are required")
		return
	}
	c, err := s.session.FileCase(req.OpponentName, req.Amount)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleResolveCase takes a pending case through filing and ruling.
// POST /api/cases/{id}/resolve
func (s *Server) handleResolveCase(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.session.ResolveCase(chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

// handleListTasks returns the active faction's tasks with completion state.
// GET /api/tasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": s.session.ListTasks(),
	})
}

// handleCompleteTask grants a task's reward.
// POST /api/tasks/{id}/complete
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	reward, err := s.session.CompleteTask(chi.URLParam(r, "id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reward":  reward,
		"balance": s.session.State().Balance,
	})
}

// ─── Leaderboard ────────────────────────────────────────────────────────────

// handleLeaderboard returns a faction's leaderboard.
// GET /api/leaderboard?faction=dev|byte (defaults to the player's faction)
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard not available")
		return
	}

	faction := domain.Faction(r.URL.Query().Get("faction"))
	if faction == domain.FactionNone {
		faction = s.session.State().Faction
	}
	if !faction.Valid() {
		writeError(w, http.StatusBadRequest, "faction query parameter required")
		return
	}

	entries, err := s.db.Leaderboard(faction)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"faction": faction,
		"entries": entries,
	})
}
