package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/game"
	"github.com/devbyte-game/devbyte/internal/infra/sqlite"
)

// ─── Test Harness ───────────────────────────────────────────────────────────

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testRand replays fixed draws, repeating the last one.
type testRand struct {
	values []float64
	idx    int
}

func (r *testRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx]
	if r.idx < len(r.values)-1 {
		r.idx++
	}
	return v
}

type testServer struct {
	ts      *httptest.Server
	clock   *testClock
	session *game.Session
}

func newTestServer(t *testing.T, rng *testRand) *testServer {
	t.Helper()

	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	session := game.NewSession(game.Options{Clock: clock, Rand: rng})

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.SeedLeaderboard(); err != nil {
		t.Fatalf("seed leaderboard: %v", err)
	}

	srv := NewServer(session, db)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, clock: clock, session: session}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, ts.ts.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp, fields
}

func unmarshalField[T any](t *testing.T, fields map[string]json.RawMessage, key string) T {
	t.Helper()
	var v T
	raw, ok := fields[key]
	if !ok {
		t.Fatalf("response missing %q field", key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %q: %v", key, err)
	}
	return v
}

// ─── Lifecycle Routes ───────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &testRand{})

	resp, fields := ts.do(t, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := unmarshalField[string](t, fields, "status"); got != "ok" {
		t.Errorf("status field = %q, want ok", got)
	}
}

func TestFactionSelection(t *testing.T) {
	ts := newTestServer(t, &testRand{})

	resp, _ := ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select dev status = %d, want 200", resp.StatusCode)
	}

	// Re-selection conflicts.
	resp, _ = ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "byte"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("re-selection status = %d, want 409", resp.StatusCode)
	}

	// Invalid faction is a bad request.
	ts2 := newTestServer(t, &testRand{})
	resp, _ = ts2.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "wizard"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid faction status = %d, want 400", resp.StatusCode)
	}
}

func TestStateAndSettle(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})

	// Starter item earns 1/hr; half an hour accrues 0.5.
	ts.clock.Advance(30 * time.Minute)
	resp, fields := ts.do(t, http.MethodPost, "/api/settle", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settle status = %d, want 200", resp.StatusCode)
	}
	if earned := unmarshalField[float64](t, fields, "earned"); earned < 0.499 || earned > 0.501 {
		t.Errorf("earned = %v, want ~0.5", earned)
	}

	resp, fields = ts.do(t, http.MethodGet, "/api/state", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d, want 200", resp.StatusCode)
	}
	state := unmarshalField[domain.PlayerState](t, fields, "state")
	if state.Faction != domain.FactionDev {
		t.Errorf("state faction = %s, want dev", state.Faction)
	}
	if state.PassiveIncome != 1 {
		t.Errorf("passive income = %v, want 1", state.PassiveIncome)
	}
	// Dev snapshots include the security read-model.
	if _, ok := fields["security_description"]; !ok {
		t.Error("dev state missing security_description")
	}
	if cost := unmarshalField[float64](t, fields, "security_upgrade_cost"); cost != 500 {
		t.Errorf("security_upgrade_cost = %v, want 500", cost)
	}
}

func TestTopUpAndReset(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "byte"})

	_, fields := ts.do(t, http.MethodPost, "/api/topup", nil)
	if balance := unmarshalField[float64](t, fields, "balance"); balance != game.TopUpAmount {
		t.Errorf("balance = %v, want %v", balance, game.TopUpAmount)
	}

	resp, _ := ts.do(t, http.MethodPost, "/api/reset", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", resp.StatusCode)
	}
	_, fields = ts.do(t, http.MethodGet, "/api/state", nil)
	state := unmarshalField[domain.PlayerState](t, fields, "state")
	if state.Faction != domain.FactionNone || state.Balance != 0 {
		t.Errorf("post-reset state = %+v, want zeroed", state)
	}
}

// ─── Catalog Routes ─────────────────────────────────────────────────────────

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})

	_, fields := ts.do(t, http.MethodGet, "/api/catalog/apps", nil)
	apps := unmarshalField[[]catalogEntry](t, fields, "items")
	if len(apps) != 8 {
		t.Fatalf("apps = %d entries, want 8", len(apps))
	}
	// One starter item: still tier 1, so tier-2 apps stay locked.
	if !apps[0].Unlocked {
		t.Error("tier-1 app should be unlocked")
	}
	if apps[3].Unlocked {
		t.Errorf("tier-2 app unlocked at tier 1: %+v", apps[3])
	}

	_, fields = ts.do(t, http.MethodGet, "/api/catalog/tools", nil)
	if tools := unmarshalField[[]catalogEntry](t, fields, "items"); len(tools) != 8 {
		t.Errorf("tools = %d entries, want 8", len(tools))
	}

	_, fields = ts.do(t, http.MethodGet, "/api/catalog/targets", nil)
	targets := unmarshalField[[]targetEntry](t, fields, "targets")
	if len(targets) != 10 {
		t.Fatalf("targets = %d entries, want 10", len(targets))
	}
	for _, target := range targets {
		if target.HackCost != float64(target.Security)*10 {
			t.Errorf("%s hack_cost = %v, want %v", target.Name, target.HackCost, float64(target.Security)*10)
		}
	}
}

// ─── Build Routes ───────────────────────────────────────────────────────────

func TestBuildLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})
	ts.do(t, http.MethodPost, "/api/topup", nil)

	resp, fields := ts.do(t, http.MethodPost, "/api/builds", map[string]string{"item_id": "app-2"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("begin build status = %d, want 201", resp.StatusCode)
	}
	if name := unmarshalField[string](t, fields, "name"); name != "Mobile Calculator" {
		t.Errorf("build name = %q, want Mobile Calculator", name)
	}

	// A second build conflicts while the first is in flight.
	resp, _ = ts.do(t, http.MethodPost, "/api/builds", map[string]string{"item_id": "app-1"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second build status = %d, want 409", resp.StatusCode)
	}

	resp, fields = ts.do(t, http.MethodGet, "/api/builds/current", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("current build status = %d, want 200", resp.StatusCode)
	}
	if done := unmarshalField[bool](t, fields, "completed"); done {
		t.Error("build completed before its duration elapsed")
	}

	ts.clock.Advance(3 * time.Second)
	_, fields = ts.do(t, http.MethodGet, "/api/builds/current", nil)
	if done := unmarshalField[bool](t, fields, "completed"); !done {
		t.Error("build not completed after its duration")
	}

	// Completion cleared the slot.
	resp, _ = ts.do(t, http.MethodGet, "/api/builds/current", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("drained build slot status = %d, want 404", resp.StatusCode)
	}
}

func TestBuildErrorStatuses(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})

	// Balance is 0: can't afford a paid app.
	resp, _ := ts.do(t, http.MethodPost, "/api/builds", map[string]string{"item_id": "app-2"})
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Errorf("unaffordable build status = %d, want 402", resp.StatusCode)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/builds", map[string]string{"item_id": "app-99"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", resp.StatusCode)
	}

	// Tier-locked item conflicts.
	ts.do(t, http.MethodPost, "/api/topup", nil)
	resp, _ = ts.do(t, http.MethodPost, "/api/builds", map[string]string{"item_id": "app-4"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("locked item status = %d, want 409", resp.StatusCode)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/builds/cancel", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cancel with no build status = %d, want 404", resp.StatusCode)
	}
}

func TestSecurityUpgradeRoute(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})
	ts.do(t, http.MethodPost, "/api/topup", nil)

	resp, fields := ts.do(t, http.MethodPost, "/api/security/upgrade", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upgrade status = %d, want 201", resp.StatusCode)
	}
	if cost := unmarshalField[float64](t, fields, "cost"); cost != 500 {
		t.Errorf("upgrade cost = %v, want 500", cost)
	}
}

// ─── Hack Routes ────────────────────────────────────────────────────────────

func TestHackRoute(t *testing.T) {
	// First draw wins (0.1 <= 0.85), second scales the steal.
	ts := newTestServer(t, &testRand{values: []float64{0.1, 0.5}})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "byte"})
	ts.do(t, http.MethodPost, "/api/topup", nil)

	resp, fields := ts.do(t, http.MethodPost, "/api/hacks", map[string]string{"target": "Personal Blog"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hack status = %d, want 200", resp.StatusCode)
	}
	if ok := unmarshalField[bool](t, fields, "success"); !ok {
		t.Error("expected a successful hack")
	}
	// 20% of the blog's 150 balance, floored.
	if stolen := unmarshalField[float64](t, fields, "stolen_amount"); stolen != 30 {
		t.Errorf("stolen_amount = %v, want 30", stolen)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/hacks", map[string]string{"target": "Pentagon"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown target status = %d, want 404", resp.StatusCode)
	}
}

func TestHackRoute_DevForbidden(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})

	resp, _ := ts.do(t, http.MethodPost, "/api/hacks", map[string]string{"target": "Personal Blog"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("dev hack status = %d, want 400", resp.StatusCode)
	}
}

// ─── Case Routes ────────────────────────────────────────────────────────────

func TestCaseRoutes(t *testing.T) {
	// Ruling draw 0.5 wins, recovery draw 0.5.
	ts := newTestServer(t, &testRand{values: []float64{0.5, 0.5}})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "dev"})
	ts.do(t, http.MethodPost, "/api/topup", nil)

	resp, fields := ts.do(t, http.MethodPost, "/api/cases", map[string]interface{}{
		"opponent_name": "@darkbyte",
		"amount":        500,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("file case status = %d, want 201", resp.StatusCode)
	}
	caseID := unmarshalField[string](t, fields, "id")

	resp, fields = ts.do(t, http.MethodPost, "/api/cases/"+caseID+"/resolve", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve status = %d, want 200", resp.StatusCode)
	}
	if won := unmarshalField[bool](t, fields, "won"); !won {
		t.Error("expected a won case")
	}
	if recovered := unmarshalField[float64](t, fields, "recovered_amount"); recovered != 413 {
		t.Errorf("recovered_amount = %v, want 413", recovered)
	}

	// Terminal case conflicts on re-resolution.
	resp, _ = ts.do(t, http.MethodPost, "/api/cases/"+caseID+"/resolve", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("re-resolve status = %d, want 409", resp.StatusCode)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/cases/nope/resolve", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown case status = %d, want 404", resp.StatusCode)
	}

	_, fields = ts.do(t, http.MethodGet, "/api/cases", nil)
	cases := unmarshalField[[]domain.CourtCase](t, fields, "cases")
	if len(cases) != 1 || cases[0].Status != domain.CaseWon {
		t.Errorf("cases = %+v, want one won case", cases)
	}
}

// ─── Task Routes ────────────────────────────────────────────────────────────

func TestTaskRoutes(t *testing.T) {
	ts := newTestServer(t, &testRand{})
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "byte"})

	_, fields := ts.do(t, http.MethodGet, "/api/tasks", nil)
	tasks := unmarshalField[[]game.TaskView](t, fields, "tasks")
	if len(tasks) == 0 {
		t.Fatal("task listing is empty")
	}
	for _, task := range tasks {
		if task.Faction == domain.FactionDev {
			t.Errorf("byte listing leaked dev task %s", task.ID)
		}
	}

	resp, fields := ts.do(t, http.MethodPost, "/api/tasks/common_daily_1/complete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, want 200", resp.StatusCode)
	}
	if reward := unmarshalField[float64](t, fields, "reward"); reward != 10 {
		t.Errorf("reward = %v, want 10", reward)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/tasks/common_daily_1/complete", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("repeat completion status = %d, want 409", resp.StatusCode)
	}

	resp, _ = ts.do(t, http.MethodPost, "/api/tasks/no_such_task/complete", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown task status = %d, want 404", resp.StatusCode)
	}

	// Cross-faction completion is a bad request.
	resp, _ = ts.do(t, http.MethodPost, "/api/tasks/dev_daily_1/complete", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("cross-faction status = %d, want 400", resp.StatusCode)
	}
}

// ─── Leaderboard Route ──────────────────────────────────────────────────────

func TestLeaderboardRoute(t *testing.T) {
	ts := newTestServer(t, &testRand{})

	// No player faction and no query parameter.
	resp, _ := ts.do(t, http.MethodGet, "/api/leaderboard", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unscoped leaderboard status = %d, want 400", resp.StatusCode)
	}

	resp, fields := ts.do(t, http.MethodGet, "/api/leaderboard?faction=dev", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status = %d, want 200", resp.StatusCode)
	}
	entries := unmarshalField[[]struct {
		Name string `json:"name"`
	}](t, fields, "entries")
	if len(entries) != 7 || entries[0].Name != "TechWhiz" {
		t.Errorf("entries = %+v, want 7 led by TechWhiz", entries)
	}

	// Defaults to the player's faction once one is chosen.
	ts.do(t, http.MethodPost, "/api/faction", map[string]string{"faction": "byte"})
	_, fields = ts.do(t, http.MethodGet, "/api/leaderboard", nil)
	entries = unmarshalField[[]struct {
		Name string `json:"name"`
	}](t, fields, "entries")
	if len(entries) != 7 || entries[0].Name != "H4X0R" {
		t.Errorf("byte entries = %+v, want 7 led by H4X0R", entries)
	}
}
