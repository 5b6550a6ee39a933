package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/catalog"
)

// playerRecord is the blob name for the single-player save.
const playerRecord = "player"

// ─── Player State Blob ──────────────────────────────────────────────────────

// SavePlayerState upserts the aggregate as a JSON blob. Numeric precision
// survives the round-trip within standard float64 limits.
func (db *DB) SavePlayerState(state domain.PlayerState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal player state: %w", err)
	}
	_, err = db.db.Exec(`
		INSERT INTO player_state (name, state_json, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			state_json = excluded.state_json,
			updated_at = datetime('now')
	`, playerRecord, string(blob))
	return err
}

// LoadPlayerState returns the saved aggregate, or nil when no save exists.
func (db *DB) LoadPlayerState() (*domain.PlayerState, error) {
	var blob string
	err := db.db.QueryRow(`
		SELECT state_json FROM player_state WHERE name = ?
	`, playerRecord).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state domain.PlayerState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("unmarshal player state: %w", err)
	}
	return &state, nil
}

// ─── Court Cases ────────────────────────────────────────────────────────────

// SaveCase upserts a court case record.
func (db *DB) SaveCase(c domain.CourtCase) error {
	_, err := db.db.Exec(`
		INSERT INTO court_cases (id, opponent_name, stolen_amount, filed_at, status, recovered_amount)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status           = excluded.status,
			recovered_amount = excluded.recovered_amount
	`, c.ID, c.OpponentName, c.StolenAmount, c.FiledAt.Format(time.RFC3339), string(c.Status), c.RecoveredAmount)
	return err
}

// ListCases returns all case records, newest filing first.
func (db *DB) ListCases() ([]domain.CourtCase, error) {
	rows, err := db.db.Query(`
		SELECT id, opponent_name, stolen_amount, filed_at, status, recovered_amount
		FROM court_cases ORDER BY filed_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CourtCase
	for rows.Next() {
		var c domain.CourtCase
		var filedStr, statusStr string
		if err := rows.Scan(&c.ID, &c.OpponentName, &c.StolenAmount, &filedStr, &statusStr, &c.RecoveredAmount); err != nil {
			return nil, err
		}
		c.FiledAt, _ = time.Parse(time.RFC3339, filedStr)
		c.Status = domain.CaseStatus(statusStr)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ─── Leaderboard ────────────────────────────────────────────────────────────

// SeedLeaderboard inserts the static leaderboard entries, ignoring rows
// already present.
func (db *DB) SeedLeaderboard() error {
	seed := func(faction domain.Faction, entries []catalog.LeaderboardEntry) error {
		for _, e := range entries {
			_, err := db.db.Exec(`
				INSERT OR IGNORE INTO leaderboard (faction, name, points, income)
				VALUES (?, ?, ?, ?)
			`, string(faction), e.Name, e.Points, e.Income)
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := seed(domain.FactionDev, catalog.DevLeaders); err != nil {
		return err
	}
	return seed(domain.FactionByte, catalog.ByteLeaders)
}

// Leaderboard returns a faction's entries, highest points first.
func (db *DB) Leaderboard(faction domain.Faction) ([]catalog.LeaderboardEntry, error) {
	rows, err := db.db.Query(`
		SELECT name, points, income FROM leaderboard
		WHERE faction = ? ORDER BY points DESC
	`, string(faction))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.LeaderboardEntry
	for rows.Next() {
		var e catalog.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Points, &e.Income); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
