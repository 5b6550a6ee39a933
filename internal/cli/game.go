package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbyte-game/devbyte/internal/daemon"
	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/game"
	"github.com/devbyte-game/devbyte/internal/infra/sqlite"
)

// ─── Offline Game Commands ──────────────────────────────────────────────────
// status, reset, and topup operate on the save file directly. They are for
// use when the daemon is not running; a running daemon owns the save and
// these commands refuse to guess about concurrent writers.

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(topupCmd)

	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// openSession restores a session from the configured save file.
func openSession() (*game.Session, *sqlite.DB, error) {
	if _, err := daemon.EnsureHome(); err != nil {
		return nil, nil, err
	}
	cfg, err := daemon.LoadFromHome()
	if err != nil {
		return nil, nil, err
	}
	db, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	session, _, err := game.Resume(game.Options{
		Store:      db,
		CaseStore:  db,
		DailyReset: cfg.Game.DailyReset,
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}
	return session, db, nil
}

// ─── status ─────────────────────────────────────────────────────────────────

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a summary of the saved game",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	session, db, err := openSession()
	if err != nil {
		return err
	}
	defer db.Close()

	state := session.State()
	if state.Faction == domain.FactionNone {
		fmt.Fprintln(os.Stdout, "No faction selected yet. Start the daemon and pick a side.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Faction:        %s\n", state.Faction)
	fmt.Fprintf(os.Stdout, "Balance:        $%.2f\n", state.Balance)
	fmt.Fprintf(os.Stdout, "Passive income: $%.2f/hr\n", state.PassiveIncome)
	fmt.Fprintf(os.Stdout, "Items owned:    %d (tier %d)\n",
		len(state.Inventory()), domain.TierForOwned(len(state.Inventory())))

	switch state.Faction {
	case domain.FactionDev:
		fmt.Fprintf(os.Stdout, "Apps created:   %d\n", state.Dev.Stats.AppsCreated)
		fmt.Fprintf(os.Stdout, "Security level: %d/%d\n", state.Dev.Stats.SecurityLevel, domain.MaxSecurityLevel)
		fmt.Fprintf(os.Stdout, "Cases won:      %d\n", state.Dev.Stats.CourtCasesWon)
	case domain.FactionByte:
		fmt.Fprintf(os.Stdout, "Tools created:  %d\n", state.Byte.Stats.SoftwareCreated)
		fmt.Fprintf(os.Stdout, "Systems hacked: %d\n", state.Byte.Stats.SystemsHacked)
	}
	fmt.Fprintf(os.Stdout, "Operations:     %d\n", state.OperationsCompleted())
	return nil
}

// ─── reset ──────────────────────────────────────────────────────────────────

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the saved game and start over",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprint(os.Stdout, "This wipes your balance, inventory, and history. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	session, db, err := openSession()
	if err != nil {
		return err
	}
	defer db.Close()

	session.Reset()
	fmt.Fprintln(os.Stdout, "Game reset. Pick a faction on next launch.")
	return nil
}

// ─── topup ──────────────────────────────────────────────────────────────────

var topupCmd = &cobra.Command{
	Use:   "topup",
	Short: "Credit the fixed balance top-up",
	RunE:  runTopUp,
}

func runTopUp(cmd *cobra.Command, args []string) error {
	session, db, err := openSession()
	if err != nil {
		return err
	}
	defer db.Close()

	balance := session.TopUp()
	fmt.Fprintf(os.Stdout, "Balance topped up by $%d. New balance: $%.2f\n", game.TopUpAmount, balance)
	return nil
}
