package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbyte-game/devbyte/internal/api"
	"github.com/devbyte-game/devbyte/internal/daemon"
	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/game"
	"github.com/devbyte-game/devbyte/internal/infra/sqlite"
)

// settleInterval is how often the daemon settles passive income in the
// background so long-running sessions stay close to real time.
const settleInterval = 30 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game engine daemon",
	Long:  `Start the engine: restore the saved game, settle offline earnings, and serve the JSON API.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if _, err := daemon.EnsureHome(); err != nil {
		return err
	}
	cfg, err := daemon.LoadFromHome()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.SeedLeaderboard(); err != nil {
		return fmt.Errorf("seed leaderboard: %w", err)
	}

	var notifier domain.Notifier = game.NopNotifier{}
	if cfg.Game.Notifications {
		notifier = game.LogNotifier{}
	}

	session, earnings, err := game.Resume(game.Options{
		Notifier:   notifier,
		Store:      db,
		CaseStore:  db,
		DailyReset: cfg.Game.DailyReset,
	})
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if earnings > 0 {
		log.Printf("[daemon] settled $%.2f of offline earnings", earnings)
	}

	srv := api.NewServer(session, db)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	addr := cfg.API.Addr()
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	// Background settle keeps the balance fresh between API calls.
	stopSettle := make(chan struct{})
	go func() {
		ticker := time.NewTicker(settleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				session.Settle()
			case <-stopSettle:
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on %s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		close(stopSettle)
		return err
	case sig := <-sigCh:
		log.Printf("[daemon] received %s, shutting down", sig)
		close(stopSettle)
		session.Settle() // final settle so the save reflects shutdown time

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(ctx)
	}
}
