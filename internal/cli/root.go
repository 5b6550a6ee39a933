// Package cli implements the devbyte command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devbyte",
	Short: "Dev vs Byte idle game engine",
	Long: `Dev vs Byte is a single-player incremental game: pick the developer or
the hacker side, build income-generating apps or tools, and settle your
disputes in court. The engine runs as a local daemon and exposes a JSON
API for the desktop shell.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, "devbyte 0.1.0")
	},
}
