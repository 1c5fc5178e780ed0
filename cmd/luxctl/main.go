// Luxctl is a command-line client for Luxtronik heat-pump controllers.
//
// It speaks the controller's binary protocol over TCP to read operating
// parameters and computed values, queue parameter writes, watch values live
// in a terminal dashboard, and expose readings to home-automation systems
// over WebSocket.
//
// Usage:
//
//	luxctl [command] [flags]
//
// See 'luxctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/luxctl/internal/logging"
	"github.com/muurk/luxctl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "luxctl",
	Short: "Luxtronik Heat-Pump Control Utility",
	Long: `A command-line client for Luxtronik heat-pump controllers.

Reads operating parameters and computed values over the controller's
binary TCP protocol, queues parameter writes, and can expose readings
to home-automation systems over WebSocket.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("luxctl %s\n", version.Full())
	},
}
