package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Scoped components for server-driven reactive UIs",
		Long: `Weft runs server-driven reactive component trees over WebSocket.

Components declare their interactive surface through per-instance
namespaces, so two instances of the same component never collide.
Inputs flow in, derived outputs flow back as patches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
