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
		Use:   "fax",
		Short: "Render and serve reactive control trees",
		Long: `fax renders control trees to markup and keeps live documents in
sync with them through minimal mutation passes.

  • First-paint markup generation with stable node ids
  • Keyed child reconciliation preserving node identity
  • Top-level event delegation
  • Live updates streamed over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
