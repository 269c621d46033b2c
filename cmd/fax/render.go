package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/faxui/fax"
	"github.com/faxui/fax/internal/demo"
	"github.com/faxui/fax/pkg/snapshot"
)

func renderCmd() *cobra.Command {
	var (
		strict      bool
		snapshotDir string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print first-paint markup for the demo directory app",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			app := demo.New(demo.DefaultMembers(), logger)
			root, err := app.Mount(fax.WithLogger(logger), fax.WithStrict(strict))
			if err != nil {
				return err
			}
			markup := root.Markup()

			if snapshotDir != "" {
				store, err := snapshot.NewDiskStore(snapshotDir)
				if err != nil {
					return err
				}
				if err := store.Save(cmd.Context(), name, markup); err != nil {
					return err
				}
			}

			fmt.Println(markup)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat unknown properties as errors")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Also save the markup as a snapshot in this directory")
	cmd.Flags().StringVar(&name, "name", "index", "Snapshot name")

	return cmd
}
