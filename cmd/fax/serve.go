package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faxui/fax"
	"github.com/faxui/fax/internal/demo"
	"github.com/faxui/fax/pkg/server"
	"github.com/faxui/fax/pkg/snapshot"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		strict      bool
		snapshotDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live-update server with the demo directory app",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var snaps snapshot.Store
			if snapshotDir != "" {
				store, err := snapshot.NewDiskStore(snapshotDir)
				if err != nil {
					return err
				}
				snaps = store
			}

			srv, err := server.New(server.Config{
				Addr:   addr,
				Logger: logger,
				NewRoot: func() (*fax.Root, error) {
					app := demo.New(demo.DefaultMembers(), logger)
					return app.Mount(fax.WithLogger(logger), fax.WithStrict(strict))
				},
				Snapshots: snaps,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat unknown properties as errors")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Persist first-paint snapshots to this directory")

	return cmd
}
