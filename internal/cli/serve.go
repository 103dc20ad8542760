package cli

import (
	"context"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"family-tasks/internal/config"
	"family-tasks/internal/server"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the family tasks API",
		Long: `Serve starts the HTTP API and the WebSocket change feed, backed by the
configured SQLite database. The server shuts down cleanly on SIGINT or
SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(root.Config())
		},
	}
}

func runServe(cfg *config.Config) error {
	gw, err := config.CreateGateway(cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg, gw)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown()
			},
			"gateway": func(ctx context.Context) error {
				return gw.Close()
			},
		},
	)

	fmt.Printf("family-tasks serving on %s\n", cfg.Server.Address)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case exitCode := <-wait:
		if exitCode != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", exitCode)
		}
		return nil
	}
}
