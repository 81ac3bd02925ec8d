package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"logview/database"
)

const connectTimeout = 10 * time.Second

var sourceOpts struct {
	addr    string
	migrate bool
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Run the Postgres-backed log source",
	Long: `Serve the log store the dashboard polls: POST /api/logs to ingest,
GET /api/logs to list and GET /api/logs/statistics for per-level counts.

Requires DATABASE_URL (or database_url in the config file).`,
	Args: cobra.NoArgs,
	RunE: runSource,
}

func init() {
	sourceCmd.Flags().StringVar(&sourceOpts.addr, "addr", "", "listen address (overrides source.listen_addr)")
	sourceCmd.Flags().BoolVar(&sourceOpts.migrate, "migrate", false, "apply migrations before serving")
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}
	if sourceOpts.addr != "" {
		cfg.Source.ListenAddr = sourceOpts.addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	db, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close()

	if sourceOpts.migrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:    cfg.Source.ListenAddr,
		Handler: newSourceEngine(db),
	}

	g, gctx := errgroup.WithContext(ctx)
	serveHTTP(gctx, g, srv)

	return g.Wait()
}
