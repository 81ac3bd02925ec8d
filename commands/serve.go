package commands

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"logview/dashboard"
	"logview/hub"
)

var serveOpts struct {
	addr      string
	sourceURL string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the log dashboard",
	Long: `Poll the log source and serve the dashboard until interrupted.

Examples:
  logview serve
  logview serve --addr :4000 --source-url http://logs.internal:8080/api/logs`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "", "listen address (overrides listen_addr)")
	serveCmd.Flags().StringVar(&serveOpts.sourceURL, "source-url", "", "log source endpoint (overrides source_url)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveOpts.addr != "" {
		cfg.ListenAddr = serveOpts.addr
	}
	if serveOpts.sourceURL != "" {
		cfg.SourceURL = serveOpts.sourceURL
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.New()
	defer h.Close()

	fetcher := dashboard.NewFetcher(cfg.SourceURL, cfg.FetchTimeout)
	view := dashboard.NewView(fetcher,
		dashboard.WithInterval(cfg.PollInterval),
		dashboard.WithLocation(cfg.Location()),
		dashboard.WithUpdateHook(h.Publish),
	)
	defer view.Close()

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: newDashboardEngine(view, h, cfg.DefaultCriteria()),
	}

	log.Info().
		Str("source", fetcher.Endpoint()).
		Dur("poll_interval", cfg.PollInterval).
		Str("time_range", cfg.DefaultTimeRange).
		Msg("Dashboard starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return view.Run(gctx) })
	serveHTTP(gctx, g, srv)

	return g.Wait()
}
