package commands

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"logview/config"
	"logview/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "logview",
	Short: "logview: a log dashboard and the log source it polls",
	Long: `logview polls a log-listing endpoint, keeps the full set in memory and serves
a dashboard with search, level and time-window filters, per-level statistics,
a daily timeline and CSV export.

The source subcommand runs the Postgres-backed log store the dashboard polls.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./logview.yaml)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Setup(cfg)
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}
