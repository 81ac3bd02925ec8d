package commands

import (
	"time"

	"github.com/spf13/cobra"

	"logview/dashboard"
)

var summaryOpts filterFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch logs once and print the dashboard in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	f := summaryCmd.Flags()
	f.StringVarP(&summaryOpts.search, "search", "s", "", "case-insensitive message substring")
	f.StringVarP(&summaryOpts.level, "level", "l", "all", "exact level, or all")
	f.StringVarP(&summaryOpts.timeRange, "time-range", "t", "", "1h, 6h, 24h, 7d or all (default: default_time_range)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	criteria, err := summaryOpts.criteria(cfg.DefaultCriteria())
	if err != nil {
		return err
	}

	fetcher := dashboard.NewFetcher(cfg.SourceURL, cfg.FetchTimeout)
	entries, err := fetcher.FetchLogs(cmd.Context())
	if err != nil {
		return err
	}

	summary := dashboard.Summarize(entries, criteria, time.Now(), cfg.Location())
	return renderSummary(cmd.OutOrStdout(), summary)
}
