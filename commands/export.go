package commands

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"logview/dashboard"
)

var exportOpts struct {
	filterFlags
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch logs once and write the filtered set as CSV",
	Long: `Fetch the full set from the log source, filter it and write one
timestamp,level,message line per entry.

Examples:
  logview export --level ERROR --time-range 7d
  logview export --search timeout -o - | wc -l`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.output, "output", "o", dashboard.ExportFilename, `output file, "-" for stdout`)
	f.StringVarP(&exportOpts.search, "search", "s", "", "case-insensitive message substring")
	f.StringVarP(&exportOpts.level, "level", "l", "all", "exact level, or all")
	f.StringVarP(&exportOpts.timeRange, "time-range", "t", "", "1h, 6h, 24h, 7d or all (default: default_time_range)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	criteria, err := exportOpts.criteria(cfg.DefaultCriteria())
	if err != nil {
		return err
	}

	fetcher := dashboard.NewFetcher(cfg.SourceURL, cfg.FetchTimeout)
	entries, err := fetcher.FetchLogs(cmd.Context())
	if err != nil {
		return err
	}
	filtered := dashboard.Filter(entries, criteria, time.Now())

	var w io.Writer = cmd.OutOrStdout()
	if exportOpts.output != "-" {
		file, err := os.Create(exportOpts.output)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if err := dashboard.ExportCSV(w, filtered); err != nil {
		return err
	}

	log.Info().
		Int("exported", len(filtered)).
		Int("total", len(entries)).
		Str("output", exportOpts.output).
		Msg("Export complete")
	return nil
}
