package commands

import (
	"log/slog"
	"time"

	"straindex-backend/lib/backfill"
	"straindex-backend/lib/serviceutil"
	"straindex-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var slicesFlags struct {
	dispensary  string
	months      int
	start       string
	end         string
	max         int
	save        bool
	scrapePages bool
}

func init() {
	slicesCmd.Flags().StringVar(&slicesFlags.dispensary, "dispensary", "", "dispensary id (trulieve, cookies, curaleaf, muv, flowery, sunburn)")
	slicesCmd.Flags().IntVar(&slicesFlags.months, "months", 0, "process the last N months including the current one")
	slicesCmd.Flags().StringVar(&slicesFlags.start, "start", "", "start month YYYY-MM")
	slicesCmd.Flags().StringVar(&slicesFlags.end, "end", "", "end month YYYY-MM")
	slicesCmd.Flags().IntVar(&slicesFlags.max, "max", 150, "max blobs per slice")
	slicesCmd.Flags().BoolVar(&slicesFlags.save, "save", false, "persist genetics and refresh the index per slice")
	slicesCmd.Flags().BoolVar(&slicesFlags.scrapePages, "scrape-pages", false, "follow product detail pages (slower, finds more genetics)")
	slicesCmd.MarkFlagRequired("dispensary")
	rootCmd.AddCommand(slicesCmd)
}

var slicesCmd = &cobra.Command{
	Use:   "slices --dispensary <id> [--months <n> | --start YYYY-MM --end YYYY-MM] [--max <n>] [--save]",
	Short: "Backfills the menu archive in month-scoped slices.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		months, err := backfill.MonthSequence(slicesFlags.start, slicesFlags.end, slicesFlags.months, time.Now().UTC())
		if err != nil {
			serviceutil.Fatal("invalid slice selection", err)
		}

		runner, cleanup := newRunner(cmd, slicesFlags.save, slicesFlags.scrapePages)
		defer cleanup()

		slog.Info("processing slices", "count", len(months), "dispensary", slicesFlags.dispensary, "max_per_slice", slicesFlags.max)

		reports, err := runner.RunSlices(ctx, months, backfill.Options{
			Dispensary: slicesFlags.dispensary,
			MaxBlobs:   slicesFlags.max,
			Save:       slicesFlags.save,
		})
		if err != nil {
			slog.Warn("slice run interrupted", "err", err)
		}

		total, failed := 0, 0
		for _, report := range reports {
			total += len(report.Records)
			if report.Error != "" {
				failed++
				slog.Warn("slice failed", "prefix", report.Prefix, "err", report.Error)
			}
		}
		slog.Info("all slices finished", "slices", len(reports), "failed_slices", failed, "strains", total)
	},
}
