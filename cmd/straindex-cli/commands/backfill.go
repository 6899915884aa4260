package commands

import (
	"log/slog"
	"time"

	"straindex-backend/lib/backfill"
	"straindex-backend/lib/menus"
	"straindex-backend/lib/scrapers/detail"
	"straindex-backend/lib/serviceutil"
	"straindex-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var backfillFlags struct {
	dispensary  string
	prefix      string
	max         int
	save        bool
	scrapePages bool
}

func init() {
	backfillCmd.Flags().StringVar(&backfillFlags.dispensary, "dispensary", "", "dispensary id (trulieve, cookies, curaleaf, muv, flowery, sunburn)")
	backfillCmd.Flags().StringVar(&backfillFlags.prefix, "prefix", "", "blob prefix override (default dispensaries/<dispensary>/)")
	backfillCmd.Flags().IntVar(&backfillFlags.max, "max", backfill.DefaultMaxBlobs, "max blobs to process")
	backfillCmd.Flags().BoolVar(&backfillFlags.save, "save", false, "persist genetics and refresh the index")
	backfillCmd.Flags().BoolVar(&backfillFlags.scrapePages, "scrape-pages", false, "follow product detail pages (slower, finds more genetics)")
	backfillCmd.MarkFlagRequired("dispensary")
	rootCmd.AddCommand(backfillCmd)
}

func newRunner(cmd *cobra.Command, needStore bool, scrapePages bool) (*backfill.Runner, func()) {
	ctx := cmd.Context()
	cfg := readConfig()

	runner := &backfill.Runner{
		Source: openMenuSource(ctx, cfg),
		Extractor: menus.NewExtractor(menus.Options{
			EnableDetailPages: scrapePages,
			Detail:            detail.Options{},
		}),
		Jobs: openJobs(cfg),
	}
	if needStore {
		runner.Store = openGeneticsStore(ctx, cfg)
	}

	cleanup := func() {
		if runner.Jobs != nil {
			runner.Jobs.Close()
		}
	}
	return runner, cleanup
}

var backfillCmd = &cobra.Command{
	Use:   "backfill --dispensary <id> [--max <n>] [--prefix <p>] [--save]",
	Short: "Sweeps historical menu payloads and extracts strain genetics.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		runner, cleanup := newRunner(cmd, backfillFlags.save, backfillFlags.scrapePages)
		defer cleanup()

		t1 := time.Now()
		report, err := runner.Run(ctx, backfill.Options{
			Dispensary: backfillFlags.dispensary,
			Prefix:     backfillFlags.prefix,
			MaxBlobs:   backfillFlags.max,
			Save:       backfillFlags.save,
		})
		if err != nil {
			serviceutil.Fatal("backfill failed", err)
		}

		slog.Info(
			"backfill finished",
			"blobs", report.BlobsListed,
			"failed", report.BlobsFailed,
			"strains", len(report.Records),
			"saved", report.Saved,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
