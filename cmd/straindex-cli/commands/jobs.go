package commands

import (
	"fmt"
	"os"

	"straindex-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var jobsFlags struct {
	dispensary string
	limit      int
}

func init() {
	jobsCmd.Flags().StringVar(&jobsFlags.dispensary, "dispensary", "", "filter by dispensary id")
	jobsCmd.Flags().IntVar(&jobsFlags.limit, "limit", 20, "max runs to show")
	rootCmd.AddCommand(jobsCmd)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs [--dispensary <id>] [--limit <n>]",
	Short: "Shows recent backfill runs from the jobs ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if cfg.JobsDB == "" {
			fmt.Fprintln(os.Stderr, "no jobs_db configured in straindex.json5")
			os.Exit(1)
		}
		jobs := openJobs(cfg)
		defer jobs.Close()

		runs, err := jobs.RecentRuns(cmd.Context(), jobsFlags.dispensary, jobsFlags.limit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"started", "dispensary", "prefix", "blobs", "failed", "strains", "saved", "error"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.StartedAt.Format("2006-01-02 15:04"),
				run.Dispensary,
				run.Prefix,
				run.BlobsProcessed,
				run.BlobsFailed,
				run.StrainsFound,
				run.Saved,
				run.Error,
			})
		}
		t.Render()
	},
}
