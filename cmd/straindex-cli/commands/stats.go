package commands

import (
	"fmt"
	"os"

	"straindex-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints dataset statistics from the strain index.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store := openGeneticsStore(ctx, readConfig())

		stats, err := store.GetStats(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read stats", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"total strains", stats.TotalStrains},
			{"with lineage", stats.StrainsWithLineage},
			{"partitions", stats.Partitions},
		})
		if !stats.UpdatedAt.IsZero() {
			t.AppendRow(table.Row{"updated at", stats.UpdatedAt.Format("2006-01-02 15:04:05 MST")})
		}
		t.Render()

		if stats.TotalStrains > 0 {
			coverage := float64(stats.StrainsWithLineage) / float64(stats.TotalStrains) * 100
			fmt.Printf("lineage coverage: %.1f%%\n", coverage)
		}
	},
}
