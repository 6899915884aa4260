package commands

import (
	"log/slog"

	"straindex-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(refreshIndexCmd)
}

var refreshIndexCmd = &cobra.Command{
	Use:   "refresh-index",
	Short: "Rebuilds the strain index from the partition files.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store := openGeneticsStore(ctx, readConfig())

		index, err := store.RefreshIndex(ctx)
		if err != nil {
			serviceutil.Fatal("failed to refresh index", err)
		}

		slog.Info("index refreshed", "strains", index.TotalStrains, "partitions", len(index.Partitions))
	},
}
