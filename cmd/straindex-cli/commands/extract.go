package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/menus"
	"straindex-backend/lib/scrapers/detail"
	"straindex-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var extractFlags struct {
	dispensary  string
	dir         string
	save        bool
	scrapePages bool
}

func init() {
	extractCmd.Flags().StringVar(&extractFlags.dispensary, "dispensary", "", "dispensary id (trulieve, cookies, curaleaf, muv, flowery, sunburn)")
	extractCmd.Flags().StringVar(&extractFlags.dir, "dir", ".", "directory of downloaded menu .json files")
	extractCmd.Flags().BoolVar(&extractFlags.save, "save", false, "persist genetics and refresh the index")
	extractCmd.Flags().BoolVar(&extractFlags.scrapePages, "scrape-pages", false, "follow product detail pages (slower, finds more genetics)")
	extractCmd.MarkFlagRequired("dispensary")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract --dispensary <id> [--dir <path>] [--save]",
	Short: "Extracts genetics from menu files on the local filesystem.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		entries, err := os.ReadDir(extractFlags.dir)
		if err != nil {
			serviceutil.Fatal("failed to read menu directory", err)
		}

		extractor := menus.NewExtractor(menus.Options{
			EnableDetailPages: extractFlags.scrapePages,
			Detail:            detail.Options{},
		})

		seen := map[string]bool{}
		var records []genetics.StrainGenetics
		processed, failed := 0, 0

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(extractFlags.dir, entry.Name())
			payload, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("failed to read menu file", "path", path, "err", err)
				failed++
				continue
			}

			result := extractor.ExtractFromMenu(ctx, payload, extractFlags.dispensary, entry.Name())
			if len(result.Errors) > 0 {
				slog.Warn("menu file extraction errored", "path", path, "errors", strings.Join(result.Errors, "; "))
				failed++
				continue
			}

			processed++
			for _, g := range result.GeneticsFound {
				if seen[g.StrainSlug] {
					continue
				}
				seen[g.StrainSlug] = true
				records = append(records, g)
			}
			slog.Info("processed menu file", "path", path, "strains", result.UniqueStrains)
		}

		slog.Info("extraction finished", "files", processed, "failed", failed, "strains", len(records))

		if !extractFlags.save || len(records) == 0 {
			return
		}

		store := openGeneticsStore(ctx, readConfig())
		stats, err := store.SaveGenetics(ctx, records, true)
		if err != nil {
			serviceutil.Fatal("failed to save genetics", err)
		}
		if _, err := store.RefreshIndex(ctx); err != nil {
			serviceutil.Fatal("failed to refresh index", err)
		}
		slog.Info("saved genetics", "new", stats.New, "updated", stats.Updated)
	},
}
