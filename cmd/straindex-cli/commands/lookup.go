package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"straindex-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var lookupFlags struct {
	cdes bool
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupFlags.cdes, "cdes", false, "print the CDES genetics projection as JSON")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <strain name>",
	Short: "Looks up a strain's lineage in the index.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		name := strings.Join(args, " ")
		store := openGeneticsStore(ctx, readConfig())

		g, err := store.GetStrain(ctx, name)
		if err != nil {
			serviceutil.Fatal("lookup failed", err)
		}
		if g == nil {
			fmt.Printf("%q is not in the index\n", name)
			suggestions, err := store.Suggest(ctx, name, 3)
			if err == nil && len(suggestions) > 0 {
				fmt.Println("did you mean:")
				for _, s := range suggestions {
					fmt.Printf("  %s\n", s)
				}
			}
			return
		}

		if lookupFlags.cdes {
			out, err := json.MarshalIndent(g.ToCDES(), "", "  ")
			if err != nil {
				serviceutil.Fatal("failed to marshal cdes projection", err)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("%s\n", g.StrainName)
		if g.HasLineage() {
			fmt.Printf("  lineage: %s x %s\n", g.Parent1, g.Parent2)
		} else {
			fmt.Println("  lineage: unknown")
		}
		if g.StrainType != "" {
			fmt.Printf("  type: %s\n", g.StrainType)
		}
		if g.Breeder != "" {
			fmt.Printf("  breeder: %s\n", g.Breeder)
		}
		if g.SourceDispensary != "" {
			fmt.Printf("  source: %s", g.SourceDispensary)
			if !g.ScrapedAt.IsZero() {
				fmt.Printf(" (%s)", g.ScrapedAt.Format("2006-01-02"))
			}
			fmt.Println()
		}
	},
}
