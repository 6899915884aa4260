package menus

import (
	"context"
	"strings"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

type curaleafAdapter struct{}

func (curaleafAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root, []string{"products"})
	for _, product := range products {
		out.totalProducts++

		strainName := stringAt(product, "strain")
		if strainName == "" {
			strainName = baseName(stringAt(product, "name"))
		}
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		strainType := strings.ToLower(stringAt(product, "strain_type"))

		var p1, p2 string
		if desc := stringAt(product, "description"); desc != "" {
			if a, b, ok := lineage.ExtractFromText(desc); ok {
				p1, p2 = a, b
			}
		}

		if p1 == "" && e.pages != nil {
			url := stringAt(product, "detail_url")
			if g, ok := e.scrapeDetail(ctx, e.pages.Curaleaf, url, strainName); ok {
				g.StrainType = genetics.StrainType(strainType)
				out.records = append(out.records, g)
				continue
			}
		}

		if p1 == "" || p2 == "" {
			continue
		}

		g := genetics.NewStrainGenetics(strainName, p1, p2)
		g.StrainType = genetics.StrainType(strainType)
		g.SourceURL = "curaleaf.com"
		out.records = append(out.records, g)
	}

	return out
}
