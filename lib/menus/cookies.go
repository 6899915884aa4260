package menus

import (
	"context"
	"strings"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

type cookiesAdapter struct{}

func (cookiesAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root,
		[]string{"products"},
		[]string{"products", "results"},
		[]string{"results"},
	)
	for _, product := range products {
		out.totalProducts++

		strainName := baseName(stringAt(product, "name"))
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		strainType := strings.ToLower(stringAt(product, "strain_type"))

		// the informations block carries the cross when present
		var p1, p2 string
		for _, key := range []string{"cross", "genetics", "lineage"} {
			text := stringAt(product, "informations", key)
			if text == "" {
				continue
			}
			if a, b, ok := lineage.ParseLineage(text); ok {
				p1, p2 = a, b
			}
			break
		}

		if p1 == "" {
			if desc := stringAt(product, "description"); desc != "" {
				if a, b, ok := lineage.ExtractFromText(desc); ok {
					p1, p2 = a, b
				}
			}
		}

		if p1 == "" && e.pages != nil {
			url := firstStringAt(product, "link", "url")
			if g, ok := e.scrapeDetail(ctx, e.pages.Cookies, url, strainName); ok {
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
		g.SourceURL = "cookiesflorida.co"
		out.records = append(out.records, g)
	}

	return out
}
