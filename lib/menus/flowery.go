package menus

import (
	"context"
	"strings"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

type floweryAdapter struct{}

func (floweryAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root,
		[]string{"products"},
		[]string{"products", "items"},
		[]string{"products", "results"},
	)
	for _, product := range products {
		out.totalProducts++

		// strain is usually an object {name, slug, lineage}, but older
		// payloads have it as a bare string
		var strainName, lineageText string
		if strainObj, err := product.GetObject("strain"); err == nil {
			strainName = stringAt(strainObj, "name")
			lineageText = stringAt(strainObj, "lineage")
		} else if s := stringAt(product, "strain"); s != "" {
			strainName = s
		} else {
			strainName = baseName(stringAt(product, "name"))
		}
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		var p1, p2 string
		// "hybrid/indica" in the lineage field is a type label, not a
		// cross; only parse when an actual cross symbol is present
		if lineageText != "" && !(strings.Contains(lineageText, "/") && !hasCrossSymbol(lineageText)) {
			if a, b, ok := lineage.ParseLineage(lineageText); ok {
				p1, p2 = a, b
			}
		}

		if p1 == "" {
			for _, field := range []string{"description", "strain_description", "genetics"} {
				text := stringAt(product, field)
				if text == "" {
					continue
				}
				if a, b, ok := lineage.ExtractFromText(text); ok {
					p1, p2 = a, b
					break
				}
			}
		}

		if p1 == "" && e.pages != nil {
			if slug := stringAt(product, "slug"); slug != "" {
				url := "https://theflowery.co/product/" + slug + "/"
				if g, ok := e.scrapeDetail(ctx, e.pages.Flowery, url, strainName); ok {
					out.records = append(out.records, g)
					continue
				}
			}
		}

		if p1 == "" || p2 == "" {
			continue
		}

		g := genetics.NewStrainGenetics(strainName, p1, p2)
		g.SourceURL = "flowery.com"
		out.records = append(out.records, g)
	}

	return out
}

func hasCrossSymbol(s string) bool {
	return strings.Contains(strings.ToLower(s), " x ") || strings.Contains(s, "×")
}
