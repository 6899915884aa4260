package menus

import (
	"context"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

// muvAdapter also serves Sunburn, whose payloads use the same nested
// data.products.list shape.
type muvAdapter struct{}

func (muvAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root,
		[]string{"data", "products", "list"},
		[]string{"products", "list"},
		[]string{"data", "products", "items"},
		[]string{"products", "items"},
		[]string{"items"},
	)
	for _, product := range products {
		out.totalProducts++

		strainName := baseName(stringAt(product, "name"))
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		var p1, p2 string
		if desc := stringAt(product, "description"); desc != "" {
			if a, b, ok := lineage.ExtractFromText(desc); ok {
				p1, p2 = a, b
			}
		}

		if p1 == "" || p2 == "" {
			continue
		}

		g := genetics.NewStrainGenetics(strainName, p1, p2)
		g.SourceURL = "getmuv.com"
		out.records = append(out.records, g)
	}

	return out
}
