package menus

import (
	"context"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

// genericAdapter probes the product-array and text-field names seen
// across storefront APIs. It is the route for retailers without a
// dedicated adapter.
type genericAdapter struct{}

func (genericAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root,
		[]string{"products"},
		[]string{"products", "items"},
		[]string{"products", "results"},
		[]string{"items"},
		[]string{"results"},
	)
	for _, product := range products {
		out.totalProducts++

		strainName := firstStringAt(product, "strain", "strain_name")
		if strainName == "" {
			strainName = baseName(stringAt(product, "name"))
		}
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		var p1, p2 string
		for _, field := range []string{"description", "strain_description", "genetics", "lineage", "details"} {
			text := stringAt(product, field)
			if text == "" {
				continue
			}
			if a, b, ok := lineage.ExtractFromText(text); ok {
				p1, p2 = a, b
				break
			}
		}

		if p1 == "" || p2 == "" {
			continue
		}

		out.records = append(out.records, genetics.NewStrainGenetics(strainName, p1, p2))
	}

	return out
}
