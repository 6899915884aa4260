package menus

import (
	"context"
	"regexp"
	"strings"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/htmlutil"
	"straindex-backend/lib/lineage"

	"github.com/antonholmquist/jason"
)

var (
	// lineage lives inside the strain_description HTML blob:
	// <strong>Lineage:</strong> Parent1 x Parent2
	trulieveLineageRegex = regexp.MustCompile(`(?i)<strong>Lineage:</strong>\s*([^<]+)`)

	// some products embed the cross in the product name itself,
	// e.g. "Lemon Cherry x Cap Junky"
	nameCrossRegex = regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\s+[xX×]\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)`)
)

const trulieveDescriptionLimit = 500

type trulieveAdapter struct{}

func (trulieveAdapter) extract(ctx context.Context, root *jason.Object, e *Extractor) candidates {
	var out candidates

	products := objectList(root, []string{"products"}, []string{"data", "products"})
	for _, product := range products {
		out.totalProducts++

		attrs, err := product.GetObjectArray("custom_attributes_product")
		if err != nil {
			attrs, _ = product.GetObjectArray("attributes")
		}

		var strainName, strainType, description string
		for _, attr := range attrs {
			value := stringAt(attr, "value")
			switch stringAt(attr, "code") {
			case "strain":
				strainName = value
			case "strain_type":
				strainType = strings.ToLower(value)
			case "strain_description":
				description = value
			}
		}

		productName := stringAt(product, "name")
		if strainName == "" {
			strainName = baseName(productName)
		}
		if !usableName(strainName) {
			continue
		}
		out.withStrain++

		var p1, p2 string
		if m := trulieveLineageRegex.FindStringSubmatch(description); m != nil {
			if a, b, ok := lineage.ParseLineage(m[1]); ok {
				p1, p2 = a, b
			}
		}

		// name-embedded cross is the weakest signal, tried last; the
		// cross itself becomes the strain name
		if p1 == "" {
			if m := nameCrossRegex.FindStringSubmatch(productName); m != nil {
				p1, p2 = m[1], m[2]
				strainName = p1 + " x " + p2
			}
		}

		if p1 == "" || p2 == "" {
			continue
		}

		g := genetics.NewStrainGenetics(strainName, p1, p2)
		g.StrainType = genetics.StrainType(strainType)
		text := htmlutil.StripTags(description)
		if len(text) > trulieveDescriptionLimit {
			text = text[:trulieveDescriptionLimit]
		}
		g.Description = text
		g.SourceURL = "trulieve.com"
		out.records = append(out.records, g)
	}

	return out
}
