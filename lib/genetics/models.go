// Package genetics defines the strain-lineage records extracted from
// dispensary menu payloads and their wire representations.
package genetics

import (
	"time"

	"straindex-backend/lib/textutil"
)

// StrainType classifies a cultivar. Values follow the CDES vocabulary.
type StrainType string

const (
	StrainTypeIndica  StrainType = "indica"
	StrainTypeSativa  StrainType = "sativa"
	StrainTypeHybrid  StrainType = "hybrid"
	StrainTypeCBD     StrainType = "cbd"
	StrainTypeUnknown StrainType = "unknown"
)

// StrainGenetics is one strain's known parentage as observed in source
// data. Parent1 and Parent2 are both set or both empty; a single-parent
// observation is discarded upstream rather than half-populated.
type StrainGenetics struct {
	StrainName string `json:"strain_name"`
	StrainSlug string `json:"strain_slug"`

	Parent1 string `json:"parent_1,omitempty"`
	Parent2 string `json:"parent_2,omitempty"`

	Breeder     string     `json:"breeder,omitempty"`
	StrainType  StrainType `json:"strain_type,omitempty"`
	Description string     `json:"description,omitempty"`

	SourceDispensary string    `json:"source_dispensary,omitempty"`
	SourceFile       string    `json:"source_file,omitempty"`
	SourceURL        string    `json:"source_url,omitempty"`
	ScrapedAt        time.Time `json:"scraped_at"`
}

// NewStrainGenetics builds a record with the slug derived from the name
// and the scrape timestamp set.
func NewStrainGenetics(name, parent1, parent2 string) StrainGenetics {
	return StrainGenetics{
		StrainName: name,
		StrainSlug: textutil.Slug(name),
		Parent1:    parent1,
		Parent2:    parent2,
		ScrapedAt:  time.Now().UTC(),
	}
}

// HasLineage reports whether both parents are known.
func (g StrainGenetics) HasLineage() bool {
	return g.Parent1 != "" && g.Parent2 != ""
}

// CDESGenetics is the projection used in the CDES Strain.genetics field:
//
//	{"lineage": ["Parent1", "Parent2"], "breeder": "...", "cross": "Parent1 x Parent2"}
type CDESGenetics struct {
	Lineage []string `json:"lineage,omitempty"`
	Breeder string   `json:"breeder,omitempty"`
	Cross   string   `json:"cross,omitempty"`
}

// ToCDES converts a record to the CDES genetics projection.
func (g StrainGenetics) ToCDES() CDESGenetics {
	out := CDESGenetics{Breeder: g.Breeder}
	if g.Parent1 != "" {
		out.Lineage = append(out.Lineage, g.Parent1)
	}
	if g.Parent2 != "" {
		out.Lineage = append(out.Lineage, g.Parent2)
	}
	if g.HasLineage() {
		out.Cross = g.Parent1 + " x " + g.Parent2
	}
	return out
}

// ExtractionResult summarizes one coordinator invocation over a single
// menu payload. It is ephemeral; only the records inside it survive.
type ExtractionResult struct {
	TotalProducts        int              `json:"total_products"`
	ProductsWithStrain   int              `json:"products_with_strain"`
	ProductsWithGenetics int              `json:"products_with_genetics"`
	UniqueStrains        int              `json:"unique_strains"`
	GeneticsFound        []StrainGenetics `json:"genetics_found"`
	Errors               []string         `json:"errors,omitempty"`
	SourceFile           string           `json:"source_file,omitempty"`
	Dispensary           string           `json:"dispensary,omitempty"`
	ProcessedAt          time.Time        `json:"processed_at"`
}
