package menus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchRetailer(t *testing.T) {
	testCases := []struct {
		id       string
		expected Retailer
	}{
		{"trulieve", Trulieve},
		{"Trulieve FL", Trulieve},
		{"trulieve_orlando", Trulieve},
		{"cookies", Cookies},
		{"curaleaf-miami", Curaleaf},
		{"muv", Muv},
		{"MÜV Tampa", Muv},
		{"the flowery", Flowery},
		{"sunburn", Sunburn},
		{"greendragon", Unknown},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, MatchRetailer(tc.id), "id: %q", tc.id)
	}
}

func TestExtractCuraleafDescription(t *testing.T) {
	payload := []byte(`{
		"products": [
			{"name": "Blue Dream - Flower", "description": "Lineage: Blueberry x Haze"}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "curaleaf", "menu.json")

	require.Empty(t, result.Errors)
	require.Equal(t, 1, result.TotalProducts)
	require.Equal(t, 1, result.ProductsWithStrain)
	require.Equal(t, 1, result.UniqueStrains)
	require.Len(t, result.GeneticsFound, 1)

	g := result.GeneticsFound[0]
	require.Equal(t, "Blue Dream", g.StrainName)
	require.Equal(t, "blue-dream", g.StrainSlug)
	require.Equal(t, "Blueberry", g.Parent1)
	require.Equal(t, "Haze", g.Parent2)
	require.Equal(t, "curaleaf", g.SourceDispensary)
	require.Equal(t, "menu.json", g.SourceFile)
}

func TestExtractTrulieveAttributes(t *testing.T) {
	payload := []byte(`{
		"products": [
			{
				"name": "Gelato - 3.5g",
				"custom_attributes_product": [
					{"code": "strain", "value": "Gelato"},
					{"code": "strain_type", "value": "Hybrid"},
					{"code": "strain_description", "value": "<p><strong>Lineage:</strong> Thin Mint GSC x Sunset Sherbet</p>"}
				]
			}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "trulieve", "")

	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Gelato", g.StrainName)
	require.Equal(t, "Thin Mint GSC", g.Parent1)
	require.Equal(t, "Sunset Sherbet", g.Parent2)
	require.EqualValues(t, "hybrid", g.StrainType)
	require.Equal(t, "trulieve.com", g.SourceURL)
	// description is stored as stripped text
	require.Equal(t, "Lineage: Thin Mint GSC x Sunset Sherbet", g.Description)
}

func TestExtractTrulieveNameEmbeddedCross(t *testing.T) {
	payload := []byte(`{
		"products": [
			{"name": "Lemon Cherry x Cap Junky", "custom_attributes_product": []}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "trulieve", "")

	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Lemon Cherry x Cap Junky", g.StrainName)
	require.Equal(t, "Lemon Cherry", g.Parent1)
	require.Equal(t, "Cap Junky", g.Parent2)
}

func TestExtractCookiesInformations(t *testing.T) {
	payload := []byte(`{
		"products": {
			"results": [
				{
					"name": "Gary Payton - Eighth",
					"strain_type": "Hybrid",
					"informations": {"cross": "The Y x Snowman"}
				}
			]
		}
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "cookies", "")

	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Gary Payton", g.StrainName)
	require.Equal(t, "The Y", g.Parent1)
	require.Equal(t, "Snowman", g.Parent2)
	require.Equal(t, "cookiesflorida.co", g.SourceURL)
}

func TestExtractMuvNestedList(t *testing.T) {
	payload := []byte(`{
		"data": {
			"products": {
				"list": [
					{"name": "Khalifa Kush - Flower", "description": "Genetics: Triangle Kush x OG Kush."}
				]
			}
		}
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "muv", "")

	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Khalifa Kush", g.StrainName)
	require.Equal(t, "Triangle Kush", g.Parent1)
	require.Equal(t, "OG Kush", g.Parent2)
	require.Equal(t, "getmuv.com", g.SourceURL)
}

func TestExtractFloweryStrainObject(t *testing.T) {
	payload := []byte(`{
		"products": [
			{"strain": {"name": "Zourz", "slug": "zourz", "lineage": "Zkittlez x Screwball"}},
			{"strain": {"name": "Mystery", "slug": "mystery", "lineage": "hybrid/indica"}}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "flowery", "")

	require.Equal(t, 2, result.TotalProducts)
	require.Equal(t, 2, result.ProductsWithStrain)
	// "hybrid/indica" is a type label, not a cross
	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Zourz", g.StrainName)
	require.Equal(t, "Zkittlez", g.Parent1)
	require.Equal(t, "Screwball", g.Parent2)
}

func TestExtractGenericFallback(t *testing.T) {
	payload := []byte(`{
		"items": [
			{"strain_name": "Purple Punch", "lineage": "Lineage: Larry OG x Granddaddy Purple"}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "greendragon", "")

	require.Len(t, result.GeneticsFound, 1)
	g := result.GeneticsFound[0]
	require.Equal(t, "Purple Punch", g.StrainName)
	require.Equal(t, "Larry OG", g.Parent1)
	require.Equal(t, "Granddaddy Purple", g.Parent2)
	require.Equal(t, "greendragon", g.SourceDispensary)
}

func TestExtractDeduplicatesWithinRun(t *testing.T) {
	payload := []byte(`{
		"products": [
			{"name": "Blue Dream - 3.5g", "description": "Lineage: Blueberry x Haze"},
			{"name": "Blue Dream - 7g", "description": "Lineage: Blueberry Kush x Haze"}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "curaleaf", "")

	require.Equal(t, 2, result.TotalProducts)
	require.Equal(t, 2, result.ProductsWithGenetics)
	require.Equal(t, 1, result.UniqueStrains)
	// first observation wins
	require.Equal(t, "Blueberry", result.GeneticsFound[0].Parent1)
}

func TestExtractMalformedPayload(t *testing.T) {
	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), []byte(`{not json`), "curaleaf", "bad.json")

	require.NotEmpty(t, result.Errors)
	require.Empty(t, result.GeneticsFound)
}

func TestExtractSkipsShortNames(t *testing.T) {
	payload := []byte(`{
		"products": [
			{"name": "OG", "description": "Lineage: Chemdawg x Hindu Kush"}
		]
	}`)

	e := NewExtractor(Options{})
	result := e.ExtractFromMenu(context.Background(), payload, "curaleaf", "")

	require.Equal(t, 1, result.TotalProducts)
	require.Equal(t, 0, result.ProductsWithStrain)
	require.Empty(t, result.GeneticsFound)
}

func TestExtractFromProduct(t *testing.T) {
	product := []byte(`{"name": "Blue Dream - Flower", "description": "Lineage: Blueberry x Haze"}`)

	e := NewExtractor(Options{})
	g := e.ExtractFromProduct(context.Background(), product, "curaleaf")

	require.NotNil(t, g)
	require.Equal(t, "Blue Dream", g.StrainName)

	require.Nil(t, e.ExtractFromProduct(context.Background(), []byte(`{"name": "Vape Battery"}`), "curaleaf"))
}
