package lineage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLineage(t *testing.T) {
	testCases := []struct {
		text    string
		parent1 string
		parent2 string
		ok      bool
	}{
		{"Blueberry x Haze", "Blueberry", "Haze", true},
		{"Lineage: Blueberry x Haze", "Blueberry", "Haze", true},
		{"Genetics - Gelato 41 X Sherb Bx1", "Gelato 41", "Sherb Bx1", true},
		{"(Lemon Cherry Gelato × Pina Acai)", "Lemon Cherry Gelato", "Pina Acai", true},
		{"Wedding Cake (aka Pink Cookies) x Gelato", "Wedding Cake", "Gelato", true},
		{"Lineage: Proprietary Genetics", "", "", false},
		{"proprietary blend", "", "", false},
		{"just one strain", "", "", false},
		{"A x B", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range testCases {
		p1, p2, ok := ParseLineage(tc.text)
		require.Equal(t, tc.ok, ok, "input: %q", tc.text)
		require.Equal(t, tc.parent1, p1, "input: %q", tc.text)
		require.Equal(t, tc.parent2, p2, "input: %q", tc.text)
	}
}

func TestExtractFromText(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		parent1 string
		parent2 string
		ok      bool
	}{
		{
			name:    "labeled lineage",
			text:    "A potent indica. Lineage: Blueberry x Haze. Notes of berry.",
			parent1: "Blueberry",
			parent2: "Haze",
			ok:      true,
		},
		{
			name:    "genetics label",
			text:    "Genetics: Gelato 41 x Sherb Bx1\nTerpene-rich flower.",
			parent1: "Gelato 41",
			parent2: "Sherb Bx1",
			ok:      true,
		},
		{
			name:    "cross label",
			text:    "Cross: Lemon Cherry x Cap Junky",
			parent1: "Lemon Cherry",
			parent2: "Cap Junky",
			ok:      true,
		},
		{
			name:    "parents label",
			text:    "Parents: Wedding Cake x Jet Fuel Gelato",
			parent1: "Wedding Cake",
			parent2: "Jet Fuel Gelato",
			ok:      true,
		},
		{
			name:    "bare fallback",
			text:    "This cultivar is Sour Diesel x Chemdawg through and through.",
			parent1: "Sour Diesel",
			parent2: "Chemdawg",
			ok:      true,
		},
		{
			name:    "capture stops at paren",
			text:    "Lineage: Blue Dream x Lemon Skunk (limited drop, while supplies last)",
			parent1: "Blue Dream",
			parent2: "Lemon Skunk",
			ok:      true,
		},
		{
			name: "mixed with rejects whole text",
			text: "Gelato x Sherbet mixed with a third strain for good measure.",
			ok:   false,
		},
		{
			name: "proprietary rejects whole text",
			text: "Lineage: Blueberry x Haze. Proprietary pheno selection.",
			ok:   false,
		},
		{
			name: "no lineage present",
			text: "A smooth smoke with citrus notes and a relaxing finish.",
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			ok:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p1, p2, ok := ExtractFromText(tc.text)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.parent1, p1)
			require.Equal(t, tc.parent2, p2)
		})
	}
}

// a labeled statement outranks an unrelated bare cross found earlier or
// later in the same text
func TestExtractOrderedPriority(t *testing.T) {
	text := "Compare to Gorilla Glue x Chem Sis. Lineage: Blueberry x Haze."
	p1, p2, ok := ExtractFromText(text)
	require.True(t, ok)
	require.Equal(t, "Blueberry", p1)
	require.Equal(t, "Haze", p2)
}
