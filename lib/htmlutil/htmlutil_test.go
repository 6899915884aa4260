package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{
			"<p><strong>Lineage:</strong> Blueberry x Haze</p>",
			"Lineage: Blueberry x Haze",
		},
		{
			"plain text, no markup",
			"plain text, no markup",
		},
		{
			"<div>nested <span>inline\n\ttext</span></div>",
			"nested inline text",
		},
		{
			"",
			"",
		},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, StripTags(tc.input), "input: %q", tc.input)
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a\n b\t\tc "))
}
