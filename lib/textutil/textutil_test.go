package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"Blue Dream", "blue-dream"},
		{"OG Kush #18", "og-kush-18"},
		{"Girl Scout Cookies (GSC)", "girl-scout-cookies-gsc"},
		{"  Sour Diesel  ", "sour-diesel"},
		{"MÜV Blend", "m-v-blend"},
		{"Lemon Cherry x Cap Junky", "lemon-cherry-x-cap-junky"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, Slug(tc.name), "input: %q", tc.name)
	}
}

func TestSlugDeterministic(t *testing.T) {
	inputs := []string{"Blue Dream", "OG Kush #18", "Wedding Cake", "9lb Hammer"}
	for _, in := range inputs {
		require.Equal(t, Slug(in), Slug(in))
	}
}

func TestTrimParenthetical(t *testing.T) {
	require.Equal(t, "Blueberry", TrimParenthetical("Blueberry (aka Berry Blue)"))
	require.Equal(t, "Haze", TrimParenthetical("Haze"))
	require.Equal(t, "Animal Mints (BX1) Cut", TrimParenthetical("Animal Mints (BX1) Cut"))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Trulieve - Orlando", []string{"trulieve"}))
	require.True(t, MatchName("MÜV", []string{"müv", "muv"}))
	require.False(t, MatchName("Sunburn", []string{"trulieve", "cookies"}))
}
