package textutil

import (
	"regexp"
	"strings"
)

var (
	parenRegex    = regexp.MustCompile(`\s*\(([^)]+)\)\s*`)
	nonSlugRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiHyphen   = regexp.MustCompile(`-+`)
	trailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// Slug converts a strain display name into its normalized lookup key.
//
//	"Blue Dream"                -> "blue-dream"
//	"OG Kush #18"               -> "og-kush-18"
//	"Girl Scout Cookies (GSC)"  -> "girl-scout-cookies-gsc"
//
// Deterministic: the same name always produces the same slug.
func Slug(name string) string {
	if name == "" {
		return ""
	}
	slug := strings.ToLower(strings.TrimSpace(name))
	// keep abbreviations in parentheses as part of the slug
	slug = parenRegex.ReplaceAllString(slug, "-$1-")
	slug = nonSlugRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = multiHyphen.ReplaceAllString(slug, "-")
	return slug
}

// TrimParenthetical strips a trailing parenthetical note from a strain
// name, e.g. "Blueberry (aka Berry Blue)" -> "Blueberry".
func TrimParenthetical(name string) string {
	return strings.TrimSpace(trailingParen.ReplaceAllString(name, ""))
}

// MatchName reports whether the normalized name contains any of the
// given matchers.
func MatchName(name string, matchers []string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
