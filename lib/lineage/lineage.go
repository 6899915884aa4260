// Package lineage extracts parent-strain pairs from free-text product
// descriptions. Matching is deterministic: an ordered list of labeled
// patterns checked in sequence, first valid match wins. A wrong parent
// attribution is worse than a missed one, so validation is conservative
// and disclaimers short-circuit to no-match.
package lineage

import (
	"regexp"
	"strings"
)

// parent names: letters, digits, '#', '&', apostrophes and spaces,
// lazily matched so the terminator anchor decides where a name stops.
const parentChars = `[A-Za-z0-9#\s&']+?`

// a captured parent stops at an opening paren, a period, a newline or
// end of text so trailing marketing prose is not vacuumed in.
const terminator = `(?:\s*[(.\n]|$)`

// Patterns are tried strictly in order; the ordering is behavior, not an
// optimization. Labeled patterns outrank the bare "X x Y" fallback.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)lineage:\s*(` + parentChars + `)\s*[xX×]\s*(` + parentChars + `)` + terminator),
	regexp.MustCompile(`(?im)genetics:\s*(` + parentChars + `)\s*[xX×]\s*(` + parentChars + `)` + terminator),
	regexp.MustCompile(`(?im)cross:\s*(` + parentChars + `)\s*[xX×]\s*(` + parentChars + `)` + terminator),
	regexp.MustCompile(`(?im)parents?:\s*(` + parentChars + `)\s*[xX×]\s*(` + parentChars + `)` + terminator),
	// bare fallback: capitalized words on both sides of a cross symbol
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+[xX×]\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

var (
	crossSplit    = regexp.MustCompile(`\s+[xX×]\s+`)
	leadingLabel  = regexp.MustCompile(`(?i)^(?:lineage|genetics|cross|parentage|parents?)\s*[:\-]\s*`)
	trailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	trailingDot   = regexp.MustCompile(`\s*\.$`)
)

// ParseLineage splits an already-labeled lineage snippet ("Parent1 x
// Parent2", possibly still carrying a "Lineage:" style prefix) into its
// two parents. ok is false when the text does not describe a plain
// two-parent cross.
func ParseLineage(text string) (parent1, parent2 string, ok bool) {
	if text == "" {
		return "", "", false
	}
	// a proprietary-genetics disclaimer means the data is intentionally
	// withheld, never a partial guess
	if strings.Contains(strings.ToLower(text), "proprietary") {
		return "", "", false
	}

	cleaned := leadingLabel.ReplaceAllString(strings.TrimSpace(text), "")
	cleaned = strings.TrimLeft(cleaned, "- \t")

	parts := crossSplit.Split(cleaned, -1)
	if len(parts) < 2 {
		return "", "", false
	}

	parent1 = cleanParent(parts[0])
	parent2 = cleanParent(parts[1])
	if len(parent1) < 2 || len(parent2) < 2 {
		return "", "", false
	}
	return parent1, parent2, true
}

// ExtractFromText scans raw unlabeled text for a lineage statement using
// the ordered pattern list. Three-way-plus crosses ("mixed with") and
// proprietary disclaimers are rejected outright.
func ExtractFromText(text string) (parent1, parent2 string, ok bool) {
	if text == "" {
		return "", "", false
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "mixed with") || strings.Contains(lower, "proprietary") {
		return "", "", false
	}

	for _, pattern := range patterns {
		groups := pattern.FindStringSubmatch(text)
		if len(groups) < 3 {
			continue
		}
		p1 := strings.TrimSpace(groups[1])
		p2 := strings.TrimSpace(groups[2])
		if len(p1) >= 2 && len(p2) >= 2 {
			return p1, p2, true
		}
	}
	return "", "", false
}

func cleanParent(s string) string {
	s = strings.TrimSpace(s)
	// a complete trailing parenthetical note goes first, then any stray
	// paren left over from a "(X x Y)" style snippet
	s = trailingParen.ReplaceAllString(s, "")
	s = strings.Trim(s, "()")
	s = trailingDot.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
