// Package menus turns raw dispensary menu payloads into strain
// genetics records. Each supported retailer serializes its menu
// differently, so extraction is routed through a per-retailer adapter;
// payloads from storefronts we have never seen fall back to a generic
// adapter that probes common field names.
package menus

import "strings"

// Retailer identifies which adapter handles a payload. Matching is a
// case-insensitive substring check against the caller-provided id, so
// "trulieve_orlando" and "Trulieve FL" both route to Trulieve.
type Retailer int

const (
	Unknown Retailer = iota
	Trulieve
	Cookies
	Curaleaf
	Muv
	Flowery
	Sunburn
)

func MatchRetailer(id string) Retailer {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "trulieve"):
		return Trulieve
	case strings.Contains(lower, "cookies"):
		return Cookies
	case strings.Contains(lower, "curaleaf"):
		return Curaleaf
	case strings.Contains(lower, "muv") || strings.Contains(lower, "müv"):
		return Muv
	case strings.Contains(lower, "flowery"):
		return Flowery
	case strings.Contains(lower, "sunburn"):
		return Sunburn
	}
	return Unknown
}

func (r Retailer) String() string {
	switch r {
	case Trulieve:
		return "trulieve"
	case Cookies:
		return "cookies"
	case Curaleaf:
		return "curaleaf"
	case Muv:
		return "muv"
	case Flowery:
		return "flowery"
	case Sunburn:
		return "sunburn"
	}
	return "unknown"
}

func (r Retailer) adapter() adapter {
	switch r {
	case Trulieve:
		return trulieveAdapter{}
	case Cookies:
		return cookiesAdapter{}
	case Curaleaf:
		return curaleafAdapter{}
	case Muv, Sunburn:
		return muvAdapter{}
	case Flowery:
		return floweryAdapter{}
	}
	return genericAdapter{}
}
