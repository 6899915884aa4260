package detail

import "regexp"

var (
	cookiesKeywords  = regexp.MustCompile(`(?i)lineage|genetics|cross|parents`)
	floweryKeywords  = regexp.MustCompile(`(?i)lineage|genetics|parent|cross`)
	curaleafKeywords = regexp.MustCompile(`(?i)lineage|genetics|parent|bred|cross`)
)

// NewCookies scrapes cookiesflorida.co product pages. Lineage usually
// lives in the description block, sometimes in a bare paragraph.
func NewCookies(opts Options) *Scraper {
	return newScraper(opts, []string{
		".product-description",
		"[class*='description']",
		"[class*='detail']",
		"p", "div", "span",
	}, cookiesKeywords)
}

// NewFlowery scrapes theflowery.co product pages, which tend to use
// structured detail sections.
func NewFlowery(opts Options) *Scraper {
	return newScraper(opts, []string{
		".product-details",
		".product-description",
		"[class*='lineage']",
		"[class*='genetics']",
		"p", "div", "span",
	}, floweryKeywords)
}

// NewCuraleaf scrapes curaleaf.com product pages.
func NewCuraleaf(opts Options) *Scraper {
	return newScraper(opts, []string{
		".product-info",
		".product-details",
		"[class*='description']",
		"[class*='lineage']",
		"p", "div",
	}, curaleafKeywords)
}
