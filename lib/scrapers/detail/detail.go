// Package detail fetches individual product pages and pulls lineage
// out of their rendered HTML. It is the slow path: menu payloads are
// tried first, and a page is only fetched when the payload had a
// product URL but no usable lineage text.
package detail

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"straindex-backend/lib/lineage"
	"straindex-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/detail")

type Lineage struct {
	Parent1 string
	Parent2 string
	URL     string
}

type Options struct {
	// requests per second against a single storefront, defaults to one
	// request every two seconds
	RequestsPerSecond float64
	Timeout           time.Duration
}

func (o Options) withDefaults() Options {
	if o.RequestsPerSecond <= 0 {
		o.RequestsPerSecond = 0.5
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Second * 15
	}
	return o
}

// Scraper fetches product pages from one storefront. The selector list
// and keyword filter differ per retailer, the fetch loop does not.
type Scraper struct {
	http      *resty.Client
	limiter   *rate.Limiter
	selectors []string
	keywords  *regexp.Regexp
}

func newScraper(opts Options, selectors []string, keywords *regexp.Regexp) *Scraper {
	opts = opts.withDefaults()

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/detail/http")

	return &Scraper{
		http:      client,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		selectors: selectors,
		keywords:  keywords,
	}
}

// ScrapeProduct fetches productURL and scans its text for a parseable
// cross. ok is false both when the page has no lineage and when the
// fetch itself failed; err reports the latter so callers can log it.
func (s *Scraper) ScrapeProduct(ctx context.Context, productURL string) (Lineage, bool, error) {
	ctx, span := tracer.Start(ctx, "scraper:ScrapeProduct")
	defer span.End()

	err := s.limiter.Wait(ctx)
	if err != nil {
		return Lineage{}, false, err
	}

	res, err := s.http.R().
		SetContext(ctx).
		Get(productURL)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch product page")
		return Lineage{}, false, err
	}
	if res.StatusCode() != 200 {
		span.SetStatus(codes.Error, "non-200 product page")
		return Lineage{}, false, fmt.Errorf("fetch %s: status %d", productURL, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return Lineage{}, false, err
	}

	p1, p2, ok := s.extract(doc)
	if !ok {
		return Lineage{}, false, nil
	}
	return Lineage{Parent1: p1, Parent2: p2, URL: productURL}, true, nil
}

func (s *Scraper) extract(doc *goquery.Document) (string, string, bool) {
	var p1, p2 string
	found := false

	for _, selector := range s.selectors {
		doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if text == "" || !s.keywords.MatchString(text) {
				return true
			}
			a, b, ok := lineage.ExtractFromText(text)
			if !ok {
				return true
			}
			p1, p2 = a, b
			found = true
			return false
		})
		if found {
			return p1, p2, true
		}
	}
	return "", "", false
}

// Set holds one scraper per storefront that exposes product pages.
type Set struct {
	Cookies  *Scraper
	Flowery  *Scraper
	Curaleaf *Scraper
}

func NewSet(opts Options) *Set {
	return &Set{
		Cookies:  NewCookies(opts),
		Flowery:  NewFlowery(opts),
		Curaleaf: NewCuraleaf(opts),
	}
}
