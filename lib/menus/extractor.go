package menus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"straindex-backend/lib/genetics"
	"straindex-backend/lib/scrapers/detail"

	"github.com/antonholmquist/jason"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("menus")

type adapter interface {
	extract(ctx context.Context, root *jason.Object, e *Extractor) candidates
}

// candidates is what an adapter hands back before deduplication.
type candidates struct {
	records       []genetics.StrainGenetics
	totalProducts int
	withStrain    int
}

type Options struct {
	// follow product detail-page URLs when the payload itself had no
	// usable lineage text; off by default since it is slow and chatty
	EnableDetailPages bool
	Detail            detail.Options
}

// Extractor routes menu payloads to retailer adapters and merges their
// output into a deduplicated ExtractionResult.
type Extractor struct {
	pages *detail.Set
}

func NewExtractor(opts Options) *Extractor {
	e := &Extractor{}
	if opts.EnableDetailPages {
		e.pages = detail.NewSet(opts.Detail)
	}
	return e
}

// ExtractFromMenu extracts every parseable strain lineage from one menu
// payload. It never returns an error: a payload that cannot be parsed,
// or an adapter that finds nothing, yields a result with Errors set or
// zero counts. Per-item failures must not abort a backfill sweep.
func (e *Extractor) ExtractFromMenu(ctx context.Context, payload []byte, retailerID, sourceFile string) (result genetics.ExtractionResult) {
	ctx, span := tracer.Start(ctx, "extractor:ExtractFromMenu")
	defer span.End()

	result = genetics.ExtractionResult{
		SourceFile:  sourceFile,
		Dispensary:  retailerID,
		ProcessedAt: time.Now().UTC(),
	}
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "adapter panicked")
			result.Errors = append(result.Errors, fmt.Sprintf("extract %s: %v", retailerID, r))
		}
	}()

	root, err := jason.NewObjectFromBytes(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse menu payload")
		result.Errors = append(result.Errors, fmt.Sprintf("parse payload: %s", err))
		return result
	}

	retailer := MatchRetailer(retailerID)
	cands := retailer.adapter().extract(ctx, root, e)

	result.TotalProducts = cands.totalProducts
	result.ProductsWithStrain = cands.withStrain
	result.ProductsWithGenetics = len(cands.records)

	// first observation of a slug within a payload wins
	seen := map[string]bool{}
	for _, g := range cands.records {
		if seen[g.StrainSlug] {
			continue
		}
		seen[g.StrainSlug] = true
		g.SourceDispensary = retailerID
		g.SourceFile = sourceFile
		result.GeneticsFound = append(result.GeneticsFound, g)
	}
	result.UniqueStrains = len(result.GeneticsFound)

	slog.DebugContext(
		ctx, "extracted menu",
		"retailer", retailer.String(),
		"source_file", sourceFile,
		"total_products", result.TotalProducts,
		"unique_strains", result.UniqueStrains,
	)
	return result
}

// ExtractFromProduct runs extraction over a single product object by
// wrapping it in a one-product menu.
func (e *Extractor) ExtractFromProduct(ctx context.Context, product []byte, retailerID string) *genetics.StrainGenetics {
	wrapped := append(append([]byte(`{"products":[`), product...), []byte(`]}`)...)
	result := e.ExtractFromMenu(ctx, wrapped, retailerID, "")
	if len(result.GeneticsFound) == 0 {
		return nil
	}
	return &result.GeneticsFound[0]
}

// scrapeDetail follows a product page URL through the given scraper.
// Any failure is logged and treated as no-match.
func (e *Extractor) scrapeDetail(ctx context.Context, scraper *detail.Scraper, productURL, strainName string) (genetics.StrainGenetics, bool) {
	if e.pages == nil || scraper == nil || productURL == "" {
		return genetics.StrainGenetics{}, false
	}
	found, ok, err := scraper.ScrapeProduct(ctx, productURL)
	if err != nil {
		slog.DebugContext(ctx, "product page scrape failed", "url", productURL, "err", err)
		return genetics.StrainGenetics{}, false
	}
	if !ok {
		return genetics.StrainGenetics{}, false
	}
	g := genetics.NewStrainGenetics(strainName, found.Parent1, found.Parent2)
	g.SourceURL = found.URL
	return g, true
}
