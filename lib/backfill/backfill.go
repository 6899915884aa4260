// Package backfill sweeps historical menu payloads out of blob storage
// and runs genetics extraction over them, optionally persisting the
// results. Sweeps are bounded per invocation so a months-deep archive
// can be worked through in controlled slices.
package backfill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"straindex-backend/lib/blob"
	"straindex-backend/lib/genetics"
	"straindex-backend/lib/geneticstore"
	"straindex-backend/lib/jobtrack"
	"straindex-backend/lib/menus"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("backfill")

const DefaultMaxBlobs = 200

type Options struct {
	Dispensary string
	// Prefix overrides the default dispensaries/<dispensary>/ listing
	// root, used by the slice runner to scope a sweep to one month
	Prefix   string
	MaxBlobs int
	// Save persists extracted records and refreshes the index once at
	// the end of the sweep
	Save bool
}

func (o Options) withDefaults() Options {
	if o.MaxBlobs <= 0 {
		o.MaxBlobs = DefaultMaxBlobs
	}
	if o.Prefix == "" {
		o.Prefix = fmt.Sprintf("dispensaries/%s/", o.Dispensary)
	}
	return o
}

// Report summarizes one sweep. Per-blob failures are counted, not
// fatal; only listing and persistence failures abort a sweep.
type Report struct {
	Prefix               string
	BlobsListed          int
	BlobsProcessed       int
	BlobsFailed          int
	ProductsWithGenetics int
	Records              []genetics.StrainGenetics
	Saved                bool
	// Error carries a sweep-aborting failure when the sweep ran as one
	// slice of a multi-slice job, where it must not stop later slices
	Error string
}

// Runner wires the payload archive to the extractor and, when saving,
// to the genetics store. Store may be nil when sweeps never save.
// Jobs may be nil to skip run tracking.
type Runner struct {
	Source    blob.Store
	Store     *geneticstore.Store
	Extractor *menus.Extractor
	Jobs      *jobtrack.DB
}

// Run sweeps every .json payload under the prefix, capped at MaxBlobs.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	ctx, span := tracer.Start(ctx, "runner:Run")
	defer span.End()

	opts = opts.withDefaults()
	report := Report{Prefix: opts.Prefix}

	var runID int64
	if r.Jobs != nil {
		id, err := r.Jobs.StartRun(ctx, opts.Dispensary, opts.Prefix)
		if err != nil {
			slog.WarnContext(ctx, "failed to record run start", "err", err)
		} else {
			runID = id
		}
	}

	err := r.sweep(ctx, opts, &report)
	if r.Jobs != nil && runID != 0 {
		result := jobtrack.RunResult{
			BlobsProcessed: report.BlobsProcessed,
			BlobsFailed:    report.BlobsFailed,
			StrainsFound:   len(report.Records),
			Saved:          report.Saved,
		}
		if err != nil {
			result.Error = err.Error()
		}
		if ferr := r.Jobs.FinishRun(ctx, runID, result); ferr != nil {
			slog.WarnContext(ctx, "failed to record run finish", "err", ferr)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sweep failed")
	}
	return report, err
}

func (r *Runner) sweep(ctx context.Context, opts Options, report *Report) error {
	// non-payload keys under the prefix make the listing overshoot, so
	// ask for a small multiple of the cap instead of the whole month
	keys, err := r.Source.List(ctx, opts.Prefix, opts.MaxBlobs*2)
	if err != nil {
		return fmt.Errorf("list %q: %w", opts.Prefix, err)
	}

	var names []string
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		names = append(names, key)
		if len(names) >= opts.MaxBlobs {
			break
		}
	}
	report.BlobsListed = len(names)
	slog.InfoContext(ctx, "listed payloads", "prefix", opts.Prefix, "count", len(names), "max", opts.MaxBlobs)

	seen := map[string]bool{}
	for _, name := range names {
		payload, err := r.Source.Get(ctx, name)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch payload", "key", name, "err", err)
			report.BlobsFailed++
			continue
		}

		result := r.Extractor.ExtractFromMenu(ctx, payload, opts.Dispensary, name)
		if len(result.Errors) > 0 {
			slog.WarnContext(ctx, "payload extraction errored", "key", name, "errors", strings.Join(result.Errors, "; "))
			report.BlobsFailed++
			continue
		}

		report.BlobsProcessed++
		report.ProductsWithGenetics += result.ProductsWithGenetics
		for _, g := range result.GeneticsFound {
			if seen[g.StrainSlug] {
				continue
			}
			seen[g.StrainSlug] = true
			report.Records = append(report.Records, g)
		}
		slog.InfoContext(
			ctx, "processed payload",
			"key", name,
			"strains", result.UniqueStrains,
			"products", result.ProductsWithGenetics,
		)
	}

	slog.InfoContext(
		ctx, "sweep complete",
		"prefix", opts.Prefix,
		"blobs", report.BlobsListed,
		"failed", report.BlobsFailed,
		"products_with_genetics", report.ProductsWithGenetics,
		"strains", len(report.Records),
	)

	if !opts.Save {
		return nil
	}
	if len(report.Records) == 0 {
		slog.InfoContext(ctx, "nothing extracted, skipping save")
		return nil
	}
	if r.Store == nil {
		return fmt.Errorf("save requested but no genetics store configured")
	}

	stats, err := r.Store.SaveGenetics(ctx, report.Records, true)
	if err != nil {
		return fmt.Errorf("save genetics: %w", err)
	}
	if _, err := r.Store.RefreshIndex(ctx); err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	report.Saved = true
	slog.InfoContext(ctx, "saved genetics", "new", stats.New, "updated", stats.Updated)
	return nil
}

// RunSlices runs one bounded sweep per month, oldest first. A failed
// slice is logged and recorded in its Report (and the jobs ledger);
// later slices still run, so one bad month cannot sink a long job.
// Only context cancellation stops the loop early.
func (r *Runner) RunSlices(ctx context.Context, months []Month, opts Options) ([]Report, error) {
	var reports []Report
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		sliceOpts := opts
		sliceOpts.Prefix = month.Prefix(opts.Dispensary)
		slog.InfoContext(ctx, "starting slice", "month", month.String(), "prefix", sliceOpts.Prefix)

		report, err := r.Run(ctx, sliceOpts)
		if err != nil {
			report.Error = err.Error()
			slog.WarnContext(ctx, "slice failed, continuing", "month", month.String(), "err", err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
