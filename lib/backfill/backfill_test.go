package backfill

import (
	"context"
	"fmt"
	"testing"
	"time"

	"straindex-backend/lib/blob"
	"straindex-backend/lib/geneticstore"
	"straindex-backend/lib/menus"
	"straindex-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestMonthSequenceLastN(t *testing.T) {
	now := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)

	seq, err := MonthSequence("", "", 3, now)
	require.NoError(t, err)
	require.Equal(t, []Month{
		{2025, time.December},
		{2026, time.January},
		{2026, time.February},
	}, seq)
}

func TestMonthSequenceRange(t *testing.T) {
	seq, err := MonthSequence("2025-11", "2026-01", 0, time.Now())
	require.NoError(t, err)
	require.Equal(t, []Month{
		{2025, time.November},
		{2025, time.December},
		{2026, time.January},
	}, seq)

	_, err = MonthSequence("2025-13", "2026-01", 0, time.Now())
	require.Error(t, err)
}

func TestMonthSequenceDefault(t *testing.T) {
	now := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	seq, err := MonthSequence("", "", 0, now)
	require.NoError(t, err)
	require.Equal(t, []Month{{2026, time.July}}, seq)
}

func TestMonthPrefix(t *testing.T) {
	m := Month{2026, time.January}
	require.Equal(t, "dispensaries/trulieve/2026/01/", m.Prefix("trulieve"))
	require.Equal(t, "2026-01", m.String())
}

func seedArchive(t *testing.T, source blob.Store) {
	t.Helper()
	ctx := context.Background()

	payloads := map[string]string{
		"dispensaries/curaleaf/2026/07/01/menu.json": `{"products":[
			{"name": "Blue Dream - Flower", "description": "Lineage: Blueberry x Haze"}
		]}`,
		"dispensaries/curaleaf/2026/07/02/menu.json": `{"products":[
			{"name": "Gelato - Flower", "description": "Lineage: Thin Mint GSC x Sunset Sherbet"},
			{"name": "Blue Dream - Vape", "description": "Lineage: Blueberry x Haze"}
		]}`,
		"dispensaries/curaleaf/2026/07/02/manifest.txt": `not a payload`,
		"dispensaries/curaleaf/2026/08/01/menu.json": `{"products":[
			{"name": "Purple Punch - Flower", "description": "Lineage: Larry OG x Granddaddy Purple"}
		]}`,
	}
	for key, body := range payloads {
		require.NoError(t, source.Put(ctx, key, []byte(body)))
	}
}

func TestRunSweepAndSave(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	seedArchive(t, source)

	store := geneticstore.New(blob.NewMemory())
	runner := &Runner{
		Source:    source,
		Store:     store,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	report, err := runner.Run(ctx, Options{
		Dispensary: "curaleaf",
		Prefix:     "dispensaries/curaleaf/2026/07/",
		Save:       true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.BlobsListed)
	require.Equal(t, 2, report.BlobsProcessed)
	require.Equal(t, 0, report.BlobsFailed)
	// blue-dream appears in both payloads but is collected once
	require.Len(t, report.Records, 2)
	require.True(t, report.Saved)

	got, err := store.GetStrain(ctx, "Blue Dream")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Blueberry", got.Parent1)

	index, err := store.LoadIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, index.TotalStrains)
}

func TestRunDefaultPrefixAndMax(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	seedArchive(t, source)

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	report, err := runner.Run(ctx, Options{Dispensary: "curaleaf", MaxBlobs: 1})
	require.NoError(t, err)
	require.Equal(t, "dispensaries/curaleaf/", report.Prefix)
	require.Equal(t, 1, report.BlobsListed)
	require.False(t, report.Saved)
}

func TestRunNothingExtractedSkipsSave(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	require.NoError(t, source.Put(ctx, "dispensaries/muv/2026/07/menu.json", []byte(`{"items":[]}`)))

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	report, err := runner.Run(ctx, Options{Dispensary: "muv", Save: true})
	require.NoError(t, err)
	require.False(t, report.Saved)
	require.Empty(t, report.Records)
}

func TestRunCountsBadPayloads(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	require.NoError(t, source.Put(ctx, "dispensaries/curaleaf/2026/07/bad.json", []byte(`{broken`)))
	require.NoError(t, source.Put(ctx, "dispensaries/curaleaf/2026/07/good.json",
		[]byte(`{"products":[{"name": "Blue Dream - Flower", "description": "Lineage: Blueberry x Haze"}]}`)))

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	report, err := runner.Run(ctx, Options{Dispensary: "curaleaf"})
	require.NoError(t, err)
	require.Equal(t, 1, report.BlobsFailed)
	require.Equal(t, 1, report.BlobsProcessed)
	require.Len(t, report.Records, 1)
}

func TestRunRecordsJobLedger(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	seedArchive(t, source)

	svc, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "backfill", WithJobs: true})
	defer cleanup()

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
		Jobs:      svc.Jobs,
	}

	_, err := runner.Run(ctx, Options{Dispensary: "curaleaf", Prefix: "dispensaries/curaleaf/2026/07/"})
	require.NoError(t, err)

	runs, err := svc.Jobs.RecentRuns(ctx, "curaleaf", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 2, runs[0].BlobsProcessed)
	require.Equal(t, 2, runs[0].StrainsFound)
	require.Empty(t, runs[0].Error)
}

type failingList struct {
	blob.Store
}

func (f failingList) List(ctx context.Context, prefix string, max int) ([]string, error) {
	return nil, fmt.Errorf("archive unavailable")
}

type failingPut struct {
	blob.Store
}

func (f failingPut) Put(ctx context.Context, key string, data []byte) error {
	return fmt.Errorf("flush unavailable")
}

type recordingList struct {
	blob.Store
	max int
}

func (r *recordingList) List(ctx context.Context, prefix string, max int) ([]string, error) {
	r.max = max
	return r.Store.List(ctx, prefix, max)
}

func TestRunListFailureAborts(t *testing.T) {
	runner := &Runner{
		Source:    failingList{blob.NewMemory()},
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	_, err := runner.Run(context.Background(), Options{Dispensary: "curaleaf"})
	require.Error(t, err)
}

func TestRunSlices(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	seedArchive(t, source)

	store := geneticstore.New(blob.NewMemory())
	runner := &Runner{
		Source:    source,
		Store:     store,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	months := []Month{
		{2026, time.July},
		{2026, time.August},
	}
	reports, err := runner.RunSlices(ctx, months, Options{Dispensary: "curaleaf", Save: true})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "dispensaries/curaleaf/2026/07/", reports[0].Prefix)
	require.Equal(t, "dispensaries/curaleaf/2026/08/", reports[1].Prefix)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalStrains)
}

func TestRunSlicesContinuesPastFailingSlice(t *testing.T) {
	ctx := context.Background()
	source := blob.NewMemory()
	seedArchive(t, source)

	// every partition flush fails, so each slice's save errors out
	store := geneticstore.New(failingPut{blob.NewMemory()})
	runner := &Runner{
		Source:    source,
		Store:     store,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	months := []Month{
		{2026, time.July},
		{2026, time.August},
	}
	reports, err := runner.RunSlices(ctx, months, Options{Dispensary: "curaleaf", Save: true})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Contains(t, reports[0].Error, "save genetics")
	require.Contains(t, reports[1].Error, "save genetics")
	require.False(t, reports[0].Saved)
	require.False(t, reports[1].Saved)
	// extraction still happened in both slices despite the flush failures
	require.Len(t, reports[0].Records, 2)
	require.Len(t, reports[1].Records, 1)
}

func TestRunSlicesStopsOnCancel(t *testing.T) {
	source := blob.NewMemory()
	seedArchive(t, source)

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := runner.RunSlices(ctx, []Month{{2026, time.July}}, Options{Dispensary: "curaleaf"})
	require.Error(t, err)
	require.Empty(t, reports)
}

func TestRunBoundsListing(t *testing.T) {
	ctx := context.Background()
	source := &recordingList{Store: blob.NewMemory()}
	seedArchive(t, source)

	runner := &Runner{
		Source:    source,
		Extractor: menus.NewExtractor(menus.Options{}),
	}

	_, err := runner.Run(ctx, Options{Dispensary: "curaleaf", MaxBlobs: 1})
	require.NoError(t, err)
	require.Equal(t, 2, source.max)
}
