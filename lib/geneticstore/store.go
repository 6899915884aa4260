// Package geneticstore persists strain-genetics records into alphabetic
// partitions with a global lookup index on top of a blob backing.
//
// Storage layout (stable contract, do not change without a migration):
//
//	index/strains-index.json   quick lookup index
//	partitions/a.json          strains whose slug starts with 'a'
//	partitions/b.json          ...
//	partitions/other.json      slugs starting with a non-letter
package geneticstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"straindex-backend/lib/blob"
	"straindex-backend/lib/genetics"
	"straindex-backend/lib/textutil"

	"dario.cat/mergo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("straindex.lib.geneticstore")

const (
	IndexPath        = "index/strains-index.json"
	PartitionsPrefix = "partitions"
)

// IndexEntry is the lightweight projection of one strain kept in the
// global index for O(1) existence/partition lookups.
type IndexEntry struct {
	Name       string `json:"name"`
	Partition  string `json:"partition"`
	HasLineage bool   `json:"has_lineage"`
}

// Index maps every stored slug to its partition. TotalStrains always
// equals len(Strains); Partitions lists every partition referenced.
type Index struct {
	UpdatedAt    time.Time             `json:"updated_at"`
	TotalStrains int                   `json:"total_strains"`
	Partitions   []string              `json:"partitions"`
	Strains      map[string]IndexEntry `json:"strains"`
}

func emptyIndex() *Index {
	return &Index{
		UpdatedAt:  time.Now().UTC(),
		Partitions: []string{},
		Strains:    map[string]IndexEntry{},
	}
}

// Partition holds the full records for one slug bucket.
type Partition struct {
	Strains   []genetics.StrainGenetics `json:"strains"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// SaveStats reports what a SaveGenetics call changed.
type SaveStats struct {
	Total              int      `json:"total"`
	New                int      `json:"new"`
	Updated            int      `json:"updated"`
	PartitionsModified []string `json:"partitions_modified"`
}

// Stats summarizes the stored dataset.
type Stats struct {
	TotalStrains       int       `json:"total_strains"`
	Partitions         int       `json:"partitions"`
	StrainsWithLineage int       `json:"strains_with_lineage"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PartitionKey returns the bucket a slug belongs to: its first letter,
// or "other" when the slug starts with a non-letter.
func PartitionKey(slug string) string {
	if slug == "" {
		return "other"
	}
	c := slug[0]
	if c >= 'a' && c <= 'z' {
		return string(c)
	}
	return "other"
}

// Store owns the partition files and the index; nothing else writes
// them. Loaded partitions and the index are cached for the life of the
// instance. The write path is serialized by an instance mutex, so a
// single Store is safe for concurrent callers; two Store instances
// flushing overlapping partitions still race (last flush wins).
type Store struct {
	backing blob.Store

	mu         sync.Mutex
	index      *Index
	partitions map[string]*Partition
	modified   map[string]bool
}

// New wraps an already-opened blob backing.
func New(backing blob.Store) *Store {
	return &Store{
		backing:    backing,
		partitions: map[string]*Partition{},
		modified:   map[string]bool{},
	}
}

// Open connects the configured blob backing (S3 with filesystem
// fallback) and wraps it.
func Open(ctx context.Context, opts blob.Options) (*Store, error) {
	backing, err := blob.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(backing), nil
}

// LoadIndex returns the cached index, loading it from storage on first
// access. A missing index yields an empty well-formed one, not an error.
func (s *Store) LoadIndex(ctx context.Context) (*Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadIndexLocked(ctx)
}

func (s *Store) loadIndexLocked(ctx context.Context) (*Index, error) {
	if s.index != nil {
		return s.index, nil
	}

	data, err := s.backing.Get(ctx, IndexPath)
	if blob.IsNotExist(err) {
		s.index = emptyIndex()
		return s.index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	index := emptyIndex()
	if err := json.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if index.Strains == nil {
		index.Strains = map[string]IndexEntry{}
	}
	slog.DebugContext(ctx, "loaded strain index", "total_strains", index.TotalStrains)
	s.index = index
	return s.index, nil
}

// LoadPartition returns the cached partition, loading it on first
// access. A partition that does not exist yet yields an empty shell.
func (s *Store) LoadPartition(ctx context.Context, key string) (*Partition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadPartitionLocked(ctx, key)
}

func (s *Store) loadPartitionLocked(ctx context.Context, key string) (*Partition, error) {
	if p, ok := s.partitions[key]; ok {
		return p, nil
	}

	data, err := s.backing.Get(ctx, partitionPath(key))
	if blob.IsNotExist(err) {
		p := &Partition{}
		s.partitions[key] = p
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load partition %q: %w", key, err)
	}

	p := &Partition{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode partition %q: %w", key, err)
	}
	s.partitions[key] = p
	return p, nil
}

// SaveGenetics persists records grouped by partition. When merge is
// true an existing slug is updated field-by-field (non-empty incoming
// fields win); when false an existing slug is left untouched. All
// modified partitions and the index are flushed once at the end; a
// flush failure propagates since it means the batch is not durable.
func (s *Store) SaveGenetics(ctx context.Context, records []genetics.StrainGenetics, merge bool) (SaveStats, error) {
	ctx, span := tracer.Start(ctx, "store:SaveGenetics")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := SaveStats{Total: len(records)}

	index, err := s.loadIndexLocked(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to load index")
		return stats, err
	}

	byPartition := map[string][]genetics.StrainGenetics{}
	for _, g := range records {
		if g.StrainSlug == "" {
			// never persist an unkeyed record
			continue
		}
		key := PartitionKey(g.StrainSlug)
		byPartition[key] = append(byPartition[key], g)
	}

	for key, incoming := range byPartition {
		partition, err := s.loadPartitionLocked(ctx, key)
		if err != nil {
			span.SetStatus(codes.Error, "failed to load partition")
			return stats, err
		}

		position := map[string]int{}
		for i, g := range partition.Strains {
			position[g.StrainSlug] = i
		}

		for _, g := range incoming {
			if i, exists := position[g.StrainSlug]; exists {
				if !merge {
					continue
				}
				existing := partition.Strains[i]
				if err := mergo.Merge(&existing, g, mergo.WithOverride, mergo.WithTransformers(timeTransformer{})); err != nil {
					return stats, fmt.Errorf("merge %q: %w", g.StrainSlug, err)
				}
				partition.Strains[i] = existing
				index.Strains[g.StrainSlug] = indexEntry(existing, key)
				stats.Updated++
				continue
			}

			position[g.StrainSlug] = len(partition.Strains)
			partition.Strains = append(partition.Strains, g)
			index.Strains[g.StrainSlug] = indexEntry(g, key)
			stats.New++
		}

		partition.UpdatedAt = time.Now().UTC()
		s.modified[key] = true
		stats.PartitionsModified = append(stats.PartitionsModified, key)
	}
	sort.Strings(stats.PartitionsModified)

	index.TotalStrains = len(index.Strains)
	index.UpdatedAt = time.Now().UTC()
	index.Partitions = unionSorted(index.Partitions, stats.PartitionsModified)

	if err := s.flushLocked(ctx); err != nil {
		span.SetStatus(codes.Error, "flush failed")
		return stats, err
	}

	slog.InfoContext(
		ctx, "saved genetics",
		"total", stats.Total,
		"new", stats.New,
		"updated", stats.Updated,
		"partitions", stats.PartitionsModified,
	)
	return stats, nil
}

// flushLocked persists every modified partition and the index.
func (s *Store) flushLocked(ctx context.Context) error {
	for key := range s.modified {
		data, err := json.MarshalIndent(s.partitions[key], "", "  ")
		if err != nil {
			return fmt.Errorf("encode partition %q: %w", key, err)
		}
		if err := s.backing.Put(ctx, partitionPath(key), data); err != nil {
			return fmt.Errorf("write partition %q: %w", key, err)
		}
	}

	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := s.backing.Put(ctx, IndexPath, data); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	s.modified = map[string]bool{}
	return nil
}

// RefreshIndex rebuilds the index from scratch by scanning every
// partition in storage. This is the repair path when the incremental
// index drifts from partition contents; it is idempotent.
func (s *Store) RefreshIndex(ctx context.Context) (*Index, error) {
	ctx, span := tracer.Start(ctx, "store:RefreshIndex")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.backing.List(ctx, PartitionsPrefix+"/", 0)
	if err != nil {
		span.SetStatus(codes.Error, "failed to list partitions")
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	refreshed := emptyIndex()
	for _, blobKey := range keys {
		if !strings.HasSuffix(blobKey, ".json") {
			continue
		}
		key := strings.TrimSuffix(path.Base(blobKey), ".json")

		// bypass the cache so a repair sees what is actually stored
		delete(s.partitions, key)
		partition, err := s.loadPartitionLocked(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable partition", "partition", key, "err", err.Error())
			continue
		}

		refreshed.Partitions = append(refreshed.Partitions, key)
		for _, g := range partition.Strains {
			if g.StrainSlug == "" {
				continue
			}
			refreshed.Strains[g.StrainSlug] = indexEntry(g, key)
		}
	}

	sort.Strings(refreshed.Partitions)
	refreshed.TotalStrains = len(refreshed.Strains)
	s.index = refreshed

	if err := s.flushLocked(ctx); err != nil {
		span.SetStatus(codes.Error, "flush failed")
		return nil, err
	}

	slog.InfoContext(
		ctx, "refreshed strain index",
		"total_strains", refreshed.TotalStrains,
		"partitions", len(refreshed.Partitions),
	)
	return refreshed, nil
}

// GetStrain looks a strain up by display name via the two-hop path:
// index for the partition, then a scan of that single partition.
// Returns nil when the strain is unknown.
func (s *Store) GetStrain(ctx context.Context, name string) (*genetics.StrainGenetics, error) {
	ctx, span := tracer.Start(ctx, "store:GetStrain")
	defer span.End()

	slug := textutil.Slug(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndexLocked(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := index.Strains[slug]
	if !ok {
		return nil, nil
	}

	key := entry.Partition
	if key == "" {
		key = PartitionKey(slug)
	}
	partition, err := s.loadPartitionLocked(ctx, key)
	if err != nil {
		return nil, err
	}
	for i := range partition.Strains {
		if partition.Strains[i].StrainSlug == slug {
			g := partition.Strains[i]
			return &g, nil
		}
	}
	return nil, nil
}

// GetLineage returns the parent pair for a strain, or ok=false when the
// strain is unknown or its parentage is not recorded.
func (s *Store) GetLineage(ctx context.Context, name string) (parent1, parent2 string, ok bool, err error) {
	g, err := s.GetStrain(ctx, name)
	if err != nil {
		return "", "", false, err
	}
	if g == nil || !g.HasLineage() {
		return "", "", false, nil
	}
	return g.Parent1, g.Parent2, true, nil
}

// GetStats summarizes the dataset from the index alone.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	index, err := s.LoadIndex(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		TotalStrains: index.TotalStrains,
		Partitions:   len(index.Partitions),
		UpdatedAt:    index.UpdatedAt,
	}
	for _, entry := range index.Strains {
		if entry.HasLineage {
			stats.StrainsWithLineage++
		}
	}
	return stats, nil
}

// Suggest returns stored display names whose slug is similar to the
// query, most similar first. Used for "did you mean" hints on a failed
// lookup; never used to resolve a lookup automatically.
func (s *Store) Suggest(ctx context.Context, name string, max int) ([]string, error) {
	index, err := s.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return suggestFromIndex(index, name, max), nil
}

// mergo cannot set time.Time's unexported fields by recursion, so
// timestamps are replaced wholesale when the incoming one is non-zero.
type timeTransformer struct{}

func (timeTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf(time.Time{}) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.Interface().(time.Time).IsZero() {
			dst.Set(src)
		}
		return nil
	}
}

func indexEntry(g genetics.StrainGenetics, partition string) IndexEntry {
	return IndexEntry{
		Name:       g.StrainName,
		Partition:  partition,
		HasLineage: g.HasLineage(),
	}
}

func partitionPath(key string) string {
	return fmt.Sprintf("%s/%s.json", PartitionsPrefix, key)
}

func unionSorted(a, b []string) []string {
	seen := map[string]bool{}
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		seen[s] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
