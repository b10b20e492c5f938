// Package cache memoizes summaries by the content of the table they were
// computed from, so repeated dashboard renders of an unchanged dataset do
// not re-aggregate.
package cache

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

// DefaultSize is the number of distinct tables kept.
const DefaultSize = 16

// SummarizeFunc computes a summary; analysis.Summarize in production.
type SummarizeFunc func(dataset.Table) (*analysis.Summary, error)

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Summaries is an LRU of summaries keyed by Fingerprint. Safe for
// concurrent use. Cached summaries are shared and must not be mutated.
type Summaries struct {
	entries   *lru.Cache[uint64, *analysis.Summary]
	summarize SummarizeFunc
	logger    *slog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a cache holding up to size summaries computed with fn.
// A nil fn uses analysis.Summarize; a nil logger discards output.
func New(size int, fn SummarizeFunc, logger *slog.Logger) (*Summaries, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if fn == nil {
		fn = analysis.Summarize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	entries, err := lru.New[uint64, *analysis.Summary](size)
	if err != nil {
		return nil, fmt.Errorf("create summary cache: %w", err)
	}

	return &Summaries{entries: entries, summarize: fn, logger: logger}, nil
}

// Get returns the summary of t, computing it on a miss. Errors are not cached.
func (c *Summaries) Get(t dataset.Table) (*analysis.Summary, error) {
	key := Fingerprint(t)
	if s, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return s, nil
	}

	c.misses.Add(1)
	s, err := c.summarize(t)
	if err != nil {
		return nil, err
	}
	if evicted := c.entries.Add(key, s); evicted {
		c.logger.Debug("summary cache eviction", slog.Int("size", c.entries.Len()))
	}
	return s, nil
}

// Purge drops every cached summary.
func (c *Summaries) Purge() {
	c.entries.Purge()
}

// Stats returns hit and miss counters and the current size.
func (c *Summaries) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.entries.Len(),
	}
}

// Fingerprint hashes the table's columns and records in order. Tables with
// the same content in the same order share a fingerprint.
func Fingerprint(t dataset.Table) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(s)
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	for _, c := range t.Columns {
		writeString(c)
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(len(t.Records)))
	_, _ = d.Write(buf[:])

	for _, r := range t.Records {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(r.Year)))
		_, _ = d.Write(buf[:])
		writeString(r.Region)
		writeFloat(r.Production)
		writeString(r.RainfallLevel)
		writeString(r.MarketDemand)
		writeFloat(r.Price)
		writeFloat(r.LandArea)
		writeFloat(r.Consumption)
	}
	return d.Sum64()
}
