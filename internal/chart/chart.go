// Package chart renders the dashboard charts as PNG images with gonum/plot.
// Every chart is built from a precomputed summary; only the price factor
// scatter reads the raw records.
package chart

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

// Chart keys. They double as PNG file stems and dashboard URL segments.
const (
	ProductionTrend = "trend_produksi"
	NationalTrend   = "trend_total"
	TopRegions      = "wilayah_tertinggi"
	Rainfall        = "curah_hujan"
	MarketDemand    = "permintaan_pasar"
	RegionPrice     = "harga_wilayah"
	Correlation     = "korelasi"
	Potential       = "skor_potensi"
	Seasonality     = "seasonality"
	Projection      = "proyeksi_produksi"
	MarketShare     = "market_share"
	PriceFactor     = "faktor_harga"
	Risk            = "risiko_produksi"
	Opportunity     = "peluang_pasar"
)

var (
	// ErrUnknownChart is returned for a key not listed by Names.
	ErrUnknownChart = errors.New("chart: unknown chart")
	// ErrNoSummary is returned when Data carries no summary.
	ErrNoSummary = errors.New("chart: summary is required")
)

// Data is the input shared by every chart.
type Data struct {
	Table   dataset.Table
	Summary *analysis.Summary
}

// Options control chart size and how many regions ranked charts show.
type Options struct {
	TopN   int
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns a 10x6 inch canvas with the top five regions.
func DefaultOptions() Options {
	return Options{TopN: 5, Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TopN <= 0 {
		o.TopN = def.TopN
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	return o
}

type builder func(Data, Options) (*plot.Plot, error)

var order = []string{
	ProductionTrend,
	NationalTrend,
	TopRegions,
	Rainfall,
	MarketDemand,
	RegionPrice,
	Correlation,
	Potential,
	Seasonality,
	Projection,
	MarketShare,
	PriceFactor,
	Risk,
	Opportunity,
}

var builders = map[string]builder{
	ProductionTrend: productionTrend,
	NationalTrend:   nationalTrend,
	TopRegions:      topRegions,
	Rainfall:        rainfall,
	MarketDemand:    marketDemand,
	RegionPrice:     regionPrice,
	Correlation:     correlationHeatmap,
	Potential:       potential,
	Seasonality:     seasonality,
	Projection:      projection,
	MarketShare:     marketShare,
	PriceFactor:     priceFactor,
	Risk:            risk,
	Opportunity:     opportunity,
}

// Names lists every chart key in dashboard order.
func Names() []string {
	return slices.Clone(order)
}

// Exists reports whether name is a known chart key.
func Exists(name string) bool {
	_, ok := builders[name]
	return ok
}

// FileName is the PNG file name used for a chart key.
func FileName(name string) string {
	return name + ".png"
}

// Build assembles the named chart without rendering it.
func Build(name string, d Data, opts Options) (*plot.Plot, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if d.Summary == nil {
		return nil, ErrNoSummary
	}
	p, err := b(d, opts.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", name, err)
	}
	return p, nil
}

// Render writes the named chart to w as PNG.
func Render(w io.Writer, name string, d Data, opts Options) error {
	opts = opts.withDefaults()
	p, err := Build(name, d, opts)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("chart %s: %w", name, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chart %s: write png: %w", name, err)
	}
	return nil
}

// SaveAll writes every chart into dir and returns the written paths.
func SaveAll(dir string, d Data, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	paths := make([]string, 0, len(order))
	for _, name := range order {
		p, err := Build(name, d, opts)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(name))
		if err := p.Save(opts.Width, opts.Height, path); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
