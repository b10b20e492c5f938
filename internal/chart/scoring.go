package chart

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

// correlationLabels are the axis captions for analysis.CorrelationFields.
var correlationLabels = map[string]string{
	dataset.ColProduction:  "Produksi",
	dataset.ColPrice:       "Harga",
	dataset.ColLandArea:    "Luas Lahan",
	dataset.ColConsumption: "Konsumsi",
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ. Null
// coefficients become NaN so the heat map paints them with its NaN colour.
type correlationGrid struct {
	c analysis.Correlation
}

func (g correlationGrid) Dims() (c, r int) {
	n := len(g.c.Fields)
	return n, n
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

func (g correlationGrid) Z(c, r int) float64 {
	v := g.c.Values[r][c]
	if !v.Valid {
		return math.NaN()
	}
	return v.Value
}

func correlationHeatmap(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Korelasi antara Produksi, Harga, Luas Lahan, dan Konsumsi", "", "")

	corr := d.Summary.Correlation
	n := len(corr.Fields)
	if n == 0 {
		return p, nil
	}

	h := plotter.NewHeatMap(correlationGrid{c: corr}, palette.Heat(20, 1))
	h.Min, h.Max = -1, 1
	h.NaN = neutralGray
	p.Add(h)

	ticks := make(plot.ConstantTicks, n)
	for i, f := range corr.Fields {
		label, ok := correlationLabels[f]
		if !ok {
			label = f
		}
		ticks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks

	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			v := corr.Values[r][c]
			if v.Valid {
				texts = append(texts, strconv.FormatFloat(v.Value, 'f', 2, 64))
			} else {
				texts = append(texts, "n/a")
			}
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)
	return p, nil
}

func potential(d Data, opts Options) (*plot.Plot, error) {
	p := newPlot("Wilayah dengan Potensi Produksi Tertinggi", "Wilayah", "Skor Potensi")

	rows := d.Summary.Recommendations
	if len(rows) > opts.TopN {
		rows = rows[:opts.TopN]
	}
	names := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		names[i] = shortRegionName(r.Region)
		values[i] = r.PotentialScore
	}

	if err := barChart(p, names, values, twoDecimals(values), tierColor(rows)); err != nil {
		return nil, err
	}
	p.Y.Max = 1.1
	return p, nil
}

// tierColor colours the bars by the leading region's tier.
func tierColor(rows []analysis.Recommendation) color.Color {
	if len(rows) == 0 {
		return steelBlue
	}
	switch rows[0].Tier {
	case analysis.TierLeading:
		return darkGreen
	case analysis.TierPotential:
		return orange
	default:
		return crimson
	}
}

func marketShare(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Analisis Kompetisi (Market Share)", "Wilayah", "Total Produksi (kg)")

	names := make([]string, len(d.Summary.MarketShare))
	values := make([]float64, len(d.Summary.MarketShare))
	texts := make([]string, len(d.Summary.MarketShare))
	for i, s := range d.Summary.MarketShare {
		names[i] = shortRegionName(s.Region)
		values[i] = s.SumProduction
		texts[i] = strconv.FormatFloat(s.SharePercent, 'f', 1, 64) + "%"
	}

	if err := barChart(p, names, values, texts, forestGreen); err != nil {
		return nil, err
	}
	return p, nil
}

// risk plots production standard deviation. Regions with a single record
// have no deviation and are left out.
func risk(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Analisis Risiko Produksi", "Wilayah", "Standar Deviasi Produksi (kg)")

	var (
		names  []string
		values []float64
	)
	for _, r := range d.Summary.Risk {
		if !r.StdDevProduction.Valid {
			continue
		}
		names = append(names, shortRegionName(r.Region))
		values = append(values, r.StdDevProduction.Value)
	}

	if err := barChart(p, names, values, twoDecimals(values), crimson); err != nil {
		return nil, err
	}
	return p, nil
}
