package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	steelBlue   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	forestGreen = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	darkGreen   = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	darkRed     = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	orange      = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	crimson     = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	royalBlue   = color.RGBA{R: 65, G: 105, B: 225, A: 255}
	neutralGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// shortNames abbreviates North Maluku regencies for crowded axes.
var shortNames = map[string]string{
	"HALMAHERA UTARA":       "HALUT",
	"HALMAHERA TENGAH":      "HALTENG",
	"HALMAHERA TIMUR":       "HALTIM",
	"HALMAHERA SELATAN":     "HALSEL",
	"HALMAHERA BARAT":       "HALBAR",
	"PULAU MOROTAI":         "MOROTAI",
	"PULAU TALIABU":         "TALIABU",
	"KEPULAUAN SULA":        "KEPSUL",
	"KOTA TERNATE":          "TERNATE",
	"KOTA TIDORE KEPULAUAN": "TIDORE",
}

func shortRegionName(name string) string {
	if short, ok := shortNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return short
	}
	if r := []rune(name); len(r) > 10 {
		return string(r[:10])
	}
	return name
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// barChart draws one bar per value over nominal x labels and prints the
// matching text above each bar.
func barChart(p *plot.Plot, names []string, values []float64, texts []string, c color.Color) error {
	if len(values) == 0 {
		return nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(28))
	if err != nil {
		return err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	top := floats.Max(values)
	p.Y.Min = 0
	if top > 0 {
		p.Y.Max = top * 1.15
	}

	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v + top*0.02}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(labels)
	p.Add(plotter.NewGrid())
	return nil
}

// lineSeries draws one line with point markers per named series and adds
// each to the legend.
func lineSeries(p *plot.Plot, names []string, points map[string]plotter.XYs) error {
	for i, name := range names {
		line, scatter, err := plotter.NewLinePoints(points[name])
		if err != nil {
			return fmt.Errorf("series %s: %w", name, err)
		}
		c := plotutil.Color(i)
		line.Color = c
		line.Width = vg.Points(2)
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, scatter)
		p.Legend.Add(name, line, scatter)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return nil
}

func yearTicks(years []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(years))
	for i, y := range years {
		ticks[i] = plot.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	return ticks
}

func wholeNumbers(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', 0, 64)
	}
	return out
}

func twoDecimals(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return out
}
