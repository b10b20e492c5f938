package chart

import (
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func productionTrend(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Trend Produksi Kakao per Tahun", "Tahun", "Produksi (kg)")

	var regions []string
	points := make(map[string]plotter.XYs)
	for _, ry := range d.Summary.RegionTrend {
		if _, ok := points[ry.Region]; !ok {
			regions = append(regions, ry.Region)
		}
		points[ry.Region] = append(points[ry.Region], plotter.XY{X: float64(ry.Year), Y: ry.MeanProduction})
	}
	if err := lineSeries(p, regions, points); err != nil {
		return nil, err
	}

	p.X.Tick.Marker = yearTicks(summaryYears(d))
	return p, nil
}

// nationalTrend draws total production per year and labels each point after
// the first with its growth against the previous year.
func nationalTrend(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Trend Total Produksi Kakao", "Tahun", "Total Produksi (kg)")

	growth := d.Summary.Growth
	if len(growth) > 0 {
		points := make(plotter.XYs, len(growth))
		var top float64
		for i, g := range growth {
			points[i] = plotter.XY{X: float64(g.Year), Y: g.SumProduction}
			top = max(top, g.SumProduction)
		}
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return nil, err
		}
		line.Color = darkGreen
		line.Width = vg.Points(2)
		scatter.GlyphStyle.Color = darkGreen
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, scatter)

		var xys plotter.XYs
		var texts []string
		for i, g := range growth {
			if !g.GrowthPercent.Valid {
				continue
			}
			xys = append(xys, plotter.XY{X: points[i].X, Y: points[i].Y + top*0.03})
			texts = append(texts, growthLabel(g.GrowthPercent.Value))
		}
		if len(xys) > 0 {
			labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
			if err != nil {
				return nil, err
			}
			for i := range labels.TextStyle {
				labels.TextStyle[i].XAlign = draw.XCenter
			}
			p.Add(labels)
		}

		p.Y.Min = 0
		if top > 0 {
			p.Y.Max = top * 1.15
		}
	}

	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = yearTicks(summaryYears(d))
	return p, nil
}

func growthLabel(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 1, 64) + "%"
	if pct > 0 {
		s = "+" + s
	}
	return s
}

func topRegions(d Data, opts Options) (*plot.Plot, error) {
	p := newPlot("Produksi Kakao per Wilayah", "Wilayah", "Total Produksi (kg)")

	rows := d.Summary.Regional
	if len(rows) > opts.TopN {
		rows = rows[:opts.TopN]
	}
	names := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		names[i] = shortRegionName(r.Region)
		values[i] = r.SumProduction
	}

	if err := barChart(p, names, values, wholeNumbers(values), darkGreen); err != nil {
		return nil, err
	}
	return p, nil
}

func rainfall(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Pengaruh Curah Hujan terhadap Produksi Kakao", "Curah Hujan", "Rata-Rata Produksi (kg)")

	names := make([]string, len(d.Summary.Rainfall))
	values := make([]float64, len(d.Summary.Rainfall))
	for i, r := range d.Summary.Rainfall {
		names[i] = r.Level
		values[i] = r.MeanProduction
	}

	if err := barChart(p, names, values, wholeNumbers(values), steelBlue); err != nil {
		return nil, err
	}
	return p, nil
}

func marketDemand(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Distribusi Permintaan Pasar", "Kategori Permintaan", "Rata-Rata Produksi (kg)")

	names := make([]string, len(d.Summary.Demand))
	values := make([]float64, len(d.Summary.Demand))
	for i, r := range d.Summary.Demand {
		names[i] = r.Level
		values[i] = r.MeanProduction
	}

	if err := barChart(p, names, values, wholeNumbers(values), royalBlue); err != nil {
		return nil, err
	}
	return p, nil
}

func regionPrice(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Harga Rata-Rata Kakao per Wilayah", "Wilayah", "Harga (Rp/kg)")

	names := make([]string, len(d.Summary.Prices))
	values := make([]float64, len(d.Summary.Prices))
	for i, r := range d.Summary.Prices {
		names[i] = shortRegionName(r.Region)
		values[i] = r.MeanPrice
	}

	if err := barChart(p, names, values, wholeNumbers(values), darkRed); err != nil {
		return nil, err
	}
	return p, nil
}

func seasonality(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Analisis Seasonality", "Tahun", "Produksi (kg)")

	var levels []string
	points := make(map[string]plotter.XYs)
	for _, sp := range d.Summary.Seasonality {
		if _, ok := points[sp.Level]; !ok {
			levels = append(levels, sp.Level)
		}
		points[sp.Level] = append(points[sp.Level], plotter.XY{X: float64(sp.Year), Y: sp.MeanProduction})
	}
	sort.Strings(levels)
	if err := lineSeries(p, levels, points); err != nil {
		return nil, err
	}

	p.X.Tick.Marker = yearTicks(summaryYears(d))
	return p, nil
}

// projection draws observed yearly totals and continues them with a dashed
// fitted line when a projection exists.
func projection(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Proyeksi Permintaan dan Produksi", "Tahun", "Total Produksi (kg)")

	years := summaryYears(d)
	if len(d.Summary.Yearly) > 0 {
		observed := make(plotter.XYs, len(d.Summary.Yearly))
		for i, y := range d.Summary.Yearly {
			observed[i] = plotter.XY{X: float64(y.Year), Y: y.SumProduction}
		}
		line, points, err := plotter.NewLinePoints(observed)
		if err != nil {
			return nil, err
		}
		line.Color = darkGreen
		line.Width = vg.Points(2)
		points.GlyphStyle.Color = darkGreen
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add("Aktual", line, points)

		if proj := d.Summary.Projection; proj != nil && len(proj.Years) > 0 {
			fitted := plotter.XYs{observed[len(observed)-1]}
			for _, y := range proj.Years {
				fitted = append(fitted, plotter.XY{X: float64(y.Year), Y: y.Production})
				years = append(years, y.Year)
			}
			dashed, err := plotter.NewLine(fitted)
			if err != nil {
				return nil, err
			}
			dashed.Color = orange
			dashed.Width = vg.Points(2)
			dashed.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
			p.Add(dashed)
			p.Legend.Add("Proyeksi", dashed)
		}
	}

	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	p.X.Tick.Marker = yearTicks(years)
	return p, nil
}

// priceFactor scatters production against price with one colour per region.
func priceFactor(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Analisis Faktor Harga", "Produksi (kg)", "Harga (Rp/kg)")

	points := make(map[string]plotter.XYs)
	for _, r := range d.Table.Records {
		points[r.Region] = append(points[r.Region], plotter.XY{X: r.Production, Y: r.Price})
	}
	regions := make([]string, 0, len(points))
	for region := range points {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for i, region := range regions {
		scatter, err := plotter.NewScatter(points[region])
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add(region, scatter)
	}

	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

func opportunity(d Data, _ Options) (*plot.Plot, error) {
	p := newPlot("Peluang Pasar Berdasarkan Permintaan", "Kategori Permintaan", "Produksi (kg)")

	names := make([]string, len(d.Summary.Opportunity))
	values := make([]float64, len(d.Summary.Opportunity))
	for i, o := range d.Summary.Opportunity {
		names[i] = o.Level
		values[i] = o.MeanProduction
	}

	if err := barChart(p, names, values, wholeNumbers(values), forestGreen); err != nil {
		return nil, err
	}
	return p, nil
}

func summaryYears(d Data) []int {
	years := make([]int, len(d.Summary.Yearly))
	for i, y := range d.Summary.Yearly {
		years[i] = y.Year
	}
	return years
}
