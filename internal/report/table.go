// Package report turns a summary into presentation tables, an Excel
// workbook and a Markdown strategy report.
package report

import (
	"fmt"
	"strconv"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

// Sheet names double as table keys.
const (
	SheetYearly         = "Produksi_Tahunan"
	SheetRegional       = "Produksi_Wilayah"
	SheetRainfall       = "Curah_Hujan"
	SheetDemand         = "Permintaan_Pasar"
	SheetPrices         = "Harga_Wilayah"
	SheetCorrelation    = "Korelasi"
	SheetPotential      = "Skor_Potensi"
	SheetRecommendation = "Rekomendasi"
	SheetRegionTrend    = "Trend_Wilayah"
	SheetSeasonality    = "Seasonality"
	SheetMarketShare    = "Market_Share"
	SheetRisk           = "Risiko_Produksi"
	SheetOpportunity    = "Peluang_Pasar"
	SheetProjection     = "Proyeksi_Produksi"
	SheetGrowth         = "Pertumbuhan_Produksi"
	SheetPeaks          = "Puncak_Wilayah"
)

// Table is a rendered view of one summary table. Numeric runs parallel to
// Columns and flags the columns whose cells are numbers or "-".
type Table struct {
	Sheet   string     `json:"sheet"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Numeric []bool     `json:"numeric"`
	Rows    [][]string `json:"rows"`
}

// IsNumeric reports whether column i holds numbers.
func (t Table) IsNumeric(i int) bool {
	return i >= 0 && i < len(t.Numeric) && t.Numeric[i]
}

// fieldLabels names the numeric fields in Indonesian.
var fieldLabels = map[string]string{
	dataset.ColProduction:  "Produksi",
	dataset.ColPrice:       "Harga",
	dataset.ColLandArea:    "Luas Lahan",
	dataset.ColConsumption: "Konsumsi",
}

// Tables returns every summary table in display order. The projection table
// is omitted when the summary has no projection.
func Tables(s *analysis.Summary) []Table {
	tables := []Table{
		yearlyTable(s),
		growthTable(s),
		regionalTable(s),
		rainfallTable(s),
		demandTable(s),
		pricesTable(s),
		correlationTable(s),
		potentialTable(s),
		recommendationTable(s),
		regionTrendTable(s),
		seasonalityTable(s),
		marketShareTable(s),
		riskTable(s),
		peaksTable(s),
		opportunityTable(s),
	}
	if s.Projection != nil {
		tables = append(tables, projectionTable(s))
	}
	return tables
}

// Lookup returns the table with the given sheet name.
func Lookup(tables []Table, sheet string) (Table, bool) {
	for _, t := range tables {
		if t.Sheet == sheet {
			return t, true
		}
	}
	return Table{}, false
}

func yearlyTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetYearly,
		Title:   "Trend Produksi per Tahun",
		Columns: []string{"Tahun", "Rata-Rata Produksi (kg)", "Total Produksi (kg)"},
		Numeric: []bool{true, true, true},
	}
	for _, y := range s.Yearly {
		t.Rows = append(t.Rows, []string{strconv.Itoa(y.Year), num(y.MeanProduction), num(y.SumProduction)})
	}
	return t
}

func regionalTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetRegional,
		Title:   "Wilayah dengan Produksi Tertinggi",
		Columns: []string{"Rank", "Wilayah", "Rata-Rata Produksi (kg)", "Total Produksi (kg)"},
		Numeric: []bool{true, false, true, true},
	}
	for i, r := range s.Regional {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), r.Region, num(r.MeanProduction), num(r.SumProduction)})
	}
	return t
}

func rainfallTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetRainfall,
		Title:   "Pengaruh Curah Hujan terhadap Produksi",
		Columns: []string{"Curah Hujan", "Rata-Rata Produksi (kg)", "Jumlah Data"},
		Numeric: []bool{false, true, true},
	}
	for _, r := range s.Rainfall {
		t.Rows = append(t.Rows, []string{r.Level, num(r.MeanProduction), strconv.Itoa(r.Count)})
	}
	return t
}

func demandTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetDemand,
		Title:   "Analisis Permintaan Pasar",
		Columns: []string{"Permintaan Pasar", "Rata-Rata Produksi (kg)", "Rata-Rata Harga (Rp/kg)", "Jumlah Data"},
		Numeric: []bool{false, true, true, true},
	}
	for _, d := range s.Demand {
		t.Rows = append(t.Rows, []string{d.Level, num(d.MeanProduction), num(d.MeanPrice), strconv.Itoa(d.RecordCount)})
	}
	return t
}

func pricesTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetPrices,
		Title:   "Harga per Wilayah",
		Columns: []string{"Wilayah", "Rata-Rata Harga", "Harga Minimum", "Harga Maksimum", "Permintaan Dominan"},
		Numeric: []bool{false, true, true, true, false},
	}
	for _, p := range s.Prices {
		t.Rows = append(t.Rows, []string{p.Region, num(p.MeanPrice), num(p.MinPrice), num(p.MaxPrice), p.ModalDemand})
	}
	return t
}

func correlationTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetCorrelation,
		Title:   "Analisis Korelasi",
		Columns: []string{""},
		Numeric: []bool{false},
	}
	for _, f := range s.Correlation.Fields {
		t.Columns = append(t.Columns, fieldLabel(f))
		t.Numeric = append(t.Numeric, true)
	}
	for i, f := range s.Correlation.Fields {
		row := []string{fieldLabel(f)}
		for _, v := range s.Correlation.Values[i] {
			row = append(row, nullable(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func potentialTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetPotential,
		Title:   "Wilayah Paling Potensial",
		Columns: []string{"Wilayah", "Rata-Rata Produksi (kg)", "Permintaan Dominan", "Rata-Rata Konsumsi (kg/kapita)", "Rata-Rata Harga (Rp/kg)", "Skor Potensi"},
		Numeric: []bool{false, true, false, true, true, true},
	}
	for _, p := range s.Potential {
		t.Rows = append(t.Rows, []string{p.Region, num(p.MeanProduction), p.ModalDemand,
			num(p.MeanConsumption), num(p.MeanPrice), num(p.PotentialScore)})
	}
	return t
}

func recommendationTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetRecommendation,
		Title:   "Rekomendasi Implementasi",
		Columns: []string{"Rank", "Wilayah", "Skor Potensi", "Kategori", "Rekomendasi"},
		Numeric: []bool{true, false, true, false, false},
	}
	for i, r := range s.Recommendations {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), r.Region, num(r.PotentialScore), string(r.Tier), r.Action})
	}
	return t
}

func regionTrendTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetRegionTrend,
		Title:   "Trend Produksi per Wilayah",
		Columns: []string{"Wilayah", "Tahun", "Rata-Rata Produksi (kg)"},
		Numeric: []bool{false, true, true},
	}
	for _, r := range s.RegionTrend {
		t.Rows = append(t.Rows, []string{r.Region, strconv.Itoa(r.Year), num(r.MeanProduction)})
	}
	return t
}

func seasonalityTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetSeasonality,
		Title:   "Analisis Seasonality",
		Columns: []string{"Tahun", "Curah Hujan", "Rata-Rata Produksi (kg)"},
		Numeric: []bool{true, false, true},
	}
	for _, p := range s.Seasonality {
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.Year), p.Level, num(p.MeanProduction)})
	}
	return t
}

func marketShareTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetMarketShare,
		Title:   "Analisis Kompetisi (Market Share)",
		Columns: []string{"Wilayah", "Total Produksi (kg)", "Pangsa Pasar (%)"},
		Numeric: []bool{false, true, true},
	}
	for _, m := range s.MarketShare {
		t.Rows = append(t.Rows, []string{m.Region, num(m.SumProduction), num(m.SharePercent)})
	}
	return t
}

func riskTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetRisk,
		Title:   "Analisis Risiko Produksi",
		Columns: []string{"Wilayah", "Standar Deviasi Produksi (kg)", "Koefisien Variasi", "Tingkat Risiko", "Jumlah Data"},
		Numeric: []bool{false, true, true, false, true},
	}
	for _, r := range s.Risk {
		level := string(r.Level)
		if level == "" {
			level = "-"
		}
		t.Rows = append(t.Rows, []string{r.Region, nullable(r.StdDevProduction), nullable(r.Variation), level, strconv.Itoa(r.Records)})
	}
	return t
}

func growthTable(s *analysis.Summary) Table {
	t := Table{
		Sheet: SheetGrowth,
		Title: "Pertumbuhan Produksi Tahunan",
		Columns: []string{"Tahun", "Total Produksi (kg)", "Perubahan (kg)", "Pertumbuhan (%)",
			"Wilayah Teratas", "Produksi Wilayah Teratas (kg)"},
		Numeric: []bool{true, true, true, true, false, true},
	}
	for i, g := range s.Growth {
		change := num(g.AnnualChange)
		if i == 0 {
			change = "-"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(g.Year), num(g.SumProduction), change,
			nullable(g.GrowthPercent), g.TopRegion, num(g.TopRegionProduction)})
	}
	return t
}

func peaksTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetPeaks,
		Title:   "Tahun Puncak per Wilayah",
		Columns: []string{"Wilayah", "Tahun Puncak", "Produksi Puncak (kg)"},
		Numeric: []bool{false, true, true},
	}
	for _, p := range s.Peaks {
		t.Rows = append(t.Rows, []string{p.Region, strconv.Itoa(p.PeakYear), num(p.PeakProduction)})
	}
	return t
}

func opportunityTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetOpportunity,
		Title:   "Peluang Pasar Berdasarkan Permintaan",
		Columns: []string{"Permintaan Pasar", "Rata-Rata Produksi (kg)", "Total Produksi (kg)", "Jumlah Wilayah"},
		Numeric: []bool{false, true, true, true},
	}
	for _, o := range s.Opportunity {
		t.Rows = append(t.Rows, []string{o.Level, num(o.MeanProduction), num(o.TotalProduction), strconv.Itoa(o.RegionCount)})
	}
	return t
}

func projectionTable(s *analysis.Summary) Table {
	t := Table{
		Sheet:   SheetProjection,
		Title:   "Proyeksi Produksi",
		Columns: []string{"Tahun", "Proyeksi Total Produksi (kg)"},
		Numeric: []bool{true, true},
	}
	for _, y := range s.Projection.Years {
		t.Rows = append(t.Rows, []string{strconv.Itoa(y.Year), num(y.Production)})
	}
	return t
}

func fieldLabel(f string) string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return f
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nullable(v analysis.NullFloat) string {
	if !v.Valid {
		return "-"
	}
	return num(v.Value)
}

// FormatNumber abbreviates large quantities for prose: 1.25M, 81.9K, 950.
func FormatNumber(v float64) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%.2fM", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("%.1fK", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}
