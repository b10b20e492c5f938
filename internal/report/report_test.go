package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kakao/internal/analysis"
	"kakao/internal/chart"
	"kakao/internal/dataset"
	"kakao/internal/report"
)

func sampleSummary(t *testing.T) *analysis.Summary {
	t.Helper()
	table, err := dataset.LoadFile("../../testdata/data_kakao.csv", dataset.LoadOptions{})
	require.NoError(t, err)
	s, err := analysis.Summarize(table)
	require.NoError(t, err)
	return s
}

func TestTables(t *testing.T) {
	s := sampleSummary(t)
	tables := report.Tables(s)

	require.Len(t, tables, 16)
	for _, tbl := range tables {
		assert.Len(t, tbl.Numeric, len(tbl.Columns), tbl.Sheet)
		for i, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Columns), "%s row %d", tbl.Sheet, i)
		}
	}

	regional, ok := report.Lookup(tables, report.SheetRegional)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "Halmahera Utara", "16380", "81900"}, regional.Rows[0])
	require.Len(t, regional.Rows, 4)

	corr, ok := report.Lookup(tables, report.SheetCorrelation)
	require.True(t, ok)
	assert.Equal(t, []string{"", "Produksi", "Harga", "Luas Lahan", "Konsumsi"}, corr.Columns)
	assert.Equal(t, "1", corr.Rows[0][1])

	growth, ok := report.Lookup(tables, report.SheetGrowth)
	require.True(t, ok)
	require.Len(t, growth.Rows, 5)
	assert.Equal(t, []string{"2019", "41500", "-", "-", "Halmahera Utara", "15200"}, growth.Rows[0])
	assert.Equal(t, []string{"2020", "43650", "2150", "5.18", "Halmahera Utara", "16350"}, growth.Rows[1])

	peaks, ok := report.Lookup(tables, report.SheetPeaks)
	require.True(t, ok)
	assert.Equal(t, []string{"Halmahera Tengah", "2022", "13900"}, peaks.Rows[0])

	_, ok = report.Lookup(tables, "Tidak_Ada")
	assert.False(t, ok)
}

func TestTables_NullsAndNoProjection(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		{Year: 2020, Region: "A", Production: 5, RainfallLevel: "sedang", MarketDemand: "tinggi", Price: 1, LandArea: 1, Consumption: 1},
	})
	s, err := analysis.Summarize(table)
	require.NoError(t, err)

	tables := report.Tables(s)
	_, ok := report.Lookup(tables, report.SheetProjection)
	assert.False(t, ok)

	risk, _ := report.Lookup(tables, report.SheetRisk)
	assert.Equal(t, []string{"A", "-", "-", "-", "1"}, risk.Rows[0])

	corr, _ := report.Lookup(tables, report.SheetCorrelation)
	assert.Equal(t, "-", corr.Rows[0][1])
}

func TestTabs_ReferenceKnownChartsAndTables(t *testing.T) {
	tables := report.Tables(sampleSummary(t))
	tabs := report.Tabs()
	require.Len(t, tabs, 5)

	for _, tab := range tabs {
		for _, sec := range tab.Sections {
			if sec.Chart != "" {
				assert.True(t, chart.Exists(sec.Chart), sec.Title)
			}
			if sec.Table != "" {
				_, ok := report.Lookup(tables, sec.Table)
				assert.True(t, ok, sec.Title)
			}
			assert.NotEmpty(t, sec.Notes, sec.Title)
		}
	}
	assert.Equal(t, report.KeyConclusions(), tabs[4].Sections[0].Notes)
}

func TestWorkbook_Sheets(t *testing.T) {
	s := sampleSummary(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, "Dashboard_Wilayah", sheets[0])
	for _, tbl := range report.Tables(s) {
		assert.Contains(t, sheets, tbl.Sheet)
	}
	assert.Contains(t, sheets, "Kelompok_Wilayah")
	assert.Contains(t, sheets, "Matriks_Strategi")

	rows, err := f.GetRows("Dashboard_Wilayah")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "Halmahera Utara", rows[1][1])
	assert.Equal(t, "81900", rows[1][2])

	yearly, err := f.GetRows(report.SheetYearly)
	require.NoError(t, err)
	assert.Len(t, yearly, 1+len(s.Yearly))
	assert.Equal(t, "2019", yearly[1][0])
}

func TestWorkbook_TextColumnsStayText(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		{Year: 2020, Region: "1e3", Production: 5, RainfallLevel: "sedang", MarketDemand: "tinggi", Price: 1, LandArea: 1, Consumption: 1},
		{Year: 2021, Region: "2020", Production: 7, RainfallLevel: "sedang", MarketDemand: "tinggi", Price: 2, LandArea: 1, Consumption: 1},
	})
	s, err := analysis.Summarize(table)
	require.NoError(t, err)

	f, err := report.Workbook(s)
	require.NoError(t, err)
	defer f.Close()

	region, err := f.GetCellValue(report.SheetRegional, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2020", region)
	region, err = f.GetCellValue(report.SheetRegional, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1e3", region)

	typ, err := f.GetCellType(report.SheetRegional, "B3")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
	typ, err = f.GetCellType(report.SheetRegional, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestSaveWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), report.WorkbookFile)
	require.NoError(t, report.SaveWorkbook(path, sampleSummary(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), report.SheetRecommendation)
}

func TestWorkbook_EmptySummary(t *testing.T) {
	s, err := analysis.Summarize(dataset.NewTable(nil))
	require.NoError(t, err)

	f, err := report.Workbook(s)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dashboard_Wilayah")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteMarkdown(t *testing.T) {
	s := sampleSummary(t)
	generated := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf, s, 2, generated))
	md := buf.String()

	assert.True(t, strings.HasPrefix(md, "# LAPORAN STRATEGIS KAKAO PULAU MOROTAI\n## Analisis Produksi dan Pasar Kakao 2019-2023\n"))
	assert.Contains(t, md, "- **Jumlah Data**: 20 catatan\n")
	assert.Contains(t, md, "- **Wilayah Produksi Tertinggi**: Halmahera Utara (81.9K kg)\n")
	assert.Contains(t, md, "| Rank | Wilayah | Rata-Rata Produksi (kg) | Total Produksi (kg) |\n|---|---|---|---|\n")
	assert.Contains(t, md, "| 1 | Halmahera Utara | 16380 | 81900 |\n")
	assert.Contains(t, md, "| 2 | Halmahera Tengah |")
	assert.NotContains(t, md, "| 3 | Halmahera Timur | 8370 |")
	assert.Contains(t, md, "### 📈 PROYEKSI PRODUKSI")
	assert.Contains(t, md, "\n**Halmahera Utara**\n- Pertahankan posisi pemimpin produksi melalui inovasi budidaya\n")
	assert.Contains(t, md, "| 2020 | 43650 | 2150 | 5.18 | Halmahera Utara | 16350 |\n")
	assert.Contains(t, md, "- Manajemen risiko dan diversifikasi produk diperlukan untuk mengurangi fluktuasi harga.\n")
	assert.True(t, strings.HasSuffix(md, "*Dibuat oleh Sistem Analitik Kakao Morotai - 17 October 2026*\n"))
}

func TestWriteMarkdown_EmptySummary(t *testing.T) {
	s, err := analysis.Summarize(dataset.NewTable(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&buf, s, 5, time.Now()))

	md := buf.String()
	assert.Contains(t, md, "_Tidak ada data._")
	assert.NotContains(t, md, "PROYEKSI PRODUKSI")
	assert.NotContains(t, md, "Wilayah Produksi Tertinggi")
}
