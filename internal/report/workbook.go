package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"kakao/internal/analysis"
)

// WorkbookFile is the default workbook name written by the CLI.
const WorkbookFile = "analisis_kakao.xlsx"

const (
	dashboardSheet = "Dashboard_Wilayah"
	tierSheet      = "Kelompok_Wilayah"
	strategySheet  = "Matriks_Strategi"
)

// Workbook builds the Excel analysis: a per-region dashboard sheet, one
// sheet per summary table, the tier groups and the strategy matrix. The
// caller owns the returned file and must Close it.
func Workbook(s *analysis.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := buildWorkbook(f, s); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// WriteWorkbook streams the workbook as xlsx.
func WriteWorkbook(w io.Writer, s *analysis.Summary) error {
	f, err := Workbook(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to path.
func SaveWorkbook(path string, s *analysis.Summary) error {
	f, err := Workbook(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(f *excelize.File, s *analysis.Summary) error {
	if err := f.SetSheetName("Sheet1", dashboardSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	dash := &sheetWriter{f: f, sheet: dashboardSheet, header: header}
	writeDashboard(dash, s)
	if dash.err != nil {
		return fmt.Errorf("sheet %s: %w", dashboardSheet, dash.err)
	}

	for _, t := range Tables(s) {
		w, err := newSheet(f, t.Sheet, header)
		if err != nil {
			return err
		}
		w.headerRow(1, t.Columns, 22)
		for i, row := range t.Rows {
			for j, v := range row {
				if t.IsNumeric(j) {
					w.cell(j+1, i+2, cellValue(v))
				} else {
					w.cell(j+1, i+2, v)
				}
			}
		}
		if w.err != nil {
			return fmt.Errorf("sheet %s: %w", t.Sheet, w.err)
		}
	}

	tiers, err := newSheet(f, tierSheet, header)
	if err != nil {
		return err
	}
	writeTierGroups(tiers, s.Recommendations)
	if tiers.err != nil {
		return fmt.Errorf("sheet %s: %w", tierSheet, tiers.err)
	}

	matrix, err := newSheet(f, strategySheet, header)
	if err != nil {
		return err
	}
	matrix.headerRow(1, strategyMatrix[0], 28)
	for i, row := range strategyMatrix[1:] {
		for j, v := range row {
			matrix.cell(j+1, i+2, v)
		}
	}
	if matrix.err != nil {
		return fmt.Errorf("sheet %s: %w", strategySheet, matrix.err)
	}

	f.SetActiveSheet(0)
	return nil
}

// writeDashboard writes one row per region, ranked by total production,
// joining the regional tables.
func writeDashboard(w *sheetWriter, s *analysis.Summary) {
	w.headerRow(1, []string{"Rank", "Wilayah", "Total Produksi (kg)", "Rata-Rata Produksi (kg)",
		"Pangsa Pasar (%)", "Rata-Rata Harga (Rp/kg)", "Permintaan Dominan", "Skor Potensi",
		"Kategori", "Standar Deviasi Produksi (kg)", "Rekomendasi Utama", "Catatan"}, 20)

	shares := make(map[string]analysis.RegionShare, len(s.MarketShare))
	for _, m := range s.MarketShare {
		shares[m.Region] = m
	}
	prices := make(map[string]analysis.RegionPrice, len(s.Prices))
	for _, p := range s.Prices {
		prices[p.Region] = p
	}
	recs := make(map[string]analysis.Recommendation, len(s.Recommendations))
	for _, r := range s.Recommendations {
		recs[r.Region] = r
	}
	risks := make(map[string]analysis.RegionRisk, len(s.Risk))
	for _, r := range s.Risk {
		risks[r.Region] = r
	}

	advice := adviceByRegion(s)

	for i, r := range s.Regional {
		row := i + 2
		rec := recs[r.Region]
		w.cell(1, row, i+1)
		w.cell(2, row, r.Region)
		w.cell(3, row, r.SumProduction)
		w.cell(4, row, r.MeanProduction)
		w.cell(5, row, shares[r.Region].SharePercent)
		w.cell(6, row, prices[r.Region].MeanPrice)
		w.cell(7, row, prices[r.Region].ModalDemand)
		w.cell(8, row, rec.PotentialScore)
		w.cell(9, row, string(rec.Tier))
		if sd := risks[r.Region].StdDevProduction; sd.Valid {
			w.cell(10, row, sd.Value)
		} else {
			w.cell(10, row, "-")
		}
		w.cell(11, row, rec.Action)
		w.cell(12, row, strings.Join(advice[r.Region], "; "))
	}
}

func writeTierGroups(w *sheetWriter, recs []analysis.Recommendation) {
	w.cell(1, 1, "KELOMPOK WILAYAH BERDASARKAN SKOR POTENSI")
	row := 3
	for _, g := range groupByTier(recs) {
		w.headerRow(row, []string{g.Heading, "Skor Potensi", "Rekomendasi"}, 30)
		row++
		for _, r := range g.Members {
			w.cell(1, row, r.Region)
			w.cell(2, row, r.PotentialScore)
			w.cell(3, row, r.Action)
			row++
		}
		row++
	}
}

// sheetWriter keeps the first error so a sheet can be written without
// checking every cell.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	header int
	err    error
}

func newSheet(f *excelize.File, name string, header int) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("new sheet %s: %w", name, err)
	}
	return &sheetWriter{f: f, sheet: name, header: header}, nil
}

func (w *sheetWriter) cell(col, row int, v any) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, name, v)
}

func (w *sheetWriter) headerRow(row int, columns []string, width float64) {
	for i, c := range columns {
		w.cell(i+1, row, c)
	}
	if w.err != nil || len(columns) == 0 {
		return
	}

	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(columns), row)
	if w.err = w.f.SetCellStyle(w.sheet, first, last, w.header); w.err != nil {
		return
	}
	endCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, "A", endCol, width)
}

// cellValue stores numeric text as a number; "-" stays text.
func cellValue(s string) any {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return v
}
