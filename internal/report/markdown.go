package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"kakao/internal/analysis"
)

// ReportFile is the default Markdown report name written by the CLI.
const ReportFile = "laporan_strategis_kakao.md"

// WriteMarkdown writes the strategy report. topN limits the ranked region
// table and generated stamps the footer.
func WriteMarkdown(w io.Writer, s *analysis.Summary, topN int, generated time.Time) error {
	var b strings.Builder

	b.WriteString("# LAPORAN STRATEGIS KAKAO PULAU MOROTAI\n")
	if s.Records > 0 {
		fmt.Fprintf(&b, "## Analisis Produksi dan Pasar Kakao %d-%d\n", s.FirstYear, s.LastYear)
	}

	b.WriteString("\n### 📊 EXECUTIVE SUMMARY\n\n")
	fmt.Fprintf(&b, "- **Jumlah Data**: %d catatan\n", s.Records)
	fmt.Fprintf(&b, "- **Jumlah Wilayah**: %d\n", s.Regions)
	fmt.Fprintf(&b, "- **Total Produksi**: %s kg\n", FormatNumber(s.TotalProduction))
	if len(s.Regional) > 0 {
		top := s.Regional[0]
		fmt.Fprintf(&b, "- **Wilayah Produksi Tertinggi**: %s (%s kg)\n", top.Region, FormatNumber(top.SumProduction))
	}
	if len(s.Recommendations) > 0 {
		best := s.Recommendations[0]
		fmt.Fprintf(&b, "- **Wilayah Paling Potensial**: %s (skor %.2f, %s)\n", best.Region, best.PotentialScore, best.Tier)
	}
	if p := s.Projection; p != nil && len(p.Years) > 0 {
		direction := "naik"
		if p.Slope < 0 {
			direction = "turun"
		}
		last := p.Years[len(p.Years)-1]
		fmt.Fprintf(&b, "- **Tren Produksi Tahunan**: %s sekitar %s kg per tahun\n", direction, FormatNumber(math.Abs(p.Slope)))
		fmt.Fprintf(&b, "- **Proyeksi %d**: %s kg\n", last.Year, FormatNumber(last.Production))
	}

	tables := Tables(s)

	regional, _ := Lookup(tables, SheetRegional)
	if topN > 0 && len(regional.Rows) > topN {
		regional.Rows = regional.Rows[:topN]
	}
	b.WriteString("\n### 🏆 WILAYAH DENGAN PRODUKSI TERTINGGI\n\n")
	writeMarkdownTable(&b, regional)

	recs, _ := Lookup(tables, SheetRecommendation)
	b.WriteString("\n### 🎯 REKOMENDASI IMPLEMENTASI\n\n")
	writeMarkdownTable(&b, recs)

	b.WriteString("\n### 🧭 KELOMPOK WILAYAH BERDASARKAN SKOR POTENSI\n")
	for _, g := range groupByTier(s.Recommendations) {
		if len(g.Members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n#### %s (%d wilayah)\n", g.Heading, len(g.Members))
		for _, r := range g.Members {
			fmt.Fprintf(&b, "- **%s**: skor %.2f, %s\n", r.Region, r.PotentialScore, r.Action)
		}
	}

	if len(s.Regional) > 0 {
		b.WriteString("\n### 🗺️ CATATAN PER WILAYAH\n")
		advice := adviceByRegion(s)
		for _, r := range s.Regional {
			fmt.Fprintf(&b, "\n**%s**\n", r.Region)
			for _, n := range advice[r.Region] {
				fmt.Fprintf(&b, "- %s\n", n)
			}
		}
	}

	if growth, ok := Lookup(tables, SheetGrowth); ok && len(growth.Rows) > 1 {
		b.WriteString("\n### 📉 PERTUMBUHAN PRODUKSI TAHUNAN\n\n")
		writeMarkdownTable(&b, growth)
	}

	risk, _ := Lookup(tables, SheetRisk)
	b.WriteString("\n### ⚠️ ANALISIS RISIKO PRODUKSI\n\n")
	writeMarkdownTable(&b, risk)
	if r, ok := riskiest(s.Risk); ok {
		fmt.Fprintf(&b, "\nRisiko produksi tertinggi ada di **%s** dengan standar deviasi %s kg.\n",
			r.Region, FormatNumber(r.StdDevProduction.Value))
	}

	if proj, ok := Lookup(tables, SheetProjection); ok {
		b.WriteString("\n### 📈 PROYEKSI PRODUKSI\n\n")
		writeMarkdownTable(&b, proj)
	}

	b.WriteString("\n### 💡 TEMUAN PER ANALISIS\n")
	tabs := Tabs()
	for _, tab := range tabs[:len(tabs)-1] {
		fmt.Fprintf(&b, "\n#### %s\n", tab.Title)
		for _, sec := range tab.Sections {
			fmt.Fprintf(&b, "\n**%s**\n", sec.Title)
			for _, n := range sec.Notes {
				fmt.Fprintf(&b, "- %s\n", n)
			}
		}
	}

	b.WriteString("\n### 📌 KESIMPULAN UTAMA\n\n")
	for _, c := range KeyConclusions() {
		fmt.Fprintf(&b, "- %s\n", c)
	}

	fmt.Fprintf(&b, "\n---\n*Dibuat oleh Sistem Analitik Kakao Morotai - %s*\n", generated.Format("2 January 2006"))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// SaveMarkdown writes the report to path.
func SaveMarkdown(path string, s *analysis.Summary, topN int, generated time.Time) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteMarkdown(file, s, topN, generated); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeMarkdownTable(b *strings.Builder, t Table) {
	if len(t.Rows) == 0 {
		b.WriteString("_Tidak ada data._\n")
		return
	}

	b.WriteString("|")
	for _, c := range t.Columns {
		fmt.Fprintf(b, " %s |", escapeCell(c))
	}
	b.WriteString("\n|")
	for range t.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString("|")
		for _, v := range row {
			fmt.Fprintf(b, " %s |", escapeCell(v))
		}
		b.WriteString("\n")
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func riskiest(risks []analysis.RegionRisk) (analysis.RegionRisk, bool) {
	var (
		best  analysis.RegionRisk
		found bool
	)
	for _, r := range risks {
		if !r.StdDevProduction.Valid {
			continue
		}
		if !found || r.StdDevProduction.Value > best.StdDevProduction.Value {
			best, found = r, true
		}
	}
	return best, found
}
