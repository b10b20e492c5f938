package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kakao/internal/analysis"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{81900, "81.9K"},
		{1250000, "1.25M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 16380.0, cellValue("16380"))
	assert.Equal(t, 0.25, cellValue("0.25"))
	assert.Equal(t, "Halmahera Utara", cellValue("Halmahera Utara"))
	assert.Equal(t, "-", cellValue("-"))
	assert.Equal(t, "NaN", cellValue("NaN"))
}

func TestTableIsNumeric(t *testing.T) {
	tbl := Table{Columns: []string{"Wilayah", "Total"}, Numeric: []bool{false, true}}
	assert.False(t, tbl.IsNumeric(0))
	assert.True(t, tbl.IsNumeric(1))
	assert.False(t, tbl.IsNumeric(2))
	assert.False(t, tbl.IsNumeric(-1))
	assert.False(t, Table{Columns: []string{"x"}}.IsNumeric(0))
}

func TestRegionAdvice(t *testing.T) {
	tests := []struct {
		name  string
		share float64
		tier  analysis.Tier
		risk  analysis.RiskLevel
		want  []string
	}{
		{
			name:  "leader",
			share: 36.9,
			tier:  analysis.TierLeading,
			risk:  analysis.RiskLow,
			want: []string{
				"Pertahankan posisi pemimpin produksi melalui inovasi budidaya",
				"Fokus pada intensifikasi berkelanjutan",
				"Perkuat kapasitas pengolahan dan rantai pasok",
			},
		},
		{
			name:  "volatile developing region",
			share: 10,
			tier:  analysis.TierDeveloping,
			risk:  analysis.RiskHigh,
			want: []string{
				"Kembangkan produk bernilai tambah untuk membuka pasar baru",
				"Tingkatkan konsistensi produksi antar tahun",
				"Terapkan manajemen risiko produksi",
			},
		},
		{
			name:  "share at threshold falls back",
			share: 30,
			tier:  analysis.TierPotential,
			risk:  analysis.RiskMedium,
			want:  []string{"Lanjutkan perbaikan berkelanjutan"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, regionAdvice(tt.share, tt.tier, tt.risk))
		})
	}
}

func TestGroupByTier(t *testing.T) {
	recs := []analysis.Recommendation{
		{RegionPotential: analysis.RegionPotential{Region: "A", PotentialScore: 0.9}, Tier: analysis.TierLeading},
		{RegionPotential: analysis.RegionPotential{Region: "B", PotentialScore: 0.5}, Tier: analysis.TierDeveloping},
		{RegionPotential: analysis.RegionPotential{Region: "C", PotentialScore: 0.4}, Tier: analysis.TierDeveloping},
	}

	groups := groupByTier(recs)
	assert.Len(t, groups, 3)
	assert.Equal(t, analysis.TierLeading, groups[0].Tier)
	assert.Len(t, groups[0].Members, 1)
	assert.Empty(t, groups[1].Members)
	assert.Equal(t, "B", groups[2].Members[0].Region)
	assert.Equal(t, "C", groups[2].Members[1].Region)
}

func TestWriteMarkdownTable_Escapes(t *testing.T) {
	var b strings.Builder
	writeMarkdownTable(&b, Table{Columns: []string{"a|b"}, Rows: [][]string{{"x|y"}}})
	assert.Equal(t, "| a\\|b |\n|---|\n| x\\|y |\n", b.String())
}
