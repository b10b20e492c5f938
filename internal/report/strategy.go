package report

import "kakao/internal/analysis"

var tierOrder = []analysis.Tier{
	analysis.TierLeading,
	analysis.TierPotential,
	analysis.TierDeveloping,
}

var tierHeadings = map[analysis.Tier]string{
	analysis.TierLeading:    "UNGGULAN (Skor >= 0.80)",
	analysis.TierPotential:  "POTENSIAL (Skor 0.60 - 0.79)",
	analysis.TierDeveloping: "BERKEMBANG (Skor < 0.60)",
}

type tierGroup struct {
	Tier    analysis.Tier
	Heading string
	Members []analysis.Recommendation
}

// groupByTier splits ranked recommendations by tier, keeping rank order
// inside each group. Every tier is present even when empty.
func groupByTier(recs []analysis.Recommendation) []tierGroup {
	groups := make([]tierGroup, len(tierOrder))
	index := make(map[analysis.Tier]int, len(tierOrder))
	for i, t := range tierOrder {
		groups[i] = tierGroup{Tier: t, Heading: tierHeadings[t]}
		index[t] = i
	}
	for _, r := range recs {
		if i, ok := index[r.Tier]; ok {
			groups[i].Members = append(groups[i].Members, r)
		}
	}
	return groups
}

// strategyMatrix is the static plan per tier, header row first.
var strategyMatrix = [][]string{
	{"Kategori", "Strategi Inti", "Kriteria", "Fokus", "Dampak yang Diharapkan"},
	{"UNGGULAN", "Ekspansi agresif", "Skor >= 0.80", "Peningkatan kapasitas", "Produksi dan pangsa pasar naik"},
	{"POTENSIAL", "Pengembangan bertahap", "Skor 0.60 - 0.79", "Efisiensi", "Produktivitas lahan naik"},
	{"BERKEMBANG", "Evaluasi ulang strategi", "Skor < 0.60", "Perbaikan fundamental", "Fondasi produksi lebih stabil"},
	{"SEMUA", "Manajemen risiko dan diversifikasi produk", "Semua wilayah", "Stabilitas harga", "Fluktuasi harga berkurang"},
}

// shareLeaderPercent is the market share above which a region is treated as
// the production leader.
const shareLeaderPercent = 30

// regionAdvice lists the follow-up notes for one region from its market
// share, tier and risk level. It never returns an empty list.
func regionAdvice(share float64, tier analysis.Tier, risk analysis.RiskLevel) []string {
	var notes []string
	if share > shareLeaderPercent {
		notes = append(notes,
			"Pertahankan posisi pemimpin produksi melalui inovasi budidaya",
			"Fokus pada intensifikasi berkelanjutan")
	}
	switch tier {
	case analysis.TierLeading:
		notes = append(notes, "Perkuat kapasitas pengolahan dan rantai pasok")
	case analysis.TierDeveloping:
		notes = append(notes, "Kembangkan produk bernilai tambah untuk membuka pasar baru")
	}
	if risk == analysis.RiskHigh {
		notes = append(notes,
			"Tingkatkan konsistensi produksi antar tahun",
			"Terapkan manajemen risiko produksi")
	}
	if len(notes) == 0 {
		notes = append(notes, "Lanjutkan perbaikan berkelanjutan")
	}
	return notes
}

// adviceByRegion joins market share, recommendations and risk per region
// and returns the notes from regionAdvice.
func adviceByRegion(s *analysis.Summary) map[string][]string {
	shares := make(map[string]float64, len(s.MarketShare))
	for _, m := range s.MarketShare {
		shares[m.Region] = m.SharePercent
	}
	tiers := make(map[string]analysis.Tier, len(s.Recommendations))
	for _, r := range s.Recommendations {
		tiers[r.Region] = r.Tier
	}
	levels := make(map[string]analysis.RiskLevel, len(s.Risk))
	for _, r := range s.Risk {
		levels[r.Region] = r.Level
	}

	out := make(map[string][]string, len(s.Regional))
	for _, r := range s.Regional {
		out[r.Region] = regionAdvice(shares[r.Region], tiers[r.Region], levels[r.Region])
	}
	return out
}
