package analysis

import (
	"sort"

	"kakao/internal/dataset"
)

// YearGrowth is one year of total production with its change against the
// previous observed year and the year's leading region. GrowthPercent is
// null for the first year and after a zero total.
type YearGrowth struct {
	Year                int       `json:"year"`
	SumProduction       float64   `json:"sum_production"`
	AnnualChange        float64   `json:"annual_change"`
	GrowthPercent       NullFloat `json:"growth_percent"`
	TopRegion           string    `json:"top_region"`
	TopRegionProduction float64   `json:"top_region_production"`
}

// RegionPeak is the year in which a region produced the most.
type RegionPeak struct {
	Region         string  `json:"region"`
	PeakYear       int     `json:"peak_year"`
	PeakProduction float64 `json:"peak_production"`
}

// YearlyGrowth returns total production per year, ascending, with the
// absolute and percentage change from the previous observed year and the
// region with the largest total that year. Ties for the leading region go
// to the region encountered first.
func YearlyGrowth(t dataset.Table) ([]YearGrowth, error) {
	if err := t.Require(dataset.ColYear, dataset.ColRegion, dataset.ColProduction); err != nil {
		return nil, err
	}

	yearly, err := ByYear(t)
	if err != nil {
		return nil, err
	}

	type leader struct {
		region string
		sum    float64
	}
	leaders := make(map[int]leader, len(yearly))
	for _, g := range regionYearTotals(t) {
		if cur, ok := leaders[g.year]; !ok || g.sum > cur.sum {
			leaders[g.year] = leader{region: g.region, sum: g.sum}
		}
	}

	out := make([]YearGrowth, 0, len(yearly))
	for i, y := range yearly {
		g := YearGrowth{
			Year:                y.Year,
			SumProduction:       y.SumProduction,
			TopRegion:           leaders[y.Year].region,
			TopRegionProduction: Round2(leaders[y.Year].sum),
		}
		if i > 0 {
			prev := yearly[i-1].SumProduction
			g.AnnualChange = Round2(y.SumProduction - prev)
			if prev > 0 {
				g.GrowthPercent = Float(Round2((y.SumProduction - prev) / prev * 100))
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// RegionPeaks returns, per region in ascending order, the year with the
// largest total production. Ties go to the earliest year.
func RegionPeaks(t dataset.Table) ([]RegionPeak, error) {
	if err := t.Require(dataset.ColYear, dataset.ColRegion, dataset.ColProduction); err != nil {
		return nil, err
	}

	totals := regionYearTotals(t)
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].region != totals[j].region {
			return totals[i].region < totals[j].region
		}
		return totals[i].year < totals[j].year
	})

	var out []RegionPeak
	for _, g := range totals {
		n := len(out)
		if n == 0 || out[n-1].Region != g.region {
			out = append(out, RegionPeak{Region: g.region, PeakYear: g.year, PeakProduction: Round2(g.sum)})
			continue
		}
		if g.sum > out[n-1].PeakProduction {
			out[n-1].PeakYear = g.year
			out[n-1].PeakProduction = Round2(g.sum)
		}
	}
	return out, nil
}

type regionYearTotal struct {
	region string
	year   int
	sum    float64
}

// regionYearTotals sums production per (region, year) in first-encountered
// order.
func regionYearTotals(t dataset.Table) []regionYearTotal {
	groups := groupBy(t.Records, func(r dataset.Record) regionYear {
		return regionYear{region: r.Region, year: r.Year}
	})
	out := make([]regionYearTotal, len(groups))
	for i, g := range groups {
		out[i] = regionYearTotal{
			region: g.key.region,
			year:   g.key.year,
			sum:    sum(column(t.Records, g.rows, production)),
		}
	}
	return out
}
