package analysis

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"

	"kakao/internal/dataset"
)

// ErrInsufficientYears is returned by ProjectProduction when fewer than two
// distinct years are available to fit a trend.
var ErrInsufficientYears = errors.New("analysis: at least two years are needed for a projection")

// SeasonalPoint is the mean production of one rainfall level in one year.
type SeasonalPoint struct {
	Year           int     `json:"year"`
	Level          string  `json:"level"`
	MeanProduction float64 `json:"mean_production"`
}

// RegionShare is a region's total production and its share of the total.
type RegionShare struct {
	Region        string  `json:"region"`
	SumProduction float64 `json:"sum_production"`
	SharePercent  float64 `json:"share_percent"`
}

// RegionRisk is the spread of a region's production. Variation is the
// coefficient of variation (standard deviation over mean). StdDevProduction,
// Variation and Level are empty for a region with a single record; Variation
// and Level are also empty when mean production is zero.
type RegionRisk struct {
	Region           string    `json:"region"`
	StdDevProduction NullFloat `json:"stddev_production"`
	Variation        NullFloat `json:"variation"`
	Level            RiskLevel `json:"level,omitempty"`
	Records          int       `json:"records"`
}

// RiskLevel grades production volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "rendah"
	RiskMedium RiskLevel = "sedang"
	RiskHigh   RiskLevel = "tinggi"
)

// Coefficient-of-variation thresholds for RiskLevelFor.
const (
	riskMediumVariation = 0.15
	riskHighVariation   = 0.30
)

// RiskLevelFor grades a coefficient of variation: above 0.30 is high, above
// 0.15 medium, otherwise low.
func RiskLevelFor(variation float64) RiskLevel {
	switch {
	case variation > riskHighVariation:
		return RiskHigh
	case variation > riskMediumVariation:
		return RiskMedium
	}
	return RiskLow
}

// DemandOpportunity summarises production per market demand level.
type DemandOpportunity struct {
	Level           string  `json:"level"`
	MeanProduction  float64 `json:"mean_production"`
	TotalProduction float64 `json:"total_production"`
	RegionCount     int     `json:"region_count"`
}

// ProjectedYear is a fitted total production for a future year.
type ProjectedYear struct {
	Year       int     `json:"year"`
	Production float64 `json:"production"`
}

// Projection is a straight-line trend over yearly totals.
type Projection struct {
	Intercept float64         `json:"intercept"`
	Slope     float64         `json:"slope"`
	Years     []ProjectedYear `json:"years"`
}

// RegionYear is the mean production of one region in one year.
type RegionYear struct {
	Region         string  `json:"region"`
	Year           int     `json:"year"`
	MeanProduction float64 `json:"mean_production"`
}

type yearLevel struct {
	year  int
	level string
}

// Seasonality returns mean production per year and rainfall level, ordered
// by year then level.
func Seasonality(t dataset.Table) ([]SeasonalPoint, error) {
	if err := t.Require(dataset.ColYear, dataset.ColRainfall, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) yearLevel {
		return yearLevel{year: r.Year, level: r.RainfallLevel}
	})
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].key, groups[j].key
		if a.year != b.year {
			return a.year < b.year
		}
		return a.level < b.level
	})

	out := make([]SeasonalPoint, 0, len(groups))
	for _, g := range groups {
		out = append(out, SeasonalPoint{
			Year:           g.key.year,
			Level:          g.key.level,
			MeanProduction: Round2(mean(column(t.Records, g.rows, production))),
		})
	}
	return out, nil
}

type regionYear struct {
	region string
	year   int
}

// RegionTrend returns mean production per region and year, ordered by region
// then year.
func RegionTrend(t dataset.Table) ([]RegionYear, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColYear, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) regionYear {
		return regionYear{region: r.Region, year: r.Year}
	})
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].key, groups[j].key
		if a.region != b.region {
			return a.region < b.region
		}
		return a.year < b.year
	})

	out := make([]RegionYear, 0, len(groups))
	for _, g := range groups {
		out = append(out, RegionYear{
			Region:         g.key.region,
			Year:           g.key.year,
			MeanProduction: Round2(mean(column(t.Records, g.rows, production))),
		})
	}
	return out, nil
}

// MarketShare returns each region's total production and percentage of the
// grand total, ascending by region. Shares are zero when the total is zero.
func MarketShare(t dataset.Table) ([]RegionShare, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColProduction); err != nil {
		return nil, err
	}

	total := TotalProduction(t)
	groups := groupBy(t.Records, func(r dataset.Record) string { return r.Region })
	sortByStringKey(groups)

	out := make([]RegionShare, 0, len(groups))
	for _, g := range groups {
		s := sum(column(t.Records, g.rows, production))
		out = append(out, RegionShare{
			Region:        g.key,
			SumProduction: Round2(s),
			SharePercent:  Round2(ratio(s, total) * 100),
		})
	}
	return out, nil
}

// ProductionRisk returns the sample standard deviation of production per
// region, ascending by region, graded by its coefficient of variation.
func ProductionRisk(t dataset.Table) ([]RegionRisk, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.Region })
	sortByStringKey(groups)

	out := make([]RegionRisk, 0, len(groups))
	for _, g := range groups {
		risk := RegionRisk{Region: g.key, Records: len(g.rows)}
		if len(g.rows) > 1 {
			xs := column(t.Records, g.rows, production)
			sd := stat.StdDev(xs, nil)
			risk.StdDevProduction = Float(Round2(sd))
			if m := mean(xs); m > 0 {
				cv := sd / m
				risk.Variation = Float(Round2(cv))
				risk.Level = RiskLevelFor(cv)
			}
		}
		out = append(out, risk)
	}
	return out, nil
}

// MarketOpportunity returns production per demand level together with the
// number of distinct regions reporting that level.
func MarketOpportunity(t dataset.Table) ([]DemandOpportunity, error) {
	if err := t.Require(dataset.ColMarketDemand, dataset.ColProduction, dataset.ColRegion); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.MarketDemand })
	sortByStringKey(groups)

	out := make([]DemandOpportunity, 0, len(groups))
	for _, g := range groups {
		xs := column(t.Records, g.rows, production)
		regions := make(map[string]struct{})
		for _, r := range g.rows {
			regions[t.Records[r].Region] = struct{}{}
		}
		out = append(out, DemandOpportunity{
			Level:           g.key,
			MeanProduction:  Round2(mean(xs)),
			TotalProduction: Round2(sum(xs)),
			RegionCount:     len(regions),
		})
	}
	return out, nil
}

// ProjectProduction fits a least-squares line through the yearly totals and
// extends it horizon years past the last observed year. Projected totals
// below zero are reported as zero.
func ProjectProduction(t dataset.Table, horizon int) (Projection, error) {
	yearly, err := ByYear(t)
	if err != nil {
		return Projection{}, err
	}
	if len(yearly) < 2 {
		return Projection{}, ErrInsufficientYears
	}

	xs := make([]float64, len(yearly))
	ys := make([]float64, len(yearly))
	for i, y := range yearly {
		xs[i] = float64(y.Year)
		ys[i] = y.SumProduction
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	proj := Projection{Intercept: alpha, Slope: beta}
	last := yearly[len(yearly)-1].Year
	for k := 1; k <= horizon; k++ {
		year := last + k
		v := alpha + beta*float64(year)
		if v < 0 {
			v = 0
		}
		proj.Years = append(proj.Years, ProjectedYear{Year: year, Production: Round2(v)})
	}
	return proj, nil
}
