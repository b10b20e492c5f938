package analysis

import (
	"errors"
	"fmt"

	"kakao/internal/dataset"
)

// ProjectionHorizon is the number of years Summarize projects ahead.
const ProjectionHorizon = 3

// Summary bundles every table the dashboard and reports present.
type Summary struct {
	Records         int                  `json:"records"`
	Regions         int                  `json:"regions"`
	FirstYear       int                  `json:"first_year"`
	LastYear        int                  `json:"last_year"`
	TotalProduction float64              `json:"total_production"`
	Yearly          []YearProduction     `json:"yearly"`
	Regional        []RegionProduction   `json:"regional"`
	Rainfall        []RainfallProduction `json:"rainfall"`
	Demand          []DemandSummary      `json:"demand"`
	Prices          []RegionPrice        `json:"prices"`
	Correlation     Correlation          `json:"correlation"`
	Potential       []RegionPotential    `json:"potential"`
	Recommendations []Recommendation     `json:"recommendations"`
	RegionTrend     []RegionYear         `json:"region_trend"`
	Growth          []YearGrowth         `json:"growth"`
	Peaks           []RegionPeak         `json:"peaks"`
	Seasonality     []SeasonalPoint      `json:"seasonality"`
	MarketShare     []RegionShare        `json:"market_share"`
	Risk            []RegionRisk         `json:"risk"`
	Opportunity     []DemandOpportunity  `json:"opportunity"`
	// Projection is nil when the table spans fewer than two years.
	Projection *Projection `json:"projection,omitempty"`
}

// Summarize computes every summary table from t. It fails on the first
// structural error; an empty table yields empty tables.
func Summarize(t dataset.Table) (*Summary, error) {
	if err := t.Require(dataset.Columns...); err != nil {
		return nil, err
	}

	s := &Summary{
		Records:         t.Len(),
		TotalProduction: Round2(TotalProduction(t)),
	}

	var err error
	if s.Yearly, err = ByYear(t); err != nil {
		return nil, fmt.Errorf("by year: %w", err)
	}
	if s.Regional, err = ByRegion(t); err != nil {
		return nil, fmt.Errorf("by region: %w", err)
	}
	if s.Rainfall, err = ByRainfall(t); err != nil {
		return nil, fmt.Errorf("by rainfall: %w", err)
	}
	if s.Demand, err = ByMarketDemand(t); err != nil {
		return nil, fmt.Errorf("by market demand: %w", err)
	}
	if s.Prices, err = PriceByRegion(t); err != nil {
		return nil, fmt.Errorf("price by region: %w", err)
	}
	if s.Correlation, err = CorrelationMatrix(t); err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	if s.Potential, err = PotentialScore(t); err != nil {
		return nil, fmt.Errorf("potential score: %w", err)
	}
	if s.Recommendations, err = Recommend(t); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	if s.RegionTrend, err = RegionTrend(t); err != nil {
		return nil, fmt.Errorf("region trend: %w", err)
	}
	if s.Growth, err = YearlyGrowth(t); err != nil {
		return nil, fmt.Errorf("yearly growth: %w", err)
	}
	if s.Peaks, err = RegionPeaks(t); err != nil {
		return nil, fmt.Errorf("region peaks: %w", err)
	}
	if s.Seasonality, err = Seasonality(t); err != nil {
		return nil, fmt.Errorf("seasonality: %w", err)
	}
	if s.MarketShare, err = MarketShare(t); err != nil {
		return nil, fmt.Errorf("market share: %w", err)
	}
	if s.Risk, err = ProductionRisk(t); err != nil {
		return nil, fmt.Errorf("production risk: %w", err)
	}
	if s.Opportunity, err = MarketOpportunity(t); err != nil {
		return nil, fmt.Errorf("market opportunity: %w", err)
	}

	proj, err := ProjectProduction(t, ProjectionHorizon)
	switch {
	case err == nil:
		s.Projection = &proj
	case !errors.Is(err, ErrInsufficientYears):
		return nil, fmt.Errorf("projection: %w", err)
	}

	s.Regions = len(s.Regional)
	if n := len(s.Yearly); n > 0 {
		s.FirstYear = s.Yearly[0].Year
		s.LastYear = s.Yearly[n-1].Year
	}
	return s, nil
}
