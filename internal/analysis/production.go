package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"kakao/internal/dataset"
)

// YearProduction is the production summary of one year.
type YearProduction struct {
	Year           int     `json:"year"`
	MeanProduction float64 `json:"mean_production"`
	SumProduction  float64 `json:"sum_production"`
}

// RegionProduction is the production summary of one region.
type RegionProduction struct {
	Region         string  `json:"region"`
	MeanProduction float64 `json:"mean_production"`
	SumProduction  float64 `json:"sum_production"`
}

// RainfallProduction is the production summary of one rainfall level.
type RainfallProduction struct {
	Level          string  `json:"level"`
	MeanProduction float64 `json:"mean_production"`
	Count          int     `json:"count"`
}

// DemandSummary is the production and price summary of one demand level.
type DemandSummary struct {
	Level          string  `json:"level"`
	MeanProduction float64 `json:"mean_production"`
	MeanPrice      float64 `json:"mean_price"`
	RecordCount    int     `json:"record_count"`
}

// RegionPrice is the price summary of one region.
type RegionPrice struct {
	Region      string  `json:"region"`
	MeanPrice   float64 `json:"mean_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	ModalDemand string  `json:"modal_demand"`
}

// ByYear returns mean and total production per year, ascending by year.
// Years without records do not appear.
func ByYear(t dataset.Table) ([]YearProduction, error) {
	if err := t.Require(dataset.ColYear, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) int { return r.Year })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })

	out := make([]YearProduction, 0, len(groups))
	for _, g := range groups {
		xs := column(t.Records, g.rows, production)
		out = append(out, YearProduction{
			Year:           g.key,
			MeanProduction: Round2(mean(xs)),
			SumProduction:  Round2(sum(xs)),
		})
	}
	return out, nil
}

// ByRegion returns mean and total production per region, highest total
// first. Regions with equal totals keep the order they first appear in.
func ByRegion(t dataset.Table) ([]RegionProduction, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.Region })

	out := make([]RegionProduction, 0, len(groups))
	for _, g := range groups {
		xs := column(t.Records, g.rows, production)
		out = append(out, RegionProduction{
			Region:         g.key,
			MeanProduction: Round2(mean(xs)),
			SumProduction:  Round2(sum(xs)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SumProduction > out[j].SumProduction })
	return out, nil
}

// ByRainfall returns mean production and record count per rainfall level.
func ByRainfall(t dataset.Table) ([]RainfallProduction, error) {
	if err := t.Require(dataset.ColRainfall, dataset.ColProduction); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.RainfallLevel })
	sortByStringKey(groups)

	out := make([]RainfallProduction, 0, len(groups))
	for _, g := range groups {
		out = append(out, RainfallProduction{
			Level:          g.key,
			MeanProduction: Round2(mean(column(t.Records, g.rows, production))),
			Count:          len(g.rows),
		})
	}
	return out, nil
}

// ByMarketDemand returns mean production, mean price and record count per
// market demand level.
func ByMarketDemand(t dataset.Table) ([]DemandSummary, error) {
	if err := t.Require(dataset.ColMarketDemand, dataset.ColProduction, dataset.ColPrice); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.MarketDemand })
	sortByStringKey(groups)

	out := make([]DemandSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, DemandSummary{
			Level:          g.key,
			MeanProduction: Round2(mean(column(t.Records, g.rows, production))),
			MeanPrice:      Round2(mean(column(t.Records, g.rows, price))),
			RecordCount:    len(g.rows),
		})
	}
	return out, nil
}

// PriceByRegion returns the price range and the modal demand level of each
// region. See modal for the tie-break rule.
func PriceByRegion(t dataset.Table) ([]RegionPrice, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColPrice, dataset.ColMarketDemand); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.Region })
	sortByStringKey(groups)

	out := make([]RegionPrice, 0, len(groups))
	for _, g := range groups {
		prices := column(t.Records, g.rows, price)
		out = append(out, RegionPrice{
			Region:      g.key,
			MeanPrice:   Round2(mean(prices)),
			MinPrice:    Round2(floats.Min(prices)),
			MaxPrice:    Round2(floats.Max(prices)),
			ModalDemand: modal(demandValues(t.Records, g.rows)),
		})
	}
	return out, nil
}

// TotalProduction is the plain sum of production over all records.
func TotalProduction(t dataset.Table) float64 {
	return sum(column(t.Records, allRows(len(t.Records)), production))
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
