package analysis

import (
	"sort"

	"kakao/internal/dataset"
)

// Potential score weights.
const (
	ProductionWeight  = 0.3
	ConsumptionWeight = 0.3
	PriceWeight       = 0.4
)

// RegionPotential is the development potential of one region.
type RegionPotential struct {
	Region          string  `json:"region"`
	MeanProduction  float64 `json:"mean_production"`
	ModalDemand     string  `json:"modal_demand"`
	MeanConsumption float64 `json:"mean_consumption"`
	MeanPrice       float64 `json:"mean_price"`
	PotentialScore  float64 `json:"potential_score"`
}

// Tier buckets regions by potential score for the implementation plan.
type Tier string

const (
	TierLeading    Tier = "unggulan"
	TierPotential  Tier = "potensial"
	TierDeveloping Tier = "berkembang"
)

// Tier thresholds on the potential score.
const (
	LeadingThreshold   = 0.80
	PotentialThreshold = 0.60
)

// TierFor maps a potential score to its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= LeadingThreshold:
		return TierLeading
	case score >= PotentialThreshold:
		return TierPotential
	default:
		return TierDeveloping
	}
}

// Action is the recommended strategy for the tier.
func (t Tier) Action() string {
	switch t {
	case TierLeading:
		return "Ekspansi agresif, fokus peningkatan kapasitas"
	case TierPotential:
		return "Pengembangan bertahap, fokus efisiensi"
	default:
		return "Evaluasi ulang strategi, fokus perbaikan fundamental"
	}
}

// Recommendation is a ranked region with its strategy tier.
type Recommendation struct {
	RegionPotential
	Tier   Tier   `json:"tier"`
	Action string `json:"action"`
}

// PotentialScore rates every region by
//
//	0.3*(production/maxProduction) + 0.3*(consumption/maxConsumption) + 0.4*(price/maxPrice)
//
// where each value is the region mean rounded to two decimals and each
// maximum is taken across regions. A term whose maximum is zero contributes
// zero. Regions are returned ascending by name.
func PotentialScore(t dataset.Table) ([]RegionPotential, error) {
	if err := t.Require(dataset.ColRegion, dataset.ColProduction, dataset.ColMarketDemand,
		dataset.ColConsumption, dataset.ColPrice); err != nil {
		return nil, err
	}

	groups := groupBy(t.Records, func(r dataset.Record) string { return r.Region })
	sortByStringKey(groups)

	out := make([]RegionPotential, 0, len(groups))
	var maxProduction, maxConsumption, maxPrice float64
	for _, g := range groups {
		p := RegionPotential{
			Region:          g.key,
			MeanProduction:  Round2(mean(column(t.Records, g.rows, production))),
			ModalDemand:     modal(demandValues(t.Records, g.rows)),
			MeanConsumption: Round2(mean(column(t.Records, g.rows, consumption))),
			MeanPrice:       Round2(mean(column(t.Records, g.rows, price))),
		}
		if p.MeanProduction > maxProduction {
			maxProduction = p.MeanProduction
		}
		if p.MeanConsumption > maxConsumption {
			maxConsumption = p.MeanConsumption
		}
		if p.MeanPrice > maxPrice {
			maxPrice = p.MeanPrice
		}
		out = append(out, p)
	}

	for i := range out {
		score := ProductionWeight*ratio(out[i].MeanProduction, maxProduction) +
			ConsumptionWeight*ratio(out[i].MeanConsumption, maxConsumption) +
			PriceWeight*ratio(out[i].MeanPrice, maxPrice)
		out[i].PotentialScore = Round2(score)
	}
	return out, nil
}

// Recommend ranks PotentialScore output by score, highest first, keeping
// the name order among equal scores, and attaches the strategy tier.
func Recommend(t dataset.Table) ([]Recommendation, error) {
	potential, err := PotentialScore(t)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(potential, func(i, j int) bool {
		return potential[i].PotentialScore > potential[j].PotentialScore
	})

	out := make([]Recommendation, len(potential))
	for i, p := range potential {
		tier := TierFor(p.PotentialScore)
		out[i] = Recommendation{RegionPotential: p, Tier: tier, Action: tier.Action()}
	}
	return out, nil
}

func ratio(v, top float64) float64 {
	if top == 0 {
		return 0
	}
	return v / top
}
