// Package analysis turns the cocoa production table into summary tables.
//
// Every exported function is a pure function of its input table: records are
// never mutated, no state is kept between calls, and identical input (in the
// same order) yields identical output. Grouping keys follow two orders:
// ByRegion and Recommend are ranked, the rest are ascending by key.
package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"kakao/internal/dataset"
)

// NullFloat is a statistic that may be undefined, such as the correlation of
// a constant column. It marshals to JSON null when not Valid.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Null is the undefined value.
var Null = NullFloat{}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Null
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

// Round2 rounds half away from zero to two decimal places on the decimal
// representation of v, so 2.675 becomes 2.68.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// group is a set of record indexes sharing one key.
type group[K comparable] struct {
	key  K
	rows []int
}

// groupBy buckets records by key in first-encountered order.
func groupBy[K comparable](records []dataset.Record, key func(dataset.Record) K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for i, rec := range records {
		k := key(rec)
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, group[K]{key: k})
		}
		groups[pos].rows = append(groups[pos].rows, i)
	}
	return groups
}

func sortByStringKey(groups []group[string]) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
}

// column extracts one numeric field for the given rows.
func column(records []dataset.Record, rows []int, field func(dataset.Record) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = field(records[r])
	}
	return out
}

func production(r dataset.Record) float64  { return r.Production }
func price(r dataset.Record) float64       { return r.Price }
func landArea(r dataset.Record) float64    { return r.LandArea }
func consumption(r dataset.Record) float64 { return r.Consumption }

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func sum(xs []float64) float64 {
	return floats.Sum(xs)
}

// isConstant reports whether xs has no spread; empty input counts as constant.
func isConstant(xs []float64) bool {
	if len(xs) == 0 {
		return true
	}
	return floats.Min(xs) == floats.Max(xs)
}

// modal returns the most frequent value. Among values sharing the highest
// count, the one encountered first wins.
func modal(values []string) string {
	counts := make(map[string]int, len(values))
	var order []string
	best := 0
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	for _, v := range order {
		if counts[v] == best {
			return v
		}
	}
	return ""
}

func demandValues(records []dataset.Record, rows []int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = records[r].MarketDemand
	}
	return out
}
