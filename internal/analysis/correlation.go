package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"kakao/internal/dataset"
)

// CorrelationFields are the numeric columns compared by CorrelationMatrix.
var CorrelationFields = []string{
	dataset.ColProduction,
	dataset.ColPrice,
	dataset.ColLandArea,
	dataset.ColConsumption,
}

var correlationExtractors = []func(dataset.Record) float64{
	production,
	price,
	landArea,
	consumption,
}

// Correlation is a square Pearson matrix over Fields. Values[i][j] is null
// when either field is constant across the table or fewer than two records
// exist.
type Correlation struct {
	Fields []string      `json:"fields"`
	Values [][]NullFloat `json:"values"`
}

// At returns the coefficient between two named fields.
func (c Correlation) At(a, b string) (NullFloat, bool) {
	i, j := -1, -1
	for k, f := range c.Fields {
		if f == a {
			i = k
		}
		if f == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return Null, false
	}
	return c.Values[i][j], true
}

// CorrelationMatrix computes pairwise Pearson coefficients rounded to two
// decimals. The matrix is symmetric and its diagonal is 1 except for
// constant fields, which are null throughout their row and column.
func CorrelationMatrix(t dataset.Table) (Correlation, error) {
	if err := t.Require(CorrelationFields...); err != nil {
		return Correlation{}, err
	}

	rows := allRows(len(t.Records))
	cols := make([][]float64, len(correlationExtractors))
	constant := make([]bool, len(cols))
	for i, extract := range correlationExtractors {
		cols[i] = column(t.Records, rows, extract)
		constant[i] = len(rows) < 2 || isConstant(cols[i])
	}

	n := len(cols)
	values := make([][]NullFloat, n)
	for i := range values {
		values[i] = make([]NullFloat, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := Null
			switch {
			case constant[i] || constant[j]:
			case i == j:
				v = Float(1)
			default:
				r := stat.Correlation(cols[i], cols[j], nil)
				if !math.IsNaN(r) {
					v = Float(Round2(math.Max(-1, math.Min(1, r))))
				}
			}
			values[i][j] = v
			values[j][i] = v
		}
	}

	fields := make([]string, n)
	copy(fields, CorrelationFields)
	return Correlation{Fields: fields, Values: values}, nil
}
