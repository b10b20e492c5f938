package analysis_test

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

var (
	fakeRegions = []string{"Halmahera Utara", "Halmahera Timur", "Halmahera Tengah", "Pulau Morotai", "Tidore"}
	fakeLevels  = []string{"rendah", "sedang", "tinggi"}
)

// randomTable builds a table with integer productions so sums stay exact.
func randomTable(seed int64, n int) dataset.Table {
	faker := gofakeit.New(seed)
	records := make([]dataset.Record, n)
	for i := range records {
		records[i] = dataset.Record{
			Year:          faker.IntRange(2015, 2024),
			Region:        faker.RandomString(fakeRegions),
			Production:    float64(faker.IntRange(0, 20000)),
			RainfallLevel: faker.RandomString(fakeLevels),
			MarketDemand:  faker.RandomString(fakeLevels),
			Price:         faker.Float64Range(20000, 40000),
			LandArea:      faker.Float64Range(100, 1000),
			Consumption:   faker.Float64Range(0.5, 2.5),
		}
	}
	return dataset.NewTable(records)
}

func TestProperties_RandomTables(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		table := randomTable(seed, 5+int(seed)*3)

		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			total := analysis.TotalProduction(table)

			yearly, err := analysis.ByYear(table)
			require.NoError(t, err)
			var yearlySum float64
			for i, y := range yearly {
				yearlySum += y.SumProduction
				if i > 0 {
					assert.Less(t, yearly[i-1].Year, y.Year)
				}
			}
			assert.Equal(t, total, yearlySum)

			regional, err := analysis.ByRegion(table)
			require.NoError(t, err)
			var regionalSum float64
			for i, r := range regional {
				regionalSum += r.SumProduction
				if i > 0 {
					assert.GreaterOrEqual(t, regional[i-1].SumProduction, r.SumProduction)
				}
			}
			assert.Equal(t, total, regionalSum)

			potential, err := analysis.PotentialScore(table)
			require.NoError(t, err)
			for _, p := range potential {
				assert.GreaterOrEqual(t, p.PotentialScore, 0.0)
				assert.LessOrEqual(t, p.PotentialScore, 1.0)
			}

			recs, err := analysis.Recommend(table)
			require.NoError(t, err)
			require.Len(t, recs, len(potential))
			for i := 1; i < len(recs); i++ {
				assert.GreaterOrEqual(t, recs[i-1].PotentialScore, recs[i].PotentialScore)
			}

			corr, err := analysis.CorrelationMatrix(table)
			require.NoError(t, err)
			assertSymmetric(t, corr)
		})
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	table := randomTable(99, 60)
	before := make([]dataset.Record, len(table.Records))
	copy(before, table.Records)

	first, err := analysis.Summarize(table)
	require.NoError(t, err)
	second, err := analysis.Summarize(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, table.Records)
}

func TestSummarize_SampleDataset(t *testing.T) {
	table, err := dataset.LoadFile("../../testdata/data_kakao.csv", dataset.LoadOptions{})
	require.NoError(t, err)

	s, err := analysis.Summarize(table)
	require.NoError(t, err)

	assert.Equal(t, 20, s.Records)
	assert.Equal(t, 4, s.Regions)
	assert.Equal(t, 2019, s.FirstYear)
	assert.Equal(t, 2023, s.LastYear)
	assert.Equal(t, 222150.0, s.TotalProduction)

	require.Len(t, s.Regional, 4)
	assert.Equal(t, analysis.RegionProduction{Region: "Halmahera Utara", MeanProduction: 16380, SumProduction: 81900}, s.Regional[0])
	assert.Equal(t, "Halmahera Tengah", s.Regional[1].Region)
	assert.Equal(t, "Halmahera Timur", s.Regional[2].Region)
	assert.Equal(t, "Pulau Morotai", s.Regional[3].Region)

	require.Len(t, s.Yearly, 5)
	require.NotNil(t, s.Projection)
	assert.Len(t, s.Projection.Years, analysis.ProjectionHorizon)
	assert.Equal(t, 2024, s.Projection.Years[0].Year)

	assert.Len(t, s.Recommendations, 4)
	assertSymmetric(t, s.Correlation)
}

func TestSummarize_EmptyTable(t *testing.T) {
	s, err := analysis.Summarize(dataset.NewTable(nil))
	require.NoError(t, err)

	assert.Zero(t, s.Records)
	assert.Empty(t, s.Yearly)
	assert.Empty(t, s.Regional)
	assert.Nil(t, s.Projection)
	for _, row := range s.Correlation.Values {
		for _, v := range row {
			assert.False(t, v.Valid)
		}
	}
}

func assertSymmetric(t *testing.T, c analysis.Correlation) {
	t.Helper()
	require.Len(t, c.Values, len(c.Fields))
	for i := range c.Values {
		for j := range c.Values[i] {
			assert.Equal(t, c.Values[i][j], c.Values[j][i], "[%d][%d]", i, j)
		}
		if c.Values[i][i].Valid {
			assert.Equal(t, 1.0, c.Values[i][i].Value)
		}
	}
}
