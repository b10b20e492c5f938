package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakao/internal/analysis"
	"kakao/internal/dataset"
)

func TestCorrelationMatrix_PerfectAndInverse(t *testing.T) {
	records := []dataset.Record{
		{Production: 1, Price: 2, LandArea: 30, Consumption: 1},
		{Production: 2, Price: 4, LandArea: 20, Consumption: 3},
		{Production: 3, Price: 6, LandArea: 10, Consumption: 2},
	}

	corr, err := analysis.CorrelationMatrix(dataset.NewTable(records))
	require.NoError(t, err)

	assert.Equal(t, analysis.CorrelationFields, corr.Fields)

	v, ok := corr.At(dataset.ColProduction, dataset.ColPrice)
	require.True(t, ok)
	assert.Equal(t, analysis.Float(1), v)

	v, _ = corr.At(dataset.ColProduction, dataset.ColLandArea)
	assert.Equal(t, analysis.Float(-1), v)

	v, _ = corr.At(dataset.ColProduction, dataset.ColConsumption)
	assert.Equal(t, analysis.Float(0.5), v)

	_, ok = corr.At(dataset.ColProduction, "rainfall_level")
	assert.False(t, ok)

	assertSymmetric(t, corr)
}

func TestCorrelationMatrix_ConstantFieldIsNull(t *testing.T) {
	records := []dataset.Record{
		{Production: 500, Price: 2, LandArea: 30, Consumption: 1},
		{Production: 500, Price: 4, LandArea: 20, Consumption: 3},
		{Production: 500, Price: 5, LandArea: 10, Consumption: 2},
	}

	corr, err := analysis.CorrelationMatrix(dataset.NewTable(records))
	require.NoError(t, err)

	for j := range corr.Fields {
		assert.False(t, corr.Values[0][j].Valid, "row 0 col %d", j)
		assert.False(t, corr.Values[j][0].Valid, "row %d col 0", j)
	}
	assert.Equal(t, analysis.Float(1), corr.Values[1][1])
	assertSymmetric(t, corr)
}

func TestCorrelationMatrix_SingleRecordIsNull(t *testing.T) {
	corr, err := analysis.CorrelationMatrix(dataset.NewTable([]dataset.Record{rec("A", 2020, 10)}))
	require.NoError(t, err)

	for i := range corr.Values {
		for j := range corr.Values[i] {
			assert.False(t, corr.Values[i][j].Valid)
		}
	}
}

func TestSeasonality(t *testing.T) {
	records := []dataset.Record{rec("A", 2021, 10), rec("B", 2020, 30), rec("C", 2020, 50), rec("D", 2020, 7)}
	records[0].RainfallLevel = "rendah"
	records[1].RainfallLevel = "tinggi"
	records[2].RainfallLevel = "tinggi"
	records[3].RainfallLevel = "rendah"

	got, err := analysis.Seasonality(dataset.NewTable(records))
	require.NoError(t, err)

	assert.Equal(t, []analysis.SeasonalPoint{
		{Year: 2020, Level: "rendah", MeanProduction: 7},
		{Year: 2020, Level: "tinggi", MeanProduction: 40},
		{Year: 2021, Level: "rendah", MeanProduction: 10},
	}, got)
}

func TestRegionTrend(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("B", 2021, 10), rec("A", 2021, 4), rec("A", 2020, 2), rec("A", 2021, 6),
	})

	got, err := analysis.RegionTrend(table)
	require.NoError(t, err)

	assert.Equal(t, []analysis.RegionYear{
		{Region: "A", Year: 2020, MeanProduction: 2},
		{Region: "A", Year: 2021, MeanProduction: 5},
		{Region: "B", Year: 2021, MeanProduction: 10},
	}, got)
}

func TestMarketShare(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{rec("B", 2020, 25), rec("A", 2020, 50), rec("B", 2021, 25)})

	got, err := analysis.MarketShare(table)
	require.NoError(t, err)

	assert.Equal(t, []analysis.RegionShare{
		{Region: "A", SumProduction: 50, SharePercent: 50},
		{Region: "B", SumProduction: 50, SharePercent: 50},
	}, got)

	zero := dataset.NewTable([]dataset.Record{rec("A", 2020, 0)})
	got, err = analysis.MarketShare(zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].SharePercent)
}

func TestProductionRisk(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("A", 2020, 2), rec("A", 2021, 4), rec("A", 2022, 4), rec("A", 2023, 4),
		rec("A", 2024, 5), rec("A", 2025, 5), rec("A", 2026, 7), rec("A", 2027, 9),
		rec("Solo", 2020, 100),
	})

	got, err := analysis.ProductionRisk(table)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// sample deviation of {2,4,4,4,5,5,7,9} is sqrt(32/7)
	assert.Equal(t, analysis.Float(2.14), got[0].StdDevProduction)
	assert.Equal(t, 8, got[0].Records)
	// 2.138 / 5
	assert.Equal(t, analysis.Float(0.43), got[0].Variation)
	assert.Equal(t, analysis.RiskHigh, got[0].Level)

	assert.Equal(t, "Solo", got[1].Region)
	assert.False(t, got[1].StdDevProduction.Valid)
	assert.False(t, got[1].Variation.Valid)
	assert.Empty(t, got[1].Level)
}

func TestProductionRisk_ZeroMeanHasNoLevel(t *testing.T) {
	got, err := analysis.ProductionRisk(dataset.NewTable([]dataset.Record{
		rec("A", 2020, 0), rec("A", 2021, 0),
	}))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, analysis.Float(0), got[0].StdDevProduction)
	assert.False(t, got[0].Variation.Valid)
	assert.Empty(t, got[0].Level)
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		in   float64
		want analysis.RiskLevel
	}{
		{0, analysis.RiskLow},
		{0.15, analysis.RiskLow},
		{0.2, analysis.RiskMedium},
		{0.30, analysis.RiskMedium},
		{0.31, analysis.RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, analysis.RiskLevelFor(tt.in), "%v", tt.in)
	}
}

func TestYearlyGrowth(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("A", 2020, 10), rec("B", 2020, 30),
		rec("A", 2021, 40), rec("B", 2021, 20), rec("B", 2021, 20),
		rec("A", 2022, 0),
		rec("A", 2023, 5),
	})

	got, err := analysis.YearlyGrowth(table)
	require.NoError(t, err)

	assert.Equal(t, []analysis.YearGrowth{
		{Year: 2020, SumProduction: 40, TopRegion: "B", TopRegionProduction: 30},
		// A and B tie at 40; A was seen first
		{Year: 2021, SumProduction: 80, AnnualChange: 40, GrowthPercent: analysis.Float(100), TopRegion: "A", TopRegionProduction: 40},
		{Year: 2022, SumProduction: 0, AnnualChange: -80, GrowthPercent: analysis.Float(-100), TopRegion: "A", TopRegionProduction: 0},
		// growth from a zero total is undefined
		{Year: 2023, SumProduction: 5, AnnualChange: 5, TopRegion: "A", TopRegionProduction: 5},
	}, got)
}

func TestYearlyGrowth_SampleData(t *testing.T) {
	table, err := dataset.LoadFile("../../testdata/data_kakao.csv", dataset.LoadOptions{})
	require.NoError(t, err)

	got, err := analysis.YearlyGrowth(table)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, 43650.0, got[1].SumProduction)
	assert.Equal(t, 2150.0, got[1].AnnualChange)
	assert.Equal(t, analysis.Float(5.18), got[1].GrowthPercent)
	for _, g := range got {
		assert.Equal(t, "Halmahera Utara", g.TopRegion, "%d", g.Year)
	}
}

func TestRegionPeaks(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("B", 2020, 30), rec("B", 2021, 20), rec("B", 2021, 20),
		rec("A", 2020, 10), rec("A", 2021, 40), rec("A", 2022, 5),
		rec("C", 2019, 7), rec("C", 2018, 7),
	})

	got, err := analysis.RegionPeaks(table)
	require.NoError(t, err)

	assert.Equal(t, []analysis.RegionPeak{
		{Region: "A", PeakYear: 2021, PeakProduction: 40},
		{Region: "B", PeakYear: 2021, PeakProduction: 40},
		{Region: "C", PeakYear: 2018, PeakProduction: 7},
	}, got)
}

func TestGrowthAndPeaks_MissingColumn(t *testing.T) {
	table := dataset.Table{Columns: []string{dataset.ColYear, dataset.ColProduction}}

	var missing *dataset.MissingFieldError
	_, err := analysis.YearlyGrowth(table)
	assert.ErrorAs(t, err, &missing)
	_, err = analysis.RegionPeaks(table)
	assert.ErrorAs(t, err, &missing)
}

func TestMarketOpportunity(t *testing.T) {
	records := []dataset.Record{rec("A", 2020, 10), rec("A", 2021, 20), rec("B", 2020, 30), rec("C", 2020, 5)}
	records[3].MarketDemand = "rendah"

	got, err := analysis.MarketOpportunity(dataset.NewTable(records))
	require.NoError(t, err)

	assert.Equal(t, []analysis.DemandOpportunity{
		{Level: "rendah", MeanProduction: 5, TotalProduction: 5, RegionCount: 1},
		{Level: "tinggi", MeanProduction: 20, TotalProduction: 60, RegionCount: 2},
	}, got)
}

func TestProjectProduction(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{
		rec("A", 2020, 60), rec("B", 2020, 40),
		rec("A", 2021, 200),
	})

	proj, err := analysis.ProjectProduction(table, 2)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, proj.Slope, 1e-6)
	assert.Equal(t, []analysis.ProjectedYear{
		{Year: 2022, Production: 300},
		{Year: 2023, Production: 400},
	}, proj.Years)
}

func TestProjectProduction_ClampsAtZero(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{rec("A", 2020, 200), rec("A", 2021, 100)})

	proj, err := analysis.ProjectProduction(table, 3)
	require.NoError(t, err)

	assert.Equal(t, []analysis.ProjectedYear{
		{Year: 2022, Production: 0},
		{Year: 2023, Production: 0},
		{Year: 2024, Production: 0},
	}, proj.Years)
}

func TestProjectProduction_NeedsTwoYears(t *testing.T) {
	table := dataset.NewTable([]dataset.Record{rec("A", 2020, 1), rec("B", 2020, 2)})

	_, err := analysis.ProjectProduction(table, 3)
	assert.ErrorIs(t, err, analysis.ErrInsufficientYears)
}
