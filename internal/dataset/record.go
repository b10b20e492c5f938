// Package dataset holds the cocoa production table and its CSV loader.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical column names.
const (
	ColYear         = "year"
	ColRegion       = "region"
	ColProduction   = "annual_production"
	ColRainfall     = "rainfall_level"
	ColMarketDemand = "market_demand"
	ColPrice        = "price"
	ColLandArea     = "land_area_hectares"
	ColConsumption  = "per_capita_consumption"
)

// Columns lists every canonical column in source order.
var Columns = []string{
	ColYear,
	ColRegion,
	ColProduction,
	ColRainfall,
	ColMarketDemand,
	ColPrice,
	ColLandArea,
	ColConsumption,
}

// DefaultAliases maps the headers of the Morotai survey export to canonical names.
var DefaultAliases = map[string]string{
	"tahun":                            ColYear,
	"wilayah":                          ColRegion,
	"produksi_pertahun":                ColProduction,
	"curah_hujan":                      ColRainfall,
	"permintaan_pasar":                 ColMarketDemand,
	"harga":                            ColPrice,
	"luas_lahan_hektar":                ColLandArea,
	"tingkat_konsumsi_perkapita_perkg": ColConsumption,
}

// Record is one row of the dataset: a region's figures for a year.
type Record struct {
	Year          int     `csv:"year" json:"year"`
	Region        string  `csv:"region" json:"region"`
	Production    float64 `csv:"annual_production" json:"annual_production"`
	RainfallLevel string  `csv:"rainfall_level" json:"rainfall_level"`
	MarketDemand  string  `csv:"market_demand" json:"market_demand"`
	Price         float64 `csv:"price" json:"price"`
	LandArea      float64 `csv:"land_area_hectares" json:"land_area_hectares"`
	Consumption   float64 `csv:"per_capita_consumption" json:"per_capita_consumption"`
}

// Table is the parsed, read-only input of every aggregation.
// Columns holds the canonical columns present in the source header.
type Table struct {
	Columns []string
	Records []Record
}

// NewTable builds a table with the full column set.
func NewTable(records []Record) Table {
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return Table{Columns: cols, Records: records}
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether the named canonical column is present.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Require returns a *MissingFieldError naming every absent column, or nil.
func (t Table) Require(fields ...string) error {
	var missing []string
	for _, f := range fields {
		if !t.HasColumn(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// ErrEmptyInput is returned when the source has no header row.
var ErrEmptyInput = errors.New("dataset: empty input")

// MissingFieldError reports required columns absent from the table.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dataset: missing required column(s): %s", strings.Join(e.Fields, ", "))
}

// DuplicateFieldError reports a column named by more than one header cell,
// directly or through an alias. Positions are 1-based.
type DuplicateFieldError struct {
	Field     string
	Positions []int
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("dataset: column %s appears more than once in header (positions %v)", e.Field, e.Positions)
}
