package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// LoadOptions controls header mapping and delimiter.
type LoadOptions struct {
	// Aliases maps a source header (lower-cased) to a canonical column.
	// DefaultAliases is used when nil.
	Aliases map[string]string
	// Comma is the field delimiter; ',' when zero.
	Comma rune
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string, opts LoadOptions) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return Load(file, opts)
}

// Load parses a CSV stream into a Table. Every canonical column must be
// present in the header, otherwise a *MissingFieldError is returned.
func Load(r io.Reader, opts LoadOptions) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read dataset: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyInput
	}

	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultAliases
	}

	header := normalizeHeader(rows[0], aliases)
	rows[0] = header

	cols, err := presentColumns(header)
	if err != nil {
		return Table{}, err
	}
	table := Table{Columns: cols}
	if err := table.Require(Columns...); err != nil {
		return Table{}, err
	}

	var records []Record
	if err := gocsv.UnmarshalCSV(&rowReader{rows: rows}, &records); err != nil {
		return Table{}, fmt.Errorf("parse dataset: %w", err)
	}
	for i := range records {
		records[i].Region = strings.TrimSpace(records[i].Region)
		records[i].RainfallLevel = strings.TrimSpace(records[i].RainfallLevel)
		records[i].MarketDemand = strings.TrimSpace(records[i].MarketDemand)
	}
	table.Records = records

	return table, nil
}

// normalizeHeader lower-cases and trims every header cell, then resolves aliases.
func normalizeHeader(header []string, aliases map[string]string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		out[i] = key
	}
	return out
}

// presentColumns lists the canonical columns found in header, in header
// order. A canonical column claimed by two cells is a *DuplicateFieldError.
func presentColumns(header []string) ([]string, error) {
	positions := make(map[string][]int, len(Columns))
	for _, c := range Columns {
		positions[c] = nil
	}

	var cols []string
	for i, h := range header {
		pos, known := positions[h]
		if !known {
			continue
		}
		if len(pos) == 0 {
			cols = append(cols, h)
		}
		positions[h] = append(pos, i+1)
	}

	for _, c := range cols {
		if pos := positions[c]; len(pos) > 1 {
			return nil, &DuplicateFieldError{Field: c, Positions: pos}
		}
	}
	return cols, nil
}

// rowReader feeds already-read rows to gocsv.
type rowReader struct {
	rows [][]string
	pos  int
}

func (r *rowReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}
