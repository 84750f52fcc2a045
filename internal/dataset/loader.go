package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// Source column names
const (
	ColumnVariety       = "coffee_variety"
	ColumnPrice         = "price"
	ColumnRanking       = "ranking"
	ColumnYear          = "year"
	ColumnName          = "name"
	ColumnLocation      = "location"
	ColumnProperties    = "properties"
	ColumnCarbonCredits = "carbon_credits"
)

// RequiredColumns lists the columns every dataset source must provide, in canonical order
var RequiredColumns = []string{
	ColumnVariety,
	ColumnPrice,
	ColumnRanking,
	ColumnYear,
	ColumnName,
	ColumnLocation,
	ColumnProperties,
	ColumnCarbonCredits,
}

// LoadFile opens a CSV dataset from disk
func LoadFile(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Load reads a CSV dataset with a header row
func Load(r io.Reader) (*Store, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", len(records)+2, err)
		}
		records = append(records, row)
	}

	return FromRecords(header, records)
}

// FromRecords builds a Store from a header and raw text records. Missing cells
// and non-numeric values in numeric columns become missing fields.
func FromRecords(header []string, records [][]string) (*Store, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	cell := func(row []string, col string) (string, bool) {
		i := index[col]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		if isNull(v) {
			return "", false
		}
		return v, true
	}

	lots := make([]model.Lot, 0, len(records))
	for _, row := range records {
		variety, ok := cell(row, ColumnVariety)
		if !ok {
			continue
		}
		lot := model.Lot{Variety: variety}
		lot.Price = parseNumber(cell(row, ColumnPrice))
		lot.QualityScore = parseNumber(cell(row, ColumnRanking))
		lot.CarbonCredits = parseNumber(cell(row, ColumnCarbonCredits))
		if year := parseNumber(cell(row, ColumnYear)); year != nil {
			y := int(*year)
			lot.HarvestYear = &y
		}
		lot.ProducerName = parseText(cell(row, ColumnName))
		lot.Location = parseText(cell(row, ColumnLocation))
		lot.FlavorProperties = parseText(cell(row, ColumnProperties))
		lots = append(lots, lot)
	}

	return New(lots), nil
}

func isNull(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "null", "none", "n/a", "na":
		return true
	}
	return false
}

func parseNumber(v string, ok bool) *float64 {
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseText(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}
