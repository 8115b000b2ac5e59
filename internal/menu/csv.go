package menu

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV parses a CSV stream with a header row into a Dataset.
//
// Header names are matched case-insensitively after trimming; extra columns
// are ignored. Every required column must be present and every numeric cell
// must parse, otherwise the whole load fails.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &IngestError{Code: ErrCodeEmptyDataset, Message: "missing header row"}
	}
	if err != nil {
		return nil, &IngestError{Code: ErrCodeReadFailed, Message: "read header", Err: err}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	cols := make([]int, len(RequiredColumns))
	for i, name := range RequiredColumns {
		pos, ok := index[name]
		if !ok {
			return nil, &IngestError{Code: ErrCodeMissingColumn, Column: name, Message: "required column is absent"}
		}
		cols[i] = pos
	}

	var items []MenuItem
	for row := 1; ; row++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &IngestError{Code: ErrCodeReadFailed, Row: row, Message: "read row", Err: err}
		}

		item, err := parseRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return New(items)
}

// parseRow converts one CSV record; cols follows RequiredColumns order.
func parseRow(rec []string, cols []int, row int) (MenuItem, error) {
	nums := make([]float64, len(Attributes))
	for i, a := range Attributes {
		raw := strings.TrimSpace(rec[cols[i+2]])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return MenuItem{}, &IngestError{
				Code:    ErrCodeNotNumeric,
				Row:     row,
				Column:  string(a),
				Message: fmt.Sprintf("%q is not a number", raw),
				Err:     err,
			}
		}
		nums[i] = v
	}

	return MenuItem{
		Restaurant:    rec[cols[0]],
		ItemName:      rec[cols[1]],
		Protein:       nums[0],
		Carbohydrates: nums[1],
		TotalFat:      nums[2],
		Calories:      nums[3],
	}, nil
}

// LoadCSVFile opens path and parses it with ReadCSV.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("open %s", path), Err: err}
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}
