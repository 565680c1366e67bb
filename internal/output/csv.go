package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const bom = "\ufeff"

// CSVHeader is the flat summary header row.
var CSVHeader = []string{"key", "label", "value", "unit"}

// WriteCSV writes pairs as a BOM-prefixed UTF-8 CSV so spreadsheet tools
// detect the encoding. Absent values are written as empty cells.
func WriteCSV(w io.Writer, pairs []Pair) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range pairs {
		if err := cw.Write([]string{string(p.Key), p.Label, p.Value.String(), p.Unit}); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a flat summary back into name → raw string. Three layouts
// are accepted: a header naming key and value columns, bare two-column
// name,value rows, and a wide export with one header row and one value row.
func ParseCSV(r io.Reader) (map[string]any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(b), bom)))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	out := map[string]any{}
	if len(rows) == 0 {
		return out, nil
	}
	head := rows[0]
	keyCol := columnOf(head, "key", "metric", "項目")
	valCol := columnOf(head, "value", "數值")
	switch {
	case keyCol >= 0 && valCol >= 0:
		for _, row := range rows[1:] {
			if keyCol < len(row) && strings.TrimSpace(row[keyCol]) != "" {
				out[row[keyCol]] = cell(row, valCol)
			}
		}
	case len(head) == 2:
		for _, row := range rows {
			if len(row) >= 2 && strings.TrimSpace(row[0]) != "" {
				out[row[0]] = row[1]
			}
		}
	default:
		if len(rows) < 2 {
			return nil, errors.New("csv has a header but no value row")
		}
		for i, name := range head {
			if strings.TrimSpace(name) != "" {
				out[name] = cell(rows[1], i)
			}
		}
	}
	return out, nil
}

func columnOf(head []string, names ...string) int {
	for _, n := range names {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), n) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
