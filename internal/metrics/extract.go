package metrics

import (
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/ingest"
)

// ExtractOptions tunes the value pass.
type ExtractOptions struct {
	Number NumberFormat
}

// Extractor turns a parsed export into a Record.
type Extractor struct {
	schema  *Schema
	matcher *Matcher
	opts    ExtractOptions
}

// NewExtractor binds an extractor to a validated schema.
func NewExtractor(s *Schema, opts ExtractOptions) *Extractor {
	return &Extractor{schema: s, matcher: NewMatcher(s), opts: opts}
}

// Matcher exposes the header matcher used by the extractor.
func (x *Extractor) Matcher() *Matcher { return x.matcher }

// Extract runs the header pass and the value pass over t.
func (x *Extractor) Extract(t *ingest.Table) (*Record, error) {
	return x.ExtractRows(t.Header, t.Rows)
}

// ExtractRows reads the first non-blank data row. Keys without a column are
// left out of the record; keys whose cell is blank or "-" are Absent.
func (x *Extractor) ExtractRows(header []string, rows [][]string) (*Record, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}
	cols := x.matcher.Match(header).Columns()
	row := firstDataRow(rows)

	var entries []Entry
	for _, def := range x.schema.Keys {
		idx, ok := cols[def.Key]
		if !ok {
			continue
		}
		cell := ""
		if idx < len(row) {
			cell = row[idx]
		}
		entries = append(entries, Entry{Key: def.Key, Value: x.coerce(def, cell)})
	}
	rec := NewRecord(entries)

	var missing []string
	for _, req := range x.schema.Required {
		if !anyPresent(rec, req.Any) {
			missing = append(missing, req.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRequiredFieldError{Fields: missing}
	}
	return rec, nil
}

func (x *Extractor) coerce(def KeyDef, cell string) Value {
	raw := strings.TrimSpace(cell)
	if raw == "" || raw == "-" {
		return Value{}
	}
	if def.Kind == KindText {
		return TextValue(raw)
	}
	if f, ok := ParseNumber(raw, x.opts.Number); ok {
		return NumberValue(f, def.Unit)
	}
	return TextValue(raw)
}

func firstDataRow(rows [][]string) []string {
	for _, r := range rows {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				return r
			}
		}
	}
	return nil
}

func anyPresent(rec *Record, keys []Key) bool {
	for _, k := range keys {
		if rec.Get(k).Present() {
			return true
		}
	}
	return false
}
