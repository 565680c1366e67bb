// Package output renders a metric record into its flat and nested summary
// forms and reads those forms back.
package output

import (
	"sort"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
)

// CategoryOther holds keys the schema does not define.
const CategoryOther = "other"

// Pair is one row of the flat summary.
type Pair struct {
	Key   metrics.Key
	Label string
	Value metrics.Value
	Unit  string
}

// Flatten lists the record's entries in record order. Labels come from the
// schema; text values carry no unit.
func Flatten(s *metrics.Schema, rec *metrics.Record) []Pair {
	entries := rec.Entries()
	out := make([]Pair, 0, len(entries))
	for _, e := range entries {
		p := Pair{Key: e.Key, Label: string(e.Key), Value: e.Value, Unit: e.Value.Unit}
		if d, ok := s.Def(e.Key); ok {
			p.Label = d.Label
			if p.Unit == "" && e.Value.Kind != metrics.Text {
				p.Unit = d.Unit
			}
		}
		out = append(out, p)
	}
	return out
}

// Nest groups the record by category: category → key → value, where value is
// a float64, a string, or nil for an absent entry.
func Nest(s *metrics.Schema, rec *metrics.Record) map[string]map[string]any {
	out := map[string]map[string]any{}
	for _, e := range rec.Entries() {
		cat := CategoryOther
		if d, ok := s.Def(e.Key); ok {
			cat = string(d.Category)
		}
		if out[cat] == nil {
			out[cat] = map[string]any{}
		}
		out[cat][string(e.Key)] = plain(e.Value)
	}
	return out
}

func plain(v metrics.Value) any {
	switch v.Kind {
	case metrics.Number:
		return v.Num
	case metrics.Text:
		return v.Text
	default:
		return nil
	}
}

// FlattenMap collapses nested maps into one key → value map. Names are
// visited in sorted order and the first occurrence of a name wins.
func FlattenMap(in map[string]any) map[string]any {
	out := map[string]any{}
	flattenInto(in, out)
	return out
}

func flattenInto(in, out map[string]any) {
	names := make([]string, 0, len(in))
	for n := range in {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if sub, ok := in[n].(map[string]any); ok {
			flattenInto(sub, out)
			continue
		}
		if _, taken := out[n]; !taken {
			out[n] = in[n]
		}
	}
}
