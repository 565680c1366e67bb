package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/output"
)

// FromMap builds a store from a persisted key/value form. Nested category
// maps are flattened. Keys may be canonical keys, labels or legacy aliases
// such as "SMM_kg"; unknown keys are kept verbatim.
func FromMap(s *metrics.Schema, m map[string]any) *Store {
	flat := output.FlattenMap(m)

	names := make([]string, 0, len(flat))
	for n := range flat {
		names = append(names, n)
	}
	sort.Strings(names)

	values := map[metrics.Key]metrics.Value{}
	// Names spelled exactly as a key win over aliases of the same key.
	for _, exact := range []bool{true, false} {
		for _, n := range names {
			def, known := resolve(s, n)
			if known && (def.Key == metrics.Key(n)) != exact {
				continue
			}
			if !known && !exact {
				continue
			}
			k := metrics.Key(n)
			if known {
				k = def.Key
			}
			if _, taken := values[k]; taken {
				continue
			}
			values[k] = toValue(def, known, flat[n])
		}
	}

	keys := make([]metrics.Key, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	entries := make([]metrics.Entry, 0, len(keys))
	for _, k := range sortedKeys(s, keys) {
		entries = append(entries, metrics.Entry{Key: k, Value: values[k]})
	}
	return build(s, entries)
}

// Load reads a JSON (nested, flat or list) or flat CSV summary.
func Load(s *metrics.Schema, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary: %w", err)
	}
	defer f.Close()

	var m map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		m, err = output.ParseJSON(f)
	case ".csv":
		m, err = output.ParseCSV(f)
	default:
		return nil, fmt.Errorf("unsupported summary format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	return FromMap(s, m), nil
}

// resolve maps a persisted name to a catalog key by exact key, then by
// normalized key, label or alias.
func resolve(s *metrics.Schema, name string) (metrics.KeyDef, bool) {
	if s == nil {
		return metrics.KeyDef{}, false
	}
	if d, ok := s.Def(metrics.Key(name)); ok {
		return d, true
	}
	n := normalize(name)
	if n == "" {
		return metrics.KeyDef{}, false
	}
	for _, d := range s.Keys {
		if normalize(string(d.Key)) == n || normalize(d.Label) == n {
			return d, true
		}
		for _, a := range d.Aliases {
			if normalize(a) == n {
				return d, true
			}
		}
	}
	return metrics.KeyDef{}, false
}

func toValue(def metrics.KeyDef, known bool, v any) metrics.Value {
	switch x := v.(type) {
	case nil:
		return metrics.Value{}
	case float64:
		return metrics.NumberValue(x, def.Unit)
	case int:
		return metrics.NumberValue(float64(x), def.Unit)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return metrics.NumberValue(f, def.Unit)
		}
		return metrics.TextValue(x.String())
	case bool:
		return metrics.TextValue(strconv.FormatBool(x))
	case string:
		raw := strings.TrimSpace(x)
		if raw == "" || raw == "-" {
			return metrics.Value{}
		}
		if known && def.Kind == metrics.KindText {
			return metrics.TextValue(raw)
		}
		if f, ok := metrics.ParseNumber(raw, metrics.NumberFormat{}); ok {
			return metrics.NumberValue(f, def.Unit)
		}
		return metrics.TextValue(raw)
	default:
		return metrics.TextValue(fmt.Sprint(x))
	}
}
