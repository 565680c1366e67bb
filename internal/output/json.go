package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

// WriteJSON writes the nested summary as indented UTF-8 JSON.
func WriteJSON(w io.Writer, nested map[string]map[string]any) error {
	b, err := utils.PrettyJSON(nested)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ParseJSON reads a persisted summary into name → value. Objects may be nested
// by category or flat; lists hold {"key"|"metric"|"項目", "value"|"數值"}
// objects.
func ParseJSON(r io.Reader) (map[string]any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	switch x := v.(type) {
	case map[string]any:
		return FlattenMap(x), nil
	case []any:
		out := map[string]any{}
		for _, item := range x {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, ok := firstString(obj, "key", "metric", "項目")
			if !ok {
				continue
			}
			if _, taken := out[name]; taken {
				continue
			}
			out[name] = firstValue(obj, "value", "數值")
		}
		if len(out) == 0 {
			return nil, errors.New("json list has no metric entries")
		}
		return out, nil
	default:
		return nil, errors.New("unsupported json structure for a metric summary")
	}
}

func firstString(obj map[string]any, names ...string) (string, bool) {
	for _, n := range names {
		if s, ok := obj[n].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func firstValue(obj map[string]any, names ...string) any {
	for _, n := range names {
		if v, ok := obj[n]; ok {
			return v
		}
	}
	return nil
}
