package metrics

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Key is a canonical metric identifier such as "skeletal_muscle_mass".
type Key string

// Category groups keys; the record order follows category order.
type Category string

const (
	CategoryIdentity    Category = "identity"
	CategoryComposition Category = "composition"
	CategoryControl     Category = "control"
	CategorySegmental   Category = "segmental"
)

// Categories lists categories in record order.
var Categories = []Category{CategoryIdentity, CategoryComposition, CategoryControl, CategorySegmental}

func categoryRank(c Category) int {
	for i, x := range Categories {
		if x == c {
			return i
		}
	}
	return -1
}

// Kind controls value coercion.
type Kind string

const (
	KindNumber Kind = "number"
	KindText   Kind = "text"
)

// KeyDef describes one metric in the catalog.
type KeyDef struct {
	Key      Key      `yaml:"key"`
	Category Category `yaml:"category"`
	Label    string   `yaml:"label"`
	Unit     string   `yaml:"unit,omitempty"`
	Kind     Kind     `yaml:"kind"`
	// Aliases are synonyms used by fuzzy lookups (store), not by the matcher.
	Aliases []string `yaml:"aliases,omitempty"`
}

// Rule binds header keywords to a key. Rules are evaluated in table order.
type Rule struct {
	Key      Key      `yaml:"key"`
	Patterns []string `yaml:"patterns"`
	// Exclude lists keywords that disqualify this rule for a header.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Requirement is satisfied when any of its keys carries a value.
type Requirement struct {
	Name string `yaml:"name"`
	Any  []Key  `yaml:"any"`
}

// Schema is the externally loadable rule table driving matching and extraction.
type Schema struct {
	Keys []KeyDef `yaml:"keys"`
	// Rules in priority order: specific keywords before broad ones.
	Rules []Rule `yaml:"rules"`
	// Exclusions mark normal-range bound columns; they never bind.
	Exclusions []string      `yaml:"exclusions"`
	Required   []Requirement `yaml:"required"`
}

// Def returns the definition for k.
func (s *Schema) Def(k Key) (KeyDef, bool) {
	for _, d := range s.Keys {
		if d.Key == k {
			return d, true
		}
	}
	return KeyDef{}, false
}

// KeysIn returns the keys of a category in catalog order.
func (s *Schema) KeysIn(c Category) []Key {
	var out []Key
	for _, d := range s.Keys {
		if d.Category == c {
			out = append(out, d.Key)
		}
	}
	return out
}

// Validate checks referential integrity, orders the catalog by category and
// rejects a normalized pattern registered for two different keys.
func (s *Schema) Validate() error {
	seen := map[Key]bool{}
	for i, d := range s.Keys {
		if d.Key == "" {
			return fmt.Errorf("keys[%d]: empty key", i)
		}
		if seen[d.Key] {
			return fmt.Errorf("keys[%d]: duplicate key %q", i, d.Key)
		}
		seen[d.Key] = true
		if categoryRank(d.Category) < 0 {
			return fmt.Errorf("key %q: unknown category %q", d.Key, d.Category)
		}
		switch d.Kind {
		case KindNumber, KindText:
		case "":
			s.Keys[i].Kind = KindNumber
		default:
			return fmt.Errorf("key %q: unknown kind %q", d.Key, d.Kind)
		}
	}
	sort.SliceStable(s.Keys, func(i, j int) bool {
		return categoryRank(s.Keys[i].Category) < categoryRank(s.Keys[j].Category)
	})

	owner := map[string]Key{}
	for i, r := range s.Rules {
		if !seen[r.Key] {
			return fmt.Errorf("rules[%d]: undefined key %q", i, r.Key)
		}
		if len(r.Patterns) == 0 {
			return fmt.Errorf("rules[%d] (%s): no patterns", i, r.Key)
		}
		for _, p := range r.Patterns {
			np := normalizeHeader(p)
			if np == "" {
				return fmt.Errorf("rules[%d] (%s): empty pattern", i, r.Key)
			}
			if k, ok := owner[np]; ok && k != r.Key {
				return &AmbiguousMatchError{Header: p, Keys: []Key{k, r.Key}}
			}
			owner[np] = r.Key
		}
	}
	for i, req := range s.Required {
		for _, k := range req.Any {
			if !seen[k] {
				return fmt.Errorf("required[%d] (%s): undefined key %q", i, req.Name, k)
			}
		}
	}
	return nil
}

// LoadSchema reads a YAML rule table. Missing sections are taken from
// DefaultSchema so a file may only override, say, the rules.
func LoadSchema(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	def := DefaultSchema()
	if len(s.Keys) == 0 {
		s.Keys = def.Keys
	}
	if len(s.Rules) == 0 {
		s.Rules = def.Rules
	}
	if s.Exclusions == nil {
		s.Exclusions = def.Exclusions
	}
	if s.Required == nil {
		s.Required = def.Required
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}
	return &s, nil
}

// YAML renders the schema in the rule-file format read by LoadSchema.
func (s *Schema) YAML() ([]byte, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}
	return b, nil
}
