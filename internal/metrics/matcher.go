package metrics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

var numberingPrefix = regexp.MustCompile(`^\d+\.?\s*`)

// normalizeHeader trims, folds full-width forms ("（SMM）" → "(smm)"),
// case-folds and collapses whitespace.
func normalizeHeader(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripNumbering removes export numbering such as "18. " from a normalized header.
func stripNumbering(s string) string {
	return numberingPrefix.ReplaceAllString(s, "")
}

func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

// containsTerm reports whether term occurs in s. ASCII word edges of term
// must fall on word boundaries in s so that "age" does not hit "percentage";
// CJK terms match as plain substrings.
func containsTerm(s, term string) bool {
	if term == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)
	checkStart, checkEnd := isWordRune(first), isWordRune(last)
	for off := 0; off <= len(s)-len(term); {
		i := strings.Index(s[off:], term)
		if i < 0 {
			return false
		}
		i += off
		end := i + len(term)
		okStart := true
		if checkStart && i > 0 {
			r, _ := utf8.DecodeLastRuneInString(s[:i])
			okStart = !isWordRune(r)
		}
		okEnd := true
		if checkEnd && end < len(s) {
			r, _ := utf8.DecodeRuneInString(s[end:])
			okEnd = !isWordRune(r)
		}
		if okStart && okEnd {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		off = i + size
	}
	return false
}

// ColumnBinding associates one raw header with at most one key.
type ColumnBinding struct {
	Index  int
	Header string
	// Key is empty when the header is unbound.
	Key Key
	// Pattern is the normalized keyword that matched.
	Pattern string
	// Excluded is set when a normal-range exclusion suppressed the header.
	Excluded bool
}

// Bound reports whether the header maps to a key.
func (b ColumnBinding) Bound() bool { return b.Key != "" }

// Mapping is the header pass result, one binding per header in column order.
type Mapping struct {
	Bindings []ColumnBinding
}

// Columns picks one column per key. When several headers bind the same key
// the longer matched pattern wins, then the shorter header, then the earlier
// column.
func (m Mapping) Columns() map[Key]int {
	best := map[Key]ColumnBinding{}
	for _, b := range m.Bindings {
		if !b.Bound() {
			continue
		}
		cur, ok := best[b.Key]
		if !ok || betterBinding(b, cur) {
			best[b.Key] = b
		}
	}
	out := make(map[Key]int, len(best))
	for k, b := range best {
		out[k] = b.Index
	}
	return out
}

func betterBinding(a, b ColumnBinding) bool {
	la, lb := utf8.RuneCountInString(a.Pattern), utf8.RuneCountInString(b.Pattern)
	if la != lb {
		return la > lb
	}
	ha, hb := utf8.RuneCountInString(stripNumbering(normalizeHeader(a.Header))), utf8.RuneCountInString(stripNumbering(normalizeHeader(b.Header)))
	if ha != hb {
		return ha < hb
	}
	return a.Index < b.Index
}

// Unbound lists headers that matched no rule or were excluded.
func (m Mapping) Unbound() []ColumnBinding {
	var out []ColumnBinding
	for _, b := range m.Bindings {
		if !b.Bound() {
			out = append(out, b)
		}
	}
	return out
}

type compiledRule struct {
	key      Key
	patterns []string
	exclude  []string
}

// Matcher maps raw CSV headers to keys using a schema's rule table.
type Matcher struct {
	rules      []compiledRule
	exclusions []string
}

// NewMatcher compiles the schema's rules. Patterns are normalized once.
func NewMatcher(s *Schema) *Matcher {
	m := &Matcher{exclusions: normalizeAll(s.Exclusions)}
	for _, r := range s.Rules {
		m.rules = append(m.rules, compiledRule{
			key:      r.Key,
			patterns: normalizeAll(r.Patterns),
			exclude:  normalizeAll(r.Exclude),
		})
	}
	return m
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if n := normalizeHeader(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Match binds every header; input is not modified.
func (m *Matcher) Match(headers []string) Mapping {
	out := Mapping{Bindings: make([]ColumnBinding, len(headers))}
	for i, h := range headers {
		out.Bindings[i] = m.bind(i, h)
	}
	return out
}

func (m *Matcher) bind(i int, header string) ColumnBinding {
	b := ColumnBinding{Index: i, Header: header}
	norm := normalizeHeader(header)
	if norm == "" {
		return b
	}
	if matchAny(norm, m.exclusions) != "" {
		b.Excluded = true
		return b
	}
	if hits := m.candidates(norm); len(hits) > 0 {
		b.Key, b.Pattern = hits[0].key, hits[0].pattern
	}
	return b
}

type ruleHit struct {
	key     Key
	pattern string
}

// candidates returns every rule matching a normalized header, in priority
// order, with its longest matched pattern.
func (m *Matcher) candidates(norm string) []ruleHit {
	stripped := stripNumbering(norm)
	var hits []ruleHit
	for _, r := range m.rules {
		if matchAny(norm, r.exclude) != "" {
			continue
		}
		best := ""
		for _, p := range r.patterns {
			if (containsTerm(norm, p) || containsTerm(stripped, p)) && len(p) > len(best) {
				best = p
			}
		}
		if best != "" {
			hits = append(hits, ruleHit{key: r.key, pattern: best})
		}
	}
	return hits
}

func matchAny(s string, terms []string) string {
	for _, t := range terms {
		if containsTerm(s, t) {
			return t
		}
	}
	return ""
}

// Check audits headers for rule-order defects: a header taken by an earlier
// rule while a later rule for another key matches it with a strictly longer
// pattern. Findings are sorted by header.
func (m *Matcher) Check(headers []string) []*AmbiguousMatchError {
	var out []*AmbiguousMatchError
	for _, h := range headers {
		norm := normalizeHeader(h)
		if norm == "" || matchAny(norm, m.exclusions) != "" {
			continue
		}
		hits := m.candidates(norm)
		if len(hits) < 2 {
			continue
		}
		win := hits[0]
		for _, other := range hits[1:] {
			if other.key != win.key && utf8.RuneCountInString(other.pattern) > utf8.RuneCountInString(win.pattern) {
				out = append(out, &AmbiguousMatchError{Header: h, Keys: []Key{win.key, other.key}})
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Header < out[j].Header })
	return out
}
