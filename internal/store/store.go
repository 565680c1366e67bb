// Package store provides read-only fuzzy lookup over extracted metrics.
package store

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
)

type alias struct {
	norm string
	key  metrics.Key
}

// Store holds metric entries built once from a record or a persisted summary.
// It has no mutators; every lookup against the same store returns the same
// result.
type Store struct {
	entries []metrics.Entry
	byKey   map[metrics.Key]int
	byNorm  map[string]int
	// names maps every normalized key, label and alias the catalog knows,
	// present in the store or not, to its key.
	names   map[string]metrics.Key
	aliases []alias
}

// New builds a store from a finalized record.
func New(s *metrics.Schema, rec *metrics.Record) *Store {
	return build(s, rec.Entries())
}

func build(s *metrics.Schema, entries []metrics.Entry) *Store {
	st := &Store{
		byKey:  make(map[metrics.Key]int, len(entries)),
		byNorm: make(map[string]int, len(entries)),
		names:  map[string]metrics.Key{},
	}
	for _, e := range entries {
		if _, dup := st.byKey[e.Key]; dup {
			continue
		}
		i := len(st.entries)
		st.entries = append(st.entries, e)
		st.byKey[e.Key] = i
		if n := normalize(string(e.Key)); n != "" {
			if _, taken := st.byNorm[n]; !taken {
				st.byNorm[n] = i
			}
		}
	}

	// Synonym table: entry keys first, then catalog labels and aliases.
	for _, e := range st.entries {
		st.register(string(e.Key), e.Key, true)
	}
	if s != nil {
		for _, d := range s.Keys {
			_, stored := st.byKey[d.Key]
			st.register(string(d.Key), d.Key, false)
			st.register(d.Label, d.Key, stored)
			for _, a := range d.Aliases {
				st.register(a, d.Key, stored)
			}
		}
	}
	return st
}

// register records name for k. Only stored keys join the fuzzy table.
func (st *Store) register(name string, k metrics.Key, fuzzy bool) {
	n := normalize(name)
	if n == "" {
		return
	}
	if _, taken := st.names[n]; !taken {
		st.names[n] = k
	}
	if fuzzy {
		st.aliases = append(st.aliases, alias{norm: n, key: k})
	}
}

// normalize folds width and case and drops whitespace, '_' and '-'.
func normalize(s string) string {
	s = strings.ToLower(width.Fold.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			return -1
		}
		return r
	}, s)
}

// Lookup returns the entry best matching the first query that resolves.
// Each query is tried as an exact key, then as a normalized key, label or
// alias, then against the synonym table. A query that names a known key
// resolves to that key alone, so a missing value is a miss rather than a
// neighbouring metric. Entries without a value never match.
func (st *Store) Lookup(queries ...string) (metrics.Entry, bool) {
	for _, q := range queries {
		if e, ok := st.lookup(q); ok {
			return e, true
		}
	}
	return metrics.Entry{}, false
}

func (st *Store) lookup(q string) (metrics.Entry, bool) {
	if i, ok := st.byKey[metrics.Key(q)]; ok {
		return st.entries[i], st.entries[i].Value.Present()
	}
	nq := normalize(q)
	if nq == "" {
		return metrics.Entry{}, false
	}
	if i, ok := st.byNorm[nq]; ok {
		return st.entries[i], st.entries[i].Value.Present()
	}
	if k, ok := st.names[nq]; ok {
		i, stored := st.byKey[k]
		if !stored || !st.entries[i].Value.Present() {
			return metrics.Entry{}, false
		}
		return st.entries[i], true
	}
	k, ok := st.bestAlias(nq, tokens(q))
	if !ok {
		return metrics.Entry{}, false
	}
	return st.entries[st.byKey[k]], true
}

// minContained is the shortest alias that may match inside a longer query
// without being one of its whole tokens.
const minContained = 3

// tokens splits q on everything that is not a letter or digit and
// normalizes each piece.
func tokens(q string) map[string]bool {
	out := map[string]bool{}
	for _, f := range strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if n := normalize(f); n != "" {
			out[n] = true
		}
	}
	return out
}

// bestAlias scores every alias that equals, contains or is contained in the
// query by rune-length difference. The lowest score wins; the first
// registered alias wins ties.
func (st *Store) bestAlias(nq string, toks map[string]bool) (metrics.Key, bool) {
	ql := utf8.RuneCountInString(nq)
	var best metrics.Key
	bestScore := -1
	for _, a := range st.aliases {
		if !st.entries[st.byKey[a.key]].Value.Present() {
			continue
		}
		if a.norm != nq && !strings.Contains(a.norm, nq) && !inQuery(a.norm, nq, toks) {
			continue
		}
		score := utf8.RuneCountInString(a.norm) - ql
		if score < 0 {
			score = -score
		}
		if bestScore < 0 || score < bestScore {
			best, bestScore = a.key, score
		}
	}
	return best, bestScore >= 0
}

func inQuery(alias, nq string, toks map[string]bool) bool {
	if utf8.RuneCountInString(alias) < minContained {
		return toks[alias]
	}
	return strings.Contains(nq, alias)
}

// Get returns the value stored under exactly k, if present.
func (st *Store) Get(k metrics.Key) (metrics.Value, bool) {
	i, ok := st.byKey[k]
	if !ok || !st.entries[i].Value.Present() {
		return metrics.Value{}, false
	}
	return st.entries[i].Value, true
}

// Number returns the numeric value of the first query that resolves to a
// number.
func (st *Store) Number(queries ...string) (float64, bool) {
	e, ok := st.Lookup(queries...)
	if !ok || e.Value.Kind != metrics.Number {
		return 0, false
	}
	return e.Value.Num, true
}

// Text returns the rendered value of the first query that resolves.
func (st *Store) Text(queries ...string) (string, bool) {
	e, ok := st.Lookup(queries...)
	if !ok {
		return "", false
	}
	return e.Value.String(), true
}

// Keys lists stored keys in store order.
func (st *Store) Keys() []metrics.Key {
	out := make([]metrics.Key, len(st.entries))
	for i, e := range st.entries {
		out[i] = e.Key
	}
	return out
}

// Len returns the number of stored entries, absent ones included.
func (st *Store) Len() int { return len(st.entries) }

// Record returns the stored entries as a record.
func (st *Store) Record() *metrics.Record {
	return metrics.NewRecord(st.entries)
}

// sortedKeys gives map-sourced entries a deterministic order: catalog keys in
// catalog order, then unknown keys alphabetically.
func sortedKeys(s *metrics.Schema, keys []metrics.Key) []metrics.Key {
	rank := map[metrics.Key]int{}
	if s != nil {
		for i, d := range s.Keys {
			rank[d.Key] = i
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
