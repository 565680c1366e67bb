package metrics

// ValueKind tags a Value.
type ValueKind int

const (
	// Absent marks a key that had no usable cell.
	Absent ValueKind = iota
	Number
	Text
)

func (k ValueKind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "absent"
	}
}

// Value is one extracted metric value.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Unit string
}

// NumberValue builds a numeric value.
func NumberValue(f float64, unit string) Value {
	return Value{Kind: Number, Num: f, Unit: unit}
}

// TextValue builds a text value.
func TextValue(s string) Value {
	return Value{Kind: Text, Text: s}
}

// Present reports whether v carries a value.
func (v Value) Present() bool { return v.Kind != Absent }

// String renders the value without its unit; absent values render empty.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return FormatNumber(v.Num)
	case Text:
		return v.Text
	default:
		return ""
	}
}

// Entry is one key/value pair of a record.
type Entry struct {
	Key   Key
	Value Value
}

// Record is the finalized extraction result. Entries follow catalog order and
// each key appears at most once.
type Record struct {
	entries []Entry
	index   map[Key]int
}

// NewRecord builds a record from entries in the given order. Later
// duplicates of a key are dropped.
func NewRecord(entries []Entry) *Record {
	r := &Record{index: make(map[Key]int, len(entries))}
	for _, e := range entries {
		if _, dup := r.index[e.Key]; dup {
			continue
		}
		r.index[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Get returns the value for k; missing keys are Absent.
func (r *Record) Get(k Key) Value {
	if i, ok := r.index[k]; ok {
		return r.entries[i].Value
	}
	return Value{}
}

// Entries returns a copy of the ordered entries.
func (r *Record) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries, absent ones included.
func (r *Record) Len() int { return len(r.entries) }

// Present counts entries that carry a value.
func (r *Record) Present() int {
	n := 0
	for _, e := range r.entries {
		if e.Value.Present() {
			n++
		}
	}
	return n
}
