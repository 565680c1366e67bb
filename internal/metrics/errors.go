package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader indicates a table without columns was handed to the extractor.
var ErrNoHeader = errors.New("table has no header")

// MissingRequiredFieldError lists required groups with no value after extraction.
type MissingRequiredFieldError struct {
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// AmbiguousMatchError indicates two keys claim the same header. It signals a
// defect in rule ordering and is surfaced by schema validation and audits.
type AmbiguousMatchError struct {
	Header string
	Keys   []Key
}

func (e *AmbiguousMatchError) Error() string {
	names := make([]string, 0, len(e.Keys))
	for _, k := range e.Keys {
		names = append(names, string(k))
	}
	return fmt.Sprintf("ambiguous match for %q: %s", e.Header, strings.Join(names, " vs "))
}
