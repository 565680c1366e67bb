package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a decoded, parsed delimited file.
type Table struct {
	// Encoding is the candidate name that decoded the file.
	Encoding string
	Header   []string
	// Rows are padded to len(Header).
	Rows [][]string
}

// Attempt records one failed candidate encoding.
type Attempt struct {
	Encoding string
	Err      error
}

// UnreadableFileError indicates no candidate encoding produced a usable table.
type UnreadableFileError struct {
	Path     string
	Attempts []Attempt
}

func (e *UnreadableFileError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, a.Encoding)
	}
	src := e.Path
	if src == "" {
		src = "input"
	}
	msg := fmt.Sprintf("unreadable file %s: tried encodings [%s]", src, strings.Join(names, ", "))
	if n := len(e.Attempts); n > 0 && e.Attempts[n-1].Err != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.Attempts[n-1].Err)
	}
	return msg
}

// Resolver tries candidate encodings in order until one parses.
type Resolver struct {
	// Encodings is the ordered candidate list; it is the retry policy.
	Encodings []string
	// Delimiter for CSV. If 0, sniffed among ',', ';', '\t'.
	Delimiter rune
}

// ReadFile reads path and resolves its encoding.
func (r Resolver) ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	t, err := r.Resolve(data)
	if err != nil {
		var ue *UnreadableFileError
		if errors.As(err, &ue) {
			ue.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Resolve returns the table parsed with the first candidate that decodes data
// cleanly and yields a header row.
func (r Resolver) Resolve(data []byte) (*Table, error) {
	ue := &UnreadableFileError{}
	for _, name := range r.Encodings {
		dec, err := lookupCodec(name)
		if err != nil {
			ue.Attempts = append(ue.Attempts, Attempt{Encoding: name, Err: err})
			continue
		}
		text, err := dec(data)
		if err != nil {
			ue.Attempts = append(ue.Attempts, Attempt{Encoding: name, Err: err})
			continue
		}
		t, err := parseTable(text, r.Delimiter)
		if err != nil {
			ue.Attempts = append(ue.Attempts, Attempt{Encoding: name, Err: err})
			continue
		}
		t.Encoding = name
		return t, nil
	}
	return nil, ue
}

func parseTable(text string, delim rune) (*Table, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if delim == 0 {
		delim = sniffDelimiter(text)
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !hasContent(header) {
		return nil, errors.New("empty header row")
	}
	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if len(rec) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, rec)
			rec = tmp
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// sniffDelimiter picks the most frequent candidate separator on the header line.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func hasContent(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
