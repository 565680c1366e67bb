// Package parser turns reference documents into plain UTF-8 text.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Parser defines a document parser implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) (string, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// Supported reports whether a registered parser accepts filename.
func Supported(filename string) bool {
	for _, p := range registry {
		if p.CanParse(filename) {
			return true
		}
	}
	return false
}

// ParseFile selects a parser based on filename and returns parsed text content.
func ParseFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	for _, p := range registry {
		if p.CanParse(path) {
			return p.Parse(data)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
}

// decodeText strips a UTF-8 BOM and rejects other encodings.
func decodeText(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", ErrNotUTF8
	}
	return strings.TrimPrefix(string(content), "\ufeff"), nil
}

func init() {
	// Register default parsers
	Register(txtParser{})
	Register(markdownParser{})
}

var (
	// ErrUnsupported indicates a format is not supported.
	ErrUnsupported = errors.New("unsupported document format")
	// ErrNotUTF8 indicates a document that is not valid UTF-8.
	ErrNotUTF8 = errors.New("document is not valid UTF-8")
)
