// Package reference loads clinical reference notes and picks the passages
// most relevant to a subject's metrics.
package reference

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/parser"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

// DefaultMaxTokens bounds a single passage.
const DefaultMaxTokens = 600

// Section is one passage of a reference document, usually a "## " section.
type Section struct {
	Source  string
	Heading string
	Text    string
}

// Tokens estimates the passage size.
func (s Section) Tokens() int { return utils.CountTokens(s.Text) }

// LoadSections reads path (a file, or a directory walked in lexical order)
// and splits every supported document on "## " headings. Sections longer
// than maxTokens are split further on paragraph boundaries, repeating the
// heading at the top of each piece. Files that are not UTF-8 are skipped.
func LoadSections(path string, maxTokens int) ([]Section, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	files, err := collect(path)
	if err != nil {
		return nil, err
	}
	var out []Section
	for _, f := range files {
		text, err := parser.ParseFile(f)
		if err != nil {
			if errors.Is(err, parser.ErrNotUTF8) {
				slog.Warn("skipping reference file", "file", f, "error", err)
				continue
			}
			return nil, fmt.Errorf("parse reference %s: %w", f, err)
		}
		for _, s := range splitSections(f, text) {
			out = append(out, rechunk(s, maxTokens)...)
		}
	}
	return out, nil
}

func collect(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat reference: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && parser.Supported(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk reference dir: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func splitSections(source, text string) []Section {
	var out []Section
	var cur []string
	heading := ""
	flush := func() {
		body := strings.TrimSpace(strings.Join(cur, "\n"))
		if body != "" {
			out = append(out, Section{Source: source, Heading: heading, Text: body})
		}
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") && len(cur) > 0 {
			flush()
			cur = nil
		}
		if strings.HasPrefix(trimmed, "## ") {
			heading = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

func rechunk(s Section, maxTokens int) []Section {
	if s.Tokens() <= maxTokens {
		return []Section{s}
	}
	pieces := chunkByTokens(s.Text, maxTokens)
	out := make([]Section, 0, len(pieces))
	for i, p := range pieces {
		if i > 0 && s.Heading != "" {
			p = "## " + s.Heading + "\n\n" + p
		}
		out = append(out, Section{Source: s.Source, Heading: s.Heading, Text: p})
	}
	return out
}
