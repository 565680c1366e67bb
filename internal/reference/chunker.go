package reference

import (
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

// chunkByTokens packs paragraphs into chunks of up to maxTokens. A paragraph
// larger than maxTokens on its own is cut into maxTokens-sized pieces.
func chunkByTokens(text string, maxTokens int) []string {
	var chunks []string
	var window []string
	cur := 0
	emit := func() {
		if len(window) > 0 {
			chunks = append(chunks, strings.Join(window, "\n\n"))
			window, cur = window[:0], 0
		}
	}
	for _, p := range splitParagraphs(text) {
		t := utils.CountTokens(p)
		if t > maxTokens {
			emit()
			chunks = append(chunks, splitOversized(p, maxTokens)...)
			continue
		}
		if cur+t > maxTokens {
			emit()
		}
		window = append(window, p)
		cur += t
	}
	emit()
	return chunks
}

func splitParagraphs(s string) []string {
	raw := strings.Split(s, "\n\n")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func splitOversized(p string, maxTokens int) []string {
	var out []string
	for p != "" {
		head := utils.TruncateToTokenLimit(p, maxTokens)
		if head == "" {
			// A single rune exceeds the budget; keep it whole.
			_, size := utf8.DecodeRuneInString(p)
			head = p[:size]
		}
		out = append(out, head)
		p = strings.TrimSpace(p[len(head):])
	}
	return out
}
