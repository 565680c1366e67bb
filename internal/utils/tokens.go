package utils

import "unicode"

// Token estimation for prompt budgeting. Latin text runs about 4 characters
// per token; Han, Kana and Hangul runes are close to one token each.

func runeCost(r rune) int {
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
		return 4
	}
	return 1
}

// CountTokens estimates the number of tokens in the given text.
func CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	cost := 0
	for _, r := range text {
		cost += runeCost(r)
	}
	// Ensure at least 1 token for any non-empty text
	if cost < 4 {
		return 1
	}
	return cost / 4
}

// TruncateToTokenLimit truncates text to roughly fit within a token limit.
func TruncateToTokenLimit(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	budget := limit * 4
	cost := 0
	for i, r := range text {
		cost += runeCost(r)
		if cost > budget {
			return text[:i]
		}
	}
	return text
}

// TokenBreakdown returns a simple breakdown map of labeled sections to token counts.
func TokenBreakdown(sections map[string]string) map[string]int {
	out := make(map[string]int, len(sections))
	for k, v := range sections {
		out[k] = CountTokens(v)
	}
	return out
}
