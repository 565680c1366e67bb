package utils_test

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

func TestCountTokens(t *testing.T) {
	cases := []struct {
		name string
		in   string
		min  int
		max  int
	}{
		{"empty", "", 0, 0},
		{"simple", "hello world", 2, 3},
		{"long", strings.Repeat("a", 4000), 900, 1000}, // heuristic ~ 1 tok ≈ 4 chars
		{"cjk", strings.Repeat("骨骼肌", 100), 300, 300},
		{"short", "kg", 1, 1},
	}
	for _, c := range cases {
		got := utils.CountTokens(c.in)
		if got < c.min || got > c.max {
			t.Errorf("%s: got %d, want [%d, %d]", c.name, got, c.min, c.max)
		}
	}
}

func TestTruncateToTokenLimit(t *testing.T) {
	text := strings.Repeat("abcd ", 1000) // ~5000 chars
	trunc := utils.TruncateToTokenLimit(text, 300)
	n := utils.CountTokens(trunc)
	if n > 300 {
		t.Fatalf("tokens=%d exceeds limit", n)
	}
	if len(trunc) == 0 {
		t.Fatalf("expected non-empty truncation")
	}

	cjk := strings.Repeat("體脂率", 50)
	trunc = utils.TruncateToTokenLimit(cjk, 10)
	if got := []rune(trunc); len(got) != 10 {
		t.Fatalf("cjk truncation kept %d runes, want 10", len(got))
	}
	if utils.TruncateToTokenLimit("short", 10) != "short" {
		t.Fatalf("text under the limit should be unchanged")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := utils.ExpandHome("~/.bodycomp/history.db"); got != "/home/tester/.bodycomp/history.db" {
		t.Fatalf("got %q", got)
	}
	if got := utils.ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Fatalf("got %q", got)
	}
}
