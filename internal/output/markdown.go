package output

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
)

var categoryTitles = map[string]string{
	string(metrics.CategoryIdentity):    "基本資料",
	string(metrics.CategoryComposition): "身體組成",
	string(metrics.CategoryControl):     "體重控制",
	string(metrics.CategorySegmental):   "節段分析",
	CategoryOther:                       "其他",
}

const absentCell = "—"

// Markdown renders the record as one table per category, in category order.
func Markdown(s *metrics.Schema, rec *metrics.Record) string {
	groups := map[string][]Pair{}
	for _, p := range Flatten(s, rec) {
		cat := CategoryOther
		if d, ok := s.Def(p.Key); ok {
			cat = string(d.Category)
		}
		groups[cat] = append(groups[cat], p)
	}

	var b strings.Builder
	b.WriteString("# InBody 量測摘要\n")
	if who := subjectLine(rec); who != "" {
		b.WriteString("\n" + who + "\n")
	}
	order := make([]string, 0, len(metrics.Categories)+1)
	for _, c := range metrics.Categories {
		order = append(order, string(c))
	}
	order = append(order, CategoryOther)
	for _, cat := range order {
		pairs := groups[cat]
		if len(pairs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n| 項目 | 數值 | 單位 |\n| --- | --- | --- |\n", categoryTitles[cat])
		for _, p := range pairs {
			val := p.Value.String()
			if !p.Value.Present() {
				val = absentCell
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(p.Label), escapeCell(val), escapeCell(p.Unit))
		}
	}
	return b.String()
}

func subjectLine(rec *metrics.Record) string {
	var parts []string
	for _, k := range []metrics.Key{metrics.Name, metrics.ID, metrics.TestTime} {
		if v := rec.Get(k); v.Present() {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, " · ")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// HTML renders Markdown with GitHub-style tables into a standalone page.
func HTML(title, md string) ([]byte, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := conv.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"zh-Hant\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("<style>table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px}</style>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
