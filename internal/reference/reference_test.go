package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visceralNotes = `# 臨床參考

前言段落。

## 內臟脂肪
內臟脂肪面積超過 100 cm² 與胰島素阻抗相關。

## BMI 分級
BMI 24 以上屬於過重。

## 水分平衡
ECW/TBW 高於 0.390 提示水腫。
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadSections_SplitsOnHeadings(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.md")
	writeFile(t, p, visceralNotes)

	secs, err := LoadSections(p, 0)
	require.NoError(t, err)
	require.Len(t, secs, 4)
	assert.Equal(t, "", secs[0].Heading)
	assert.True(t, strings.HasPrefix(secs[0].Text, "# 臨床參考"))
	assert.Equal(t, "內臟脂肪", secs[1].Heading)
	assert.True(t, strings.HasPrefix(secs[1].Text, "## 內臟脂肪\n"))
	assert.Equal(t, "水分平衡", secs[3].Heading)
	assert.Equal(t, p, secs[3].Source)
}

func TestLoadSections_DirectoryOrderAndSkips(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "## B\nsecond")
	writeFile(t, filepath.Join(dir, "a.md"), "## A\nfirst")
	writeFile(t, filepath.Join(dir, "sub", "c.md"), "## C\nthird")
	writeFile(t, filepath.Join(dir, "paper.pdf"), "%PDF")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.txt"), []byte{0xa4, 0xa4, 0xa4, 0xe5}, 0o644))

	secs, err := LoadSections(dir, 0)
	require.NoError(t, err)
	var heads []string
	for _, s := range secs {
		heads = append(heads, s.Heading)
	}
	assert.Equal(t, []string{"A", "B", "C"}, heads)
}

func TestLoadSections_Missing(t *testing.T) {
	_, err := LoadSections(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Error(t, err)
}

func TestLoadSections_RechunksLongSections(t *testing.T) {
	dir := t.TempDir()
	para := strings.Repeat("a", 40) // ~10 tokens
	body := "## Long\n\n" + strings.Join([]string{para, para, para, para}, "\n\n")
	p := filepath.Join(dir, "long.md")
	writeFile(t, p, body)

	secs, err := LoadSections(p, 25)
	require.NoError(t, err)
	require.Greater(t, len(secs), 1)
	for _, s := range secs {
		assert.Equal(t, "Long", s.Heading)
		assert.True(t, strings.HasPrefix(s.Text, "## Long"), s.Text)
	}
}

func TestChunkByTokens_SplitsOversizedParagraph(t *testing.T) {
	chunks := chunkByTokens(strings.Repeat("骨", 30), 10)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Equal(t, 10, len([]rune(c)))
	}
}

func TestChunkByTokens_PacksParagraphs(t *testing.T) {
	p1 := strings.Repeat("a", 40)
	p2 := strings.Repeat("b", 40)
	p3 := strings.Repeat("c", 40)
	chunks := chunkByTokens(p1+"\n\n"+p2+"\n\n"+p3, 20)
	require.Len(t, chunks, 2)
	assert.Equal(t, p1+"\n\n"+p2, chunks[0])
	assert.Equal(t, p3, chunks[1])
}

func TestSelect(t *testing.T) {
	secs := []Section{
		{Heading: "intro", Text: "general notes"},
		{Heading: "bmi", Text: "BMI and 體脂 thresholds"},
		{Heading: "vfa", Text: "內臟脂肪 risk, bmi link"},
		{Heading: "water", Text: "ECW/TBW balance"},
	}
	got := Select(secs, []string{"BMI", "內臟脂肪", "體脂"}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "bmi", got[0].Heading)
	assert.Equal(t, "vfa", got[1].Heading)

	got = Select(secs, []string{"ECW/TBW"}, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "water", got[0].Heading)

	got = Select(secs, []string{"相位角"}, 2)
	assert.Equal(t, secs[:2], got)

	assert.Nil(t, Select(secs, nil, 0))
	assert.Len(t, Select(secs, nil, 10), 4)
}
