package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/reference"
	"github.com/KaramelBytes/bodycomp-cli/internal/store"
)

func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	s := metrics.DefaultSchema()
	rec, err := metrics.NewExtractor(s, metrics.ExtractOptions{}).ExtractRows(
		[]string{"姓名", "身高", "體重", "體脂率", "內臟脂肪面積", "ECW/TBW", "右上肢肌肉量", "左下肢肌肉量"},
		[][]string{{"王小明", "172", "71.8", "18.4", "59.6", "0.385", "3.21", "9.8"}},
	)
	require.NoError(t, err)
	return store.New(s, rec)
}

func TestProfile(t *testing.T) {
	want := strings.Join([]string{
		"姓名: 王小明",
		"年齡: —",
		"性別: —",
		"身高(cm): 172",
		"體重(kg): 71.8",
		"BMI: 24.3",
		"體脂率(%): 18.4",
		"內臟脂肪面積(cm²): 59.6",
		"ECW/TBW: 0.385",
		"左右上肢肌肉量(kg): 3.21 / —",
		"左右下肢肌肉量(kg): — / 9.8",
	}, "\n")
	assert.Equal(t, want, Profile(sampleStore(t)))
}

func TestBMI_StoredValueWins(t *testing.T) {
	st := store.FromMap(metrics.DefaultSchema(), map[string]any{"bmi": 22.0, "height": 172.0, "weight": 71.8})
	bmi, ok := BMI(st)
	require.True(t, ok)
	assert.Equal(t, 22.0, bmi)

	st = store.FromMap(metrics.DefaultSchema(), map[string]any{"height": 0.0, "weight": 71.8})
	_, ok = BMI(st)
	assert.False(t, ok)
}

func TestScoringTerms(t *testing.T) {
	assert.Equal(t, []string{"BMI", "體脂", "內臟脂肪", "ECW/TBW"}, ScoringTerms(sampleStore(t)))

	st := store.FromMap(metrics.DefaultSchema(), map[string]any{"skeletal_muscle_mass": 25.0})
	assert.Equal(t, []string{"肌少"}, ScoringTerms(st))

	st = store.FromMap(metrics.DefaultSchema(), map[string]any{"Trunk_PhaseAngle_deg": "6.1", "ECW_TBW": 0.38})
	assert.Equal(t, []string{"ECW/TBW", "相位角"}, ScoringTerms(st))
}

func TestProfile_TrunkPhaseAngle(t *testing.T) {
	s := metrics.DefaultSchema()
	rec, err := metrics.NewExtractor(s, metrics.ExtractOptions{}).ExtractRows(
		[]string{"Name", "ECW/TBW", "50kHz-TR Phase Angle", "50kHz-RA Phase Angle"},
		[][]string{{"Ann", "0.382", "6.1", "5.4"}},
	)
	require.NoError(t, err)
	got := Profile(store.New(s, rec))
	assert.Contains(t, got, "ECW/TBW: 0.382\n軀幹相位角(°): 6.1")
	assert.NotContains(t, got, "5.4")
}

func TestBuild_Sections(t *testing.T) {
	passages := []reference.Section{
		{Source: "/refs/guide.md", Heading: "內臟脂肪", Text: "## 內臟脂肪\n面積 100 cm² 以上屬高風險。"},
		{Source: "/refs/notes.txt", Text: "前言"},
	}
	p, err := Build(Input{Store: sampleStore(t), Passages: passages, Instructions: "summarize"})
	require.NoError(t, err)

	order := []string{"[INSTRUCTIONS]\nsummarize\n", "[METRIC PROFILE]\n姓名: 王小明", "[REFERENCE PASSAGES]\n", "--- Passage 1: 內臟脂肪 (guide.md) ---\n", "--- Passage 2: (notes.txt) ---\n前言", "[TASK]\n"}
	last := -1
	for _, part := range order {
		i := strings.Index(p.Text, part)
		require.GreaterOrEqual(t, i, 0, "missing %q", part)
		assert.Greater(t, i, last, "%q out of order", part)
		last = i
	}
	assert.True(t, strings.HasSuffix(p.Text, "please: summarize\n"))
	assert.False(t, p.Truncated)
	assert.Positive(t, p.Tokens)
	assert.Contains(t, p.Breakdown, "profile")
	assert.Contains(t, p.Breakdown, "passages")
}

func TestBuild_DefaultsAndLimits(t *testing.T) {
	p, err := Build(Input{Store: sampleStore(t)})
	require.NoError(t, err)
	assert.Contains(t, p.Text, DefaultInstructions)
	assert.Contains(t, p.Text, "[REFERENCE PASSAGES]\n(none)\n")

	limited, err := Build(Input{Store: sampleStore(t), TokenLimit: 20})
	require.NoError(t, err)
	assert.True(t, limited.Truncated)
	assert.LessOrEqual(t, limited.Tokens, 20)
	assert.True(t, strings.HasPrefix(p.Text, limited.Text))

	_, err = Build(Input{})
	assert.Error(t, err)
	_, err = Build(Input{Store: store.FromMap(nil, nil)})
	assert.Error(t, err)
}
