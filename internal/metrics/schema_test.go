package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_CategoryOrder(t *testing.T) {
	s := DefaultSchema()
	last := -1
	for _, d := range s.Keys {
		r := categoryRank(d.Category)
		require.GreaterOrEqual(t, r, last, "key %s out of category order", d.Key)
		last = r
	}
	assert.Equal(t, []Key{LeanRightArm, LeanLeftArm, LeanTrunk, LeanRightLeg, LeanLeftLeg,
		FatRightArm, FatLeftArm, FatTrunk, FatRightLeg, FatLeftLeg,
		LeanPctRightArm, LeanPctLeftArm, LeanPctTrunk, LeanPctRightLeg, LeanPctLeftLeg,
		FatPctRightArm, FatPctLeftArm, FatPctTrunk, FatPctRightLeg, FatPctLeftLeg,
		TBWRightArm, TBWLeftArm, TBWTrunk, TBWRightLeg, TBWLeftLeg,
		ECWTBWRightArm, ECWTBWLeftArm, ECWTBWTrunk, ECWTBWRightLeg, ECWTBWLeftLeg,
		PhaseAngleRightArm, PhaseAngleLeftArm, PhaseAngleTrunk, PhaseAngleRightLeg, PhaseAngleLeftLeg,
	}, s.KeysIn(CategorySegmental))
}

func TestDefaultSchema_FreshCopies(t *testing.T) {
	a := DefaultSchema()
	a.Rules[0].Patterns[0] = "changed"
	a.Exclusions[0] = "changed"
	b := DefaultSchema()
	assert.NotEqual(t, "changed", b.Rules[0].Patterns[0])
	assert.Equal(t, "下限", DefaultExclusions[0])
}

func TestValidate_DuplicatePatternAcrossKeys(t *testing.T) {
	s := DefaultSchema()
	s.Rules = append(s.Rules, Rule{Key: Protein, Patterns: []string{"體重"}})
	err := s.Validate()
	var am *AmbiguousMatchError
	require.True(t, errors.As(err, &am))
	assert.Equal(t, []Key{Weight, Protein}, am.Keys)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Schema)
		want   string
	}{
		{"undefined rule key", func(s *Schema) { s.Rules = append(s.Rules, Rule{Key: "waist", Patterns: []string{"waist"}}) }, "undefined key"},
		{"rule without patterns", func(s *Schema) { s.Rules = append(s.Rules, Rule{Key: Weight}) }, "no patterns"},
		{"duplicate key", func(s *Schema) { s.Keys = append(s.Keys, s.Keys[0]) }, "duplicate key"},
		{"unknown category", func(s *Schema) { s.Keys[0].Category = "vitals" }, "unknown category"},
		{"unknown kind", func(s *Schema) { s.Keys[0].Kind = "date" }, "unknown kind"},
		{"undefined requirement", func(s *Schema) { s.Required[0].Any = append(s.Required[0].Any, "nickname") }, "undefined key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSchema()
			tc.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadSchema_RoundTrip(t *testing.T) {
	def := DefaultSchema()
	b, err := def.YAML()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	got, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, def.Rules, got.Rules)
	assert.Equal(t, def.Exclusions, got.Exclusions)
	assert.Equal(t, def.Required, got.Required)
	require.Len(t, got.Keys, len(def.Keys))
	for i := range def.Keys {
		assert.Equal(t, def.Keys[i].Key, got.Keys[i].Key)
		assert.Equal(t, def.Keys[i].Label, got.Keys[i].Label)
		assert.Equal(t, def.Keys[i].Unit, got.Keys[i].Unit)
	}
}

func TestLoadSchema_PartialOverride(t *testing.T) {
	yml := `rules:
  - key: weight
    patterns: ["weight", "體重"]
  - key: name
    patterns: ["姓名"]
  - key: waist_hip_ratio
    patterns: ["腰圍臀圍比"]
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	s, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Len(t, s.Rules, 3)
	assert.Equal(t, DefaultExclusions, s.Exclusions)

	got := map[string]Key{}
	for _, b := range NewMatcher(s).Match([]string{"體重", "姓名", "骨骼肌重", "腰圍臀圍比", "體重 下限"}).Bindings {
		got[b.Header] = b.Key
	}
	assert.Equal(t, Weight, got["體重"])
	assert.Equal(t, Name, got["姓名"])
	assert.Equal(t, WaistHipRatio, got["腰圍臀圍比"])
	assert.Empty(t, got["骨骼肌重"])
	assert.Empty(t, got["體重 下限"])
}

func TestLoadSchema_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - key: nope\n    patterns: [x]\n"), 0o644))
	_, err := LoadSchema(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules")

	_, err = LoadSchema(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
