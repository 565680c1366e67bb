// Package prompt assembles the language-model prompt from a metric store and
// reference passages.
package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/store"
)

const missing = "—"

type field struct {
	label string
	key   metrics.Key
	// text fields are always listed, with a placeholder when missing
	text bool
}

var profileFields = []field{
	{label: "姓名", key: metrics.Name, text: true},
	{label: "年齡", key: metrics.Age, text: true},
	{label: "性別", key: metrics.Sex, text: true},
	{label: "測試時間", key: metrics.TestTime},
	{label: "身高(cm)", key: metrics.Height},
	{label: "體重(kg)", key: metrics.Weight},
	{label: "BMI", key: metrics.BMI},
	{label: "體脂率(%)", key: metrics.PercentBodyFat},
	{label: "內臟脂肪面積(cm²)", key: metrics.VisceralFatArea},
	{label: "內臟脂肪等級", key: metrics.VisceralFatLevel},
	{label: "骨骼肌量(kg)", key: metrics.SkeletalMuscleMass},
	{label: "體脂肪量(kg)", key: metrics.BodyFatMass},
	{label: "ECW/TBW", key: metrics.ECWTBWRatio},
	{label: "軀幹相位角(°)", key: metrics.PhaseAngleTrunk},
	{label: "基礎代謝率(kcal)", key: metrics.BasalMetabolicRate},
	{label: "InBody 分數", key: metrics.InBodyScore},
}

var limbPairs = []struct {
	label       string
	right, left metrics.Key
}{
	{"左右上肢肌肉量(kg)", metrics.LeanRightArm, metrics.LeanLeftArm},
	{"左右下肢肌肉量(kg)", metrics.LeanRightLeg, metrics.LeanLeftLeg},
	{"左右上肢脂肪量(kg)", metrics.FatRightArm, metrics.FatLeftArm},
	{"左右下肢脂肪量(kg)", metrics.FatRightLeg, metrics.FatLeftLeg},
}

func number(st *store.Store, k metrics.Key) (float64, bool) {
	v, ok := st.Get(k)
	if !ok || v.Kind != metrics.Number {
		return 0, false
	}
	return v.Num, true
}

// BMI returns the stored BMI, or derives it from height (cm) and weight (kg)
// rounded to one decimal.
func BMI(st *store.Store) (float64, bool) {
	if v, ok := number(st, metrics.BMI); ok {
		return v, true
	}
	h, hok := number(st, metrics.Height)
	w, wok := number(st, metrics.Weight)
	if !hok || !wok || h <= 0 {
		return 0, false
	}
	m := h / 100
	return math.Round(w/(m*m)*10) / 10, true
}

// Profile renders the subject's key metrics as "label: value" lines. Limb
// pairs are written right / left.
func Profile(st *store.Store) string {
	var lines []string
	for _, f := range profileFields {
		var val string
		var ok bool
		if f.label == "BMI" {
			var bmi float64
			if bmi, ok = BMI(st); ok {
				val = metrics.FormatNumber(bmi)
			}
		} else {
			var v metrics.Value
			if v, ok = st.Get(f.key); ok {
				val = v.String()
			}
		}
		switch {
		case ok:
			lines = append(lines, fmt.Sprintf("%s: %s", f.label, val))
		case f.text:
			lines = append(lines, fmt.Sprintf("%s: %s", f.label, missing))
		}
	}
	for _, p := range limbPairs {
		rv, rok := st.Get(p.right)
		lv, lok := st.Get(p.left)
		if !rok && !lok {
			continue
		}
		r, l := rv.String(), lv.String()
		if !rok {
			r = missing
		}
		if !lok {
			l = missing
		}
		lines = append(lines, fmt.Sprintf("%s: %s / %s", p.label, r, l))
	}
	return strings.Join(lines, "\n")
}

// ScoringTerms lists the topics reference passages are ranked by: one term
// per metric family the subject has data for.
func ScoringTerms(st *store.Store) []string {
	var terms []string
	if _, ok := BMI(st); ok {
		terms = append(terms, "BMI")
	}
	checks := []struct {
		term string
		key  metrics.Key
	}{
		{"體脂", metrics.PercentBodyFat},
		{"內臟脂肪", metrics.VisceralFatArea},
		{"ECW/TBW", metrics.ECWTBWRatio},
		{"相位角", metrics.PhaseAngleTrunk},
		{"肌少", metrics.SkeletalMuscleMass},
	}
	for _, c := range checks {
		if _, ok := number(st, c.key); ok {
			terms = append(terms, c.term)
		}
	}
	return terms
}
