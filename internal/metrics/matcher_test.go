package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var englishHeaders = []string{
	"1. Name", "2. ID", "3. Height", "4. Gender", "5. Age", "6. Test Date / Time",
	"7. Weight", "8. Lower Limit (Weight Normal Range)", "9. Upper Limit (Weight Normal Range)",
	"Total Body Water (TBW)", "Intracellular Water (ICW)", "Extracellular Water (ECW)",
	"Protein", "Minerals", "Body Fat Mass (BFM)", "Soft Lean Mass (SLM)", "Fat Free Mass (FFM)",
	"Skeletal Muscle Mass (SMM)", "BMI (Body Mass Index)", "PBF (Percent Body Fat)", "ECW/TBW",
	"InBody Score", "Target Weight", "Weight Control", "BFM Control", "FFM Control",
	"BMR (Basal Metabolic Rate)", "Visceral Fat Level", "Visceral Fat Area",
	"Lean Mass of Right Arm", "Lean Mass of Trunk", "BFM of Right Arm", "BFM% of Right Arm",
	"ECW/TBW of Right Arm", "Waist-Hip Ratio", "Body Cell Mass", "SMI (Skeletal Muscle Index)",
	"Obesity Degree", "50kHz-TR Phase Angle", "50kHz-RA Phase Angle", "TBW of Right Arm",
	"Lean Mass(%) of Trunk", "TBW/FFM", "SMM/WT",
}

var chineseHeaders = []string{
	"姓名", "ID", "身高", "性別", "年齡", "測試日期 / 時間", "體重", "體重 下限", "體重 上限",
	"身體總水分", "細胞內水分", "細胞外水分", "蛋白質", "礦物質", "體脂肪量", "骨骼肌重(SMM)",
	"SMM 正常下限", "身體質量指數(BMI)", "體脂率", "細胞外水比率", "InBody分數", "基礎代謝率",
	"內臟脂肪等級", "內臟脂肪面積", "腰臀比", "右上肢肌肉量", "左下肢脂肪量", "軀幹肌肉量",
	"目標體重", "體重控制", "脂肪控制", "肌肉控制", "骨骼肌指數",
	"右上肢體水分", "左下肢 ECW/TBW", "軀幹相位角", "右上肢脂肪量(%)", "左上肢肌肉量(%)", "肌肉比",
}

func bindings(t *testing.T, headers []string) map[string]Key {
	t.Helper()
	m := NewMatcher(DefaultSchema())
	got := map[string]Key{}
	for _, b := range m.Match(headers).Bindings {
		got[b.Header] = b.Key
	}
	return got
}

func TestMatch_EnglishExport(t *testing.T) {
	got := bindings(t, englishHeaders)
	want := map[string]Key{
		"1. Name":                     Name,
		"2. ID":                       ID,
		"3. Height":                   Height,
		"4. Gender":                   Sex,
		"5. Age":                      Age,
		"6. Test Date / Time":         TestTime,
		"7. Weight":                   Weight,
		"Total Body Water (TBW)":      TotalBodyWater,
		"Intracellular Water (ICW)":   IntracellularWater,
		"Extracellular Water (ECW)":   ExtracellularWater,
		"Protein":                     Protein,
		"Minerals":                    Mineral,
		"Body Fat Mass (BFM)":         BodyFatMass,
		"Skeletal Muscle Mass (SMM)":  SkeletalMuscleMass,
		"BMI (Body Mass Index)":       BMI,
		"PBF (Percent Body Fat)":      PercentBodyFat,
		"ECW/TBW":                     ECWTBWRatio,
		"InBody Score":                InBodyScore,
		"Target Weight":               TargetWeight,
		"Weight Control":              WeightControl,
		"BFM Control":                 FatControl,
		"FFM Control":                 MuscleControl,
		"BMR (Basal Metabolic Rate)":  BasalMetabolicRate,
		"Visceral Fat Level":          VisceralFatLevel,
		"Visceral Fat Area":           VisceralFatArea,
		"Lean Mass of Right Arm":      LeanRightArm,
		"Lean Mass of Trunk":          LeanTrunk,
		"BFM of Right Arm":            FatRightArm,
		"Waist-Hip Ratio":             WaistHipRatio,
		"Body Cell Mass":              BodyCellMass,
		"SMI (Skeletal Muscle Index)": SkeletalMuscleIndex,
		"Obesity Degree":              ObesityDegree,
		"BFM% of Right Arm":           FatPctRightArm,
		"ECW/TBW of Right Arm":        ECWTBWRightArm,
		"50kHz-TR Phase Angle":        PhaseAngleTrunk,
		"50kHz-RA Phase Angle":        PhaseAngleRightArm,
		"TBW of Right Arm":            TBWRightArm,
		"Lean Mass(%) of Trunk":       LeanPctTrunk,
		"TBW/FFM":                     TBWFFMRatio,
		"SMM/WT":                      SMMWeightRatio,
	}
	for h, k := range want {
		assert.Equal(t, k, got[h], "header %q", h)
	}
	for _, h := range []string{
		"8. Lower Limit (Weight Normal Range)", "9. Upper Limit (Weight Normal Range)",
		"Soft Lean Mass (SLM)", "Fat Free Mass (FFM)",
	} {
		assert.Empty(t, got[h], "header %q should be unbound", h)
	}
}

func TestMatch_ChineseExport(t *testing.T) {
	got := bindings(t, chineseHeaders)
	want := map[string]Key{
		"姓名":          Name,
		"ID":          ID,
		"身高":          Height,
		"性別":          Sex,
		"年齡":          Age,
		"測試日期 / 時間":   TestTime,
		"體重":          Weight,
		"身體總水分":       TotalBodyWater,
		"細胞內水分":       IntracellularWater,
		"細胞外水分":       ExtracellularWater,
		"蛋白質":         Protein,
		"礦物質":         Mineral,
		"體脂肪量":        BodyFatMass,
		"骨骼肌重(SMM)":   SkeletalMuscleMass,
		"身體質量指數(BMI)": BMI,
		"體脂率":         PercentBodyFat,
		"細胞外水比率":      ECWTBWRatio,
		"InBody分數":    InBodyScore,
		"基礎代謝率":       BasalMetabolicRate,
		"內臟脂肪等級":      VisceralFatLevel,
		"內臟脂肪面積":      VisceralFatArea,
		"腰臀比":         WaistHipRatio,
		"右上肢肌肉量":      LeanRightArm,
		"左下肢脂肪量":      FatLeftLeg,
		"軀幹肌肉量":       LeanTrunk,
		"目標體重":        TargetWeight,
		"體重控制":        WeightControl,
		"脂肪控制":        FatControl,
		"肌肉控制":        MuscleControl,
		"骨骼肌指數":       SkeletalMuscleIndex,
		"右上肢體水分":      TBWRightArm,
		"左下肢 ECW/TBW": ECWTBWLeftLeg,
		"軀幹相位角":       PhaseAngleTrunk,
		"右上肢脂肪量(%)":   FatPctRightArm,
		"左上肢肌肉量(%)":   LeanPctLeftArm,
		"肌肉比":         SMMWeightRatio,
	}
	for h, k := range want {
		assert.Equal(t, k, got[h], "header %q", h)
	}
}

func TestMatch_ExclusionNeverBinds(t *testing.T) {
	m := NewMatcher(DefaultSchema())
	headers := []string{"SMM 正常下限", "SMM 上限", "骨骼肌重 下限", "Weight Lower Limit", "BFM Upper Limit", "PBF Normal Range", "體脂率 正常範圍"}
	mp := m.Match(headers)
	for _, b := range mp.Bindings {
		assert.False(t, b.Bound(), "header %q bound to %s", b.Header, b.Key)
		assert.True(t, b.Excluded, "header %q", b.Header)
	}
	assert.Len(t, mp.Unbound(), len(headers))
}

func TestMatch_FullWidthAndNumbering(t *testing.T) {
	got := bindings(t, []string{"18. 骨骼肌重（ＳＭＭ）", "  BODY   FAT   MASS  "})
	assert.Equal(t, SkeletalMuscleMass, got["18. 骨骼肌重（ＳＭＭ）"])
	assert.Equal(t, BodyFatMass, got["  BODY   FAT   MASS  "])
}

func TestMatch_WordBoundaries(t *testing.T) {
	got := bindings(t, []string{"Percentage", "Idle", "Average"})
	assert.Empty(t, got["Percentage"])
	assert.Empty(t, got["Idle"])
	assert.Empty(t, got["Average"])
}

func TestMatch_DoesNotModifyInput(t *testing.T) {
	headers := []string{" 體重 ", "SMM 下限"}
	cp := append([]string(nil), headers...)
	NewMatcher(DefaultSchema()).Match(headers)
	assert.Equal(t, cp, headers)
}

func TestMapping_ColumnsPrefersSpecificHeader(t *testing.T) {
	m := NewMatcher(DefaultSchema())
	cols := m.Match([]string{"體脂肪", "體脂肪量", "Name"}).Columns()
	assert.Equal(t, 1, cols[BodyFatMass])
	assert.Equal(t, 2, cols[Name])

	cols = m.Match([]string{"Weight", "Weight (kg)"}).Columns()
	assert.Equal(t, 0, cols[Weight])
}

func TestCheck_DefaultRulesAreConsistent(t *testing.T) {
	m := NewMatcher(DefaultSchema())
	assert.Empty(t, m.Check(englishHeaders))
	assert.Empty(t, m.Check(chineseHeaders))
}

func TestCheck_FlagsShadowedRule(t *testing.T) {
	s := DefaultSchema()
	// A broad rule placed ahead of the specific one swallows its header.
	broad := Rule{Key: VisceralFatArea, Patterns: []string{"內臟"}}
	s.Rules = append([]Rule{broad}, s.Rules...)
	require.NoError(t, s.Validate())

	findings := NewMatcher(s).Check([]string{"內臟脂肪等級", "體重"})
	require.Len(t, findings, 1)
	assert.Equal(t, "內臟脂肪等級", findings[0].Header)
	assert.Equal(t, []Key{VisceralFatArea, VisceralFatLevel}, findings[0].Keys)
	assert.Contains(t, findings[0].Error(), "visceral_fat_area vs visceral_fat_level")
}
