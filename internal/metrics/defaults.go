package metrics

// Canonical keys of the default schema.
const (
	Name     Key = "name"
	ID       Key = "id"
	Sex      Key = "sex"
	Age      Key = "age"
	Height   Key = "height"
	TestTime Key = "test_time"

	Weight              Key = "weight"
	SkeletalMuscleMass  Key = "skeletal_muscle_mass"
	BodyFatMass         Key = "body_fat_mass"
	PercentBodyFat      Key = "percent_body_fat"
	TotalBodyWater      Key = "total_body_water"
	IntracellularWater  Key = "intracellular_water"
	ExtracellularWater  Key = "extracellular_water"
	Protein             Key = "protein"
	Mineral             Key = "mineral"
	BMI                 Key = "bmi"
	BasalMetabolicRate  Key = "basal_metabolic_rate"
	VisceralFatArea     Key = "visceral_fat_area"
	ECWTBWRatio         Key = "ecw_tbw_ratio"
	SkeletalMuscleIndex Key = "skeletal_muscle_index"
	InBodyScore         Key = "inbody_score"
	WaistHipRatio       Key = "waist_hip_ratio"
	VisceralFatLevel    Key = "visceral_fat_level"
	ObesityDegree       Key = "obesity_degree"
	BodyCellMass        Key = "body_cell_mass"
	FatFreeMassIndex    Key = "fat_free_mass_index"
	FatMassIndex        Key = "fat_mass_index"
	TBWFFMRatio         Key = "tbw_ffm_ratio"
	SMMWeightRatio      Key = "smm_wt_ratio"

	TargetWeight  Key = "target_weight"
	WeightControl Key = "weight_control"
	FatControl    Key = "fat_control"
	MuscleControl Key = "muscle_control"

	LeanRightArm Key = "lean_right_arm"
	LeanLeftArm  Key = "lean_left_arm"
	LeanTrunk    Key = "lean_trunk"
	LeanRightLeg Key = "lean_right_leg"
	LeanLeftLeg  Key = "lean_left_leg"
	FatRightArm  Key = "fat_right_arm"
	FatLeftArm   Key = "fat_left_arm"
	FatTrunk     Key = "fat_trunk"
	FatRightLeg  Key = "fat_right_leg"
	FatLeftLeg   Key = "fat_left_leg"

	LeanPctRightArm    Key = "lean_pct_right_arm"
	LeanPctLeftArm     Key = "lean_pct_left_arm"
	LeanPctTrunk       Key = "lean_pct_trunk"
	LeanPctRightLeg    Key = "lean_pct_right_leg"
	LeanPctLeftLeg     Key = "lean_pct_left_leg"
	FatPctRightArm     Key = "fat_pct_right_arm"
	FatPctLeftArm      Key = "fat_pct_left_arm"
	FatPctTrunk        Key = "fat_pct_trunk"
	FatPctRightLeg     Key = "fat_pct_right_leg"
	FatPctLeftLeg      Key = "fat_pct_left_leg"
	TBWRightArm        Key = "tbw_right_arm"
	TBWLeftArm         Key = "tbw_left_arm"
	TBWTrunk           Key = "tbw_trunk"
	TBWRightLeg        Key = "tbw_right_leg"
	TBWLeftLeg         Key = "tbw_left_leg"
	ECWTBWRightArm     Key = "ecw_tbw_right_arm"
	ECWTBWLeftArm      Key = "ecw_tbw_left_arm"
	ECWTBWTrunk        Key = "ecw_tbw_trunk"
	ECWTBWRightLeg     Key = "ecw_tbw_right_leg"
	ECWTBWLeftLeg      Key = "ecw_tbw_left_leg"
	PhaseAngleRightArm Key = "phase_angle_right_arm"
	PhaseAngleLeftArm  Key = "phase_angle_left_arm"
	PhaseAngleTrunk    Key = "phase_angle_trunk"
	PhaseAngleRightLeg Key = "phase_angle_right_leg"
	PhaseAngleLeftLeg  Key = "phase_angle_left_leg"
)

// DefaultExclusions mark the lower/upper normal-range bound columns.
var DefaultExclusions = []string{
	"下限", "上限", "正常範圍", "標準範圍", "lower limit", "upper limit", "normal range",
}

// segmentWords keep whole-body rules from swallowing per-limb columns.
var segmentWords = []string{
	"right arm", "left arm", "trunk", "right leg", "left leg",
	"右上肢", "左上肢", "軀幹", "右下肢", "左下肢", "上肢", "下肢",
}

func plus(base []string, more ...string) []string {
	out := make([]string, 0, len(base)+len(more))
	out = append(out, base...)
	return append(out, more...)
}

func numDef(k Key, c Category, label, unit string, aliases ...string) KeyDef {
	return KeyDef{Key: k, Category: c, Label: label, Unit: unit, Kind: KindNumber, Aliases: aliases}
}

func textDef(k Key, label string, aliases ...string) KeyDef {
	return KeyDef{Key: k, Category: CategoryIdentity, Label: label, Kind: KindText, Aliases: aliases}
}

// DefaultSchema returns a fresh copy of the built-in InBody schema. Aliases
// include the legacy summary keys (e.g. "SMM_kg") so older exports reload.
func DefaultSchema() *Schema {
	s := &Schema{
		Keys: []KeyDef{
			textDef(Name, "姓名", "name", "Name"),
			textDef(ID, "ID", "member id", "身份證", "測試編號"),
			textDef(Sex, "性別", "gender", "Gender", "sex"),
			numDef(Age, CategoryIdentity, "年齡", "歲", "age", "Age"),
			numDef(Height, CategoryIdentity, "身高", "cm", "height", "Height_cm"),
			textDef(TestTime, "測試時間", "test date / time", "TestDateTime", "test datetime"),

			numDef(Weight, CategoryComposition, "體重", "kg", "weight", "Weight_kg"),
			numDef(SkeletalMuscleMass, CategoryComposition, "骨骼肌量 (SMM)", "kg", "骨骼肌量", "骨骼肌重", "skeletal muscle mass", "smm", "SMM_kg"),
			numDef(BodyFatMass, CategoryComposition, "體脂肪量 (BFM)", "kg", "體脂肪量", "body fat mass", "bfm", "BFM_kg"),
			numDef(PercentBodyFat, CategoryComposition, "體脂率 (PBF)", "%", "體脂率", "percent body fat", "pbf", "PBF_pct"),
			numDef(TotalBodyWater, CategoryComposition, "體水分 (TBW)", "L", "體水分", "總水量", "total body water", "tbw", "TBW_kg"),
			numDef(IntracellularWater, CategoryComposition, "細胞內水分 (ICW)", "L", "細胞內水分", "intracellular water", "icw", "ICW_kg"),
			numDef(ExtracellularWater, CategoryComposition, "細胞外水分 (ECW)", "L", "細胞外水分", "extracellular water", "ecw", "ECW_kg"),
			numDef(Protein, CategoryComposition, "蛋白質", "kg", "protein", "Protein_kg"),
			numDef(Mineral, CategoryComposition, "礦物質", "kg", "mineral", "minerals", "Minerals_kg"),
			numDef(BMI, CategoryComposition, "BMI", "kg/m²", "body mass index", "體質指數"),
			numDef(BasalMetabolicRate, CategoryComposition, "基礎代謝率 (BMR)", "kcal", "基礎代謝", "basal metabolic rate", "bmr", "BMR_kcal"),
			numDef(VisceralFatArea, CategoryComposition, "內臟脂肪面積 (VFA)", "cm²", "內臟脂肪", "內臟脂肪面積", "visceral fat area", "vfa", "VFA_cm2"),
			numDef(ECWTBWRatio, CategoryComposition, "ECW/TBW", "", "水腫率", "ecw ratio", "ECW_TBW"),
			numDef(SkeletalMuscleIndex, CategoryComposition, "骨骼肌指數 (SMI)", "kg/m²", "skeletal muscle index", "smi", "SMI"),
			numDef(InBodyScore, CategoryComposition, "InBody 分數", "分", "inbody score", "score", "Score"),
			numDef(WaistHipRatio, CategoryComposition, "腰臀比 (WHR)", "", "腰臀比", "waist-hip ratio", "whr", "WHR"),
			numDef(VisceralFatLevel, CategoryComposition, "內臟脂肪等級", "", "visceral fat level", "vfl", "VFL_level"),
			numDef(ObesityDegree, CategoryComposition, "肥胖度", "%", "obesity degree", "ObesityDegree_pct"),
			numDef(BodyCellMass, CategoryComposition, "身體細胞量 (BCM)", "kg", "body cell mass", "bcm", "BCM_kg"),
			numDef(FatFreeMassIndex, CategoryComposition, "除脂體重指數 (FFMI)", "kg/m²", "fat free mass index", "ffmi", "FFMI"),
			numDef(FatMassIndex, CategoryComposition, "體脂肪指數 (FMI)", "kg/m²", "fat mass index", "fmi", "FMI"),
			numDef(TBWFFMRatio, CategoryComposition, "TBW/FFM", "%", "tbw ffm", "TBW_FFM_pct"),
			numDef(SMMWeightRatio, CategoryComposition, "肌肉比 (SMM/WT)", "%", "肌肉比", "smm/wt", "SMM_WT_pct"),

			numDef(TargetWeight, CategoryControl, "目標體重", "kg", "target weight", "TargetWeight_kg"),
			numDef(WeightControl, CategoryControl, "體重控制", "kg", "建議體重控制", "weight control"),
			numDef(FatControl, CategoryControl, "建議減脂", "kg", "脂肪控制", "fat control", "bfm control", "FatControl_kg"),
			numDef(MuscleControl, CategoryControl, "建議增肌", "kg", "肌肉控制", "muscle control", "ffm control", "MuscleControl_kg"),

			numDef(LeanRightArm, CategorySegmental, "右上肢肌肉量", "kg", "lean mass of right arm", "右手肌肉", "RightArm_Lean_kg"),
			numDef(LeanLeftArm, CategorySegmental, "左上肢肌肉量", "kg", "lean mass of left arm", "左手肌肉", "LeftArm_Lean_kg"),
			numDef(LeanTrunk, CategorySegmental, "軀幹肌肉量", "kg", "lean mass of trunk", "Trunk_Lean_kg"),
			numDef(LeanRightLeg, CategorySegmental, "右下肢肌肉量", "kg", "lean mass of right leg", "右腿肌肉", "RightLeg_Lean_kg"),
			numDef(LeanLeftLeg, CategorySegmental, "左下肢肌肉量", "kg", "lean mass of left leg", "左腿肌肉", "LeftLeg_Lean_kg"),
			numDef(FatRightArm, CategorySegmental, "右上肢脂肪量", "kg", "bfm of right arm", "右手脂肪", "RightArm_Fat_kg"),
			numDef(FatLeftArm, CategorySegmental, "左上肢脂肪量", "kg", "bfm of left arm", "左手脂肪", "LeftArm_Fat_kg"),
			numDef(FatTrunk, CategorySegmental, "軀幹脂肪量", "kg", "bfm of trunk", "Trunk_Fat_kg"),
			numDef(FatRightLeg, CategorySegmental, "右下肢脂肪量", "kg", "bfm of right leg", "右腿脂肪", "RightLeg_Fat_kg"),
			numDef(FatLeftLeg, CategorySegmental, "左下肢脂肪量", "kg", "bfm of left leg", "左腿脂肪", "LeftLeg_Fat_kg"),
			numDef(LeanPctRightArm, CategorySegmental, "右上肢肌肉%", "%", "lean mass(%) of right arm", "RightArm_Lean_pct"),
			numDef(LeanPctLeftArm, CategorySegmental, "左上肢肌肉%", "%", "lean mass(%) of left arm", "LeftArm_Lean_pct"),
			numDef(LeanPctTrunk, CategorySegmental, "軀幹肌肉%", "%", "lean mass(%) of trunk", "Trunk_Lean_pct"),
			numDef(LeanPctRightLeg, CategorySegmental, "右下肢肌肉%", "%", "lean mass(%) of right leg", "RightLeg_Lean_pct"),
			numDef(LeanPctLeftLeg, CategorySegmental, "左下肢肌肉%", "%", "lean mass(%) of left leg", "LeftLeg_Lean_pct"),
			numDef(FatPctRightArm, CategorySegmental, "右上肢脂肪%", "%", "bfm% of right arm", "RightArm_Fat_pct"),
			numDef(FatPctLeftArm, CategorySegmental, "左上肢脂肪%", "%", "bfm% of left arm", "LeftArm_Fat_pct"),
			numDef(FatPctTrunk, CategorySegmental, "軀幹脂肪%", "%", "bfm% of trunk", "Trunk_Fat_pct"),
			numDef(FatPctRightLeg, CategorySegmental, "右下肢脂肪%", "%", "bfm% of right leg", "RightLeg_Fat_pct"),
			numDef(FatPctLeftLeg, CategorySegmental, "左下肢脂肪%", "%", "bfm% of left leg", "LeftLeg_Fat_pct"),
			numDef(TBWRightArm, CategorySegmental, "右上肢體水分", "L", "tbw of right arm", "RightArm_TBW_kg"),
			numDef(TBWLeftArm, CategorySegmental, "左上肢體水分", "L", "tbw of left arm", "LeftArm_TBW_kg"),
			numDef(TBWTrunk, CategorySegmental, "軀幹體水分", "L", "tbw of trunk", "Trunk_TBW_kg"),
			numDef(TBWRightLeg, CategorySegmental, "右下肢體水分", "L", "tbw of right leg", "RightLeg_TBW_kg"),
			numDef(TBWLeftLeg, CategorySegmental, "左下肢體水分", "L", "tbw of left leg", "LeftLeg_TBW_kg"),
			numDef(ECWTBWRightArm, CategorySegmental, "右上肢 ECW/TBW", "", "ecw/tbw of right arm", "RightArm_ECW_TBW"),
			numDef(ECWTBWLeftArm, CategorySegmental, "左上肢 ECW/TBW", "", "ecw/tbw of left arm", "LeftArm_ECW_TBW"),
			numDef(ECWTBWTrunk, CategorySegmental, "軀幹 ECW/TBW", "", "ecw/tbw of trunk", "Trunk_ECW_TBW"),
			numDef(ECWTBWRightLeg, CategorySegmental, "右下肢 ECW/TBW", "", "ecw/tbw of right leg", "RightLeg_ECW_TBW"),
			numDef(ECWTBWLeftLeg, CategorySegmental, "左下肢 ECW/TBW", "", "ecw/tbw of left leg", "LeftLeg_ECW_TBW"),
			numDef(PhaseAngleRightArm, CategorySegmental, "右上肢相位角", "°", "50khz-ra phase angle", "phase angle ra", "RightArm_PhaseAngle_deg"),
			numDef(PhaseAngleLeftArm, CategorySegmental, "左上肢相位角", "°", "50khz-la phase angle", "phase angle la", "LeftArm_PhaseAngle_deg"),
			numDef(PhaseAngleTrunk, CategorySegmental, "軀幹相位角", "°", "50khz-tr phase angle", "phase angle trunk", "Trunk_PhaseAngle_deg"),
			numDef(PhaseAngleRightLeg, CategorySegmental, "右下肢相位角", "°", "50khz-rl phase angle", "phase angle rl", "RightLeg_PhaseAngle_deg"),
			numDef(PhaseAngleLeftLeg, CategorySegmental, "左下肢相位角", "°", "50khz-ll phase angle", "phase angle ll", "LeftLeg_PhaseAngle_deg"),
		},
		Rules: []Rule{
			{Key: TestTime, Patterns: []string{"test date / time", "test date", "date / time", "date/time", "測試時間", "測試日期", "檢測時間"}},
			{Key: Name, Patterns: []string{"name", "姓名"}},
			{Key: ID, Patterns: []string{"id", "member id", "身份證", "身分證", "測試編號", "會員編號"}},
			{Key: Sex, Patterns: []string{"gender", "sex", "性別"}},
			{Key: Age, Patterns: []string{"age", "年齡"}},
			{Key: Height, Patterns: []string{"height", "身高"}},

			{Key: TargetWeight, Patterns: []string{"target weight", "目標體重"}},
			{Key: WeightControl, Patterns: []string{"weight control", "體重控制"}},
			{Key: FatControl, Patterns: []string{"bfm control", "fat control", "脂肪控制", "建議減脂"}},
			{Key: MuscleControl, Patterns: []string{"ffm control", "muscle control", "肌肉控制", "建議增肌"}},

			{Key: PhaseAngleRightArm, Patterns: []string{"50khz-ra phase angle", "right arm phase angle", "phase angle of right arm", "右上肢相位角"}},
			{Key: PhaseAngleLeftArm, Patterns: []string{"50khz-la phase angle", "left arm phase angle", "phase angle of left arm", "左上肢相位角"}},
			{Key: PhaseAngleTrunk, Patterns: []string{"50khz-tr phase angle", "trunk phase angle", "phase angle of trunk", "軀幹相位角"}},
			{Key: PhaseAngleRightLeg, Patterns: []string{"50khz-rl phase angle", "right leg phase angle", "phase angle of right leg", "右下肢相位角"}},
			{Key: PhaseAngleLeftLeg, Patterns: []string{"50khz-ll phase angle", "left leg phase angle", "phase angle of left leg", "左下肢相位角"}},
			{Key: ECWTBWRightArm, Patterns: []string{"ecw/tbw of right arm", "right arm ecw/tbw", "右上肢 ecw/tbw", "右上肢細胞外水比率"}},
			{Key: ECWTBWLeftArm, Patterns: []string{"ecw/tbw of left arm", "left arm ecw/tbw", "左上肢 ecw/tbw", "左上肢細胞外水比率"}},
			{Key: ECWTBWTrunk, Patterns: []string{"ecw/tbw of trunk", "trunk ecw/tbw", "軀幹 ecw/tbw", "軀幹細胞外水比率"}},
			{Key: ECWTBWRightLeg, Patterns: []string{"ecw/tbw of right leg", "right leg ecw/tbw", "右下肢 ecw/tbw", "右下肢細胞外水比率"}},
			{Key: ECWTBWLeftLeg, Patterns: []string{"ecw/tbw of left leg", "left leg ecw/tbw", "左下肢 ecw/tbw", "左下肢細胞外水比率"}},
			{Key: TBWRightArm, Patterns: []string{"tbw of right arm", "right arm tbw", "右上肢體水分", "右上肢水分"}, Exclude: []string{"ecw", "/"}},
			{Key: TBWLeftArm, Patterns: []string{"tbw of left arm", "left arm tbw", "左上肢體水分", "左上肢水分"}, Exclude: []string{"ecw", "/"}},
			{Key: TBWTrunk, Patterns: []string{"tbw of trunk", "trunk tbw", "軀幹體水分", "軀幹水分"}, Exclude: []string{"ecw", "/"}},
			{Key: TBWRightLeg, Patterns: []string{"tbw of right leg", "right leg tbw", "右下肢體水分", "右下肢水分"}, Exclude: []string{"ecw", "/"}},
			{Key: TBWLeftLeg, Patterns: []string{"tbw of left leg", "left leg tbw", "左下肢體水分", "左下肢水分"}, Exclude: []string{"ecw", "/"}},
			{Key: LeanPctRightArm, Patterns: []string{"lean mass(%) of right arm", "lean mass % of right arm", "right arm lean %", "右上肢肌肉%", "右上肢肌肉量(%)"}},
			{Key: LeanPctLeftArm, Patterns: []string{"lean mass(%) of left arm", "lean mass % of left arm", "left arm lean %", "左上肢肌肉%", "左上肢肌肉量(%)"}},
			{Key: LeanPctTrunk, Patterns: []string{"lean mass(%) of trunk", "lean mass % of trunk", "trunk lean %", "軀幹肌肉%", "軀幹肌肉量(%)"}},
			{Key: LeanPctRightLeg, Patterns: []string{"lean mass(%) of right leg", "lean mass % of right leg", "right leg lean %", "右下肢肌肉%", "右下肢肌肉量(%)"}},
			{Key: LeanPctLeftLeg, Patterns: []string{"lean mass(%) of left leg", "lean mass % of left leg", "left leg lean %", "左下肢肌肉%", "左下肢肌肉量(%)"}},
			{Key: FatPctRightArm, Patterns: []string{"bfm% of right arm", "bfm % of right arm", "right arm fat %", "右上肢脂肪%", "右上肢脂肪量(%)"}},
			{Key: FatPctLeftArm, Patterns: []string{"bfm% of left arm", "bfm % of left arm", "left arm fat %", "左上肢脂肪%", "左上肢脂肪量(%)"}},
			{Key: FatPctTrunk, Patterns: []string{"bfm% of trunk", "bfm % of trunk", "trunk fat %", "軀幹脂肪%", "軀幹脂肪量(%)"}},
			{Key: FatPctRightLeg, Patterns: []string{"bfm% of right leg", "bfm % of right leg", "right leg fat %", "右下肢脂肪%", "右下肢脂肪量(%)"}},
			{Key: FatPctLeftLeg, Patterns: []string{"bfm% of left leg", "bfm % of left leg", "left leg fat %", "左下肢脂肪%", "左下肢脂肪量(%)"}},

			{Key: LeanRightArm, Patterns: []string{"lean mass of right arm", "right arm lean", "右上肢肌肉", "右上肢骨骼肌", "右手肌肉"}, Exclude: []string{"%", "ecw", "tbw"}},
			{Key: LeanLeftArm, Patterns: []string{"lean mass of left arm", "left arm lean", "左上肢肌肉", "左上肢骨骼肌", "左手肌肉"}, Exclude: []string{"%", "ecw", "tbw"}},
			{Key: LeanTrunk, Patterns: []string{"lean mass of trunk", "trunk lean", "軀幹肌肉", "軀幹骨骼肌"}, Exclude: []string{"%", "ecw", "tbw"}},
			{Key: LeanRightLeg, Patterns: []string{"lean mass of right leg", "right leg lean", "右下肢肌肉", "右下肢骨骼肌", "右腿肌肉"}, Exclude: []string{"%", "ecw", "tbw"}},
			{Key: LeanLeftLeg, Patterns: []string{"lean mass of left leg", "left leg lean", "左下肢肌肉", "左下肢骨骼肌", "左腿肌肉"}, Exclude: []string{"%", "ecw", "tbw"}},
			{Key: FatRightArm, Patterns: []string{"bfm of right arm", "fat of right arm", "right arm fat", "右上肢脂肪", "右上肢體脂肪", "右手脂肪"}, Exclude: []string{"%"}},
			{Key: FatLeftArm, Patterns: []string{"bfm of left arm", "fat of left arm", "left arm fat", "左上肢脂肪", "左上肢體脂肪", "左手脂肪"}, Exclude: []string{"%"}},
			{Key: FatTrunk, Patterns: []string{"bfm of trunk", "fat of trunk", "trunk fat", "軀幹脂肪", "軀幹體脂肪"}, Exclude: []string{"%"}},
			{Key: FatRightLeg, Patterns: []string{"bfm of right leg", "fat of right leg", "right leg fat", "右下肢脂肪", "右下肢體脂肪", "右腿脂肪"}, Exclude: []string{"%"}},
			{Key: FatLeftLeg, Patterns: []string{"bfm of left leg", "fat of left leg", "left leg fat", "左下肢脂肪", "左下肢體脂肪", "左腿脂肪"}, Exclude: []string{"%"}},

			{Key: TBWFFMRatio, Patterns: []string{"tbw/ffm", "tbw / ffm", "體水分/除脂體重"}},
			{Key: SMMWeightRatio, Patterns: []string{"smm/wt", "smm / wt", "smm/weight", "肌肉比"}},
			{Key: ECWTBWRatio, Patterns: []string{"ecw/tbw", "ecw ratio", "extracellular water ratio", "細胞外水比率", "水腫"}, Exclude: plus(segmentWords)},
			{Key: SkeletalMuscleIndex, Patterns: []string{"skeletal muscle index", "smi", "骨骼肌指數"}},
			{Key: FatFreeMassIndex, Patterns: []string{"fat free mass index", "ffmi", "除脂體重指數"}},
			{Key: FatMassIndex, Patterns: []string{"fat mass index", "fmi", "體脂肪指數"}},
			{Key: VisceralFatLevel, Patterns: []string{"visceral fat level", "vfl", "內臟脂肪等級"}},
			{Key: VisceralFatArea, Patterns: []string{"visceral fat area", "vfa", "內臟脂肪面積", "內臟脂肪"}},
			{Key: WaistHipRatio, Patterns: []string{"waist-hip ratio", "waist hip ratio", "whr", "腰臀比"}},
			{Key: ObesityDegree, Patterns: []string{"obesity degree", "肥胖度"}},
			{Key: BodyCellMass, Patterns: []string{"body cell mass", "bcm", "身體細胞量"}},
			{Key: InBodyScore, Patterns: []string{"inbody score", "inbody分數", "score", "分數"}},
			{Key: BasalMetabolicRate, Patterns: []string{"basal metabolic rate", "bmr", "基礎代謝"}},
			{Key: BMI, Patterns: []string{"body mass index", "bmi", "身體質量指數", "體質指數"}},
			{Key: PercentBodyFat, Patterns: []string{"percent body fat", "pbf", "體脂率", "體脂肪率"}, Exclude: plus(segmentWords)},
			{Key: BodyFatMass, Patterns: []string{"body fat mass", "bfm", "體脂肪重", "體脂肪量", "體脂肪"}, Exclude: plus(segmentWords, "%", "/", "control", "控制")},
			{Key: SkeletalMuscleMass, Patterns: []string{"skeletal muscle mass", "smm", "骨骼肌重", "骨骼肌量", "骨骼肌"}, Exclude: plus(segmentWords, "%", "/")},
			{Key: TotalBodyWater, Patterns: []string{"total body water", "tbw", "身體總水", "總水量", "體水分"}, Exclude: plus(segmentWords, "/")},
			{Key: IntracellularWater, Patterns: []string{"intracellular water", "icw", "細胞內水"}, Exclude: plus(segmentWords, "/")},
			{Key: ExtracellularWater, Patterns: []string{"extracellular water", "ecw", "細胞外水"}, Exclude: plus(segmentWords, "/")},
			{Key: Protein, Patterns: []string{"protein", "蛋白質"}},
			{Key: Mineral, Patterns: []string{"minerals", "mineral", "礦物質", "無機鹽"}},
			{Key: Weight, Patterns: []string{"weight", "體重"}, Exclude: []string{"control", "target", "控制", "目標", "標準", "/"}},
		},
		Exclusions: append([]string(nil), DefaultExclusions...),
		Required: []Requirement{
			{Name: "name/id", Any: []Key{Name, ID}},
		},
	}
	s.Required = append(s.Required, Requirement{Name: "composition", Any: s.KeysIn(CategoryComposition)})
	if err := s.Validate(); err != nil {
		panic("metrics: invalid default schema: " + err.Error())
	}
	return s
}
