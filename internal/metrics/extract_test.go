package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/bodycomp-cli/internal/ingest"
)

func newExtractor() *Extractor {
	return NewExtractor(DefaultSchema(), ExtractOptions{})
}

func TestExtract_SkeletalMuscleMass(t *testing.T) {
	rec, err := newExtractor().ExtractRows(
		[]string{"姓名", "骨骼肌重(SMM)", "SMM 正常下限"},
		[][]string{{"王小明", "31.7", "28.0"}},
	)
	require.NoError(t, err)
	v := rec.Get(SkeletalMuscleMass)
	assert.Equal(t, Number, v.Kind)
	assert.Equal(t, 31.7, v.Num)
	assert.Equal(t, "kg", v.Unit)
	// The range bound column contributes nothing.
	assert.Equal(t, 2, rec.Len())
}

func TestExtract_MissingNameAndID(t *testing.T) {
	rec, err := newExtractor().ExtractRows(
		[]string{"體重", "骨骼肌重(SMM)"},
		[][]string{{"71.8", "31.7"}},
	)
	require.Error(t, err)
	assert.Nil(t, rec)
	var mf *MissingRequiredFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, []string{"name/id"}, mf.Fields)
	assert.Contains(t, err.Error(), "name/id")
}

func TestExtract_BlankIdentityCountsAsMissing(t *testing.T) {
	_, err := newExtractor().ExtractRows(
		[]string{"Name", "ID", "Protein"},
		[][]string{{" ", "-", "9.8"}},
	)
	var mf *MissingRequiredFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, []string{"name/id"}, mf.Fields)
}

func TestExtract_MissingComposition(t *testing.T) {
	_, err := newExtractor().ExtractRows(
		[]string{"Name", "Age", "Weight Lower Limit"},
		[][]string{{"Ann", "41", "50"}},
	)
	var mf *MissingRequiredFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, []string{"composition"}, mf.Fields)
}

func TestExtract_NoHeader(t *testing.T) {
	_, err := newExtractor().ExtractRows(nil, nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestExtract_ValueKinds(t *testing.T) {
	rec, err := newExtractor().ExtractRows(
		[]string{"ID", "Weight", "Body Fat Mass", "Visceral Fat Level", "BMR", "PBF", "Protein"},
		[][]string{
			{"", "", "", "", "", "", ""},
			{"0012", "0", "", "N/A", "1,520", "18.4%", "-"},
			{"9999", "80", "20", "10", "1600", "20", "11"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, TextValue("0012"), rec.Get(ID))
	assert.Equal(t, NumberValue(0, "kg"), rec.Get(Weight))
	assert.Equal(t, Absent, rec.Get(BodyFatMass).Kind)
	assert.Equal(t, TextValue("N/A"), rec.Get(VisceralFatLevel))
	assert.Equal(t, NumberValue(1520, "kcal"), rec.Get(BasalMetabolicRate))
	assert.Equal(t, NumberValue(18.4, "%"), rec.Get(PercentBodyFat))
	assert.False(t, rec.Get(Protein).Present())
	// Unmatched keys are left out, bound blank cells are kept as absent.
	assert.Equal(t, 7, rec.Len())
	assert.Equal(t, 5, rec.Present())
}

func TestExtract_CatalogOrder(t *testing.T) {
	rec, err := newExtractor().ExtractRows(
		[]string{"Lean Mass of Trunk", "Target Weight", "Weight", "Name"},
		[][]string{{"25.1", "68", "71.8", "Ann"}},
	)
	require.NoError(t, err)
	var keys []Key
	for _, e := range rec.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []Key{Name, Weight, TargetWeight, LeanTrunk}, keys)
}

func TestExtract_EntriesAreCopies(t *testing.T) {
	rec, err := newExtractor().ExtractRows([]string{"Name", "Weight"}, [][]string{{"Ann", "70"}})
	require.NoError(t, err)
	es := rec.Entries()
	es[1].Value = NumberValue(1, "kg")
	assert.Equal(t, 70.0, rec.Get(Weight).Num)
}

func TestExtract_ForcedDecimalComma(t *testing.T) {
	x := NewExtractor(DefaultSchema(), ExtractOptions{Number: NumberFormat{DecimalSeparator: ','}})
	rec, err := x.ExtractRows([]string{"Name", "Weight"}, [][]string{{"Ann", "71,8"}})
	require.NoError(t, err)
	assert.Equal(t, 71.8, rec.Get(Weight).Num)
}

func TestExtract_Idempotent(t *testing.T) {
	data := []byte("姓名,ID,體重(kg),骨骼肌重(SMM),SMM 正常下限,體脂率,內臟脂肪面積\n王小明,A001,71.8,31.7,28.0,18.2%,85.3\n")
	tbl, err := ingest.Resolver{Encodings: ingest.DefaultEncodings}.Resolve(data)
	require.NoError(t, err)

	x := newExtractor()
	first, err := x.Extract(tbl)
	require.NoError(t, err)
	second, err := x.Extract(tbl)
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), second.Entries())

	again, err := newExtractor().Extract(tbl)
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), again.Entries())
	assert.Equal(t, 85.3, first.Get(VisceralFatArea).Num)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "31.7", NumberValue(31.7, "kg").String())
	assert.Equal(t, "A001", TextValue("A001").String())
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "absent", Absent.String())
}
