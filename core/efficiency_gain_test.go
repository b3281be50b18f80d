package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEfficiencyGain_IdenticalMethods(t *testing.T) {
	repeats := testRepeats(testData(20))
	gain, err := EfficiencyGain(
		[]string{"old", "new"},
		[][][]float64{repeats, repeats},
		testColumnNames(),
		GainOptions{Options: Options{TrueValues: make([]float64, testCols), IncludeRMSE: true}})
	require.NoError(t, err)

	ones := []float64{1, 1, 1}
	assert.Equal(t, ones, gain.MustGet(CalcStdGain, "new", ResultValue))
	assert.Equal(t, ones, gain.MustGet(CalcRMSEGain, "new", ResultValue))
	_, ok := gain.Get(CalcStdGain, "", ResultValue)
	assert.False(t, ok)
	_, ok = gain.Get(CalcTrueValues, "", ResultValue)
	assert.False(t, ok)
}

func TestEfficiencyGain_AdjustNsamp(t *testing.T) {
	repeats := testRepeats(testData(21))
	methodNames := []string{"old", "new"}
	adjustNsamp := []float64{1, 2}
	gain, err := EfficiencyGain(
		methodNames,
		[][][]float64{repeats, repeats},
		testColumnNames(),
		GainOptions{
			Options: Options{
				TrueValues:        make([]float64, testCols),
				IncludeTrueValues: true,
				IncludeRMSE:       true,
			},
			AdjustNsamp: adjustNsamp,
		})
	require.NoError(t, err)

	for i, method := range methodNames[1:] {
		want := adjustNsamp[0] / adjustNsamp[i+1]
		for _, gainType := range []string{CalcRMSEGain, CalcStdGain} {
			assert.Equal(t, []float64{want, want, want}, gain.MustGet(gainType, method, ResultValue))
		}
	}
	assert.Equal(t, make([]float64, testCols), gain.MustGet(CalcTrueValues, "", ResultValue))
}

func TestEfficiencyGain_Layout(t *testing.T) {
	base := testRepeats(testData(22))
	other := testRepeats(testData(23))
	gain, err := EfficiencyGain(
		[]string{"standard", "dynamic"},
		[][][]float64{base, other},
		testColumnNames(),
		GainOptions{Options: Options{TrueValues: make([]float64, testCols), IncludeTrueValues: true}})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "standard", "dynamic"}, gain.Levels[1].Categories)

	var keys [][]string
	for _, row := range gain.Rows {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, [][]string{
		{CalcTrueValues, "", ResultValue},
		{CalcMean, "", ResultValue},
		{CalcMean, "", ResultUncertainty},
		{CalcMean, "dynamic", ResultValue},
		{CalcMean, "dynamic", ResultUncertainty},
		{CalcStd, "", ResultValue},
		{CalcStd, "", ResultUncertainty},
		{CalcStd, "dynamic", ResultValue},
		{CalcStd, "dynamic", ResultUncertainty},
		{CalcStdGain, "dynamic", ResultValue},
		{CalcStdGain, "dynamic", ResultUncertainty},
	}, keys)

	baseSum, err := SummarizeList(base, testColumnNames(), Options{})
	require.NoError(t, err)
	otherSum, err := SummarizeList(other, testColumnNames(), Options{})
	require.NoError(t, err)
	bv, mv := baseSum.MustGet(CalcStd, ResultValue), otherSum.MustGet(CalcStd, ResultValue)
	got := gain.MustGet(CalcStdGain, "dynamic", ResultValue)
	for j := range bv {
		ratio := bv[j] / mv[j]
		assert.Equal(t, ratio*ratio, got[j])
	}
}

func TestEfficiencyGain_ThreeMethods(t *testing.T) {
	repeats := testRepeats(testData(24))
	gain, err := EfficiencyGain(
		[]string{"a", "b", "c"},
		[][][]float64{repeats, repeats, repeats},
		testColumnNames(),
		GainOptions{AdjustNsamp: []float64{2, 1, 4}})
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 2, 2}, gain.MustGet(CalcStdGain, "b", ResultValue))
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, gain.MustGet(CalcStdGain, "c", ResultValue))
}

func TestEfficiencyGain_Errors(t *testing.T) {
	repeats := testRepeats(testData(25))
	var shapeErr *ShapeError
	var validationErr *ValidationError

	_, err := EfficiencyGain([]string{"a", "b"}, [][][]float64{repeats, repeats}, testColumnNames(),
		GainOptions{AdjustNsamp: []float64{1}})
	assert.True(t, errors.As(err, &shapeErr))

	_, err = EfficiencyGain([]string{"a", "b"}, [][][]float64{repeats}, testColumnNames(), GainOptions{})
	assert.True(t, errors.As(err, &shapeErr))

	_, err = EfficiencyGain([]string{"a", "a"}, [][][]float64{repeats, repeats}, testColumnNames(), GainOptions{})
	assert.True(t, errors.As(err, &validationErr))

	_, err = EfficiencyGain(nil, nil, testColumnNames(), GainOptions{})
	assert.True(t, errors.As(err, &validationErr))

	_, err = EfficiencyGain([]string{"a", "b"}, [][][]float64{repeats, repeats}, testColumnNames(),
		GainOptions{Options: Options{IncludeRMSE: true}})
	assert.True(t, errors.As(err, &validationErr))
}
