package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(map[string]interface{}{
		"true_values":         []interface{}{0, 0.5, 1},
		"include_true_values": true,
		"include_rmse":        true,
	})
	require.NoError(t, err)
	assert.Equal(t, Options{
		TrueValues:        []float64{0, 0.5, 1},
		IncludeTrueValues: true,
		IncludeRMSE:       true,
	}, opts)
}

func TestParseOptions_Unexpected(t *testing.T) {
	_, err := ParseOptions(map[string]interface{}{
		"include_rmse": true,
		"unexpected":   1,
		"adjust_nsamp": []float64{1, 2},
	})
	var unexpected *UnexpectedOptionError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, []string{"adjust_nsamp", "unexpected"}, unexpected.Names)
}

func TestParseGainOptions(t *testing.T) {
	opts, err := ParseGainOptions(map[string]interface{}{
		"include_rmse": true,
		"true_values":  []float64{1, 2},
		"adjust_nsamp": []int{1, 2},
	})
	require.NoError(t, err)
	assert.True(t, opts.IncludeRMSE)
	assert.Equal(t, []float64{1, 2}, opts.TrueValues)
	assert.Equal(t, []float64{1, 2}, opts.AdjustNsamp)

	_, err = ParseGainOptions(map[string]interface{}{"unexpected": 1})
	var unexpected *UnexpectedOptionError
	assert.True(t, errors.As(err, &unexpected))
}

func TestDecodeOptions(t *testing.T) {
	opts, err := DecodeOptions(strings.NewReader("true_values: [0, 0, 0]\ninclude_rmse: true\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, opts.TrueValues)
	assert.True(t, opts.IncludeRMSE)
	assert.False(t, opts.IncludeTrueValues)

	opts, err = DecodeOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)

	_, err = DecodeOptions(strings.NewReader("include_rmse: true\ninclude_rmes: true\n"))
	var unexpected *UnexpectedOptionError
	require.True(t, errors.As(err, &unexpected))
	assert.Equal(t, []string{"include_rmes"}, unexpected.Names)
}

func TestDecodeGainOptions(t *testing.T) {
	opts, err := DecodeGainOptions(strings.NewReader("adjust_nsamp: [1, 2]\ninclude_rmse: false\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, opts.AdjustNsamp)

	_, err = DecodeGainOptions(strings.NewReader("- not a mapping\n"))
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
