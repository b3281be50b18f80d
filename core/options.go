package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Options controls the summary table builders.
type Options struct {
	// TrueValues holds one reference value per column.
	TrueValues        []float64 `yaml:"true_values"`
	IncludeTrueValues bool      `yaml:"include_true_values"`
	IncludeRMSE       bool      `yaml:"include_rmse"`
}

// GainOptions controls EfficiencyGain.
type GainOptions struct {
	Options `yaml:",inline"`
	// AdjustNsamp holds the relative computational cost of each method.
	AdjustNsamp []float64 `yaml:"adjust_nsamp"`
}

var optionNames = []string{"true_values", "include_true_values", "include_rmse"}

var gainOptionNames = []string{"true_values", "include_true_values", "include_rmse", "adjust_nsamp"}

// ParseOptions builds Options from loosely typed key/value pairs, such as
// those read from a request or a generic config tree. Keys outside the
// recognised set fail with an *UnexpectedOptionError.
func ParseOptions(kv map[string]interface{}) (Options, error) {
	var opts Options
	err := parseStrict(kv, optionNames, &opts)
	return opts, err
}

func ParseGainOptions(kv map[string]interface{}) (GainOptions, error) {
	var opts GainOptions
	err := parseStrict(kv, gainOptionNames, &opts)
	return opts, err
}

// DecodeOptions reads Options from a YAML document. An empty document gives
// the zero Options.
func DecodeOptions(r io.Reader) (Options, error) {
	var opts Options
	err := decodeStrict(r, optionNames, &opts)
	return opts, err
}

func DecodeGainOptions(r io.Reader) (GainOptions, error) {
	var opts GainOptions
	err := decodeStrict(r, gainOptionNames, &opts)
	return opts, err
}

func parseStrict(kv map[string]interface{}, allowed []string, dst interface{}) error {
	if err := checkOptionNames(kv, allowed); err != nil {
		return err
	}
	buf, err := yaml.Marshal(kv)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	return decodeStrict(bytes.NewReader(buf), allowed, dst)
}

func decodeStrict(r io.Reader, allowed []string, dst interface{}) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read options: %w", err)
	}
	var kv map[string]interface{}
	if err := yaml.Unmarshal(buf, &kv); err != nil {
		return validationf("options are not a YAML mapping: %v", err)
	}
	if err := checkOptionNames(kv, allowed); err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return validationf("decode options: %v", err)
	}
	return nil
}

func checkOptionNames(kv map[string]interface{}, allowed []string) error {
	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}
	var unexpected []string
	for name := range kv {
		if !known[name] {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return &UnexpectedOptionError{Names: unexpected}
}
