package core

import (
	"fmt"

	"nestsummary/stats"
)

// EfficiencyGain compares methods against the first one, the baseline.
//
// For every other method and for each tracked statistic (std, and rmse when
// opts.IncludeRMSE is set) it adds
//
//	efficiency gain = (baseline stat / method stat) ** 2
//
// which for std is the ratio of variances, i.e. the speed-up in computational
// work needed to reach the same precision. When opts.AdjustNsamp gives the
// relative cost of each method, gains for method i are scaled by
// AdjustNsamp[0] / AdjustNsamp[i] so they measure performance per unit of work.
//
// methodValues[i] holds the repeats of method i, each with one value per
// estimator name. The result is indexed by (calculation type, dynamic
// settings, result type); the baseline's rows and the true values row carry
// an empty dynamic settings tag.
func EfficiencyGain(methodNames []string, methodValues [][][]float64, estNames []string, opts GainOptions) (*Table, error) {
	if len(methodNames) == 0 {
		return nil, validationf("no methods to compare")
	}
	seen := make(map[string]bool, len(methodNames))
	for _, name := range methodNames {
		if name == "" {
			return nil, validationf("method names must not be empty")
		}
		if seen[name] {
			return nil, validationf("duplicate method name %q", name)
		}
		seen[name] = true
	}
	if len(methodValues) != len(methodNames) {
		return nil, &ShapeError{What: "method values", Want: len(methodNames), Got: len(methodValues)}
	}
	if opts.AdjustNsamp != nil && len(opts.AdjustNsamp) != len(methodNames) {
		return nil, &ShapeError{What: "adjust_nsamp", Want: len(methodNames), Got: len(opts.AdjustNsamp)}
	}
	if opts.IncludeTrueValues && opts.TrueValues == nil {
		return nil, validationf("true values must be given to include them")
	}

	// True values go in once at the end rather than once per method.
	perMethod := opts.Options
	perMethod.IncludeTrueValues = false

	settings := Level{Name: LevelDynamicSettings, Categories: append([]string{""}, methodNames...)}
	out := NewTable([]Level{
		calculationTypeLevel(CalcStdGain, CalcRMSEGain),
		settings,
		resultTypeLevel(),
	}, estNames)

	var baseline *Table
	for i, name := range methodNames {
		summary, err := SummarizeList(methodValues[i], estNames, perMethod)
		if err != nil {
			return nil, fmt.Errorf("method %q: %w", name, err)
		}
		setting := name
		if i == 0 {
			baseline = summary
			setting = ""
		}
		for _, row := range summary.Rows {
			out.put(row.Values, row.Key[0], setting, row.Key[1])
		}
		if i == 0 {
			continue
		}
		for _, stat := range trackedStats(opts.IncludeRMSE) {
			gain, gainUnc, err := gainOf(baseline, summary, stat)
			if err != nil {
				return nil, fmt.Errorf("method %q: %w", name, err)
			}
			if opts.AdjustNsamp != nil {
				adjust := opts.AdjustNsamp[0] / opts.AdjustNsamp[i]
				stats.Scale(gain, adjust)
				stats.Scale(gainUnc, adjust)
			}
			out.put(gain, GainLabel(stat), name, ResultValue)
			out.put(gainUnc, GainLabel(stat), name, ResultUncertainty)
		}
	}
	if opts.IncludeTrueValues {
		out.put(opts.TrueValues, CalcTrueValues, "", ResultValue)
	}
	out.Sort()
	return out, nil
}

// gainOf is the squared ratio of the baseline's stat to the method's, with
// its uncertainty propagated through the square.
func gainOf(baseline, method *Table, stat string) (gain, gainUnc []float64, err error) {
	bv := baseline.MustGet(stat, ResultValue)
	bu := baseline.MustGet(stat, ResultUncertainty)
	mv := method.MustGet(stat, ResultValue)
	mu := method.MustGet(stat, ResultUncertainty)
	ratioUnc, err := stats.RatioUncertainty(bv, bu, mv, mu)
	if err != nil {
		return nil, nil, err
	}
	gain = make([]float64, len(bv))
	gainUnc = make([]float64, len(bv))
	for i := range bv {
		ratio := bv[i] / mv[i]
		gain[i] = ratio * ratio
		gainUnc[i] = 2 * ratio * ratioUnc[i]
	}
	return gain, gainUnc, nil
}
