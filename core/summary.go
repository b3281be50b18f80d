package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"nestsummary/stats"
)

// Summarize builds the summary table of values, whose rows are independent
// repeats and whose columns are the estimators named by columns.
//
// The result is indexed by (calculation type, result type) and holds the
// mean and standard deviation of each column with the numerical uncertainty
// on each, plus the true values and the RMSE when opts ask for them:
//
//	calculation type  result type
//	true values       value
//	mean              value
//	mean              uncertainty
//	std               value
//	std               uncertainty
//	rmse              value
//	rmse              uncertainty
func Summarize(values mat.Matrix, columns []string, opts Options) (*Table, error) {
	n, c := values.Dims()
	if n == 0 || c == 0 {
		return nil, &ShapeError{What: "values", Want: len(columns), Got: 0}
	}
	if len(columns) != c {
		return nil, &ShapeError{What: "column names", Want: c, Got: len(columns)}
	}
	if opts.TrueValues != nil && len(opts.TrueValues) != c {
		return nil, &ShapeError{What: "true values", Want: c, Got: len(opts.TrueValues)}
	}
	if opts.IncludeTrueValues && opts.TrueValues == nil {
		return nil, validationf("true values must be given to include them")
	}
	if opts.IncludeRMSE && opts.TrueValues == nil {
		return nil, validationf("true values must be given to compute the RMSE")
	}

	mean, std := stats.ColumnMeanStd(values)
	t := NewTable([]Level{calculationTypeLevel(), resultTypeLevel()}, columns)
	t.put(mean, CalcMean, ResultValue)
	t.put(std, CalcStd, ResultValue)
	if opts.IncludeTrueValues {
		t.put(opts.TrueValues, CalcTrueValues, ResultValue)
	}
	t.put(stats.StdErrOfMean(std, n), CalcMean, ResultUncertainty)
	t.put(stats.StdErrOfStd(std, n), CalcStd, ResultUncertainty)
	if opts.IncludeRMSE {
		rmse, rmseUnc, err := stats.RMSEAndUnc(values, opts.TrueValues)
		if err != nil {
			return nil, err
		}
		t.put(rmse, CalcRMSE, ResultValue)
		t.put(rmseUnc, CalcRMSE, ResultUncertainty)
	}
	t.Sort()
	return t, nil
}

// SummarizeArray summarises a 2-D array. With axis 0 each row is a repeat,
// with axis 1 each column is.
func SummarizeArray(values mat.Matrix, names []string, axis int, opts Options) (*Table, error) {
	switch axis {
	case 0:
	case 1:
		values = values.T()
	default:
		return nil, validationf("axis must be 0 or 1, got %d", axis)
	}
	return Summarize(values, names, opts)
}

// SummarizeList summarises a list of repeats, each holding one value per
// name.
func SummarizeList(repeats [][]float64, names []string, opts Options) (*Table, error) {
	if len(repeats) == 0 || len(names) == 0 {
		return nil, &ShapeError{What: "repeats", Want: len(names), Got: 0}
	}
	m := mat.NewDense(len(repeats), len(names), nil)
	for i, repeat := range repeats {
		if len(repeat) != len(names) {
			return nil, &ShapeError{What: fmt.Sprintf("repeat %d", i), Want: len(names), Got: len(repeat)}
		}
		m.SetRow(i, repeat)
	}
	return Summarize(m, names, opts)
}
