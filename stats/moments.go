package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// sortedColumn copies column j of m in ascending order. Every reduction in
// this package runs over sorted copies so the result does not depend on the
// row order of the input.
func sortedColumn(m mat.Matrix, j int) []float64 {
	col := mat.Col(nil, j, m)
	sort.Float64s(col)
	return col
}

// ColumnMeanStd returns the per-column mean and sample standard deviation
// (ddof=1) of m, whose rows are repeats.
func ColumnMeanStd(m mat.Matrix) (mean, std []float64) {
	_, c := m.Dims()
	mean = make([]float64, c)
	std = make([]float64, c)
	for j := 0; j < c; j++ {
		mean[j], std[j] = stat.MeanStdDev(sortedColumn(m, j), nil)
	}
	return mean, std
}

// StdErrOfMean is std / sqrt(n) for each element of std.
func StdErrOfMean(std []float64, n int) []float64 {
	out := make([]float64, len(std))
	for i, s := range std {
		out[i] = stat.StdErr(s, float64(n))
	}
	return out
}

// StdErrOfStd is the large-sample standard error of a sample standard
// deviation, std * sqrt(1 / (2(n-1))).
func StdErrOfStd(std []float64, n int) []float64 {
	factor := math.Sqrt(1 / (2 * float64(n-1)))
	out := make([]float64, len(std))
	for i, s := range std {
		out[i] = s * factor
	}
	return out
}
