package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RMSEAndUnc computes the root mean squared error of each column of values
// against trueValues, and its numerical uncertainty.
//
// The uncertainty on the mean squared error is the standard error of the
// squared errors. With enough repeats that is close to normal, so first order
// propagation through the square root gives unc(rmse) = 0.5 * unc(mse) / rmse.
// A zero rmse is not guarded and yields Inf or NaN.
func RMSEAndUnc(values mat.Matrix, trueValues []float64) (rmse, unc []float64, err error) {
	n, c := values.Dims()
	if err := checkLen("true values", c, len(trueValues)); err != nil {
		return nil, nil, err
	}
	rmse = make([]float64, c)
	unc = make([]float64, c)
	sqErrors := make([]float64, n)
	for j := 0; j < c; j++ {
		for i := 0; i < n; i++ {
			sqErrors[i] = square(values.At(i, j) - trueValues[j])
		}
		sort.Float64s(sqErrors)
		mse, sd := stat.MeanStdDev(sqErrors, nil)
		rmse[j] = math.Sqrt(mse)
		unc[j] = 0.5 * (1 / rmse[j]) * stat.StdErr(sd, float64(n))
	}
	return rmse, unc, nil
}

// RatioUncertaintyScalar is the error on vn / vd given errors sn and sd,
// assuming the two are uncorrelated.
func RatioUncertaintyScalar(vn, sn, vd, sd float64) float64 {
	return (vn / vd) * math.Sqrt(square(sn/vn)+square(sd/vd))
}

// RatioUncertainty applies RatioUncertaintyScalar elementwise. All four slices
// must have the same length.
func RatioUncertainty(vn, sn, vd, sd []float64) ([]float64, error) {
	for _, check := range []struct {
		what string
		xs   []float64
	}{
		{"numerator uncertainties", sn},
		{"denominator values", vd},
		{"denominator uncertainties", sd},
	} {
		if err := checkLen(check.what, len(vn), len(check.xs)); err != nil {
			return nil, err
		}
	}
	out := make([]float64, len(vn))
	for i := range vn {
		out[i] = RatioUncertaintyScalar(vn[i], sn[i], vd[i], sd[i])
	}
	return out, nil
}
