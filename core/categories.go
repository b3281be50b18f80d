package core

// Index level names.
const (
	LevelCalculationType = "calculation type"
	LevelDynamicSettings = "dynamic settings"
	LevelResultType      = "result type"
)

// Calculation types, in canonical order.
const (
	CalcTrueValues = "true values"
	CalcMean       = "mean"
	CalcStd        = "std"
	CalcRMSE       = "rmse"
	CalcStdGain    = "std efficiency gain"
	CalcRMSEGain   = "rmse efficiency gain"
)

// Result types, in canonical order.
const (
	ResultValue       = "value"
	ResultUncertainty = "uncertainty"
)

// GainLabel is the calculation type holding the efficiency gain of stat.
func GainLabel(stat string) string {
	return stat + " efficiency gain"
}

func CalculationTypes() []string {
	return []string{CalcTrueValues, CalcMean, CalcStd, CalcRMSE}
}

func ResultTypes() []string {
	return []string{ResultValue, ResultUncertainty}
}

// calculationTypeLevel is the canonical calculation type level, extended
// with any extra tags after the built-in ones.
func calculationTypeLevel(extra ...string) Level {
	level := Level{Name: LevelCalculationType, Categories: CalculationTypes()}
	level.Extend(extra...)
	return level
}

func resultTypeLevel() Level {
	return Level{Name: LevelResultType, Categories: ResultTypes()}
}

// trackedStats are the statistics an efficiency gain is computed for.
func trackedStats(includeRMSE bool) []string {
	if includeRMSE {
		return []string{CalcStd, CalcRMSE}
	}
	return []string{CalcStd}
}
