package core

import (
	"math"
	"strings"
)

const LevelRowName = "row name"

// Columns that hold sample counts. PaperFormat shows their mean per method
// instead of their standard deviation.
var countColumns = []string{"samples", "likelihood calls"}

var rowNameReplacer = strings.NewReplacer(
	CalcStdGain, "Efficiency gain",
	"dynamic ", "",
	CalcStd, "St.Dev.",
)

// PaperFormat reshapes an EfficiencyGain table for publication: it keeps the
// std and std efficiency gain rows, joins calculation type and dynamic
// settings into one readable row name, and replaces the values in count
// columns with each method's rounded mean count on its St.Dev. value row.
func PaperFormat(gain *Table) (*Table, error) {
	calcIdx := gain.LevelIndex(LevelCalculationType)
	settingIdx := gain.LevelIndex(LevelDynamicSettings)
	resultIdx := gain.LevelIndex(LevelResultType)
	if calcIdx < 0 || settingIdx < 0 || resultIdx < 0 {
		return nil, validationf("paper format needs %q, %q and %q levels",
			LevelCalculationType, LevelDynamicSettings, LevelResultType)
	}
	selected, err := gain.Select(LevelCalculationType, CalcStd, CalcStdGain)
	if err != nil {
		return nil, err
	}

	out := NewTable([]Level{
		{Name: LevelRowName, Categories: []string{}},
		resultTypeLevel(),
	}, gain.Columns)
	for _, row := range selected.Rows {
		name := strings.TrimSpace(rowNameReplacer.Replace(row.Key[calcIdx] + " " + row.Key[settingIdx]))
		out.appendRow(row.Values, []string{name, row.Key[resultIdx]})
	}

	for _, column := range countColumns {
		j := gain.ColumnIndex(column)
		if j < 0 {
			continue
		}
		var counts []float64
		for _, row := range gain.Rows {
			if row.Key[calcIdx] == CalcMean && row.Key[resultIdx] == ResultValue {
				counts = append(counts, math.RoundToEven(row.Values[j]), math.NaN())
			}
		}
		for i := range out.Rows {
			v := math.NaN()
			if i < len(counts) {
				v = counts[i]
			}
			out.Rows[i].Values[j] = v
		}
	}
	return out, nil
}
