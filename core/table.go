package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"
)

// Level is one level of a table index. A level with non-nil Categories is an
// ordered categorical: rows sort by the position of their tag in Categories,
// and tags seen for the first time are appended rather than rejected. A level
// without categories sorts its tags lexically.
type Level struct {
	Name       string
	Categories []string
}

func (l *Level) Ordered() bool {
	return l.Categories != nil
}

// Extend appends the tags missing from an ordered level's categories.
func (l *Level) Extend(tags ...string) {
	if !l.Ordered() {
		return
	}
	for _, tag := range tags {
		if l.rank(tag) == len(l.Categories) {
			l.Categories = append(l.Categories, tag)
		}
	}
}

func (l *Level) rank(tag string) int {
	for i, category := range l.Categories {
		if category == tag {
			return i
		}
	}
	return len(l.Categories)
}

func (l *Level) less(a, b string) bool {
	if l.Ordered() {
		return l.rank(a) < l.rank(b)
	}
	return a < b
}

func (l Level) clone() Level {
	if l.Categories != nil {
		l.Categories = append([]string{}, l.Categories...)
	}
	return l
}

type Row struct {
	Key    []string
	Values []float64
}

// Table is a labelled numeric table with a multi-level row index. Each row
// key holds one tag per level and each row holds one value per column.
type Table struct {
	Levels  []Level
	Columns []string
	Rows    []Row
}

func NewTable(levels []Level, columns []string) *Table {
	t := &Table{
		Levels:  make([]Level, len(levels)),
		Columns: append([]string{}, columns...),
		Rows:    make([]Row, 0),
	}
	for i, level := range levels {
		t.Levels[i] = level.clone()
	}
	return t
}

func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// LevelIndex returns the position of the named level, or -1.
func (t *Table) LevelIndex(name string) int {
	for i, level := range t.Levels {
		if level.Name == name {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

func (t *Table) find(key []string) int {
	for i, row := range t.Rows {
		if keysEqual(row.Key, key) {
			return i
		}
	}
	return -1
}

func keysEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Get returns a copy of the values stored under key.
func (t *Table) Get(key ...string) ([]float64, bool) {
	i := t.find(key)
	if i < 0 {
		return nil, false
	}
	return append([]float64{}, t.Rows[i].Values...), true
}

// MustGet is Get for keys the caller knows are present.
func (t *Table) MustGet(key ...string) []float64 {
	values, ok := t.Get(key...)
	if !ok {
		panic(fmt.Sprintf("core: no row %q", key))
	}
	return values
}

// Set stores a copy of values under key, replacing an existing row.
func (t *Table) Set(values []float64, key ...string) error {
	if len(key) != len(t.Levels) {
		return &ShapeError{What: "row key", Want: len(t.Levels), Got: len(key)}
	}
	if len(values) != len(t.Columns) {
		return &ShapeError{What: "row values", Want: len(t.Columns), Got: len(values)}
	}
	t.put(values, key...)
	return nil
}

// Append adds a row without looking for an existing one under the same key.
// It is meant for building large grouped inputs where the caller already
// knows the keys are unique.
func (t *Table) Append(values []float64, key ...string) error {
	if len(key) != len(t.Levels) {
		return &ShapeError{What: "row key", Want: len(t.Levels), Got: len(key)}
	}
	if len(values) != len(t.Columns) {
		return &ShapeError{What: "row values", Want: len(t.Columns), Got: len(values)}
	}
	t.appendRow(values, key)
	return nil
}

// put is Set without the shape checks, for builders that size rows
// themselves.
func (t *Table) put(values []float64, key ...string) {
	if i := t.find(key); i >= 0 {
		t.Rows[i].Values = append([]float64{}, values...)
		return
	}
	t.appendRow(values, key)
}

func (t *Table) appendRow(values []float64, key []string) {
	for i := range t.Levels {
		t.Levels[i].Extend(key[i])
	}
	t.Rows = append(t.Rows, Row{
		Key:    append([]string{}, key...),
		Values: append([]float64{}, values...),
	})
}

func (t *Table) lessKey(a, b []string) bool {
	for i := range t.Levels {
		if a[i] == b[i] {
			continue
		}
		return t.Levels[i].less(a[i], b[i])
	}
	return false
}

// Sort orders rows level by level using each level's canonical order.
func (t *Table) Sort() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.lessKey(t.Rows[i].Key, t.Rows[j].Key)
	})
}

func (t *Table) Clone() *Table {
	c := NewTable(t.Levels, t.Columns)
	for _, row := range t.Rows {
		c.appendRow(row.Values, row.Key)
	}
	return c
}

// Xs takes the cross section of rows whose tag on level equals tag, and drops
// that level from the result.
func (t *Table) Xs(level, tag string) (*Table, error) {
	li := t.LevelIndex(level)
	if li < 0 {
		return nil, validationf("no level %q", level)
	}
	levels := make([]Level, 0, len(t.Levels)-1)
	levels = append(levels, t.Levels[:li]...)
	levels = append(levels, t.Levels[li+1:]...)
	out := NewTable(levels, t.Columns)
	for _, row := range t.Rows {
		if row.Key[li] != tag {
			continue
		}
		key := make([]string, 0, len(levels))
		key = append(key, row.Key[:li]...)
		key = append(key, row.Key[li+1:]...)
		out.appendRow(row.Values, key)
	}
	return out, nil
}

// Select keeps the rows whose tag on level is one of tags, in table order.
func (t *Table) Select(level string, tags ...string) (*Table, error) {
	li := t.LevelIndex(level)
	if li < 0 {
		return nil, validationf("no level %q", level)
	}
	keep := make(map[string]bool, len(tags))
	for _, tag := range tags {
		keep[tag] = true
	}
	out := NewTable(t.Levels, t.Columns)
	for _, row := range t.Rows {
		if keep[row.Key[li]] {
			out.appendRow(row.Values, row.Key)
		}
	}
	return out, nil
}

// Matrix copies the table values into a dense matrix, one row per table row.
func (t *Table) Matrix() *mat.Dense {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(t.Rows), len(t.Columns), nil)
	for i, row := range t.Rows {
		m.SetRow(i, row.Values)
	}
	return m
}

func (t *Table) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(t.Levels)+len(t.Columns))
	for _, level := range t.Levels {
		header = append(header, level.Name)
	}
	header = append(header, t.Columns...)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(header))
		for _, tag := range row.Key {
			if tag == "" {
				tag = "-"
			}
			cells = append(cells, tag)
		}
		for _, v := range row.Values {
			cells = append(cells, strconv.FormatFloat(v, 'g', 6, 64))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	return sb.String()
}
