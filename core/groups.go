package core

import (
	"sort"
	"strings"
)

// SummarizeGroups summarises each group of a multi-level table. The last
// level of in indexes repeats; rows are grouped by the levels named in keep
// (all levels but the last when keep is empty) and each group is passed to
// Summarize. The result is indexed by the keep levels followed by calculation
// type and result type.
//
// When keep already holds a calculation type level, the group's tag and the
// summary's tag are joined as "<group> <summary>" into that single level
// instead of producing two calculation type levels.
func SummarizeGroups(in *Table, keep []string, opts Options) (*Table, error) {
	if len(in.Levels) < 2 {
		return nil, validationf("grouped table needs at least two levels, has %d", len(in.Levels))
	}
	if len(keep) == 0 {
		for _, level := range in.Levels[:len(in.Levels)-1] {
			keep = append(keep, level.Name)
		}
	}
	keepIdx := make([]int, len(keep))
	keepLevels := make([]Level, len(keep))
	merged := -1
	for i, name := range keep {
		li := in.LevelIndex(name)
		if li < 0 {
			return nil, validationf("no level %q to group by", name)
		}
		keepIdx[i] = li
		keepLevels[i] = in.Levels[li]
		if name == LevelCalculationType {
			merged = i
		}
	}

	groups, order := groupRows(in, keepIdx)
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := groups[order[a]].key, groups[order[b]].key
		for i := range keepLevels {
			if ka[i] != kb[i] {
				return keepLevels[i].less(ka[i], kb[i])
			}
		}
		return false
	})

	var out *Table
	if merged < 0 {
		levels := append(append([]Level{}, keepLevels...), calculationTypeLevel(), resultTypeLevel())
		out = NewTable(levels, in.Columns)
	} else {
		levels := append([]Level{}, keepLevels...)
		levels[merged] = Level{Name: LevelCalculationType, Categories: []string{}}
		levels = append(levels, resultTypeLevel())
		out = NewTable(levels, in.Columns)
	}

	for _, id := range order {
		g := groups[id]
		summary, err := Summarize(g.table.Matrix(), in.Columns, opts)
		if err != nil {
			return nil, err
		}
		for _, row := range summary.Rows {
			calc, result := row.Key[0], row.Key[1]
			key := append([]string{}, g.key...)
			if merged < 0 {
				key = append(key, calc, result)
			} else {
				key[merged] = strings.Join([]string{g.key[merged], calc}, " ")
				key = append(key, result)
			}
			out.appendRow(row.Values, key)
		}
	}
	out.Sort()
	return out, nil
}

type group struct {
	key   []string
	table *Table
}

// groupRows splits the rows of in by their tags on the keepIdx levels. order
// lists group ids in first-seen order.
func groupRows(in *Table, keepIdx []int) (map[string]*group, []string) {
	groups := make(map[string]*group)
	var order []string
	for _, row := range in.Rows {
		key := make([]string, len(keepIdx))
		for i, li := range keepIdx {
			key[i] = row.Key[li]
		}
		id := strings.Join(key, "\x00")
		g, ok := groups[id]
		if !ok {
			g = &group{key: key, table: NewTable(nil, in.Columns)}
			groups[id] = g
			order = append(order, id)
		}
		g.table.Rows = append(g.table.Rows, Row{Values: row.Values})
	}
	return groups, order
}
