package core

import (
	"fmt"

	capnp "zombiezen.com/go/capnproto2"
)

// Tables are stored as single segment Cap'n Proto messages with this layout:
//
//	Table { levels @0 :List(Level); columns @1 :List(Text); rows @2 :List(Row) }
//	Level { ordered @0 :Bool; name @1 :Text; categories @2 :List(Text) }
//	Row   { key @0 :List(Text); values @1 :List(Float64) }
var (
	tableSize = capnp.ObjectSize{DataSize: 0, PointerCount: 3}
	levelSize = capnp.ObjectSize{DataSize: 8, PointerCount: 2}
	rowSize   = capnp.ObjectSize{DataSize: 0, PointerCount: 2}
)

// NOTE: Tests are in table_store_test.go

func TableToBytes(t *Table) ([]byte, error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, err
	}
	root, err := capnp.NewRootStruct(seg, tableSize)
	if err != nil {
		return nil, err
	}

	levels, err := capnp.NewCompositeList(seg, levelSize, int32(len(t.Levels)))
	if err != nil {
		return nil, err
	}
	for i, level := range t.Levels {
		levelProto := levels.Struct(i)
		levelProto.SetBit(0, level.Ordered())
		if err := levelProto.SetText(0, level.Name); err != nil {
			return nil, err
		}
		categories, err := newTextList(seg, level.Categories)
		if err != nil {
			return nil, err
		}
		if err := levelProto.SetPtr(1, categories.List.ToPtr()); err != nil {
			return nil, err
		}
	}
	if err := root.SetPtr(0, levels.ToPtr()); err != nil {
		return nil, err
	}

	columns, err := newTextList(seg, t.Columns)
	if err != nil {
		return nil, err
	}
	if err := root.SetPtr(1, columns.List.ToPtr()); err != nil {
		return nil, err
	}

	rows, err := capnp.NewCompositeList(seg, rowSize, int32(len(t.Rows)))
	if err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		rowProto := rows.Struct(i)
		key, err := newTextList(seg, row.Key)
		if err != nil {
			return nil, err
		}
		if err := rowProto.SetPtr(0, key.List.ToPtr()); err != nil {
			return nil, err
		}
		values, err := capnp.NewFloat64List(seg, int32(len(row.Values)))
		if err != nil {
			return nil, err
		}
		for j, v := range row.Values {
			values.Set(j, v)
		}
		if err := rowProto.SetPtr(1, values.List.ToPtr()); err != nil {
			return nil, err
		}
	}
	if err := root.SetPtr(2, rows.ToPtr()); err != nil {
		return nil, err
	}

	return msg.Marshal()
}

func BytesToTable(buf []byte) (*Table, error) {
	msg, err := capnp.Unmarshal(buf)
	if err != nil {
		return nil, err
	}
	rootPtr, err := msg.RootPtr()
	if err != nil {
		return nil, err
	}
	root := rootPtr.Struct()

	levelsPtr, err := root.Ptr(0)
	if err != nil {
		return nil, err
	}
	levelsProto := levelsPtr.List()
	levels := make([]Level, levelsProto.Len())
	for i := range levels {
		levelProto := levelsProto.Struct(i)
		namePtr, err := levelProto.Ptr(0)
		if err != nil {
			return nil, err
		}
		categories, err := readTextList(levelProto, 1)
		if err != nil {
			return nil, err
		}
		levels[i] = Level{Name: namePtr.Text()}
		if levelProto.Bit(0) {
			levels[i].Categories = append([]string{}, categories...)
		}
	}

	columns, err := readTextList(root, 1)
	if err != nil {
		return nil, err
	}
	t := NewTable(levels, columns)

	rowsPtr, err := root.Ptr(2)
	if err != nil {
		return nil, err
	}
	rowsProto := rowsPtr.List()
	t.Rows = make([]Row, rowsProto.Len())
	for i := range t.Rows {
		rowProto := rowsProto.Struct(i)
		key, err := readTextList(rowProto, 0)
		if err != nil {
			return nil, err
		}
		valuesPtr, err := rowProto.Ptr(1)
		if err != nil {
			return nil, err
		}
		valuesProto := capnp.Float64List{List: valuesPtr.List()}
		if len(key) != len(levels) || valuesProto.Len() != len(columns) {
			return nil, fmt.Errorf("corrupt table row %d", i)
		}
		values := make([]float64, valuesProto.Len())
		for j := range values {
			values[j] = valuesProto.At(j)
		}
		t.Rows[i] = Row{Key: key, Values: values}
	}
	return t, nil
}

func newTextList(seg *capnp.Segment, xs []string) (capnp.TextList, error) {
	list, err := capnp.NewTextList(seg, int32(len(xs)))
	if err != nil {
		return list, err
	}
	for i, x := range xs {
		if err := list.Set(i, x); err != nil {
			return list, err
		}
	}
	return list, nil
}

func readTextList(s capnp.Struct, i uint16) ([]string, error) {
	p, err := s.Ptr(i)
	if err != nil {
		return nil, err
	}
	list := capnp.TextList{List: p.List()}
	out := make([]string, list.Len())
	for j := range out {
		if out[j], err = list.At(j); err != nil {
			return nil, err
		}
	}
	return out, nil
}
