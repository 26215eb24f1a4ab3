package core

import (
	"encoding/hex"
	"fmt"
	"time"
)

// ValueToString converts a single row value to its printable form.
func ValueToString(value any, nullColumn string) string {
	switch v := value.(type) {
	case nil:
		return nullColumn
	case string:
		return v
	case []byte:
		return "x'" + hex.EncodeToString(v) + "'"
	case time.Time:
		return v.Format("2006-01-02 15:04:05.999999999")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// RowToStrings converts all values of a row to strings.
func RowToStrings(row Row, nullColumn string) []string {
	out := make([]string, len(row.Values))
	for i, v := range row.Values {
		out[i] = ValueToString(v, nullColumn)
	}
	return out
}

var _ RowIterator = (*sliceIterator)(nil)

type sliceIterator struct {
	rows  []Row
	index int
}

// NewSliceIterator adapts a finite list of rows to a RowIterator.
func NewSliceIterator(rows []Row) RowIterator {
	return &sliceIterator{rows: rows}
}

func (it *sliceIterator) HasNext() bool {
	return it.index < len(it.rows)
}

func (it *sliceIterator) Next() (Row, error) {
	if !it.HasNext() {
		return Row{}, ErrNoNextRow
	}
	row := it.rows[it.index]
	it.index++
	return row, nil
}

func (it *sliceIterator) Close() {
	it.index = len(it.rows)
}
