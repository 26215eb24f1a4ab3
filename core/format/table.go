package format

import (
	"bytes"
	"fmt"
	"math"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.Formatter = (*Table)(nil)

// Table formats rows in the same tableau form as printed results.
type Table struct {
	maxColumnWidth int
}

func NewTable(maxColumnWidth int) *Table {
	if maxColumnWidth <= 0 {
		maxColumnWidth = math.MaxInt
	}
	return &Table{maxColumnWidth: maxColumnWidth}
}

func (tf *Table) Format(schema core.Schema, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	nullColumn := opts.NullColumn
	if nullColumn == "" {
		nullColumn = core.NullColumn
	}

	b := new(bytes.Buffer)
	_, err := core.RenderTableau(b, schema, core.NewSliceIterator(rows), core.TableauOptions{
		MaxColumnWidth: tf.maxColumnWidth,
		NullColumn:     nullColumn,
		PrintRowKind:   opts.PrintRowKind,
	})
	if err != nil {
		return nil, fmt.Errorf("core.RenderTableau: %w", err)
	}

	return b.Bytes(), nil
}
