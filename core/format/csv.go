package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Format(schema core.Schema, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	header := schema.FieldNames()
	if opts.PrintRowKind {
		header = append([]string{"op"}, header...)
	}

	data := [][]string{header}
	for _, row := range rows {
		record := core.RowToStrings(row, opts.NullColumn)
		if opts.PrintRowKind {
			record = append([]string{row.Kind.ShortString()}, record...)
		}
		data = append(data, record)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
