package format

import (
	"encoding/json"
	"fmt"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.Formatter = (*JSON)(nil)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) records(schema core.Schema, rows []core.Row, opts *core.FormatterOptions) []map[string]any {
	names := schema.FieldNames()
	data := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		record := make(map[string]any, len(row.Values)+1)
		for i, val := range row.Values {
			var name string
			if i < len(names) {
				name = names[i]
			} else {
				name = fmt.Sprintf("<unknown-field-%d>", i)
			}

			// bytes and times are kept in their printable form
			switch val.(type) {
			case []byte:
				record[name] = core.ValueToString(val, opts.NullColumn)
			default:
				record[name] = val
			}
		}
		if opts.PrintRowKind {
			record["op"] = row.Kind.ShortString()
		}
		data = append(data, record)
	}

	return data
}

func (jf *JSON) Format(schema core.Schema, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	out, err := json.MarshalIndent(jf.records(schema, rows, opts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
