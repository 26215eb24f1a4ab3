package core

import (
	"fmt"
	"strings"
)

// DataType is the logical type of a column.
// Database specific type names that don't map to a known type are kept as they are.
type DataType string

const (
	DataTypeString    DataType = "STRING"
	DataTypeBoolean   DataType = "BOOLEAN"
	DataTypeTinyInt   DataType = "TINYINT"
	DataTypeSmallInt  DataType = "SMALLINT"
	DataTypeInt       DataType = "INT"
	DataTypeBigInt    DataType = "BIGINT"
	DataTypeFloat     DataType = "FLOAT"
	DataTypeDouble    DataType = "DOUBLE"
	DataTypeDecimal   DataType = "DECIMAL"
	DataTypeDate      DataType = "DATE"
	DataTypeTime      DataType = "TIME"
	DataTypeTimestamp DataType = "TIMESTAMP"
	DataTypeBytes     DataType = "BYTES"
)

// DataTypeFromDatabaseType maps a database type name (as reported by drivers)
// to a logical type.
func DataTypeFromDatabaseType(name string) DataType {
	typ := strings.ToUpper(strings.TrimSpace(name))
	// strip size and precision, e.g. VARCHAR(255)
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}

	switch typ {
	case "CHAR", "VARCHAR", "TEXT", "NVARCHAR", "NCHAR", "STRING", "UUID", "JSON", "JSONB", "CLOB":
		return DataTypeString
	case "BOOL", "BOOLEAN", "BIT":
		return DataTypeBoolean
	case "TINYINT", "INT1":
		return DataTypeTinyInt
	case "SMALLINT", "INT2":
		return DataTypeSmallInt
	case "INT", "INTEGER", "INT4", "MEDIUMINT", "INT32":
		return DataTypeInt
	case "BIGINT", "INT8", "INT64":
		return DataTypeBigInt
	case "FLOAT", "FLOAT4", "REAL", "FLOAT32":
		return DataTypeFloat
	case "DOUBLE", "FLOAT8", "FLOAT64", "DOUBLE PRECISION":
		return DataTypeDouble
	case "DECIMAL", "NUMERIC", "NUMBER":
		return DataTypeDecimal
	case "DATE":
		return DataTypeDate
	case "TIME", "TIMETZ":
		return DataTypeTime
	case "TIMESTAMP", "TIMESTAMPTZ", "DATETIME", "DATETIME2", "DATETIME64":
		return DataTypeTimestamp
	case "BYTEA", "BLOB", "BINARY", "VARBINARY", "BYTES":
		return DataTypeBytes
	case "":
		return DataTypeString
	default:
		return DataType(typ)
	}
}

// DisplayWidth returns the number of characters needed to print any value
// of the type. Zero means the width can only be derived from the content.
func (t DataType) DisplayWidth() int {
	switch t {
	case DataTypeBoolean:
		return 5
	case DataTypeTinyInt:
		return 4
	case DataTypeSmallInt:
		return 6
	case DataTypeInt:
		return 11
	case DataTypeBigInt:
		return 20
	case DataTypeFloat, DataTypeDouble:
		return 24
	case DataTypeDecimal:
		return 40
	case DataTypeDate:
		return 10
	case DataTypeTime:
		return 18
	case DataTypeTimestamp:
		return 29
	default:
		return 0
	}
}

// Field is a single named column of a schema.
type Field struct {
	Name string
	Type DataType
}

// Schema is an immutable ordered list of fields.
type Schema struct {
	fields []Field
}

// NewSchema creates a schema from fields in the provided order.
func NewSchema(fields ...Field) (Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("field %d has an empty name", i)
		}
		if _, ok := seen[f.Name]; ok {
			return Schema{}, fmt.Errorf("duplicate field name: %s", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	copied := make([]Field, len(fields))
	copy(copied, fields)

	return Schema{fields: copied}, nil
}

func (s Schema) FieldCount() int {
	return len(s.fields)
}

func (s Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of all fields.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) FieldTypes() []DataType {
	types := make([]DataType, len(s.fields))
	for i, f := range s.fields {
		types[i] = f.Type
	}
	return types
}

func (s Schema) IsEmpty() bool {
	return len(s.fields) == 0
}

func (s Schema) String() string {
	var b strings.Builder
	b.WriteString("root")
	for _, f := range s.fields {
		fmt.Fprintf(&b, "\n |-- %s: %s", f.Name, f.Type)
	}
	return b.String()
}

// ResultKind classifies a result.
type ResultKind int

const (
	ResultKindUnknown ResultKind = iota
	// statement succeeded without producing content (DDL, acknowledgements)
	ResultKindSuccess
	// statement succeeded and produced rows
	ResultKindSuccessWithContent
)

func ResultKindFromString(s string) ResultKind {
	switch s {
	case ResultKindSuccess.String():
		return ResultKindSuccess
	case ResultKindSuccessWithContent.String():
		return ResultKindSuccessWithContent
	default:
		return ResultKindUnknown
	}
}

func (k ResultKind) String() string {
	switch k {
	case ResultKindSuccess:
		return "SUCCESS"
	case ResultKindSuccessWithContent:
		return "SUCCESS_WITH_CONTENT"
	default:
		return "UNKNOWN"
	}
}
