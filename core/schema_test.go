package core_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zhengtingxue/dinky/core"
)

func TestNewSchema(t *testing.T) {
	r := require.New(t)

	schema, err := core.NewSchema(
		core.Field{Name: "id", Type: core.DataTypeBigInt},
		core.Field{Name: "created", Type: core.DataTypeTimestamp},
	)
	r.NoError(err)
	r.Equal(2, schema.FieldCount())
	r.Equal("created", schema.Field(1).Name)
	r.Equal([]string{"id", "created"}, schema.FieldNames())
	r.Equal("root\n |-- id: BIGINT\n |-- created: TIMESTAMP", schema.String())

	// returned fields don't alias the schema
	fields := schema.Fields()
	fields[0].Name = "changed"
	r.Equal("id", schema.Field(0).Name)

	_, err = core.NewSchema(core.Field{Name: ""})
	r.Error(err)

	_, err = core.NewSchema(core.Field{Name: "a"}, core.Field{Name: "a"})
	r.ErrorContains(err, "duplicate field name: a")
}

func TestDataTypeFromDatabaseType(t *testing.T) {
	testCases := []struct {
		name     string
		expected core.DataType
	}{
		{name: "varchar(255)", expected: core.DataTypeString},
		{name: "", expected: core.DataTypeString},
		{name: "INT4", expected: core.DataTypeInt},
		{name: "bigint", expected: core.DataTypeBigInt},
		{name: "NUMERIC(10, 2)", expected: core.DataTypeDecimal},
		{name: "timestamptz", expected: core.DataTypeTimestamp},
		{name: "bytea", expected: core.DataTypeBytes},
		{name: "hstore", expected: core.DataType("HSTORE")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, core.DataTypeFromDatabaseType(tc.name))
		})
	}

	require.Equal(t, 20, core.DataTypeBigInt.DisplayWidth())
	require.Equal(t, 0, core.DataTypeString.DisplayWidth())
}

func TestResultKindFromString(t *testing.T) {
	r := require.New(t)

	for _, kind := range []core.ResultKind{core.ResultKindSuccess, core.ResultKindSuccessWithContent} {
		r.Equal(kind, core.ResultKindFromString(kind.String()))
	}
	r.Equal(core.ResultKindUnknown, core.ResultKindFromString("nope"))
}

func TestRowKind(t *testing.T) {
	r := require.New(t)

	r.Equal("-U", core.RowKindUpdateBefore.ShortString())
	r.Equal(core.RowKindDelete, core.RowKindFromString("-D"))
	r.Equal(core.RowKindUpdateAfter, core.RowKindFromString("UPDATE_AFTER"))
	r.Equal(core.RowKindInsert, core.RowKindFromString("garbage"))

	row := core.RowOfKind(core.RowKindDelete, 1, "a")
	r.Equal(2, row.Arity())
	r.Equal(core.RowKindInsert, core.NewRow().Kind)
}

func TestPrintStyle(t *testing.T) {
	r := require.New(t)

	def := core.DefaultPrintStyle()
	opts, ok := def.Tableau()
	r.True(ok)
	r.Equal(math.MaxInt, opts.MaxColumnWidth)

	raw := core.RawContentStyle()
	r.True(raw.IsRawContent())
	_, ok = raw.Tableau()
	r.False(ok)
	r.Equal("rawContent", raw.String())

	var unknown core.PrintStyle
	r.False(unknown.IsTableau())
	r.False(unknown.IsRawContent())
	r.Equal("unknown", unknown.String())

	_, err := core.TableauStyle(0, "", true, true)
	r.True(errors.Is(err, core.ErrInvalidPrintStyle))
}

func TestValueToString(t *testing.T) {
	r := require.New(t)

	r.Equal("(NULL)", core.ValueToString(nil, core.NullColumn))
	r.Equal("x'00ff'", core.ValueToString([]byte{0x00, 0xff}, core.NullColumn))
	r.Equal("2024-01-02 03:04:05.5", core.ValueToString(time.Date(2024, 1, 2, 3, 4, 5, 500_000_000, time.UTC), core.NullColumn))
	r.Equal("3.14", core.ValueToString(3.14, core.NullColumn))
	r.Equal([]string{"1", "null"}, core.RowToStrings(core.NewRow(1, nil), "null"))
}
