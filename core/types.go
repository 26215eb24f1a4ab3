package core

import (
	"errors"
)

var (
	ErrInvalidResult         = errors.New("invalid table result")
	ErrInvalidPrintStyle     = errors.New("invalid print style")
	ErrUnsupportedPrintStyle = errors.New("unsupported print style")
	ErrAwaitTimeout          = errors.New("await timeout exceeded")
	ErrInterrupted           = errors.New("await interrupted")
	ErrNoNextRow             = errors.New("no next row")
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// index of the first row in the chunk being formatted
		ChunkStart int
		// text used for null values
		NullColumn string
		// whether to prefix every row with its row kind
		PrintRowKind bool
	}

	// Formatter converts schema and rows to bytes
	Formatter interface {
		Format(schema Schema, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Row is a single record of a result. Values are aligned with the schema
	// fields and may be nil.
	Row struct {
		Kind   RowKind
		Values []any
	}

	// RowIterator is a lazily produced, single pass sequence of rows.
	RowIterator interface {
		HasNext() bool
		Next() (Row, error)
		Close()
	}

	// JobClient is an opaque handle of the job that produces the rows.
	// Results only hold it, they never control the job.
	JobClient interface {
		JobID() string
	}
)

// NewRow returns an insert row with provided values.
func NewRow(values ...any) Row {
	return Row{
		Kind:   RowKindInsert,
		Values: values,
	}
}

// RowOfKind returns a row of a specific kind with provided values.
func RowOfKind(kind RowKind, values ...any) Row {
	return Row{
		Kind:   kind,
		Values: values,
	}
}

// Arity returns the number of values in the row.
func (r Row) Arity() int {
	return len(r.Values)
}
