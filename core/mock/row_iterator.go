package mock

import (
	"fmt"
	"time"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.RowIterator = (*RowIterator)(nil)

// RowIterator is a mocked lazy row source.
type RowIterator struct {
	rows    []core.Row
	index   int
	readyAt time.Time
	config  *rowIteratorConfig
}

// NewRowIterator returns a mocked iterator over provided rows.
func NewRowIterator(rows []core.Row, opts ...RowIteratorOption) *RowIterator {
	config := &rowIteratorConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return &RowIterator{
		rows:    rows,
		readyAt: time.Now().Add(config.firstRowDelay),
		config:  config,
	}
}

func (ri *RowIterator) HasNext() bool {
	// simulate a job that takes a while to produce anything
	if wait := time.Until(ri.readyAt); wait > 0 {
		time.Sleep(wait)
	}
	return ri.index < len(ri.rows)
}

func (ri *RowIterator) Next() (core.Row, error) {
	time.Sleep(ri.config.nextSleep)

	if !ri.HasNext() {
		return core.Row{}, core.ErrNoNextRow
	}

	row := ri.rows[ri.index]
	ri.index++
	return row, nil
}

func (ri *RowIterator) Close() {
	if ri.config.onClose != nil {
		ri.config.onClose()
	}
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.NewRow(i, fmt.Sprintf("row_%d", i)))
	}
	return rows
}

// NewSchema returns a schema matching rows from NewRows.
func NewSchema() core.Schema {
	schema, _ := core.NewSchema(
		core.Field{Name: "id", Type: core.DataTypeInt},
		core.Field{Name: "name", Type: core.DataTypeString},
	)
	return schema
}

// JobClient is a mocked job handle.
type JobClient struct {
	ID string
}

func (j *JobClient) JobID() string {
	return j.ID
}
