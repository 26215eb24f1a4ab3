package builders

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/core"
)

var _ core.RowIterator = (*RowIterator)(nil)

// RowIterator fills core.RowIterator interface with plain functions
type RowIterator struct {
	next     func() (core.Row, error)
	hasNext  func() bool
	close    func()
	callback func()
	once     sync.Once
}

// SetCallback sets a function that is triggered once, when the iterator is closed.
func (r *RowIterator) SetCallback(callback func()) {
	r.callback = callback
}

func (r *RowIterator) HasNext() bool {
	return r.hasNext()
}

func (r *RowIterator) Next() (core.Row, error) {
	row, err := r.next()
	if err != nil {
		r.Close()
		return core.Row{}, err
	}
	return row, nil
}

func (r *RowIterator) Close() {
	r.once.Do(func() {
		r.close()
		if r.callback != nil {
			r.callback()
		}
		r.hasNext = func() bool {
			return false
		}
	})
}

// RowIteratorBuilder builds the rows
type RowIteratorBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	close   func()
}

func NewRowIteratorBuilder() *RowIteratorBuilder {
	return &RowIteratorBuilder{
		next:    func() (core.Row, error) { return core.Row{}, core.ErrNoNextRow },
		hasNext: func() bool { return false },
		close:   func() {},
	}
}

func (b *RowIteratorBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *RowIteratorBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *RowIteratorBuilder) WithCloseFunc(fn func()) *RowIteratorBuilder {
	b.close = fn
	return b
}

func (b *RowIteratorBuilder) Build() *RowIterator {
	return &RowIterator{
		next:    b.next,
		hasNext: b.hasNext,
		close:   b.close,
	}
}

// TableResultBuilder accumulates parameters of a table result.
// Schema, result kind and data are required, see core.NewTableResult.
type TableResultBuilder struct {
	config core.TableResultConfig
}

func NewTableResultBuilder() *TableResultBuilder {
	return &TableResultBuilder{}
}

// WithJobClient associates the result with the job that produces it.
func (b *TableResultBuilder) WithJobClient(job core.JobClient) *TableResultBuilder {
	b.config.JobClient = job
	return b
}

func (b *TableResultBuilder) WithSchema(schema core.Schema) *TableResultBuilder {
	b.config.Schema = &schema
	return b
}

func (b *TableResultBuilder) WithResultKind(kind core.ResultKind) *TableResultBuilder {
	b.config.Kind = kind
	return b
}

// WithRowIterator sets a lazy row source as the result data.
func (b *TableResultBuilder) WithRowIterator(iter core.RowIterator) *TableResultBuilder {
	b.config.Data = iter
	return b
}

// WithRows sets a finite list of rows as the result data.
func (b *TableResultBuilder) WithRows(rows []core.Row) *TableResultBuilder {
	b.config.Data = core.NewSliceIterator(rows)
	return b
}

func (b *TableResultBuilder) WithPrintStyle(style core.PrintStyle) *TableResultBuilder {
	b.config.PrintStyle = &style
	return b
}

func (b *TableResultBuilder) WithOutput(w io.Writer) *TableResultBuilder {
	b.config.Output = w
	return b
}

func (b *TableResultBuilder) WithLogger(logger *zap.Logger) *TableResultBuilder {
	b.config.Logger = logger
	return b
}

func (b *TableResultBuilder) Build() (*core.TableResult, error) {
	return core.NewTableResult(b.config)
}
