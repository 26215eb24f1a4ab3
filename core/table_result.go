package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TableResultConfig holds all parameters of a table result.
// Schema, Kind and Data are required.
type TableResultConfig struct {
	// optional handle of the job producing the rows
	JobClient JobClient
	Schema    *Schema
	Kind      ResultKind
	Data      RowIterator
	// optional, defaults to DefaultPrintStyle()
	PrintStyle *PrintStyle

	// where tableau style is printed, defaults to stdout
	Output io.Writer
	// where raw content style is logged, defaults to the global zap logger
	Logger *zap.Logger
	// drives await timeouts, defaults to the real clock
	Clock clockwork.Clock
}

// TableResult is the result of an executed statement. It wraps a lazy row
// iterator together with its schema and result kind.
//
// A table result is consumed by at most one iteration pass.
type TableResult struct {
	jobClient  JobClient
	schema     Schema
	kind       ResultKind
	data       *TrackedIterator
	printStyle PrintStyle

	output io.Writer
	logger *zap.Logger
	clock  clockwork.Clock
}

// NewTableResult validates the config and creates a new table result.
func NewTableResult(cfg TableResultConfig) (*TableResult, error) {
	if cfg.Schema == nil {
		return nil, fmt.Errorf("%w: schema should not be nil", ErrInvalidResult)
	}
	if cfg.Kind == ResultKindUnknown {
		return nil, fmt.Errorf("%w: result kind should not be unknown", ErrInvalidResult)
	}
	if cfg.Data == nil {
		return nil, fmt.Errorf("%w: data should not be nil", ErrInvalidResult)
	}

	style := DefaultPrintStyle()
	if cfg.PrintStyle != nil {
		style = *cfg.PrintStyle
	}

	r := &TableResult{
		jobClient:  cfg.JobClient,
		schema:     *cfg.Schema,
		kind:       cfg.Kind,
		data:       newTrackedIterator(cfg.Data),
		printStyle: style,
		output:     cfg.Output,
		logger:     cfg.Logger,
		clock:      cfg.Clock,
	}

	if r.output == nil {
		r.output = os.Stdout
	}
	if r.logger == nil {
		r.logger = zap.L()
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}

	return r, nil
}

// BuildTableResult creates a successful result from fields and rows.
// If fields are empty, the result carries no schema and no rows.
func BuildTableResult(fields []Field, rows []Row) (*TableResult, error) {
	if len(fields) == 0 {
		return NewTableResult(TableResultConfig{
			Schema: &Schema{},
			Kind:   ResultKindSuccess,
			Data:   NewSliceIterator(nil),
		})
	}

	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	return NewTableResult(TableResultConfig{
		Schema: &schema,
		Kind:   ResultKindSuccess,
		Data:   NewSliceIterator(rows),
	})
}

// TableResultOK returns an acknowledgement result with a single "OK" row.
func TableResultOK() *TableResult {
	schema, _ := NewSchema(Field{Name: "result", Type: DataTypeString})

	r, _ := NewTableResult(TableResultConfig{
		Schema: &schema,
		Kind:   ResultKindSuccess,
		Data:   NewSliceIterator([]Row{NewRow("OK")}),
	})
	return r
}

// JobClient returns the job handle, if the result is tied to a job.
func (r *TableResult) JobClient() (JobClient, bool) {
	return r.jobClient, r.jobClient != nil
}

func (r *TableResult) Schema() Schema {
	return r.schema
}

func (r *TableResult) Kind() ResultKind {
	return r.kind
}

func (r *TableResult) PrintStyle() PrintStyle {
	return r.printStyle
}

// Restyled returns a copy of the result that prints with the provided style
// to the provided sinks. Nil sinks keep the current ones. Both results share
// the same rows, so only one of them should be consumed.
func (r *TableResult) Restyled(style PrintStyle, output io.Writer, logger *zap.Logger) *TableResult {
	cp := *r
	cp.printStyle = style
	if output != nil {
		cp.output = output
	}
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

func (r *TableResult) withJobClient(job JobClient) *TableResult {
	cp := *r
	cp.jobClient = job
	return &cp
}

// Collect returns the row iterator of the result.
// Every call returns the same iterator, rows are not fetched again.
func (r *TableResult) Collect() *TrackedIterator {
	return r.data
}

// Await blocks until the first row of the result is ready or the result
// has no job attached. Cancelling ctx returns ErrInterrupted.
func (r *TableResult) Await(ctx context.Context) error {
	err := r.await(ctx, -1)
	if errors.Is(err, ErrAwaitTimeout) {
		return nil
	}
	return err
}

// AwaitTimeout is like Await, but returns ErrAwaitTimeout if the first row
// isn't ready in time. The job itself keeps running.
func (r *TableResult) AwaitTimeout(ctx context.Context, timeout time.Duration) error {
	if timeout < 0 {
		timeout = 0
	}
	return r.await(ctx, timeout)
}

// await waits for the first row, negative timeout means no timeout.
// The waiting worker has exited by the time await returns.
func (r *TableResult) await(ctx context.Context, timeout time.Duration) error {
	if r.jobClient == nil {
		return nil
	}

	r.data.Prefetch()
	if r.data.FirstRowReady() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(1)

	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return r.waitFirstRow(gctx)
	})

	var timeoutCh <-chan time.Time
	if timeout >= 0 {
		timer := r.clock.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.Chan()
	}

	var err error
	select {
	case <-done:
	case <-timeoutCh:
		if !r.data.FirstRowReady() {
			err = fmt.Errorf("%w: job %s did not produce a row in %s", ErrAwaitTimeout, r.jobClient.JobID(), timeout)
		}
	case <-ctx.Done():
		err = fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}

	cancel()
	werr := g.Wait()
	if err != nil {
		return err
	}
	if werr != nil && r.data.FirstRowReady() {
		// worker was stopped after the row arrived
		return nil
	}
	return werr
}

func (r *TableResult) waitFirstRow(ctx context.Context) error {
	select {
	case <-r.data.Ready():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

// Print consumes the rows and prints them according to the print style.
func (r *TableResult) Print() error {
	switch r.printStyle.kind {
	case printStyleTableau:
		_, err := RenderTableau(r.output, r.schema, r.Collect(), r.printStyle.tableau)
		if err != nil {
			return fmt.Errorf("RenderTableau: %w", err)
		}
		return nil
	case printStyleRawContent:
		return r.printRawContent()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPrintStyle, r.printStyle)
	}
}

func (r *TableResult) printRawContent() error {
	it := r.Collect()
	for it.HasNext() {
		row, err := it.Next()
		if err != nil {
			return fmt.Errorf("it.Next: %w", err)
		}
		r.logger.Info(strings.Join(RowToStrings(row, NullColumn), ","))
	}

	return nil
}
