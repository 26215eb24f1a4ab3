package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

// drainTimeout bounds how long range reads wait for rows that are still being fetched.
const drainTimeout = 5 * time.Minute

// Result is the cached form of a TableResult. It allows reading rows in
// pages while the table result is still being drained.
type Result struct {
	schema Schema
	kind   ResultKind
	rows   []Row

	isDrained  bool
	isFilled   bool
	writeMutex sync.Mutex
	readMutex  sync.RWMutex
}

// SetTableResult drains the table result into the cache.
// This can be done only once per fill!
func (cr *Result) SetTableResult(tr *TableResult, onFillStart func()) error {
	cr.writeMutex.Lock()
	defer cr.writeMutex.Unlock()

	iter := tr.Collect()
	defer iter.Close()

	cr.readMutex.Lock()
	cr.schema = tr.Schema()
	cr.kind = tr.Kind()
	cr.rows = make([]Row, 0)
	cr.isDrained = false
	cr.isFilled = true
	cr.readMutex.Unlock()

	defer func() {
		cr.readMutex.Lock()
		cr.isDrained = true
		cr.readMutex.Unlock()
	}()

	if onFillStart != nil {
		onFillStart()
	}

	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			cr.readMutex.Lock()
			cr.isFilled = false
			cr.readMutex.Unlock()
			return err
		}

		cr.readMutex.Lock()
		cr.rows = append(cr.rows, row)
		cr.readMutex.Unlock()
	}

	return nil
}

func (cr *Result) Wipe() {
	cr.writeMutex.Lock()
	defer cr.writeMutex.Unlock()
	cr.readMutex.Lock()
	defer cr.readMutex.Unlock()

	cr.schema = Schema{}
	cr.kind = ResultKindUnknown
	cr.rows = []Row{}
	cr.isDrained = false
	cr.isFilled = false
}

// Format formats rows in range [from, to) with the formatter.
// ChunkStart of opts is set from the adjusted range.
func (cr *Result) Format(formatter Formatter, from, to int, opts FormatterOptions) ([]byte, error) {
	rows, fromAdjusted, _, err := cr.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("cr.getRows: %w", err)
	}

	opts.ChunkStart = fromAdjusted

	f, err := formatter.Format(cr.Schema(), rows, &opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

func (cr *Result) Len() int {
	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	return len(cr.rows)
}

func (cr *Result) IsEmpty() bool {
	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	return !cr.isFilled
}

func (cr *Result) Schema() Schema {
	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	return cr.schema
}

func (cr *Result) Kind() ResultKind {
	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	return cr.kind
}

func (cr *Result) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := cr.getRows(from, to)
	return rows, err
}

// available reports whether the range up to "to" can be served.
func (cr *Result) available(to int) bool {
	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	return cr.isDrained || (to >= 0 && to <= len(cr.rows))
}

// getRows returns the row range and adjusted from-to values.
// Negative indexes count from the end: -1 is the end of the result.
func (cr *Result) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	// wait for drain, available index or timeout
	for !cr.available(to) {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, fmt.Errorf("cache flushing timeout exceeded: %w", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cr.readMutex.RLock()
	defer cr.readMutex.RUnlock()

	length := len(cr.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return cr.rows[from:to], from, to, nil
}
