package builders

import (
	"github.com/zhengtingxue/dinky/core"
)

// NextSingle creates next and hasNext functions from a provided single value
func NextSingle(value any) (func() (core.Row, error), func() bool) {
	has := true

	next := func() (core.Row, error) {
		if !has {
			return core.Row{}, core.ErrNoNextRow
		}
		has = false
		return core.NewRow(value), nil
	}

	hasNext := func() bool {
		return has
	}

	return next, hasNext
}

// NextSlice creates next and hasNext functions from provided values.
// preprocess converts a single element of the slice to a row.
func NextSlice[T any](values []T, preprocess func(T) core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return core.Row{}, core.ErrNoNextRow
		}

		row := preprocess(values[index])
		index++
		return row, nil
	}

	return next, hasNext
}

// NextNil creates next and hasNext functions that don't return anything (no rows)
func NextNil() (func() (core.Row, error), func() bool) {
	hasNext := func() bool {
		return false
	}

	next := func() (core.Row, error) {
		return core.Row{}, core.ErrNoNextRow
	}

	return next, hasNext
}

// NextYield creates next and hasNext functions from a producer function.
// The producer runs in its own goroutine and yields rows one by one.
// hasNext blocks until the producer yields a row or returns.
func NextYield(fn func(yield func(...any)) error) (func() (core.Row, error), func() bool) {
	ch := make(chan core.Row, 10)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		err := fn(func(v ...any) {
			ch <- core.NewRow(v...)
		})
		if err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	var (
		buffered *core.Row
		lastErr  error
	)

	hasNext := func() bool {
		if buffered != nil {
			return true
		}
		if lastErr != nil {
			// report the error once through next
			return true
		}

		row, ok := <-ch
		if ok {
			buffered = &row
			return true
		}

		if err := <-errCh; err != nil {
			lastErr = err
			return true
		}
		return false
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return core.Row{}, core.ErrNoNextRow
		}

		if buffered != nil {
			row := *buffered
			buffered = nil
			return row, nil
		}

		// errCh is closed after the error, so it's reported only once
		err := lastErr
		lastErr = nil
		return core.Row{}, err
	}

	return next, hasNext
}
