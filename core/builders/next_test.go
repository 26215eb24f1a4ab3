package builders_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

func testNextYield(t *testing.T, sleep bool) {
	r := require.New(t)

	rows := [][]any{{"first", "row"}, {"second"}, {"third"}, {"fourth"}, {"fifth"}, {"and", "last", "row"}}

	next, hasNext := builders.NextYield(func(yield func(...any)) error {
		for i, row := range rows {
			if sleep && (i == 2 || i == 4) {
				time.Sleep(100 * time.Millisecond)
			}
			yield(row...)
		}

		return nil
	})

	i := 0
	for hasNext() {
		row, err := next()
		r.NoError(err)

		r.Equal(core.NewRow(rows[i]...), row)

		i++
	}

	r.Equal(len(rows), i)
}

func TestNextYield_Success(t *testing.T) {
	// test with random sleeping
	testNextYield(t, true)

	for i := 0; i < 100; i++ {
		testNextYield(t, false)
	}
}

func TestNextYield_Error(t *testing.T) {
	r := require.New(t)
	expectedError := errors.New("expected error")

	next, hasNext := builders.NextYield(func(yield func(...any)) error {
		return expectedError
	})

	r.True(hasNext())
	_, err := next()
	r.ErrorIs(err, expectedError)

	r.False(hasNext())
}

func TestNextYield_NoRows(t *testing.T) {
	_, hasNext := builders.NextYield(func(yield func(...any)) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	require.False(t, hasNext())
}

func TestNextYield_SingleRow(t *testing.T) {
	r := require.New(t)
	next, hasNext := builders.NextYield(func(yield func(...any)) error {
		yield(1)
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	r.True(hasNext())
	// probing again doesn't consume the row
	r.True(hasNext())

	row, err := next()
	r.NoError(err)
	r.Equal(1, row.Arity())
	r.Equal(1, row.Values[0])

	r.False(hasNext())
}

func TestNextSlice(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSlice([]string{"a", "b"}, func(s string) core.Row {
		return core.NewRow(s)
	})

	var got []any
	for hasNext() {
		row, err := next()
		r.NoError(err)
		got = append(got, row.Values...)
	}
	r.Equal([]any{"a", "b"}, got)

	_, err := next()
	r.ErrorIs(err, core.ErrNoNextRow)
}

func TestNextSingleAndNil(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSingle(int64(3))
	r.True(hasNext())
	row, err := next()
	r.NoError(err)
	r.Equal(core.NewRow(int64(3)), row)
	r.False(hasNext())

	next, hasNext = builders.NextNil()
	r.False(hasNext())
	_, err = next()
	r.ErrorIs(err, core.ErrNoNextRow)
}
