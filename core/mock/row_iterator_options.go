package mock

import (
	"time"
)

type rowIteratorConfig struct {
	nextSleep     time.Duration
	firstRowDelay time.Duration
	onClose       func()
}

type RowIteratorOption func(*rowIteratorConfig)

// RowIteratorWithNextSleep makes every Next call sleep before returning a row.
func RowIteratorWithNextSleep(s time.Duration) RowIteratorOption {
	return func(c *rowIteratorConfig) {
		c.nextSleep = s
	}
}

// RowIteratorWithFirstRowDelay blocks the first probe of the iterator
// until the delay since creation has passed.
func RowIteratorWithFirstRowDelay(d time.Duration) RowIteratorOption {
	return func(c *rowIteratorConfig) {
		c.firstRowDelay = d
	}
}

func RowIteratorWithCloseCallback(fn func()) RowIteratorOption {
	return func(c *rowIteratorConfig) {
		c.onClose = fn
	}
}
