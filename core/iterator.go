package core

import (
	"sync"
	"sync/atomic"
)

// TrackedIterator wraps a RowIterator and records whether the first row is
// ready. The first row is ready once the underlying iterator was probed
// (regardless of the outcome) or a row was returned from Next.
//
// HasNext is idempotent: the probe result is cached until Next consumes it.
type TrackedIterator struct {
	mu      sync.Mutex
	iter    RowIterator
	probed  bool
	hasNext bool
	closed  bool

	prefetchOnce  sync.Once
	readyOnce     sync.Once
	ready         chan struct{}
	firstRowReady atomic.Bool
}

func newTrackedIterator(iter RowIterator) *TrackedIterator {
	return &TrackedIterator{
		iter:  iter,
		ready: make(chan struct{}),
	}
}

func (it *TrackedIterator) markReady() {
	it.readyOnce.Do(func() {
		it.firstRowReady.Store(true)
		close(it.ready)
	})
}

// probe must be called with the mutex held.
func (it *TrackedIterator) probe() bool {
	if it.closed {
		return false
	}
	if !it.probed {
		it.hasNext = it.iter.HasNext()
		it.probed = true
		// an empty source resolves readiness too
		it.markReady()
	}
	return it.hasNext
}

func (it *TrackedIterator) HasNext() bool {
	it.mu.Lock()
	defer it.mu.Unlock()

	return it.probe()
}

func (it *TrackedIterator) Next() (Row, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !it.probe() {
		return Row{}, ErrNoNextRow
	}
	it.probed = false

	row, err := it.iter.Next()
	if err != nil {
		return Row{}, err
	}
	it.markReady()

	return row, nil
}

func (it *TrackedIterator) Close() {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed {
		return
	}
	it.closed = true
	it.markReady()
	it.iter.Close()
}

// FirstRowReady reports whether the first row is ready. It never blocks.
func (it *TrackedIterator) FirstRowReady() bool {
	return it.firstRowReady.Load()
}

// Ready returns a channel that is closed once the first row is ready.
func (it *TrackedIterator) Ready() <-chan struct{} {
	return it.ready
}

// Prefetch starts a single background probe of the source, unless the
// first row is already ready. The probe result is cached for consumers.
// Repeated calls don't start another probe.
func (it *TrackedIterator) Prefetch() {
	if it.FirstRowReady() {
		return
	}
	it.prefetchOnce.Do(func() {
		go it.prefetch()
	})
}

func (it *TrackedIterator) prefetch() {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.probe()
}
