package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	CallID string

	// Call is a single asynchronous execution of a statement.
	Call struct {
		id        CallID
		statement string
		jobID     string
		state     CallState
		timeTaken time.Duration
		timestamp time.Time

		result     *Result
		archive    *archive
		cancelFunc func()
		logger     *zap.Logger

		// any error that might occur during execution
		err  error
		done chan struct{}
		mu   sync.RWMutex
	}
)

// callPersistent is used for marshaling and unmarshaling the call
type callPersistent struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	JobID     string `json:"job_id,omitempty"`
	State     string `json:"state"`
	TimeTaken int64  `json:"time_taken_us"`
	Timestamp int64  `json:"timestamp_us"`
	Error     string `json:"error,omitempty"`
}

func (c *Call) toPersistent() *callPersistent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	errMsg := ""
	if c.err != nil {
		errMsg = c.err.Error()
	}

	return &callPersistent{
		ID:        string(c.id),
		Statement: c.statement,
		JobID:     c.jobID,
		State:     c.state.String(),
		TimeTaken: c.timeTaken.Microseconds(),
		Timestamp: c.timestamp.UnixMicro(),
		Error:     errMsg,
	}
}

func (c *Call) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toPersistent())
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var alias callPersistent

	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	done := make(chan struct{})
	close(done)

	archive := newArchive(CallID(alias.ID))
	state := CallStateFromString(alias.State)
	if state == CallStateArchived && archive.isEmpty() {
		state = CallStateUnknown
	}

	var callErr error
	if alias.Error != "" {
		callErr = errors.New(alias.Error)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = CallID(alias.ID)
	c.statement = alias.Statement
	c.jobID = alias.JobID
	c.state = state
	c.timeTaken = time.Duration(alias.TimeTaken) * time.Microsecond
	c.timestamp = time.UnixMicro(alias.Timestamp)
	c.err = callErr
	c.result = new(Result)
	c.archive = archive
	c.logger = zap.L()
	c.done = done

	return nil
}

func newCallFromExecutor(executor func(context.Context) (*TableResult, error), statement string, logger *zap.Logger, onEvent func(CallState, *Call)) *Call {
	id := CallID(uuid.New().String())
	c := &Call{
		id:        id,
		statement: statement,
		state:     CallStateUnknown,
		logger:    logger.With(zap.String("call_id", string(id))),

		result:  new(Result),
		archive: newArchive(id),

		done: make(chan struct{}),
	}

	eventsCh := make(chan CallState, 10)

	ctx, cancel := context.WithCancel(context.Background())
	c.timestamp = time.Now()
	c.cancelFunc = cancel

	// event function handler, done is closed once every event was delivered
	go func() {
		defer close(c.done)

		for state := range eventsCh {
			c.mu.Lock()
			if c.state.IsFinal() {
				c.mu.Unlock()
				continue
			}
			c.state = state
			c.mu.Unlock()

			c.logger.Debug("call state changed", zap.Stringer("state", state))

			// trigger event callback
			if onEvent != nil {
				onEvent(state, c)
			}
		}
	}()

	// finish records the outcome of the call
	finish := func(state CallState, err error) {
		c.mu.Lock()
		c.timeTaken = time.Since(c.timestamp)
		if ctx.Err() != nil {
			state = CallStateCanceled
			err = ctx.Err()
		}
		c.err = err
		c.mu.Unlock()

		if err != nil {
			c.logger.Warn("call finished with error", zap.Stringer("state", state), zap.Error(err))
		}

		eventsCh <- state
	}

	go func() {
		defer close(eventsCh)
		defer cancel()

		eventsCh <- CallStateExecuting
		tr, err := executor(ctx)
		if err != nil {
			finish(CallStateExecutingFailed, err)
			return
		}

		if job, ok := tr.JobClient(); ok {
			c.mu.Lock()
			c.jobID = job.JobID()
			c.mu.Unlock()
		}

		// wait for the job to produce its first row
		eventsCh <- CallStateAwaiting
		err = tr.Await(ctx)
		if err != nil {
			tr.Collect().Close()
			finish(CallStateExecutingFailed, err)
			return
		}

		err = c.result.SetTableResult(tr, func() { eventsCh <- CallStateRetrieving })
		if err != nil {
			finish(CallStateRetrievingFailed, err)
			return
		}

		err = c.archive.setResult(c.result)
		if err != nil {
			finish(CallStateArchiveFailed, err)
			return
		}

		finish(CallStateArchived, nil)
	}()

	return c
}

func (c *Call) GetID() CallID {
	return c.id
}

func (c *Call) GetStatement() string {
	return c.statement
}

// GetJobID returns the id of the job that produced the result, if any.
func (c *Call) GetJobID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jobID
}

func (c *Call) GetState() CallState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Call) GetTimeTaken() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeTaken
}

func (c *Call) GetTimestamp() time.Time {
	return c.timestamp
}

func (c *Call) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Done returns a non-buffered channel that is closed when
// call finishes and all of its events were delivered.
func (c *Call) Done() chan struct{} {
	return c.done
}

func (c *Call) Cancel() {
	switch c.GetState() {
	case CallStateUnknown, CallStateExecuting, CallStateAwaiting:
	default:
		return
	}
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

func (c *Call) GetResult() (*Result, error) {
	if c.result.IsEmpty() {
		tr, err := c.archive.getResult()
		if err != nil {
			return nil, fmt.Errorf("c.archive.getResult: %w", err)
		}
		err = c.result.SetTableResult(tr, nil)
		if err != nil {
			return nil, fmt.Errorf("c.result.SetTableResult: %w", err)
		}
	}

	return c.result, nil
}
