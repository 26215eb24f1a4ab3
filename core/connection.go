package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	// Adapter connects to a data source via url.
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Driver executes statements on a connected data source.
	Driver interface {
		Query(ctx context.Context, statement string) (*TableResult, error)
		Close()
	}
)

type ConnectionID string

// queryHandle is attached to results whose driver doesn't report a job.
type queryHandle string

func (h queryHandle) JobID() string {
	return string(h)
}

// withJob makes sure the result carries a job handle, so awaiting it
// waits for the first row.
func withJob(result *TableResult) *TableResult {
	if _, ok := result.JobClient(); ok {
		return result
	}
	return result.withJobClient(queryHandle(uuid.New().String()))
}

// Connection is a named data source that statements are executed on.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver Driver
	logger *zap.Logger
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

// NewConnection expands the params and connects to the data source with the adapter.
func NewConnection(params *ConnectionParams, adapter Adapter, logger *zap.Logger) (*Connection, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}
	if logger == nil {
		logger = zap.L()
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	c := &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver: driver,
		logger: logger.With(
			zap.String("connection_id", string(expanded.ID)),
			zap.String("connection_type", expanded.Type),
		),
	}

	return c, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

func (c *Connection) GetURL() string {
	return c.params.URL
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

// Execute runs the statement asynchronously. onEvent is triggered on
// every state change of the returned call.
func (c *Connection) Execute(statement string, onEvent func(CallState, *Call)) *Call {
	exec := func(ctx context.Context) (*TableResult, error) {
		result, err := c.driver.Query(ctx, statement)
		if err != nil {
			return nil, err
		}
		return withJob(result), nil
	}

	return newCallFromExecutor(exec, statement, c.logger, onEvent)
}

// Query runs the statement synchronously and returns the lazy result.
// Results without a job handle get a generated one.
func (c *Connection) Query(ctx context.Context, statement string) (*TableResult, error) {
	c.logger.Debug("executing statement", zap.String("statement", statement))

	result, err := c.driver.Query(ctx, statement)
	if err != nil {
		return nil, fmt.Errorf("c.driver.Query: %w", err)
	}
	return withJob(result), nil
}

func (c *Connection) Close() {
	c.driver.Close()
}
