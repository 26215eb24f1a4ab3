package builders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/core"
)

// Client is the default sql client used by specific adapters.
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
	logger         *zap.Logger
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
		logger:         zap.L(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
		logger:         config.logger,
	}
}

func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:           conn,
		typeProcessors: c.typeProcessors,
		logger:         c.logger,
	}, nil
}

// Query executes a statement on a new connection. The connection is
// closed together with the result.
func (c *Client) Query(ctx context.Context, statement string) (*core.TableResult, error) {
	return c.QueryUntilNotEmpty(ctx, statement)
}

// QueryUntilNotEmpty executes statements one by one on the same connection
// and returns the first result that has columns. It's used to fall back
// to an "affected rows" statement for statements that don't return rows.
// The connection is closed together with the returned result.
func (c *Client) QueryUntilNotEmpty(ctx context.Context, statements ...string) (*core.TableResult, error) {
	if len(statements) < 1 {
		return nil, errors.New("no statements provided")
	}

	con, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}

	var result *core.TableResult
	for i, statement := range statements {
		var iter *RowIterator
		result, iter, err = con.query(ctx, statement)
		if err != nil {
			_ = con.Close()
			return nil, err
		}

		if !result.Schema().IsEmpty() || i == len(statements)-1 {
			iter.SetCallback(func() { _ = con.Close() })
			break
		}

		// statement returned no columns, try the next one
		result.Collect().Close()
	}

	return result, nil
}

func (c *Client) Close() {
	_ = c.db.Close()
}

func (c *Client) Swap(db *sql.DB) {
	_ = c.db.Close()
	c.db = db
}

// Conn is a single connection used for execution
type Conn struct {
	conn           *sql.Conn
	typeProcessors map[string]func(any) any
	logger         *zap.Logger
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// Exec executes a statement and returns a result with a single row (number of affected rows).
func (c *Conn) Exec(ctx context.Context, statement string) (*core.TableResult, error) {
	res, err := c.conn.ExecContext(ctx, statement)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	schema, err := core.NewSchema(core.Field{Name: "Rows Affected", Type: core.DataTypeBigInt})
	if err != nil {
		return nil, err
	}

	return NewTableResultBuilder().
		WithSchema(schema).
		WithResultKind(core.ResultKindSuccess).
		WithRowIterator(NewRowIteratorBuilder().WithNextFunc(NextSingle(affected)).Build()).
		WithLogger(c.logger).
		Build()
}

func (c *Conn) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a statement on the connection and returns a lazy table result.
func (c *Conn) Query(ctx context.Context, statement string) (*core.TableResult, error) {
	result, _, err := c.query(ctx, statement)
	return result, err
}

func (c *Conn) query(ctx context.Context, statement string) (*core.TableResult, *RowIterator, error) {
	dbRows, err := c.conn.QueryContext(ctx, statement)
	if err != nil {
		return nil, nil, err
	}

	columnTypes, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, nil, err
	}

	fields := make([]core.Field, len(columnTypes))
	for i, ct := range columnTypes {
		fields[i] = core.Field{
			Name: ct.Name(),
			Type: core.DataTypeFromDatabaseType(ct.DatabaseTypeName()),
		}
	}
	schema, err := core.NewSchema(fields...)
	if err != nil {
		_ = dbRows.Close()
		return nil, nil, fmt.Errorf("core.NewSchema: %w", err)
	}

	hasNextFunc := func() bool {
		if !dbRows.Next() {
			// try the next result set, if any
			if !dbRows.NextResultSet() {
				return false
			}
			return dbRows.Next()
		}
		return true
	}

	nextFunc := func() (core.Row, error) {
		values := make([]any, len(columnTypes))
		pointers := make([]any, len(columnTypes))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := dbRows.Scan(pointers...); err != nil {
			return core.Row{}, err
		}

		for i := range values {
			values[i] = c.getTypeProcessor(columnTypes[i].DatabaseTypeName())(values[i])
		}

		return core.NewRow(values...), nil
	}

	iter := NewRowIteratorBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	kind := core.ResultKindSuccessWithContent
	if schema.IsEmpty() {
		kind = core.ResultKindSuccess
	}

	result, err := NewTableResultBuilder().
		WithSchema(schema).
		WithResultKind(kind).
		WithRowIterator(iter).
		WithLogger(c.logger).
		Build()
	if err != nil {
		_ = dbRows.Close()
		return nil, nil, err
	}

	return result, iter, nil
}
