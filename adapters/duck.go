//go:build cgo && ((darwin && (amd64 || arm64)) || (linux && (amd64 || arm64 || riscv64)))

package adapters

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&Duck{}, "duck", "duckdb")
}

var _ core.Adapter = (*Duck)(nil)

type Duck struct{}

func (d *Duck) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("duckdb", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to duckdb database: %w", err)
	}

	return &duckDriver{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Driver = (*duckDriver)(nil)

type duckDriver struct {
	c *builders.Client
}

func (d *duckDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	return d.c.Query(ctx, query)
}

func (d *duckDriver) Close() {
	d.c.Close()
}
