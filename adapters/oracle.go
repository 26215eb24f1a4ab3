package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&Oracle{}, "oracle")
}

var _ core.Adapter = (*Oracle)(nil)

type Oracle struct{}

func (o *Oracle) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("oracle", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to oracle database: %w", err)
	}

	return &oracleDriver{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Driver = (*oracleDriver)(nil)

type oracleDriver struct {
	c *builders.Client
}

func (d *oracleDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	// go-ora doesn't accept the statement terminator
	query = strings.TrimSuffix(strings.TrimSpace(query), ";")

	if isModification(query) {
		return execOnce(ctx, d.c, query)
	}

	return d.c.Query(ctx, query)
}

func (d *oracleDriver) Close() {
	d.c.Close()
}
