package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/databricks/databricks-sql-go"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&Databricks{}, "databricks")
}

var _ core.Adapter = (*Databricks)(nil)

type Databricks struct{}

// Connect parses the connectionURL and returns a new core.Driver
// connectionURL is a DSN structure in the format of:
//
// token:[my_token]@[hostname]:[port]/[endpoint http path]?param=value
//
// requires the 'catalog' parameter to be set.
//
// see https://github.com/databricks/databricks-sql-go for more information.
func (d *Databricks) Connect(connectionURL string) (core.Driver, error) {
	parsedURL, err := url.Parse(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: ", err)
	}

	if parsedURL.Query().Get("catalog") == "" {
		return nil, errors.New("required parameter '?catalog=<catalog>' is missing")
	}

	db, err := sql.Open("databricks", parsedURL.String())
	if err != nil {
		return nil, fmt.Errorf("invalid databricks connection string: %w", err)
	}

	return &databricksDriver{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Driver = (*databricksDriver)(nil)

type databricksDriver struct {
	c *builders.Client
}

func (d *databricksDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	return d.c.Query(ctx, query)
}

func (d *databricksDriver) Close() {
	d.c.Close()
}
