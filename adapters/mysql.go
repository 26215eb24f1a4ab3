package adapters

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	return &mySQLDriver{
		c: builders.NewClient(db,
			builders.WithCustomTypeProcessor("json", jsonProcessor),
		),
	}, nil
}

var _ core.Driver = (*mySQLDriver)(nil)

type mySQLDriver struct {
	c *builders.Client
}

func (d *mySQLDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	// empty header means no result -> get affected rows
	return d.c.QueryUntilNotEmpty(ctx, query, "select ROW_COUNT() as 'Rows Affected'")
}

func (d *mySQLDriver) Close() {
	d.c.Close()
}
