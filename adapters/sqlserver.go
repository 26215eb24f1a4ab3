package adapters

import (
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"
	nurl "net/url"

	"github.com/google/uuid"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")

	gob.Register(uuid.UUID{})
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w: ", err)
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlserver database: %w", err)
	}

	return &sqlServerDriver{
		c: builders.NewClient(db,
			builders.WithCustomTypeProcessor("uniqueidentifier", uniqueIdentifierProcessor),
		),
	}, nil
}

// uniqueIdentifierProcessor decodes raw uniqueidentifier bytes to an uuid.
func uniqueIdentifierProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	id, err := uuid.FromBytes(b)
	if err != nil {
		return a
	}

	return id
}

var _ core.Driver = (*sqlServerDriver)(nil)

type sqlServerDriver struct {
	c *builders.Client
}

func (d *sqlServerDriver) Query(ctx context.Context, query string) (*core.TableResult, error) {
	// run query, fallback to affected rows
	return d.c.QueryUntilNotEmpty(ctx, query, "select @@ROWCOUNT as 'Rows Affected'")
}

func (d *sqlServerDriver) Close() {
	d.c.Close()
}
