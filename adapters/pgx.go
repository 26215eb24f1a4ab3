package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

// Register client
func init() {
	_ = register(&PGX{}, "pgx")
}

var _ core.Adapter = (*PGX)(nil)

// PGX connects to postgres with the pgx driver. Statements behave the
// same as with the "postgres" adapter.
type PGX struct{}

func (p *PGX) Connect(url string) (core.Driver, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	return &postgresDriver{
		c: builders.NewClient(db,
			builders.WithCustomTypeProcessor("json", jsonProcessor),
			builders.WithCustomTypeProcessor("jsonb", jsonProcessor),
		),
	}, nil
}
