package adapters

import (
	"context"
	"database/sql"
	"fmt"
	nurl "net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

func init() {
	_ = register(&Redshift{}, "redshift")
}

var _ core.Adapter = (*Redshift)(nil)

// Redshift speaks the postgres wire protocol, so it shares the postgres
// driver. Connect pings eagerly since clusters are often paused.
type Redshift struct{}

func (r *Redshift) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to redshift: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to ping redshift: %w", err)
	}

	return &postgresDriver{
		c: builders.NewClient(db),
	}, nil
}
