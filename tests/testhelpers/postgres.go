//go:build integration

package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/adapters"
	"github.com/zhengtingxue/dinky/core"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
}

// NewPostgresContainer starts a seeded postgres container.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase("dev"),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
	}, nil
}

// NewConnection connects to the container with the adapter of the provided type.
func (p *PostgresContainer) NewConnection(typ string, logger *zap.Logger) (*core.Connection, error) {
	return adapters.NewConnection(&core.ConnectionParams{
		Name: "test-" + typ,
		Type: typ,
		URL:  p.ConnURL,
	}, logger)
}
