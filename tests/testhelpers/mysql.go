//go:build integration

package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"go.uber.org/zap"

	"github.com/zhengtingxue/dinky/adapters"
	"github.com/zhengtingxue/dinky/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
}

// NewMySQLContainer starts a seeded mysql container.
func NewMySQLContainer(ctx context.Context) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("dev"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
	}, nil
}

func (m *MySQLContainer) NewConnection(logger *zap.Logger) (*core.Connection, error) {
	return adapters.NewConnection(&core.ConnectionParams{
		Name: "test-mysql",
		Type: "mysql",
		URL:  m.ConnURL,
	}, logger)
}
