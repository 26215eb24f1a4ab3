//go:build integration

package integration

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap/zaptest"

	"github.com/zhengtingxue/dinky/core"
	th "github.com/zhengtingxue/dinky/tests/testhelpers"
)

// MySQLTestSuite is the test suite for the mysql adapter.
type MySQLTestSuite struct {
	tsuite.Suite
	ctr *th.MySQLContainer
	ctx context.Context
	d   *core.Connection
}

func TestMySQLTestSuite(t *testing.T) {
	tsuite.Run(t, new(MySQLTestSuite))
}

func (suite *MySQLTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	suite.T().Setenv(core.ArchiveDirEnv, suite.T().TempDir())

	ctr, err := th.NewMySQLContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}
	suite.ctr = ctr

	d, err := ctr.NewConnection(zaptest.NewLogger(suite.T()))
	require.NoError(suite.T(), err)
	suite.d = d
}

func (suite *MySQLTestSuite) TearDownSuite() {
	suite.d.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *MySQLTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	_, _, _, err := th.GetResult(t, suite.d, "invalid sql")
	assert.ErrorContains(t, err, "You have an error in your SQL syntax")
}

func (suite *MySQLTestSuite) TestShouldCancelQuery() {
	t := suite.T()
	want := []core.CallState{core.CallStateExecuting, core.CallStateCanceled}

	got, err := th.GetResultWithCancel(t, suite.d, "SELECT SLEEP(1)")
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func (suite *MySQLTestSuite) TestShouldReturnRows() {
	t := suite.T()

	gotRows, gotCols, _, err := th.GetResult(t, suite.d, "SELECT username, email FROM test_table ORDER BY id")
	assert.NoError(t, err)
	assert.Equal(t, []string{"username", "email"}, gotCols)
	assert.Equal(t, []core.Row{
		core.NewRow("john_doe", "john@example.com"),
		core.NewRow("jane_smith", nil),
		core.NewRow("bob_wilson", "bob@example.com"),
	}, gotRows)
}

func (suite *MySQLTestSuite) TestShouldFallBackToAffectedRows() {
	t := suite.T()

	gotRows, gotCols, _, err := th.GetResult(t, suite.d, "UPDATE test_table SET email = 'x' WHERE id = 2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Rows Affected"}, gotCols)
	assert.Len(t, gotRows, 1)
}
