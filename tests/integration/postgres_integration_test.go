//go:build integration

package integration

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap/zaptest"

	"github.com/zhengtingxue/dinky/core"
	th "github.com/zhengtingxue/dinky/tests/testhelpers"
)

// PostgresTestSuite runs the same statements through the "postgres" and
// "pgx" adapters.
type PostgresTestSuite struct {
	tsuite.Suite
	ctr *th.PostgresContainer
	ctx context.Context
	typ string
	d   *core.Connection
}

// TestPostgresTestSuite is the entrypoint for go test.
//
// testify/suite can't handle parallel tests, see
// https://github.com/stretchr/testify/issues/934
func TestPostgresTestSuite(t *testing.T) {
	ctx := context.Background()
	ctr, err := th.NewPostgresContainer(ctx)
	if err != nil {
		log.Fatal(err)
	}
	tc.CleanupContainer(t, ctr)

	for _, typ := range []string{"postgres", "pgx"} {
		t.Run(typ, func(t *testing.T) {
			tsuite.Run(t, &PostgresTestSuite{ctr: ctr, ctx: ctx, typ: typ})
		})
	}
}

func (suite *PostgresTestSuite) SetupSuite() {
	suite.T().Setenv(core.ArchiveDirEnv, suite.T().TempDir())

	d, err := suite.ctr.NewConnection(suite.typ, zaptest.NewLogger(suite.T()))
	require.NoError(suite.T(), err)
	suite.d = d
}

func (suite *PostgresTestSuite) TearDownSuite() {
	suite.d.Close()
}

func (suite *PostgresTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	_, _, states, err := th.GetResult(t, suite.d, "invalid sql")
	assert.ErrorContains(t, err, "syntax error")
	assert.Equal(t, []core.CallState{core.CallStateExecuting, core.CallStateExecutingFailed}, states)
}

func (suite *PostgresTestSuite) TestShouldCancelQuery() {
	t := suite.T()
	want := []core.CallState{core.CallStateExecuting, core.CallStateCanceled}

	got, err := th.GetResultWithCancel(t, suite.d, "SELECT pg_sleep(1)")
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func (suite *PostgresTestSuite) TestShouldReturnRows() {
	t := suite.T()

	wantStates := []core.CallState{
		core.CallStateExecuting, core.CallStateAwaiting, core.CallStateRetrieving, core.CallStateArchived,
	}
	wantRows := []core.Row{
		core.NewRow(int64(1), "john_doe", "john@example.com"),
		core.NewRow(int64(2), "jane_smith", nil),
		core.NewRow(int64(3), "bob_wilson", "bob@example.com"),
	}

	gotRows, gotCols, gotStates, err := th.GetResult(t, suite.d, "SELECT id, username, email FROM test_table ORDER BY id")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "username", "email"}, gotCols)
	assert.Equal(t, wantStates, gotStates)
	assert.Equal(t, wantRows, gotRows)
}

func (suite *PostgresTestSuite) TestShouldReturnAffectedRows() {
	t := suite.T()

	gotRows, gotCols, _, err := th.GetResult(t, suite.d, "UPDATE test_table SET email = email WHERE id < 3")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Rows Affected"}, gotCols)
	assert.Equal(t, []core.Row{core.NewRow(int64(2))}, gotRows)
}

func (suite *PostgresTestSuite) TestShouldPrintResult() {
	t := suite.T()
	r := require.New(t)

	style, err := core.TableauStyle(8, "-", true, false)
	r.NoError(err)

	result, err := suite.d.Query(suite.ctx, "SELECT username, email FROM test_table ORDER BY id")
	r.NoError(err)

	out := new(testWriter)
	result = result.Restyled(style, out, nil)
	r.NoError(result.AwaitTimeout(suite.ctx, 5*time.Second))
	r.NoError(result.Print())

	r.Contains(out.String(), "john_doe")
	r.Contains(out.String(), "jane_...")
	r.Contains(out.String(), "3 rows in set")
}
