package builders_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/zhengtingxue/dinky/core"
	"github.com/zhengtingxue/dinky/core/builders"
)

func setupClient(t *testing.T, opts ...builders.ClientOption) (*builders.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return builders.NewClient(db, opts...), mock
}

func drain(t *testing.T, result *core.TableResult) []core.Row {
	t.Helper()

	var rows []core.Row
	it := result.Collect()
	defer it.Close()
	for it.HasNext() {
		row, err := it.Next()
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func TestClient_Query(t *testing.T) {
	r := require.New(t)

	client, mock := setupClient(t)

	mock.ExpectQuery("SELECT id, name FROM users").WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("id").OfType("BIGINT", int64(0)),
			sqlmock.NewColumn("name").OfType("VARCHAR", ""),
		).
			AddRow(int64(1), []byte("admin")).
			AddRow(int64(2), nil),
	)

	result, err := client.Query(context.Background(), "SELECT id, name FROM users")
	r.NoError(err)

	r.Equal(core.ResultKindSuccessWithContent, result.Kind())
	r.Equal([]core.DataType{core.DataTypeBigInt, core.DataTypeString}, result.Schema().FieldTypes())

	_, hasJob := result.JobClient()
	r.False(hasJob)

	rows := drain(t, result)
	r.Equal([]core.Row{
		core.NewRow(int64(1), "admin"),
		core.NewRow(int64(2), nil),
	}, rows)

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_QueryError(t *testing.T) {
	r := require.New(t)

	client, mock := setupClient(t)

	mock.ExpectQuery("INVALID").WillReturnError(sql.ErrConnDone)

	result, err := client.Query(context.Background(), "INVALID")
	r.ErrorIs(err, sql.ErrConnDone)
	r.Nil(result)
}

func TestClient_QueryUntilNotEmpty(t *testing.T) {
	r := require.New(t)

	client, mock := setupClient(t)

	mock.ExpectQuery("DELETE FROM users").WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectQuery("select changes() as 'Rows Affected'").WillReturnRows(
		sqlmock.NewRows([]string{"Rows Affected"}).AddRow(int64(4)),
	)

	result, err := client.QueryUntilNotEmpty(context.Background(),
		"DELETE FROM users",
		"select changes() as 'Rows Affected'",
	)
	r.NoError(err)
	r.Equal([]string{"Rows Affected"}, result.Schema().FieldNames())
	r.Equal([]core.Row{core.NewRow(int64(4))}, drain(t, result))

	r.NoError(mock.ExpectationsWereMet())
}

func TestClient_CustomTypeProcessor(t *testing.T) {
	r := require.New(t)

	client, mock := setupClient(t, builders.WithCustomTypeProcessor("UUID", func(v any) any {
		return "uuid:" + string(v.([]byte))
	}))

	mock.ExpectQuery("SELECT id FROM jobs").WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("id").OfType("uuid", []byte{}),
		).AddRow([]byte("42")),
	)

	result, err := client.Query(context.Background(), "SELECT id FROM jobs")
	r.NoError(err)
	r.Equal([]core.Row{core.NewRow("uuid:42")}, drain(t, result))
}

func TestConn_Exec(t *testing.T) {
	r := require.New(t)

	client, mock := setupClient(t)

	mock.ExpectExec("UPDATE users SET enabled = 1").WillReturnResult(sqlmock.NewResult(0, 3))

	conn, err := client.Conn(context.Background())
	r.NoError(err)
	defer conn.Close()

	result, err := conn.Exec(context.Background(), "UPDATE users SET enabled = 1")
	r.NoError(err)
	r.Equal(core.ResultKindSuccess, result.Kind())
	r.Equal([]core.Row{core.NewRow(int64(3))}, drain(t, result))
}
