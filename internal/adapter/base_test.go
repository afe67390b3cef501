package adapter

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/internal/testutil"
)

func mockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}, mock
}

// ---------- Exec Tests ----------

func TestExec(t *testing.T) {
	base, mock := mockAdapter(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "account" ("id" TEXT PRIMARY KEY)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := base.Exec(context.Background(), `CREATE TABLE "account" ("id" TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWithArgs(t *testing.T) {
	base, mock := mockAdapter(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "account" WHERE "id" = $1`)).
		WithArgs("001xx0001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := base.Exec(context.Background(), `DELETE FROM "account" WHERE "id" = $1`, "001xx0001")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecError(t *testing.T) {
	base, mock := mockAdapter(t)

	mock.ExpectExec("DROP TABLE").WillReturnError(assert.AnError)

	err := base.Exec(context.Background(), `DROP TABLE "missing"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute SQL")
}

func TestExecNotConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	err := base.Exec(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

// ---------- Query Tests ----------

func TestQuery(t *testing.T) {
	base, mock := mockAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT t0."id", t0."name" FROM "account" t0`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("001xx0001", "Acme").
			AddRow("001xx0002", "Globex"))

	rows, err := base.Query(context.Background(), `SELECT t0."id", t0."name" FROM "account" t0`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var id, name string
		require.NoError(t, rows.Scan(&id, &name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Acme", "Globex"}, names)
}

func TestQueryWithArgs(t *testing.T) {
	base, mock := mockAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT t0."id" FROM "account" t0 WHERE t0."name" = $1`)).
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("001xx0001"))

	rows, err := base.Query(context.Background(),
		`SELECT t0."id" FROM "account" t0 WHERE t0."name" = $1`, "Acme")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	require.NoError(t, rows.Err())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryNotConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	_, err := base.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}

// ---------- Close Tests ----------

func TestCloseWithoutConnect(t *testing.T) {
	base := &BaseSQLAdapter{}
	assert.NoError(t, base.Close())
	assert.False(t, base.IsConnected())
}

func TestClose(t *testing.T) {
	base, mock := mockAdapter(t)
	mock.ExpectClose()

	assert.True(t, base.IsConnected())
	assert.NoError(t, base.Close())
}
