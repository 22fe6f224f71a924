package repositories

import (
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

// exact matches the whole statement, ignoring whitespace differences.
func exact(sql string) string {
	return "^" + regexp.QuoteMeta(sql) + "$"
}

func ptr[T any](v T) *T {
	return &v
}

var (
	errUnique     = &pgconn.PgError{Code: "23505", ConstraintName: "college_name_key"}
	errForeignKey = &pgconn.PgError{Code: "23503"}
	errBroken     = &pgconn.PgError{Code: "08006", Message: "connection failure"}
)
