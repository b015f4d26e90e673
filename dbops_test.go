package sqlintel

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		mock.ExpectQuery("select id, name from emp").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), []byte("KING")).
				AddRow(int64(2), nil))

		result, err := Run(ctx, db, "select id, name from emp")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, result.Columns)
		assert.Equal(t, [][]any{{int64(1), "KING"}, {int64(2), nil}}, result.Rows)
	})

	t.Run("no rows", func(t *testing.T) {
		mock.ExpectQuery("delete from emp").WillReturnRows(sqlmock.NewRows(nil))

		result, err := Run(ctx, db, "delete from emp")
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
	})

	t.Run("mssql error", func(t *testing.T) {
		sqlerr := mssql.Error{
			Number:  208,
			Message: "Invalid object name 'nope'.",
			LineNo:  1,
		}
		sqlerr.All = []mssql.Error{sqlerr}
		mock.ExpectQuery("select * from nope").WillReturnError(sqlerr)

		_, err := Run(ctx, db, "select * from nope")
		var stmterr MSSQLStatementError
		require.True(t, errors.As(err, &stmterr))
		assert.Equal(t, "select * from nope", stmterr.Statement)
		assert.Equal(t, "\n\nline 1 (statement): Invalid object name 'nope'.", err.Error())
	})

	t.Run("other error", func(t *testing.T) {
		mock.ExpectQuery("select 1").WillReturnError(assert.AnError)

		_, err := Run(ctx, db, "select 1")
		assert.Equal(t, assert.AnError, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
