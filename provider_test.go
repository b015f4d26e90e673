package sqlintel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SQLProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewSQLProvider(db), mock
}

func TestLoadSnapshot(t *testing.T) {
	provider, mock := newMock(t)
	ctx := context.Background()

	// sqlmock is neither go-mssqldb nor pgx
	assert.Equal(t, OracleDialect, provider.Dialect)

	mock.ExpectQuery(OracleDialect.CurrentUserQuery).
		WillReturnRows(sqlmock.NewRows([]string{"user"}).AddRow("SCOTT"))
	mock.ExpectQuery(OracleDialect.TableColumnsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"owner", "table_name", "column_name"}).
			AddRow("SCOTT", "DEPT", "DEPTNO").
			AddRow("SCOTT", "EMP", "EMPNO").
			AddRow("SCOTT", "EMP", "ENAME").
			AddRow("SYS", "DUAL", "DUMMY"))
	mock.ExpectQuery(OracleDialect.SynonymsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"synonym_name", "table_owner", "table_name"}).
			AddRow("DUAL", "SYS", "DUAL"))

	s, err := LoadSnapshot(ctx, provider, logrus.StandardLogger())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "SCOTT", s.CurrentUser)
	assert.Equal(t, []Table{
		{TableKey{"SCOTT", "DEPT"}, []string{"DEPTNO"}},
		{TableKey{"SCOTT", "EMP"}, []string{"EMPNO", "ENAME"}},
		{TableKey{"SYS", "DUAL"}, []string{"DUMMY"}},
	}, s.Tables)
	assert.Equal(t, []Synonym{{"DUAL", "SYS", "DUAL"}}, s.Synonyms)
	assert.Equal(t, []string{"DUMMY"}, s.SuggestColumns("dual", ""))
}

func TestLoadSnapshot_NoSynonymQuery(t *testing.T) {
	provider, mock := newMock(t)
	provider.Dialect = PostgresDialect

	mock.ExpectQuery(PostgresDialect.CurrentUserQuery).
		WillReturnRows(sqlmock.NewRows([]string{"current_schema"}).AddRow("PUBLIC"))
	mock.ExpectQuery(PostgresDialect.TableColumnsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"table_schema", "table_name", "column_name"}).
			AddRow("PUBLIC", "ORDERS", "ID"))

	s, err := LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, s.Synonyms)
	assert.Equal(t, []string{"ORDERS"}, s.SuggestTables("o"))
}

func TestLoadSnapshot_Errors(t *testing.T) {
	t.Run("current user", func(t *testing.T) {
		provider, mock := newMock(t)
		mock.ExpectQuery(OracleDialect.CurrentUserQuery).WillReturnError(assert.AnError)

		_, err := LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
		var merr MetadataError
		require.True(t, errors.As(err, &merr))
		assert.Equal(t, "current user", merr.Query)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("table columns", func(t *testing.T) {
		provider, mock := newMock(t)
		mock.ExpectQuery(OracleDialect.CurrentUserQuery).
			WillReturnRows(sqlmock.NewRows([]string{"user"}).AddRow("SCOTT"))
		mock.ExpectQuery(OracleDialect.TableColumnsQuery).WillReturnError(assert.AnError)

		_, err := LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
		var merr MetadataError
		require.True(t, errors.As(err, &merr))
		assert.Equal(t, "table columns", merr.Query)
		assert.Contains(t, err.Error(), "loading schema metadata (table columns)")
	})

	t.Run("synonym row error", func(t *testing.T) {
		provider, mock := newMock(t)
		mock.ExpectQuery(OracleDialect.CurrentUserQuery).
			WillReturnRows(sqlmock.NewRows([]string{"user"}).AddRow("SCOTT"))
		mock.ExpectQuery(OracleDialect.TableColumnsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"owner", "table_name", "column_name"}))
		mock.ExpectQuery(OracleDialect.SynonymsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"synonym_name", "table_owner", "table_name"}).
				AddRow("A", "B", "C").
				RowError(0, assert.AnError))

		_, err := LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
		var merr MetadataError
		require.True(t, errors.As(err, &merr))
		assert.Equal(t, "synonyms", merr.Query)
	})
}

func TestSnapshotYAML(t *testing.T) {
	doc := `
current_user: U
tables:
  - owner: U
    name: EMP
    columns: [ID, NAME]
  - owner: HR
    name: SALARY
    columns: [AMOUNT]
synonyms:
  - name: SAL
    target_owner: HR
    target_table: SALARY
`
	provider, err := ReadSnapshotYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, StaticProvider{
		User: "U",
		Columns: []ColumnRow{
			{"U", "EMP", "ID"},
			{"U", "EMP", "NAME"},
			{"HR", "SALARY", "AMOUNT"},
		},
		SynonymList: []Synonym{{"SAL", "HR", "SALARY"}},
	}, provider)

	s, err := LoadSnapshot(context.Background(), provider, logrus.StandardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"AMOUNT"}, s.SuggestColumns("sal", ""))

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotYAML(&buf, s))
	assert.Contains(t, buf.String(), "current_user: U\n")
	assert.Contains(t, buf.String(), "  - owner: HR\n    name: SALARY\n")

	again, err := ReadSnapshotYAML(&buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, provider.Columns, again.Columns)
}

func TestReadSnapshotYAML_Invalid(t *testing.T) {
	_, err := ReadSnapshotYAML(strings.NewReader("tables: [[["))
	assert.Error(t, err)
}

func TestDialectByName(t *testing.T) {
	d, err := DialectByName("MSSQL")
	require.NoError(t, err)
	assert.Equal(t, MSSQLDialect, d)

	_, err = DialectByName("db2")
	assert.EqualError(t, err, `unknown dialect "db2"`)
}
