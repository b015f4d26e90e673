package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlintel"
)

func withDirectory(t *testing.T, dir string) {
	old := directory
	directory = dir
	t.Cleanup(func() {
		directory = old
	})
}

func writeFile(t *testing.T, name, content string) {
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	withDirectory(t, dir)

	_, err := LoadConfig()
	assert.Error(t, err)

	writeFile(t, filepath.Join(dir, "sqlintel.yaml"), `
databases:
  dev:
    connection: sqlserver://localhost?database=dev
  reporting:
    connection: postgres://localhost/reporting
    dialect: postgres
completion:
  limit: 10
`)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Databases: map[string]DatabaseConfig{
			"dev":       {Connection: "sqlserver://localhost?database=dev"},
			"reporting": {Connection: "postgres://localhost/reporting", Dialect: "postgres"},
		},
		Completion: CompletionConfig{Limit: 10},
	}, cfg)

	writeFile(t, filepath.Join(dir, "sqlintel.yaml"), "databases:\n  dev: {}\n")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "database dev has no connection")
}

func TestDatabaseConfig_Provider(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	provider, err := DatabaseConfig{}.Provider(db)
	require.NoError(t, err)
	assert.Equal(t, sqlintel.OracleDialect, provider.Dialect)

	provider, err = DatabaseConfig{Dialect: "mssql"}.Provider(db)
	require.NoError(t, err)
	assert.Equal(t, sqlintel.MSSQLDialect, provider.Dialect)

	_, err = DatabaseConfig{Dialect: "db2"}.Provider(db)
	assert.Error(t, err)
}

func TestOpenSocks5Sql_RejectsOtherSchemes(t *testing.T) {
	_, err := OpenSocks5Sql("mysql://localhost")
	assert.Error(t, err)
}

func TestLoadCompleter_SnapshotFile(t *testing.T) {
	dir := t.TempDir()
	withDirectory(t, dir)
	snapshotFile := filepath.Join(dir, "schema.yaml")
	writeFile(t, snapshotFile, `
current_user: U
tables:
  - owner: U
    name: EMP
    columns: [ID, NAME]
`)

	completer, dbc, err := loadCompleter(context.Background(), snapshotFile)
	require.NoError(t, err)
	assert.Nil(t, dbc)
	assert.Equal(t, []sqlintel.Candidate{{Text: "NAME", ReplaceLength: 1}},
		completer.Complete("select e.n from emp e", 10, true))

	_, _, err = loadCompleter(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, _, err = loadCompleter(context.Background(), "dev")
	assert.ErrorContains(t, err, "No sqlintel.yaml found")
}

func TestCursorOffset(t *testing.T) {
	text, offset, err := cursorOffset("select e.", -1)
	require.NoError(t, err)
	assert.Equal(t, "select e.", text)
	assert.Equal(t, 9, offset)

	_, offset, err = cursorOffset("-- ø\nselect", 6)
	require.NoError(t, err)
	assert.Equal(t, 7, offset)

	_, _, err = cursorOffset("abc", 4)
	assert.Error(t, err)
}
