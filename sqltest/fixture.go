// Package sqltest runs tests against a scratch SQL Server database. Set
// SQLSERVER_DSN to a sqlserver:// URL with permission to create databases;
// tests using the fixture are skipped otherwise.
package sqltest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// driverLogger forwards go-mssqldb's log output to logrus at debug level.
type driverLogger struct {
	logger logrus.FieldLogger
}

func (l driverLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

func (l driverLogger) Println(v ...interface{}) {
	l.logger.Debugln(v...)
}

var _ mssql.Logger = driverLogger{}

type Fixture struct {
	DB      *sql.DB
	DBName  string
	adminDB *sql.DB
}

// NewFixture creates a database with a random name and drops it when the
// test ends.
func NewFixture(t *testing.T) *Fixture {
	var fixture Fixture

	dsn := os.Getenv("SQLSERVER_DSN")
	if dsn == "" {
		t.Skip("SQLSERVER_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	mssql.SetLogger(driverLogger{logger: logrus.WithField("component", "mssql")})

	var err error
	fixture.adminDB, err = sql.Open("sqlserver", dsn)
	require.NoError(t, err)
	t.Cleanup(fixture.Teardown)

	fixture.DBName = strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")
	_, err = fixture.adminDB.ExecContext(ctx, fmt.Sprintf(`create database [%s]`, fixture.DBName))
	require.NoError(t, err)

	pdsn, err := msdsn.Parse(dsn)
	require.NoError(t, err)
	pdsn.Database = fixture.DBName

	fixture.DB, err = sql.Open("sqlserver", pdsn.URL().String())
	require.NoError(t, err)

	return &fixture
}

func (f *Fixture) Teardown() {
	if f.adminDB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if f.DB != nil {
		_ = f.DB.Close()
		f.DB = nil
	}
	if f.DBName != "" {
		_, _ = f.adminDB.ExecContext(ctx, fmt.Sprintf(`drop database [%s]`, f.DBName))
	}
	_ = f.adminDB.Close()
	f.adminDB = nil
}

// Exec runs each batch in order and fails the test on the first error.
func (f *Fixture) Exec(t *testing.T, batches ...string) {
	for _, batch := range batches {
		_, err := f.DB.Exec(batch)
		require.NoError(t, err, batch)
	}
}
