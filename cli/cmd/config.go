package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlintel"
	"golang.org/x/net/proxy"
	"gopkg.in/yaml.v3"
)

const configFile = "sqlintel.yaml"

type DatabaseConfig struct {
	Connection string `yaml:"connection"`
	// Dialect overrides the metadata queries picked from the driver; oracle, mssql or postgres.
	Dialect string `yaml:"dialect"`
}

type CompletionConfig struct {
	Limit int `yaml:"limit"`
}

type Config struct {
	Databases  map[string]DatabaseConfig `yaml:"databases"`
	Completion CompletionConfig          `yaml:"completion"`
}

func OpenSocks5Sql(dsn string) (*sql.DB, error) {
	var err error
	var connector *mssql.Connector

	if strings.HasPrefix(dsn, "azuresql://") {
		connector, err = azuread.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
	} else if strings.HasPrefix(dsn, "sqlserver://") {
		connector, err = mssql.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, errors.New("expected URI-style dsn; sqlserver:// for password login, azuresql:// for AD login or postgres://")
	}

	socksProxyAddress := os.Getenv("SQL_SOCKS")
	if socksProxyAddress != "" {
		dialer, err := proxy.SOCKS5("tcp", socksProxyAddress, nil, nil)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("Could not connect with SOCKS5 to %s", socksProxyAddress))
		}
		connector.Dialer = dialer.(proxy.ContextDialer)
	}

	return sql.OpenDB(connector), nil
}

func (dbcfg DatabaseConfig) Open(ctx context.Context, logger logrus.FieldLogger) (*sql.DB, error) {
	if strings.HasPrefix(dbcfg.Connection, "postgres://") || strings.HasPrefix(dbcfg.Connection, "postgresql://") {
		logger.Debug("opening postgres connection")
		return sql.Open("pgx", dbcfg.Connection)
	}
	logger.Debug("opening sql server connection")
	return OpenSocks5Sql(dbcfg.Connection)
}

// Provider returns the metadata provider for an open connection, honouring
// the configured dialect.
func (dbcfg DatabaseConfig) Provider(dbc sqlintel.DB) (*sqlintel.SQLProvider, error) {
	provider := sqlintel.NewSQLProvider(dbc)
	if dbcfg.Dialect != "" {
		dialect, err := sqlintel.DialectByName(dbcfg.Dialect)
		if err != nil {
			return nil, err
		}
		provider.Dialect = dialect
	}
	return provider, nil
}

func LoadConfig() (Config, error) {
	var result Config

	configFilename := path.Join(directory, configFile)
	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		return Config{}, errors.Errorf("No %s found in %s", configFile, directory)
	}

	yamlFile, err := os.ReadFile(configFilename)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(yamlFile, &result)
	if err != nil {
		return Config{}, errors.Wrap(err, configFilename)
	}

	for key, dbcfg := range result.Databases {
		if dbcfg.Connection == "" {
			return Config{}, errors.Errorf("%s: database %s has no connection", configFilename, key)
		}
	}
	return result, nil
}

func isSnapshotFile(source string) bool {
	return strings.HasSuffix(source, ".yaml") || strings.HasSuffix(source, ".yml")
}

// loadCompleter builds a completer from source, which is either a database
// name in sqlintel.yaml or a snapshot yaml file written by the snapshot
// command. The returned connection is nil for snapshot files; otherwise the
// caller closes it.
func loadCompleter(ctx context.Context, source string) (*sqlintel.Completer, *sql.DB, error) {
	logger := logrus.StandardLogger()

	if isSnapshotFile(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		provider, err := sqlintel.ReadSnapshotYAML(f)
		if err != nil {
			return nil, nil, errors.Wrap(err, source)
		}
		snapshot, err := sqlintel.LoadSnapshot(ctx, provider, logger)
		if err != nil {
			return nil, nil, err
		}
		// the config file is optional when completing from a snapshot file
		cfg, _ := LoadConfig()
		return newCompleter(snapshot, cfg), nil, nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	dbcfg, ok := cfg.Databases[source]
	if !ok {
		return nil, nil, errors.Errorf("database %s not listed in %s", source, configFile)
	}
	dbc, err := dbcfg.Open(ctx, logger)
	if err != nil {
		return nil, nil, err
	}
	provider, err := dbcfg.Provider(dbc)
	if err != nil {
		_ = dbc.Close()
		return nil, nil, err
	}
	snapshot, err := sqlintel.LoadSnapshot(ctx, provider, logger.WithField("database", source))
	if err != nil {
		_ = dbc.Close()
		return nil, nil, err
	}
	return newCompleter(snapshot, cfg), dbc, nil
}

func newCompleter(snapshot *sqlintel.Snapshot, cfg Config) *sqlintel.Completer {
	return sqlintel.NewCompleter(snapshot,
		sqlintel.WithLimit(cfg.Completion.Limit),
		sqlintel.WithLogger(logrus.StandardLogger()))
}
