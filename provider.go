package sqlintel

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MetadataProvider delivers the catalog a Snapshot is built from.
type MetadataProvider interface {
	CurrentUser(ctx context.Context) (string, error)
	TableColumns(ctx context.Context) ([]ColumnRow, error)
	Synonyms(ctx context.Context) ([]Synonym, error)
}

// LoadSnapshot runs the three provider queries in order and builds the
// snapshot. Any failure is returned as a MetadataError.
func LoadSnapshot(ctx context.Context, provider MetadataProvider, logger logrus.FieldLogger) (*Snapshot, error) {
	start := time.Now()

	user, err := provider.CurrentUser(ctx)
	if err != nil {
		return nil, MetadataError{Query: "current user", Err: err}
	}
	rows, err := provider.TableColumns(ctx)
	if err != nil {
		return nil, MetadataError{Query: "table columns", Err: err}
	}
	synonyms, err := provider.Synonyms(ctx)
	if err != nil {
		return nil, MetadataError{Query: "synonyms", Err: err}
	}

	snapshot := NewSnapshot(user, rows, synonyms)
	logger.WithFields(logrus.Fields{
		"user":     user,
		"tables":   len(snapshot.Tables),
		"columns":  len(rows),
		"synonyms": len(synonyms),
		"elapsed":  time.Since(start),
	}).Debug("loaded schema snapshot")
	return snapshot, nil
}

// SQLProvider reads the catalog from a live database.
type SQLProvider struct {
	DB      DB
	Dialect Dialect
}

var _ MetadataProvider = &SQLProvider{}

// NewSQLProvider returns a provider using the dialect matching dbc's driver.
func NewSQLProvider(dbc DB) *SQLProvider {
	return &SQLProvider{DB: dbc, Dialect: DialectForDB(dbc)}
}

func (p *SQLProvider) CurrentUser(ctx context.Context) (string, error) {
	var user string
	err := p.DB.QueryRowContext(ctx, p.Dialect.CurrentUserQuery).Scan(&user)
	if err != nil {
		return "", err
	}
	return user, nil
}

func (p *SQLProvider) TableColumns(ctx context.Context) (result []ColumnRow, err error) {
	err = p.queryTriples(ctx, p.Dialect.TableColumnsQuery, func(a, b, c string) {
		result = append(result, ColumnRow{Owner: a, Table: b, Column: c})
	})
	return
}

func (p *SQLProvider) Synonyms(ctx context.Context) (result []Synonym, err error) {
	if p.Dialect.SynonymsQuery == "" {
		return nil, nil
	}
	err = p.queryTriples(ctx, p.Dialect.SynonymsQuery, func(a, b, c string) {
		result = append(result, Synonym{Name: a, TargetOwner: b, TargetTable: c})
	})
	return
}

func (p *SQLProvider) queryTriples(ctx context.Context, query string, f func(a, b, c string)) error {
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var a, b, c string
		if err := rows.Scan(&a, &b, &c); err != nil {
			return err
		}
		f(a, b, c)
	}
	return rows.Err()
}

// StaticProvider serves a catalog captured earlier, typically a snapshot
// file written by WriteSnapshotYAML.
type StaticProvider struct {
	User        string
	Columns     []ColumnRow
	SynonymList []Synonym
}

var _ MetadataProvider = StaticProvider{}

func (p StaticProvider) CurrentUser(context.Context) (string, error) {
	return p.User, nil
}

func (p StaticProvider) TableColumns(context.Context) ([]ColumnRow, error) {
	return p.Columns, nil
}

func (p StaticProvider) Synonyms(context.Context) ([]Synonym, error) {
	return p.SynonymList, nil
}

// ReadSnapshotYAML decodes a snapshot file into a StaticProvider.
func ReadSnapshotYAML(r io.Reader) (StaticProvider, error) {
	var doc Snapshot
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return StaticProvider{}, err
	}
	return StaticProvider{
		User:        doc.CurrentUser,
		Columns:     doc.Rows(),
		SynonymList: doc.Synonyms,
	}, nil
}

// WriteSnapshotYAML writes s in the format read by ReadSnapshotYAML.
func WriteSnapshotYAML(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
