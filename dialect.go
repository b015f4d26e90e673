package sqlintel

import (
	"fmt"
	"strings"

	pgxstdlib "github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
)

// Dialect holds the three catalog queries a SQLProvider runs. The queries
// must return upper-case identifiers; completion matches case-insensitively
// by upper-casing what the user typed.
type Dialect struct {
	Name string

	// CurrentUserQuery returns a single row with the owner name of the
	// current principal's own tables.
	CurrentUserQuery string

	// TableColumnsQuery returns (owner, table, column) for every accessible
	// table and view.
	TableColumnsQuery string

	// SynonymsQuery returns (synonym, target owner, target table) for the
	// synonyms owned by the public schema or the current principal, whose
	// target is an accessible table or view. Empty for dialects without
	// synonyms.
	SynonymsQuery string
}

var OracleDialect = Dialect{
	Name:             "oracle",
	CurrentUserQuery: `select user from dual`,
	TableColumnsQuery: `
select owner, table_name, column_name
  from all_tab_columns
 order by 1, 2, 3`,
	SynonymsQuery: `
select synonym_name, table_owner, table_name
  from all_synonyms
 where owner in ('PUBLIC', user)
   and (table_owner, table_name) in (
         select owner, table_name from all_tables
          union all
         select owner, view_name from all_views)`,
}

var MSSQLDialect = Dialect{
	Name:             "mssql",
	CurrentUserQuery: `select upper(schema_name())`,
	TableColumnsQuery: `
select upper(c.TABLE_SCHEMA), upper(c.TABLE_NAME), upper(c.COLUMN_NAME)
  from INFORMATION_SCHEMA.COLUMNS c
 order by c.TABLE_SCHEMA, c.TABLE_NAME, c.ORDINAL_POSITION`,
	SynonymsQuery: `
select upper(s.name)
     , upper(coalesce(parsename(s.base_object_name, 2), schema_name(s.schema_id)))
     , upper(parsename(s.base_object_name, 1))
  from sys.synonyms s
 where schema_name(s.schema_id) in ('dbo', schema_name())
   and object_id(s.base_object_name) in (
         select o.object_id from sys.objects o where o.type in ('U', 'V'))`,
}

var PostgresDialect = Dialect{
	Name:             "postgres",
	CurrentUserQuery: `select upper(current_schema())`,
	TableColumnsQuery: `
select upper(table_schema), upper(table_name), upper(column_name)
  from information_schema.columns
 where table_schema not in ('pg_catalog', 'information_schema')
 order by table_schema, table_name, ordinal_position`,
}

var dialects = []Dialect{OracleDialect, MSSQLDialect, PostgresDialect}

// DialectByName looks up one of the built-in dialects.
func DialectByName(name string) (Dialect, error) {
	for _, d := range dialects {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Dialect{}, fmt.Errorf("unknown dialect %q", name)
}

// DialectForDB picks the dialect from the driver behind dbc. Drivers other
// than go-mssqldb and pgx get the Oracle dialect.
func DialectForDB(dbc DB) Dialect {
	switch dbc.Driver().(type) {
	case *mssql.Driver:
		return MSSQLDialect
	case *pgxstdlib.Driver:
		return PostgresDialect
	default:
		return OracleDialect
	}
}
