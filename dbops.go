package sqlintel

import (
	"context"
	"errors"

	mssql "github.com/microsoft/go-mssqldb"
)

// ResultSet is the fully read result of a statement run from the prompt.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Run executes statement and reads all of its rows. Statements that do not
// return rows give a ResultSet without columns. SQL Server errors are
// returned as MSSQLStatementError.
func Run(ctx context.Context, dbc DB, statement string) (ResultSet, error) {
	rows, err := dbc.QueryContext(ctx, statement)
	if err != nil {
		return ResultSet{}, statementError(err, statement)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result ResultSet
	result.Columns, err = rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}
	for rows.Next() {
		values := make([]any, len(result.Columns))
		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ResultSet{}, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, statementError(err, statement)
	}
	return result, nil
}

func statementError(err error, statement string) error {
	var sqlerr mssql.Error
	if errors.As(err, &sqlerr) {
		return MSSQLStatementError{Wrapped: sqlerr, Statement: statement}
	}
	return err
}
