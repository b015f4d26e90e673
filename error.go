package sqlintel

import (
	"bytes"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
)

// MetadataError is returned by LoadSnapshot when one of the three metadata
// queries fails; the snapshot is then not built.
type MetadataError struct {
	Query string
	Err   error
}

func (e MetadataError) Error() string {
	return fmt.Sprintf("loading schema metadata (%s): %s", e.Query, e.Err)
}

func (e MetadataError) Unwrap() error {
	return e.Err
}

// MSSQLStatementError carries all the messages SQL Server returned for a
// statement typed at the prompt.
type MSSQLStatementError struct {
	Wrapped   mssql.Error
	Statement string
}

func (s MSSQLStatementError) Error() string {
	var buf bytes.Buffer

	if _, fmterr := fmt.Fprintf(&buf, "\n"); fmterr != nil {
		panic(fmterr)
	}
	for _, item := range s.Wrapped.All {
		procName := item.ProcName
		if procName == "" {
			procName = "statement"
		}
		if _, fmterr := fmt.Fprintf(&buf, "\nline %d (%s): %s",
			item.LineNo,
			procName,
			item.Message); fmterr != nil {
			panic(fmterr)
		}
	}
	return buf.String()
}

func (s MSSQLStatementError) Unwrap() error {
	return s.Wrapped
}
