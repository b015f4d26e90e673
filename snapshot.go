package sqlintel

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

type TableKey struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

type Table struct {
	TableKey `yaml:",inline"`
	Columns  []string `yaml:"columns"`
}

// Synonym is an alternate name for the table or view TargetOwner.TargetTable
type Synonym struct {
	Name        string `yaml:"name"`
	TargetOwner string `yaml:"target_owner"`
	TargetTable string `yaml:"target_table"`
}

// ColumnRow is one (owner, table, column) row as delivered by a
// MetadataProvider.
type ColumnRow struct {
	Owner  string
	Table  string
	Column string
}

// kinds of names stored in the name index
const (
	tableName = iota + 1
	synonymName
)

// Snapshot is the schema catalog completions are computed from. It is
// built once per session by NewSnapshot or LoadSnapshot and must not be
// modified afterwards; it is then safe to share between any number of
// completion calls.
type Snapshot struct {
	CurrentUser string    `yaml:"current_user"`
	Tables      []Table   `yaml:"tables"`
	Synonyms    []Synonym `yaml:"synonyms"`

	tableIndex map[TableKey]int
	names      *patricia.Trie
}

// NewSnapshot groups rows into tables. Rows are stable-sorted on
// (Owner, Table) first, so providers do not need to deliver them grouped;
// the order of columns within a table is kept as delivered.
func NewSnapshot(currentUser string, rows []ColumnRow, synonyms []Synonym) *Snapshot {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b ColumnRow) int {
		return cmp.Or(cmp.Compare(a.Owner, b.Owner), cmp.Compare(a.Table, b.Table))
	})

	s := &Snapshot{
		CurrentUser: currentUser,
		Synonyms:    slices.Clone(synonyms),
		tableIndex:  make(map[TableKey]int),
		names:       patricia.NewTrie(),
	}
	for _, row := range sorted {
		key := TableKey{Owner: row.Owner, Name: row.Table}
		if len(s.Tables) == 0 || s.Tables[len(s.Tables)-1].TableKey != key {
			s.tableIndex[key] = len(s.Tables)
			s.Tables = append(s.Tables, Table{TableKey: key})
		}
		last := &s.Tables[len(s.Tables)-1]
		last.Columns = append(last.Columns, row.Column)
	}

	// Insert does not replace existing keys, so a synonym that has the same
	// name as a table ends up in the index once.
	for _, t := range s.Tables {
		if t.Name != "" {
			s.names.Insert(patricia.Prefix(t.Name), tableName)
		}
	}
	for _, syn := range s.Synonyms {
		if syn.Name != "" {
			s.names.Insert(patricia.Prefix(syn.Name), synonymName)
		}
	}
	return s
}

// Rows flattens the snapshot back into provider rows.
func (s *Snapshot) Rows() (result []ColumnRow) {
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			result = append(result, ColumnRow{Owner: t.Owner, Table: t.Name, Column: c})
		}
	}
	return
}

// SuggestTables returns the table and synonym names starting with prefix,
// compared case-insensitively against the (upper-case) catalog. The result
// is sorted, free of duplicates and not truncated.
func (s *Snapshot) SuggestTables(prefix string) []string {
	if s.names == nil {
		return nil
	}
	prefix = strings.ToUpper(prefix)

	var result []string
	collect := func(p patricia.Prefix, _ patricia.Item) error {
		result = append(result, string(p))
		return nil
	}
	if prefix == "" {
		_ = s.names.Visit(collect)
	} else {
		_ = s.names.VisitSubtree(patricia.Prefix(prefix), collect)
	}
	sort.Strings(result)
	return result
}

// SuggestColumns returns the columns of table starting with prefix, in
// catalog order. table is looked up among the current user's tables first,
// then among the synonyms, where only the first synonym with that name is
// considered. An unknown table gives an empty result.
func (s *Snapshot) SuggestColumns(table, prefix string) []string {
	table = strings.ToUpper(table)
	prefix = strings.ToUpper(prefix)

	if result, ok := s.columns(TableKey{Owner: s.CurrentUser, Name: table}, prefix); ok {
		return result
	}
	for _, syn := range s.Synonyms {
		if syn.Name != table {
			continue
		}
		result, _ := s.columns(TableKey{Owner: syn.TargetOwner, Name: syn.TargetTable}, prefix)
		return result
	}
	return nil
}

func (s *Snapshot) columns(key TableKey, prefix string) (result []string, found bool) {
	i, ok := s.tableIndex[key]
	if !ok {
		return nil, false
	}
	for _, c := range s.Tables[i].Columns {
		if strings.HasPrefix(c, prefix) {
			result = append(result, c)
		}
	}
	return result, true
}
