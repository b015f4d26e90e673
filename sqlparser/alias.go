package sqlparser

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vippsas/sqlintel/sqlparser/internal/utils"
)

// AliasPair is a candidate `table alias` declaration found in the buffer.
type AliasPair struct {
	Alias string
	Table string
}

// AliasPairs scans text for a word, followed by whitespace, followed by a
// second word, and yields (second, first) as (Alias, Table) for every such
// occurrence. There is no keyword anchoring; `from emp e` matches, but so
// does `where x and`. After a pair the scan resumes at the second word, so
// `a b c` yields both (b, a) and (c, b).
func AliasPairs(text string) iter.Seq[AliasPair] {
	return func(yield func(AliasPair) bool) {
		pos := 0
		for {
			first := nextWord(text, pos)
			if first < 0 {
				return
			}
			firstEnd := ScanForward(text, first)
			if !isSpaceAt(text, firstEnd) {
				pos = firstEnd
				continue
			}
			second := skipWhitespace(text, firstEnd)
			if second >= len(text) {
				return
			}
			if !IsWordChar(text[second]) {
				pos = second
				continue
			}
			pair := AliasPair{
				Alias: text[second:ScanForward(text, second)],
				Table: text[first:firstEnd],
			}
			utils.DPrint("alias pair %q -> %q", pair.Alias, pair.Table)
			if !yield(pair) {
				return
			}
			pos = second
		}
	}
}

// FindAliasPairs collects AliasPairs(text) into a slice.
func FindAliasPairs(text string) (result []AliasPair) {
	for pair := range AliasPairs(text) {
		result = append(result, pair)
	}
	return
}

// TablesForAlias yields the table names an alias token may denote: first
// the upper-cased token itself (it may be a table name used as its own
// qualifier), then the table half of every alias pair in the upper-cased
// buffer whose alias half is the token, in buffer order. Every call
// re-scans text.
func TablesForAlias(text, alias string) iter.Seq[string] {
	return func(yield func(string) bool) {
		token := strings.ToUpper(alias)
		if !yield(token) {
			return
		}
		for pair := range AliasPairs(strings.ToUpper(text)) {
			if pair.Alias != token {
				continue
			}
			if !yield(pair.Table) {
				return
			}
		}
	}
}

// nextWord returns the offset of the first word character at or after pos,
// or -1 if there is none.
func nextWord(text string, pos int) int {
	for ; pos < len(text); pos++ {
		if IsWordChar(text[pos]) {
			return pos
		}
	}
	return -1
}

func isSpaceAt(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsSpace(r)
}

// skipWhitespace returns the offset of the first non-whitespace rune at or
// after pos, or len(text).
func skipWhitespace(text string, pos int) int {
	for pos < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			return pos
		}
		pos += w
	}
	return pos
}
