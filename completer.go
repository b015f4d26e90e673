package sqlintel

import (
	"iter"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlintel/sqlparser"
)

// MaxCandidates is the default ceiling on candidates per request.
const MaxCandidates = 30

// Candidate is a proposed completion: Text replaces the last ReplaceLength
// characters before the cursor.
type Candidate struct {
	Text          string
	ReplaceLength int
}

// Completer answers completion requests from an editor against a Snapshot.
// It holds no per-request state.
type Completer struct {
	snapshot *Snapshot
	limit    int
	logger   logrus.FieldLogger
}

type Option func(*Completer)

// WithLimit lowers the ceiling below MaxCandidates. n <= 0 keeps the
// default and n is never raised above MaxCandidates.
func WithLimit(n int) Option {
	return func(c *Completer) {
		if n > 0 {
			c.limit = min(n, MaxCandidates)
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Completer) {
		c.logger = logger
	}
}

func NewCompleter(snapshot *Snapshot, opts ...Option) *Completer {
	c := &Completer{
		snapshot: snapshot,
		limit:    MaxCandidates,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Completer) Snapshot() *Snapshot {
	return c.snapshot
}

// Seq yields the candidates for a cursor at byte offset cursor in buffer.
// Nothing is yielded unless explicit is set; completion is only offered
// when the user asks for it. A bare word completes to table and synonym
// names; `alias.partial` completes to the columns of every table alias may
// denote, in the order sqlparser.TablesForAlias finds them, without
// removing duplicates across tables. Enumeration stops at the limit.
func (c *Completer) Seq(buffer string, cursor int, explicit bool) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if !explicit {
			return
		}
		cursorCtx := sqlparser.CursorContext(buffer, cursor)
		c.logger.WithField("context", cursorCtx).Debug("completion requested")

		n := 0
		emit := func(text string, replaceLength int) bool {
			if !yield(Candidate{Text: text, ReplaceLength: replaceLength}) {
				return false
			}
			n++
			return n < c.limit
		}

		if cursorCtx.Kind == sqlparser.QualifiedContext {
			for table := range sqlparser.TablesForAlias(buffer, cursorCtx.Alias) {
				for _, column := range c.snapshot.SuggestColumns(table, cursorCtx.Partial) {
					if !emit(column, len(cursorCtx.Partial)) {
						return
					}
				}
			}
			return
		}

		// NoContext completes like an empty identifier
		for _, name := range c.snapshot.SuggestTables(cursorCtx.Partial) {
			if !emit(name, len(cursorCtx.Partial)) {
				return
			}
		}
	}
}

// Complete collects Seq into a slice.
func (c *Completer) Complete(buffer string, cursor int, explicit bool) []Candidate {
	return slices.Collect(c.Seq(buffer, cursor, explicit))
}

// RuneCursor converts an editor position counted in runes into the buffer
// string and byte offset Seq and Complete expect. pos is clamped to the
// buffer.
func RuneCursor(buffer []rune, pos int) (string, int) {
	pos = max(0, min(pos, len(buffer)))
	return string(buffer), len(string(buffer[:pos]))
}
