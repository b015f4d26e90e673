package sqlparser

import "fmt"

type ContextKind int

const (
	// NoContext means the cursor is not placed right after something that
	// can be completed.
	NoContext ContextKind = iota
	// IdentifierContext is a bare name being typed, e.g. a table name.
	IdentifierContext
	// QualifiedContext is a dotted reference `alias.partial`; Partial
	// may be empty when the cursor is right after the dot.
	QualifiedContext
)

var contextKindToDescription = map[ContextKind]string{
	NoContext:         "NoContext",
	IdentifierContext: "IdentifierContext",
	QualifiedContext:  "QualifiedContext",
}

func (k ContextKind) String() string {
	return contextKindToDescription[k]
}

func (k ContextKind) GoString() string {
	return contextKindToDescription[k]
}

// Context is the classification of what is being typed at the cursor.
// Alias and Partial keep the case they have in the buffer.
type Context struct {
	Kind    ContextKind
	Alias   string
	Partial string
}

func Identifier(partial string) Context {
	return Context{Kind: IdentifierContext, Partial: partial}
}

func Qualified(alias, partial string) Context {
	return Context{Kind: QualifiedContext, Alias: alias, Partial: partial}
}

func (c Context) String() string {
	switch c.Kind {
	case IdentifierContext:
		return fmt.Sprintf("Identifier(%q)", c.Partial)
	case QualifiedContext:
		return fmt.Sprintf("Qualified(%q, %q)", c.Alias, c.Partial)
	default:
		return "None"
	}
}

// CursorContext classifies the completion request for a cursor placed at
// byte offset cursor in text, i.e. just after the last character typed so
// far. A cursor outside [0, len(text)] is clamped.
func CursorContext(text string, cursor int) Context {
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor <= 0 {
		return Context{}
	}

	prev := text[cursor-1]

	// "alias." with nothing typed after the dot yet
	if prev == '.' && cursor >= 2 && IsWordChar(text[cursor-2]) {
		astart := wordStart(text, cursor-2)
		return Qualified(text[astart:cursor-1], "")
	}

	if !IsWordChar(prev) {
		return Context{}
	}

	wstart := wordStart(text, cursor-1)
	if wstart == 0 || text[wstart-1] != '.' || wstart-1 == 0 || !IsWordChar(text[wstart-2]) {
		return Identifier(text[wstart:cursor])
	}

	dotPos := wstart - 1
	astart := wordStart(text, dotPos-1)
	return Qualified(text[astart:dotPos], text[wstart:cursor])
}
