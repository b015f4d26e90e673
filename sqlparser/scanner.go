package sqlparser

// The functions in this file work directly on byte offsets into the raw
// buffer. There is no tokenizer: identifiers are runs of word characters and
// everything else is a boundary. Word characters are ASCII only, so a
// multi-byte UTF-8 sequence is always a boundary and never split a word.

// IsWordChar reports whether c can be part of an identifier.
func IsWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '$' || c == '#':
		return true
	}
	return false
}

// ScanBack moves left from pos while word characters continue, and returns
// the offset of the first non-word character found, or -1 if the word runs
// all the way to the start of text. The caller is expected to pass a pos
// where text[pos] is a word character; the word then starts at the returned
// value + 1.
func ScanBack(text string, pos int) int {
	if pos >= len(text) {
		pos = len(text) - 1
	}
	for pos >= 0 && IsWordChar(text[pos]) {
		pos--
	}
	if pos < -1 {
		return -1
	}
	return pos
}

// ScanForward returns pos unchanged if text[pos] is not a word character;
// otherwise it returns the offset just after the word starting at pos (which
// may be len(text)).
func ScanForward(text string, pos int) int {
	if pos < 0 || pos >= len(text) {
		return pos
	}
	for pos < len(text) && IsWordChar(text[pos]) {
		pos++
	}
	return pos
}

// wordStart returns the offset of the first character of the word that
// contains text[pos].
func wordStart(text string, pos int) int {
	return ScanBack(text, pos) + 1
}
