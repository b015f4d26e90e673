/*
Package server exposes completion to editors over stdin/stdout.

Requests and responses are msgpack maps written back to back on the
stream. After start the server writes a ready message:

	{"status": "ready"}

A completion request carries the whole editor buffer and the cursor
position counted in characters (runes):

	{"id": "r1", "b": "select e. from emp e", "c": 9, "e": true}

The response lists candidates; "r" is the number of characters before the
cursor the candidate text replaces, and "t" is the time taken in
microseconds:

	{"id": "r1", "s": [{"t": "ID", "r": 0}, {"t": "NAME", "r": 0}], "n": 2, "t": 41}

A request with "e" false gets an empty candidate list. Invalid requests get
an error message:

	{"id": "r1", "e": "cursor out of range", "c": 400}
*/
package server

// CompletionRequest asks for the candidates at Cursor in Buffer.
type CompletionRequest struct {
	ID       string `msgpack:"id"`
	Buffer   string `msgpack:"b"`
	Cursor   int    `msgpack:"c"`
	Explicit bool   `msgpack:"e"`
}

type CompletionCandidate struct {
	Text          string `msgpack:"t"`
	ReplaceLength int    `msgpack:"r"`
}

type CompletionResponse struct {
	ID         string                `msgpack:"id"`
	Candidates []CompletionCandidate `msgpack:"s"`
	Count      int                   `msgpack:"n"`
	TimeTaken  int64                 `msgpack:"t"`
}

type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

type StatusMessage struct {
	Status string `msgpack:"status"`
}
