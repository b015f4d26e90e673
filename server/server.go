package server

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlintel"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers completion requests read from a stream, one at a time.
type Server struct {
	completer *sqlintel.Completer
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
	logger    logrus.FieldLogger
}

func NewServer(completer *sqlintel.Completer, r io.Reader, w io.Writer, logger logrus.FieldLogger) *Server {
	return &Server{
		completer: completer,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
		logger:    logger,
	}
}

// Serve processes requests until the input ends. A request that cannot be
// decoded leaves the stream in an unknown state, so it is answered with an
// error and Serve returns.
func (s *Server) Serve() error {
	s.logger.Debug("starting completion server")
	if err := s.enc.Encode(StatusMessage{Status: "ready"}); err != nil {
		return err
	}

	for {
		var request CompletionRequest
		err := s.dec.Decode(&request)
		if errors.Is(err, io.EOF) {
			s.logger.Debug("input closed, stopping completion server")
			return nil
		}
		if err != nil {
			s.logger.WithError(err).Error("decoding request")
			_ = s.sendError("", "invalid request", 400)
			return err
		}
		if err := s.handleComplete(request); err != nil {
			return err
		}
	}
}

func (s *Server) handleComplete(request CompletionRequest) error {
	runes := []rune(request.Buffer)
	if request.Cursor < 0 || request.Cursor > len(runes) {
		s.logger.WithFields(logrus.Fields{
			"id":     request.ID,
			"cursor": request.Cursor,
			"length": len(runes),
		}).Debug("cursor out of range")
		return s.sendError(request.ID, "cursor out of range", 400)
	}

	start := time.Now()
	buffer, cursor := sqlintel.RuneCursor(runes, request.Cursor)
	candidates := s.completer.Complete(buffer, cursor, request.Explicit)
	elapsed := time.Since(start)

	response := CompletionResponse{
		ID:         request.ID,
		Candidates: make([]CompletionCandidate, len(candidates)),
		Count:      len(candidates),
		TimeTaken:  elapsed.Microseconds(),
	}
	for i, c := range candidates {
		response.Candidates[i] = CompletionCandidate{Text: c.Text, ReplaceLength: c.ReplaceLength}
	}
	s.logger.WithFields(logrus.Fields{
		"id":      request.ID,
		"count":   response.Count,
		"elapsed": elapsed,
	}).Debug("completion served")
	return s.enc.Encode(response)
}

func (s *Server) sendError(id, message string, code int) error {
	return s.enc.Encode(CompletionError{ID: id, Error: message, Code: code})
}
