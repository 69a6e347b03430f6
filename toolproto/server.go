package toolproto

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/jonwraymond/toolguard/obslog"
)

// Server serves a Registry over newline-delimited JSON-RPC requests
// read from in and responses written to out. It is the stdio
// transport spec.md §6 describes; any io.Reader/io.Writer works, so
// tests exercise it over in-memory pipes instead of a real process's
// stdin/stdout.
type Server struct {
	registry *Registry
	in       *bufio.Scanner
	out      io.Writer
	writeMu  sync.Mutex
	logger   obslog.Logger
}

// NewServer builds a Server. logger may be nil, in which case
// obslog.NopLogger() is used.
func NewServer(registry *Registry, in io.Reader, out io.Writer, logger obslog.Logger) *Server {
	if logger == nil {
		logger = obslog.NopLogger()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Server{registry: registry, in: scanner, out: out, logger: logger}
}

// Serve reads one request per line until in is exhausted, ctx is
// cancelled, or a line fails to parse as JSON (which aborts the loop,
// since a malformed line means the transport itself is desynchronized
// and further lines can't be trusted to be request boundaries).
func (s *Server) Serve(ctx context.Context) error {
	for s.in.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := s.in.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			return fmt.Errorf("toolproto: malformed request: %w", err)
		}

		s.handle(ctx, req)
	}
	return s.in.Err()
}

func (s *Server) handle(ctx context.Context, req Request) {
	requestID := uuid.NewString()
	logger := s.logger.WithTool(obslog.ToolMeta{Name: req.Method})

	result, err := s.registry.Dispatch(ctx, req.Method, req.Params)
	if err != nil {
		logger.Warn(ctx, "tool dispatch failed",
			obslog.Field{Key: "request_id", Value: requestID},
			obslog.Field{Key: "error", Value: err.Error()},
		)
	} else {
		logger.Debug(ctx, "tool dispatch succeeded", obslog.Field{Key: "request_id", Value: requestID})
	}

	s.write(newResponse(req.ID, result, err))
}

func (s *Server) write(resp Response) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	enc := json.NewEncoder(s.out)
	if err := enc.Encode(resp); err != nil {
		s.logger.Error(context.Background(), "toolproto: failed to write response",
			obslog.Field{Key: "error", Value: err.Error()})
	}
}
