package server

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/math-analysis-mcp/internal/config"
	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
)

// Server handles MCP protocol communication
type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	registry    *Registry
	initialized bool
}

// New creates a new MCP server instance. A nil cfg means config.Default and
// a nil logger discards output. Tools named in cfg.DisabledTools are left out
// of the registry.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reg := NewRegistry()
	for _, t := range GetToolDefinitions() {
		if cfg.ToolDisabled(t.Name) {
			logger.Info("tool disabled by configuration", "tool", t.Name)
			continue
		}
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("register tools: %w", err)
		}
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
	}, nil
}

// Initialized reports whether a client has completed the handshake.
func (s *Server) Initialized() bool { return s.initialized }

// Tools returns the registered tools in listing order.
func (s *Server) Tools() []Tool { return s.registry.Tools() }

// Run reads newline-delimited JSON-RPC messages from r and writes one
// response line per call to w, flushing after each. A line longer than the
// configured maximum is discarded up to its newline and answered with a parse
// error. Run returns nil at EOF or when ctx is cancelled between messages, and
// an error when reading or writing fails.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReaderSize(r, readBufferSize(s.cfg.MaxMessageBytes))
	out := bufio.NewWriter(w)
	logger := s.logger.With("session", uuid.NewString())
	logger.Info("server started",
		"name", s.cfg.Server.Name,
		"version", s.cfg.Server.Version,
		"tools", s.registry.Len())

	for {
		line, n, err := readLine(in, s.cfg.MaxMessageBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		if err := ctx.Err(); err != nil {
			logger.Info("server stopping", "reason", err)
			return nil
		}

		start := time.Now()
		var (
			resp jsonvalue.Value
			ok   bool
		)
		switch {
		case n > s.cfg.MaxMessageBytes:
			logger.Warn("message too large, discarded", "bytes", n, "limit", s.cfg.MaxMessageBytes)
			resp, ok = errorResponse(jsonvalue.Null(), errParse), true
		case len(bytes.TrimSpace(line)) == 0:
			continue
		default:
			resp, ok = s.handleLine(logger, line)
		}
		if !ok {
			continue
		}

		if _, err := out.Write(jsonvalue.Marshal(resp)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flush response: %w", err)
		}
		logger.Debug("response sent", "duration", time.Since(start))
	}

	logger.Info("input closed, server exiting")
	return nil
}

func readBufferSize(limit int) int {
	if limit < 64*1024 {
		return limit
	}
	return 64 * 1024
}

// readLine returns the next line without its terminator and the line's
// length. Once a line grows past limit it is consumed without being kept, and
// the returned length exceeds limit. io.EOF is returned only when no bytes
// remain.
func readLine(in *bufio.Reader, limit int) ([]byte, int, error) {
	var (
		line    []byte
		dropped int
		read    bool
	)
	for {
		chunk, err := in.ReadSlice('\n')
		read = read || len(chunk) > 0
		if dropped > 0 {
			dropped += len(chunk)
		} else {
			line = append(line, chunk...)
			if len(line) > limit+2 {
				dropped, line = len(line), nil
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && (err != io.EOF || !read) {
			return nil, 0, err
		}
		break
	}

	if dropped > 0 {
		return nil, dropped, nil
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, len(line), nil
}

// HandleLine parses one transport line and dispatches it. The bool is false
// when no response should be written.
func (s *Server) HandleLine(line []byte) (jsonvalue.Value, bool) {
	return s.handleLine(s.logger, line)
}

func (s *Server) handleLine(logger *slog.Logger, line []byte) (jsonvalue.Value, bool) {
	msg, err := jsonvalue.Parse(line)
	if err != nil {
		logger.Warn("failed to parse message", "error", err)
		return errorResponse(jsonvalue.Null(), errParse), true
	}
	return s.handleMessage(logger, msg)
}

// HandleMessage validates and routes one parsed message. Messages without
// an id are notifications and never get a response, but envelope errors are
// always answered since the message cannot be trusted to be a notification.
// A notification is still dispatched, so an id-less initialize completes the
// handshake.
func (s *Server) HandleMessage(msg jsonvalue.Value) (jsonvalue.Value, bool) {
	return s.handleMessage(s.logger, msg)
}

func (s *Server) handleMessage(logger *slog.Logger, msg jsonvalue.Value) (jsonvalue.Value, bool) {
	req, err := decodeRequest(msg)
	if err != nil {
		logger.Warn("invalid request", "id", req.id.String())
		return errorResponse(req.id, toRPCError(err)), true
	}

	logger.Debug("request received", "method", string(req.method), "id", req.id.String())
	if logger.Enabled(context.Background(), slog.LevelDebug) && !req.params.IsNull() {
		logger.Debug("request params", "params", string(jsonvalue.MarshalIndent(req.params, "  ")))
	}

	result, err := s.dispatch(logger, req)
	if !req.hasID || req.method == MethodInitialized {
		return jsonvalue.Value{}, false
	}
	if err != nil {
		rpcErr := toRPCError(err)
		logger.Debug("request failed", "method", string(req.method), "code", rpcErr.Code, "error", rpcErr.Message)
		return errorResponse(req.id, rpcErr), true
	}
	return successResponse(req.id, result), true
}

// dispatch routes requests to appropriate handlers. A panic inside a method
// handler is returned as an error.
func (s *Server) dispatch(logger *slog.Logger, req *request) (result jsonvalue.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = jsonvalue.Null()
			err = fmt.Errorf("%v", r)
		}
	}()

	if req.method != MethodInitialize && !s.initialized {
		return jsonvalue.Null(), errNotInitialized
	}

	switch req.method {
	case MethodInitialize:
		return s.handleInitialize(), nil
	case MethodInitialized:
		// Client acknowledgment, no response needed
		return jsonvalue.Null(), nil
	case MethodPing:
		return jsonvalue.Object(), nil
	case MethodToolsList:
		return s.handleToolsList(), nil
	case MethodToolsCall:
		return s.handleToolsCall(logger, req.params)
	default:
		return jsonvalue.Null(), errMethodNotFound
	}
}
