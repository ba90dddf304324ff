package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/logging"
)

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Server is an MCP stdio server: newline-delimited JSON-RPC 2.0 in, one
// response line out per request. Notifications get no response.
type Server struct {
	tools   map[string]toolDef
	order   []string
	methods map[string]methodHandler
	svc     Service
	version string
	logger  *slog.Logger
}

type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

// toolHandler returns a JSON-marshalable result. A returned error is reported
// to the client as a tool error, not a protocol error.
type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type methodHandler func(ctx context.Context, params json.RawMessage) (any, *rpcError)

type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type callResult struct {
	Content []content `json:"content"`
	IsError bool      `json:"isError"`
}

type content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// NewServer constructs a Server backed by svc. logger may be nil.
func NewServer(svc Service, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		tools:   make(map[string]toolDef),
		svc:     svc,
		version: version,
		logger:  logger,
	}
	s.methods = map[string]methodHandler{
		"initialize": s.initialize,
		"ping":       func(context.Context, json.RawMessage) (any, *rpcError) { return struct{}{}, nil },
		"tools/list": s.listTools,
		"tools/call": s.callTool,
	}
	addTools(s)
	return s
}

// registerTool adds def, replacing any tool of the same name.
func (s *Server) registerTool(def toolDef) {
	if _, exists := s.tools[def.Name]; !exists {
		s.order = append(s.order, def.Name)
	}
	s.tools[def.Name] = def
}

// Run serves requests from r until ctx is cancelled or r reaches EOF, both
// of which return nil. Read and write failures are returned.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	bw := bufio.NewWriter(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			resp, reply := s.handle(ctx, line)
			if !reply {
				continue
			}
			if err := writeLine(bw, resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// handle decodes one line and dispatches it. reply is false for
// notifications.
func (s *Server) handle(ctx context.Context, line []byte) (resp response, reply bool) {
	resp.JSONRPC = "2.0"

	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		resp.Error = &rpcError{Code: codeParseError, Message: "Parse error"}
		return resp, true
	}
	if req.ID == nil {
		s.logger.Debug("mcp notification", "method", req.Method)
		return resp, false
	}
	resp.ID = req.ID

	method, ok := s.methods[req.Method]
	if !ok {
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
		return resp, true
	}

	ctx = logging.WithRequestID(ctx, "")
	start := time.Now()
	resp.Result, resp.Error = method(ctx, req.Params)
	logging.FromContext(ctx, s.logger).Debug("mcp request",
		"method", req.Method, "elapsed", time.Since(start), "failed", resp.Error != nil)
	return resp, true
}

func (s *Server) initialize(context.Context, json.RawMessage) (any, *rpcError) {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "weatherfocus",
			"version": s.version,
		},
	}, nil
}

func (s *Server) listTools(context.Context, json.RawMessage) (any, *rpcError) {
	infos := make([]toolInfo, 0, len(s.order))
	for _, name := range s.order {
		t := s.tools[name]
		infos = append(infos, toolInfo{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema})
	}
	return map[string]any{"tools": infos}, nil
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p callParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
	}

	tool, ok := s.tools[p.Name]
	if !ok {
		return toolError(fmt.Errorf("unknown tool: %s", p.Name)), nil
	}

	args := p.Arguments
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage(`{}`)
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		logging.FromContext(ctx, s.logger).Warn("mcp tool failed", "tool", tool.Name, "error", err)
		return toolError(err), nil
	}
	text, err := json.Marshal(result)
	if err != nil {
		return toolError(err), nil
	}
	return callResult{Content: []content{{Type: "text", Text: string(text)}}}, nil
}

func toolError(err error) callResult {
	return callResult{Content: []content{{Type: "text", Text: err.Error()}}, IsError: true}
}

// errInvalidArguments wraps argument decoding failures for tool handlers.
var errInvalidArguments = errors.New("invalid arguments")

// decodeArgs strictly decodes tool arguments into dst.
func decodeArgs(args json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

func writeLine(bw *bufio.Writer, resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}
