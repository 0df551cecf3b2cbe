// Package mcp serves the quote and presentation renderers to AI assistants
// over the Model Context Protocol.
//
// Messages are newline-delimited JSON-RPC 2.0 on stdin and stdout. Only the
// tools and resources capabilities are offered. An MCP client starts the
// binary as a subprocess:
//
//	{
//	  "mcpServers": {
//	    "crmdocs": {"command": "crmdocs-mcp"}
//	  }
//	}
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Identity reported on initialize.
const (
	ServerName    = "crmdocs-mcp"
	ServerVersion = "1.0.0"
)

const maxMessage = 10 << 20

type method func(ctx context.Context, params json.RawMessage) (any, *jsonrpcError)

// Server dispatches MCP requests to registered tools and resources.
type Server struct {
	tools     map[string]Tool
	resources map[string]Resource
	methods   map[string]method

	input  io.Reader
	output io.Writer
	logger *zap.Logger
	mu     sync.Mutex
}

// NewServer returns a server bound to the process stdio.
func NewServer(logger *zap.Logger) *Server {
	return NewServerWithIO(os.Stdin, os.Stdout, logger)
}

// NewServerWithIO returns a server reading requests from in and writing
// responses to out.
func NewServerWithIO(in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
		input:     in,
		output:    out,
		logger:    logger,
	}
	s.methods = map[string]method{
		"initialize":     s.initialize,
		"ping":           func(context.Context, json.RawMessage) (any, *jsonrpcError) { return struct{}{}, nil },
		"tools/list":     s.listTools,
		"tools/call":     s.callTool,
		"resources/list": s.listResources,
		"resources/read": s.readResource,
	}
	return s
}

// AddTool registers t, replacing any tool with the same name.
func (s *Server) AddTool(t Tool) { s.tools[t.Name] = t }

// AddResource registers r, replacing any resource with the same URI.
func (s *Server) AddResource(r Resource) { s.resources[r.URI] = r }

// Run serves requests until the input is exhausted or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 0, 64<<10), maxMessage)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonrpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.reply(nil, nil, rpcError(codeParseError, "Parse error", err.Error()))
			continue
		}
		s.dispatch(ctx, req)
	}
	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, req jsonrpcRequest) {
	m, ok := s.methods[req.Method]
	if req.notification() {
		// notifications/initialized and friends carry nothing to act on.
		if ok {
			_, _ = m(ctx, req.Params)
		}
		return
	}
	if !ok {
		s.reply(req.ID, nil, rpcError(codeMethodNotFound, "Method not found", req.Method))
		return
	}
	result, rerr := m(ctx, req.Params)
	s.reply(req.ID, result, rerr)
}

func (s *Server) initialize(context.Context, json.RawMessage) (any, *jsonrpcError) {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools":     map[string]any{},
			"resources": map[string]any{},
		},
		"serverInfo": map[string]any{"name": ServerName, "version": ServerVersion},
	}, nil
}

func (s *Server) listTools(context.Context, json.RawMessage) (any, *jsonrpcError) {
	tools := make([]Tool, 0, len(s.tools))
	for _, name := range sortedKeys(s.tools) {
		tools = append(tools, s.tools[name])
	}
	return map[string]any{"tools": tools}, nil
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *jsonrpcError) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if rerr := decodeParams(raw, &params); rerr != nil {
		return nil, rerr
	}
	tool, ok := s.tools[params.Name]
	if !ok {
		return nil, rpcError(codeInvalidParams, "Unknown tool", params.Name)
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	result, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("tool call failed", zap.String("tool", tool.Name), zap.Error(err))
		return ToolResult{
			Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil
	}
	return result, nil
}

func (s *Server) listResources(context.Context, json.RawMessage) (any, *jsonrpcError) {
	resources := make([]Resource, 0, len(s.resources))
	for _, uri := range sortedKeys(s.resources) {
		resources = append(resources, s.resources[uri])
	}
	return map[string]any{"resources": resources}, nil
}

func (s *Server) readResource(_ context.Context, raw json.RawMessage) (any, *jsonrpcError) {
	var params struct {
		URI string `json:"uri"`
	}
	if rerr := decodeParams(raw, &params); rerr != nil {
		return nil, rerr
	}
	r, ok := s.resources[params.URI]
	if !ok {
		return nil, rpcError(codeInvalidParams, "Unknown resource", params.URI)
	}
	contents, err := r.Handler(params.URI)
	if err != nil {
		return nil, rpcError(codeInternalError, "Resource error", err.Error())
	}
	return map[string]any{"contents": contents}, nil
}

func (s *Server) reply(id *json.RawMessage, result any, rerr *jsonrpcError) {
	resp := jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: rerr}
	if rerr == nil {
		resp.Result = result
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encoding response", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.output.Write(append(data, '\n')); err != nil {
		s.logger.Error("writing response", zap.Error(err))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
