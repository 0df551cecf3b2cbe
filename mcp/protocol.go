package mcp

import (
	"context"
	"encoding/json"
)

// protocolVersion is the MCP revision negotiated on initialize.
const protocolVersion = "2024-11-05"

// Tool is a callable operation advertised by tools/list.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Handler     ToolHandler    `json:"-"`
}

// ToolHandler runs a tool. A returned error is reported to the client as an
// isError result, not as a protocol error.
type ToolHandler func(ctx context.Context, args map[string]any) (ToolResult, error)

// ToolResult is the payload of a tools/call response.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is one item of a tool result. Type is "text" or "resource";
// binary payloads travel base64 encoded in Data.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// Resource is a read-only document advertised by resources/list.
type Resource struct {
	URI         string          `json:"uri"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MIMEType    string          `json:"mimeType,omitempty"`
	Handler     ResourceHandler `json:"-"`
}

// ResourceHandler produces the contents of the resource at uri.
type ResourceHandler func(uri string) ([]ResourceContent, error)

// ResourceContent is one entry of a resources/read response.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

type jsonrpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

// notification reports whether the request expects no response.
func (r jsonrpcRequest) notification() bool { return r.ID == nil }

type jsonrpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id"`
	Result  any              `json:"result,omitempty"`
	Error   *jsonrpcError    `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

func rpcError(code int, message string, data any) *jsonrpcError {
	return &jsonrpcError{Code: code, Message: message, Data: data}
}

// decodeParams unmarshals raw into v, treating absent params as an empty
// object.
func decodeParams(raw json.RawMessage, v any) *jsonrpcError {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return rpcError(codeInvalidParams, "Invalid params", err.Error())
	}
	return nil
}
