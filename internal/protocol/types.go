package protocol

import "encoding/json"

// JSON-RPC error codes used across the server. The three named after the
// gateway's failure taxonomy (unknown operation, invalid argument, upstream
// failure) are the only ones tool code should return.
const (
	CodeParseError       = -32700
	CodeInvalidRequest   = -32600
	CodeUnknownOperation = -32601
	CodeInvalidArgument  = -32602
	CodeInternalError    = -32603
	CodeUpstreamFailure  = -32000
	CodeResourceNotFound = -32002
)

// Request represents a minimal JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// IsNotification reports whether the request carries no ID and therefore
// expects no response.
func (r Request) IsNotification() bool {
	return r.ID == nil
}

// Response models a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string         `json:"jsonrpc,omitempty"`
	ID      any            `json:"id"`
	Result  any            `json:"result,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError holds JSON-RPC error data.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolDescriptor describes a tool available from the MCP server.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema *JSONSchema `json:"inputSchema,omitempty"`
}

// JSONSchema is a minimal subset to describe tool input shapes. Parameter
// defaults declared here are filled in by the toolbox before a tool runs.
type JSONSchema struct {
	Type                 string                `json:"type,omitempty"`
	Properties           map[string]JSONSchema `json:"properties,omitempty"`
	Items                *JSONSchema           `json:"items,omitempty"`
	Required             []string              `json:"required,omitempty"`
	Enum                 []string              `json:"enum,omitempty"`
	Description          string                `json:"description,omitempty"`
	Default              any                   `json:"default,omitempty"`
	AdditionalProperties any                   `json:"additionalProperties,omitempty"`
}

// ListResult is the payload for tools/list.
type ListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallParams represents parameters for tools/call.
type CallParams struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments,omitempty"`
}

// ContentPart is a single piece of tool output.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the payload for a successful tool invocation.
type CallResult struct {
	Content []ContentPart `json:"content"`
}

// PromptArgument describes one argument of a prompt template.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// PromptDescriptor describes a prompt available from the server.
type PromptDescriptor struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptsListResult is the payload for prompts/list.
type PromptsListResult struct {
	Prompts []PromptDescriptor `json:"prompts"`
}

// GetPromptParams represents parameters for prompts/get.
type GetPromptParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// PromptMessage is one message of an expanded prompt.
type PromptMessage struct {
	Role    string      `json:"role"`
	Content ContentPart `json:"content"`
}

// GetPromptResult is the payload for prompts/get.
type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// ResourceDescriptor describes a readable resource.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourcesListResult is the payload for resources/list.
type ResourcesListResult struct {
	Resources []ResourceDescriptor `json:"resources"`
}

// ReadResourceParams represents parameters for resources/read.
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one chunk of resource data.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// ReadResourceResult is the payload for resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}
