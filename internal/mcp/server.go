package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
	"github.com/techspheredynamics/bc-mcp-server/internal/version"
)

// ServerName is reported during the initialize handshake.
const ServerName = "bc-workshop-server"

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// PromptCatalog serves prompts/list and prompts/get.
type PromptCatalog interface {
	List() []protocol.PromptDescriptor
	Get(name string, args map[string]string) (protocol.GetPromptResult, *protocol.ResponseError)
}

// ResourceCatalog serves resources/list and resources/read.
type ResourceCatalog interface {
	List() []protocol.ResourceDescriptor
	Read(uri string) (protocol.ReadResourceResult, *protocol.ResponseError)
}

// Server handles MCP JSON-RPC requests against a toolbox plus optional
// prompt and resource catalogs.
type Server struct {
	toolbox   *Toolbox
	prompts   PromptCatalog
	resources ResourceCatalog
}

// NewServer wires the toolbox and catalogs into an MCP server. Prompt and
// resource catalogs may be nil; the matching methods then report their
// capability as absent.
func NewServer(tb *Toolbox, prompts PromptCatalog, resources ResourceCatalog) *Server {
	return &Server{toolbox: tb, prompts: prompts, resources: resources}
}

// Handle routes a single request. Every return is a well-formed response
// envelope; errors never escape as Go errors to the transport.
func (s *Server) Handle(ctx context.Context, req protocol.Request) protocol.Response {
	if err := validateJSONRPC(req); err != nil {
		return respondErr(req.ID, err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return respond(req.ID, map[string]any{})
	case "tools/list":
		return respond(req.ID, protocol.ListResult{Tools: s.toolbox.Describe()})
	case "tools/call":
		return s.handleToolCall(ctx, req)
	case "prompts/list":
		if s.prompts == nil {
			return respondErr(req.ID, methodNotFound(req.Method))
		}
		return respond(req.ID, protocol.PromptsListResult{Prompts: s.prompts.List()})
	case "prompts/get":
		return s.handlePromptGet(req)
	case "resources/list":
		if s.resources == nil {
			return respondErr(req.ID, methodNotFound(req.Method))
		}
		return respond(req.ID, protocol.ResourcesListResult{Resources: s.resources.List()})
	case "resources/read":
		return s.handleResourceRead(req)
	default:
		return respondErr(req.ID, methodNotFound(req.Method))
	}
}

func (s *Server) handleInitialize(req protocol.Request) protocol.Response {
	capabilities := map[string]any{"tools": map[string]any{}}
	if s.prompts != nil {
		capabilities["prompts"] = map[string]any{}
	}
	if s.resources != nil {
		capabilities["resources"] = map[string]any{}
	}
	return respond(req.ID, map[string]any{
		"protocolVersion": ProtocolVersion,
		"serverInfo": map[string]string{
			"name":    ServerName,
			"version": version.Get().Version,
		},
		"capabilities": capabilities,
	})
}

func (s *Server) handleToolCall(ctx context.Context, req protocol.Request) protocol.Response {
	var params protocol.CallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return respondErr(req.ID, &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "invalid params"})
	}
	if params.Name == "" {
		return respondErr(req.ID, &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "tool name required"})
	}

	result, toolErr := s.toolbox.Call(ctx, params.Name, params.Args)
	if toolErr != nil {
		return respondErr(req.ID, toolErr)
	}
	return respond(req.ID, result)
}

func (s *Server) handlePromptGet(req protocol.Request) protocol.Response {
	if s.prompts == nil {
		return respondErr(req.ID, methodNotFound(req.Method))
	}
	var params protocol.GetPromptParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return respondErr(req.ID, &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "invalid params"})
	}
	result, promptErr := s.prompts.Get(params.Name, params.Arguments)
	if promptErr != nil {
		return respondErr(req.ID, promptErr)
	}
	return respond(req.ID, result)
}

func (s *Server) handleResourceRead(req protocol.Request) protocol.Response {
	if s.resources == nil {
		return respondErr(req.ID, methodNotFound(req.Method))
	}
	var params protocol.ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
		return respondErr(req.ID, &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "resource uri required"})
	}
	result, readErr := s.resources.Read(params.URI)
	if readErr != nil {
		return respondErr(req.ID, readErr)
	}
	return respond(req.ID, result)
}

// WriteError builds a response with an error and wraps detail.
func WriteError(id any, code int, message string, err error) protocol.Response {
	detail := message
	if err != nil {
		detail = fmt.Sprintf("%s: %v", message, err)
	}
	return respondErr(id, &protocol.ResponseError{Code: code, Message: detail})
}

func respond(id any, result any) protocol.Response {
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Result: result}
}

func respondErr(id any, err *protocol.ResponseError) protocol.Response {
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Error: err}
}

func methodNotFound(method string) *protocol.ResponseError {
	return &protocol.ResponseError{Code: protocol.CodeUnknownOperation, Message: fmt.Sprintf("method not found: %s", method)}
}

func validateJSONRPC(req protocol.Request) *protocol.ResponseError {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return &protocol.ResponseError{Code: protocol.CodeInvalidRequest, Message: "invalid jsonrpc version"}
	}
	return nil
}

func normalizeID(id any) any {
	if id == nil {
		return "0"
	}
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
