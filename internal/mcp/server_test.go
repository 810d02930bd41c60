package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

type listPrompts struct{}

func (listPrompts) List() []protocol.PromptDescriptor {
	return []protocol.PromptDescriptor{{Name: "customer_analysis"}}
}

func (listPrompts) Get(name string, _ map[string]string) (protocol.GetPromptResult, *protocol.ResponseError) {
	if name != "customer_analysis" {
		return protocol.GetPromptResult{}, &protocol.ResponseError{Code: protocol.CodeUnknownOperation, Message: "unknown prompt"}
	}
	return protocol.GetPromptResult{
		Messages: []protocol.PromptMessage{{Role: "user", Content: protocol.ContentPart{Type: "text", Text: "analyze"}}},
	}, nil
}

type listResources struct{}

func (listResources) List() []protocol.ResourceDescriptor {
	return []protocol.ResourceDescriptor{{URI: "file://data/customers.csv", Name: "Customer Data"}}
}

func (listResources) Read(uri string) (protocol.ReadResourceResult, *protocol.ResponseError) {
	if uri != "file://data/customers.csv" {
		return protocol.ReadResourceResult{}, &protocol.ResponseError{Code: protocol.CodeResourceNotFound, Message: "resource not found"}
	}
	return protocol.ReadResourceResult{
		Contents: []protocol.ResourceContents{{URI: uri, MimeType: "text/csv", Text: "id\nC1\n"}},
	}, nil
}

func newTestServer() *Server {
	tb := NewToolbox(nil, &echoTool{name: "get_customers", schema: topSchema(20)})
	return NewServer(tb, listPrompts{}, listResources{})
}

func request(method string, id any, params string) protocol.Request {
	return protocol.Request{JSONRPC: "2.0", ID: id, Method: method, Params: json.RawMessage(params)}
}

func TestHandleInitialize(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("initialize", 1, `{}`))
	if resp.Error != nil {
		t.Fatalf("initialize failed: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if result["protocolVersion"] != ProtocolVersion {
		t.Fatalf("wrong protocol version: %v", result["protocolVersion"])
	}
	caps, ok := result["capabilities"].(map[string]any)
	if !ok {
		t.Fatalf("missing capabilities")
	}
	for _, want := range []string{"tools", "prompts", "resources"} {
		if _, ok := caps[want]; !ok {
			t.Fatalf("capability %s not advertised", want)
		}
	}
}

func TestHandlePing(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("ping", 2, `{}`))
	if resp.Error != nil {
		t.Fatalf("ping failed: %v", resp.Error)
	}
}

func TestHandleToolsList(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("tools/list", 3, `{}`))
	result, ok := resp.Result.(protocol.ListResult)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "get_customers" {
		t.Fatalf("unexpected tools: %+v", result.Tools)
	}
}

func TestHandleToolsCallUnknown(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("tools/call", 4, `{"name":"delete_customer"}`))
	if resp.Error == nil {
		t.Fatalf("expected error envelope")
	}
	if resp.Error.Code != protocol.CodeUnknownOperation {
		t.Fatalf("expected unknown operation, got %d", resp.Error.Code)
	}
}

func TestHandleToolsCallMissingName(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("tools/call", 5, `{}`))
	if resp.Error == nil || resp.Error.Code != protocol.CodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", resp.Error)
	}
}

func TestHandleInvalidVersion(t *testing.T) {
	req := request("ping", 6, `{}`)
	req.JSONRPC = "1.0"
	resp := newTestServer().Handle(context.Background(), req)
	if resp.Error == nil || resp.Error.Code != protocol.CodeInvalidRequest {
		t.Fatalf("expected invalid request, got %v", resp.Error)
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	resp := newTestServer().Handle(context.Background(), request("tools/delete", 7, `{}`))
	if resp.Error == nil || resp.Error.Code != protocol.CodeUnknownOperation {
		t.Fatalf("expected method not found, got %v", resp.Error)
	}
}

func TestHandlePromptRoundTrip(t *testing.T) {
	srv := newTestServer()

	resp := srv.Handle(context.Background(), request("prompts/list", 8, `{}`))
	list, ok := resp.Result.(protocol.PromptsListResult)
	if !ok || len(list.Prompts) != 1 {
		t.Fatalf("unexpected prompts/list result: %+v", resp.Result)
	}

	resp = srv.Handle(context.Background(), request("prompts/get", 9, `{"name":"customer_analysis"}`))
	get, ok := resp.Result.(protocol.GetPromptResult)
	if !ok || len(get.Messages) != 1 {
		t.Fatalf("unexpected prompts/get result: %+v", resp.Result)
	}
}

func TestHandleResourceRoundTrip(t *testing.T) {
	srv := newTestServer()

	resp := srv.Handle(context.Background(), request("resources/list", 10, `{}`))
	list, ok := resp.Result.(protocol.ResourcesListResult)
	if !ok || len(list.Resources) != 1 {
		t.Fatalf("unexpected resources/list result: %+v", resp.Result)
	}

	resp = srv.Handle(context.Background(), request("resources/read", 11, `{"uri":"file://data/customers.csv"}`))
	read, ok := resp.Result.(protocol.ReadResourceResult)
	if !ok || len(read.Contents) != 1 {
		t.Fatalf("unexpected resources/read result: %+v", resp.Result)
	}

	resp = srv.Handle(context.Background(), request("resources/read", 12, `{"uri":"file://data/missing.csv"}`))
	if resp.Error == nil || resp.Error.Code != protocol.CodeResourceNotFound {
		t.Fatalf("expected resource not found, got %v", resp.Error)
	}
}

func TestHandleWithoutCatalogs(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_customers"})
	srv := NewServer(tb, nil, nil)

	resp := srv.Handle(context.Background(), request("prompts/list", 13, `{}`))
	if resp.Error == nil || resp.Error.Code != protocol.CodeUnknownOperation {
		t.Fatalf("expected method not found without catalog, got %v", resp.Error)
	}
}
