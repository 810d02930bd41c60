package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// echoTool records the normalized arguments it was invoked with.
type echoTool struct {
	name     string
	schema   *protocol.JSONSchema
	lastArgs json.RawMessage
	panics   bool
}

func (t *echoTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{Name: t.name, Description: "test tool", InputSchema: t.schema}
}

func (t *echoTool) Invoke(_ context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	if t.panics {
		panic("tool blew up")
	}
	t.lastArgs = raw
	return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: string(raw)}}}, nil
}

func topSchema(defaultTop int) *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"top": {Type: "integer", Default: defaultTop},
		},
	}
}

func TestDescribeKeepsRegistrationOrder(t *testing.T) {
	tb := NewToolbox(nil,
		&echoTool{name: "zeta"},
		&echoTool{name: "alpha"},
		&echoTool{name: "mid"},
	)

	descs := tb.Describe()
	want := []string{"zeta", "alpha", "mid"}
	if len(descs) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(descs))
	}
	for i, name := range want {
		if descs[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, descs[i].Name)
		}
	}
}

func TestResolveUnknownOperation(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_customers"})

	if _, err := tb.Resolve("get_customers"); err != nil {
		t.Fatalf("expected registered tool to resolve: %v", err)
	}
	_, err := tb.Resolve("delete_customer")
	if err == nil {
		t.Fatalf("expected unknown operation error")
	}
	if err.Code != protocol.CodeUnknownOperation {
		t.Fatalf("expected code %d, got %d", protocol.CodeUnknownOperation, err.Code)
	}
}

func TestCallAppliesDefaults(t *testing.T) {
	tool := &echoTool{name: "get_customers", schema: topSchema(20)}
	tb := NewToolbox(nil, tool)

	if _, err := tb.Call(context.Background(), "get_customers", nil); err != nil {
		t.Fatalf("call: %v", err)
	}

	var args struct {
		Top int `json:"top"`
	}
	if err := json.Unmarshal(tool.lastArgs, &args); err != nil {
		t.Fatalf("decode normalized args: %v", err)
	}
	if args.Top != 20 {
		t.Fatalf("default not applied: got top=%d", args.Top)
	}
}

func TestCallCoercesNumericString(t *testing.T) {
	tool := &echoTool{name: "get_customers", schema: topSchema(20)}
	tb := NewToolbox(nil, tool)

	if _, err := tb.Call(context.Background(), "get_customers", json.RawMessage(`{"top":"7"}`)); err != nil {
		t.Fatalf("call: %v", err)
	}
	var args struct {
		Top int `json:"top"`
	}
	if err := json.Unmarshal(tool.lastArgs, &args); err != nil {
		t.Fatalf("decode normalized args: %v", err)
	}
	if args.Top != 7 {
		t.Fatalf("numeric string not coerced: got top=%d", args.Top)
	}
}

func TestCallRejectsWrongType(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_items", schema: topSchema(20)})

	_, err := tb.Call(context.Background(), "get_items", json.RawMessage(`{"top":"five"}`))
	if err == nil {
		t.Fatalf("expected invalid argument error")
	}
	if err.Code != protocol.CodeInvalidArgument {
		t.Fatalf("expected code %d, got %d", protocol.CodeInvalidArgument, err.Code)
	}
	if !strings.Contains(err.Message, "top") {
		t.Fatalf("error should name the parameter: %s", err.Message)
	}
}

func TestCallRejectsFractionForInteger(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_items", schema: topSchema(20)})

	_, err := tb.Call(context.Background(), "get_items", json.RawMessage(`{"top":2.5}`))
	if err == nil || err.Code != protocol.CodeInvalidArgument {
		t.Fatalf("expected invalid argument for fractional integer, got %v", err)
	}
}

func TestCallMissingRequiredParameter(t *testing.T) {
	schema := &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"customer_id": {Type: "string"},
		},
		Required: []string{"customer_id"},
	}
	tb := NewToolbox(nil, &echoTool{name: "get_customer_details", schema: schema})

	_, err := tb.Call(context.Background(), "get_customer_details", json.RawMessage(`{}`))
	if err == nil {
		t.Fatalf("expected invalid argument error")
	}
	if err.Code != protocol.CodeInvalidArgument || !strings.Contains(err.Message, "customer_id") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallUnknownToolName(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_customers"})

	_, err := tb.Call(context.Background(), "delete_customer", nil)
	if err == nil || err.Code != protocol.CodeUnknownOperation {
		t.Fatalf("expected unknown operation, got %v", err)
	}
}

func TestCallRecoversFromPanic(t *testing.T) {
	tb := NewToolbox(nil, &echoTool{name: "get_customers", panics: true})

	_, err := tb.Call(context.Background(), "get_customers", nil)
	if err == nil {
		t.Fatalf("expected internal error from panicking tool")
	}
	if err.Code != protocol.CodeInternalError {
		t.Fatalf("expected code %d, got %d", protocol.CodeInternalError, err.Code)
	}
}
