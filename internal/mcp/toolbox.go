package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// Tool defines the behavior of a single MCP tool. Invoke receives
// arguments already checked against the descriptor's input schema, with
// declared defaults filled in.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError)
}

// Toolbox stores and dispatches tools by name. The tool set is fixed at
// construction and Describe preserves registration order.
type Toolbox struct {
	order []string
	tools map[string]Tool
	log   *logrus.Entry
}

// NewToolbox constructs a toolbox with the provided tools.
func NewToolbox(log *logrus.Entry, tools ...Tool) *Toolbox {
	m := make(map[string]Tool, len(tools))
	order := make([]string, 0, len(tools))
	for _, t := range tools {
		desc := t.Descriptor()
		if _, dup := m[desc.Name]; dup {
			continue
		}
		m[desc.Name] = t
		order = append(order, desc.Name)
	}
	return &Toolbox{order: order, tools: m, log: log}
}

// Describe returns all tool descriptors in registration order.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.order))
	for _, name := range tb.order {
		list = append(list, tb.tools[name].Descriptor())
	}
	return list
}

// Resolve looks a tool up by exact name.
func (tb *Toolbox) Resolve(name string) (Tool, *protocol.ResponseError) {
	tool, ok := tb.tools[name]
	if !ok {
		return nil, &protocol.ResponseError{Code: protocol.CodeUnknownOperation, Message: fmt.Sprintf("unknown tool: %s", name)}
	}
	return tool, nil
}

// Call validates arguments against the tool schema and invokes the tool.
// A panic inside a tool is converted to an internal error so one bad
// invocation never takes the process down.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) (result protocol.CallResult, callErr *protocol.ResponseError) {
	tool, resolveErr := tb.Resolve(name)
	if resolveErr != nil {
		tb.logOutcome(name, nil, resolveErr)
		return protocol.CallResult{}, resolveErr
	}

	normalized, argErr := normalizeArgs(tool.Descriptor().InputSchema, args)
	if argErr != nil {
		tb.logOutcome(name, normalized, argErr)
		return protocol.CallResult{}, argErr
	}

	defer func() {
		if r := recover(); r != nil {
			callErr = &protocol.ResponseError{Code: protocol.CodeInternalError, Message: fmt.Sprintf("internal error in %s: %v", name, r)}
			result = protocol.CallResult{}
			tb.logOutcome(name, normalized, callErr)
		}
	}()

	result, callErr = tool.Invoke(ctx, normalized)
	tb.logOutcome(name, normalized, callErr)
	return result, callErr
}

func (tb *Toolbox) logOutcome(name string, args json.RawMessage, callErr *protocol.ResponseError) {
	if tb.log == nil {
		return
	}
	entry := tb.log.WithField("tool", name)
	if len(args) > 0 {
		entry = entry.WithField("args", string(args))
	}
	if callErr != nil {
		entry.Warnf("tool call failed: [%d] %s", callErr.Code, callErr.Message)
		return
	}
	entry.Info("tool call succeeded")
}

// normalizeArgs fills schema defaults, checks required parameters and
// coerces values to their declared primitive types. The returned message
// is what the tool actually sees.
func normalizeArgs(schema *protocol.JSONSchema, raw json.RawMessage) (json.RawMessage, *protocol.ResponseError) {
	if schema == nil || len(schema.Properties) == 0 {
		if len(raw) == 0 {
			return json.RawMessage("{}"), nil
		}
		return raw, nil
	}

	values := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "arguments must be a JSON object"}
		}
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	// Deterministic order so error messages are stable.
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		value, present := values[name]
		if !present || value == nil {
			if prop.Default != nil {
				values[name] = prop.Default
				continue
			}
			if required[name] {
				return nil, &protocol.ResponseError{
					Code:    protocol.CodeInvalidArgument,
					Message: fmt.Sprintf("missing required parameter: %s", name),
				}
			}
			continue
		}

		coerced, err := coerce(prop.Type, value)
		if err != nil {
			return nil, &protocol.ResponseError{
				Code:    protocol.CodeInvalidArgument,
				Message: fmt.Sprintf("invalid value for parameter %s: %v", name, err),
			}
		}
		values[name] = coerced
	}

	out, err := json.Marshal(values)
	if err != nil {
		return nil, &protocol.ResponseError{Code: protocol.CodeInternalError, Message: "encode arguments"}
	}
	return out, nil
}

// coerce converts a decoded JSON value to the declared primitive type.
// Numeric strings are accepted for number parameters; everything else
// must already have the right shape.
func coerce(declared string, value any) (any, error) {
	switch declared {
	case "integer":
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("expected an integer, got %v", v)
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("expected an integer, got %q", v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("expected an integer, got %T", value)
		}
	case "number":
		switch v := value.(type) {
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("expected a number, got %q", v)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("expected a number, got %T", value)
		}
	case "string":
		if v, ok := value.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("expected a string, got %T", value)
	default:
		// Unconstrained parameter, pass through.
		return value, nil
	}
}
