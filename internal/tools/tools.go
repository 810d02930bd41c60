// Package tools implements the Business Central operations exposed over
// MCP. Each tool wraps one Data Access Adapter method; argument defaults
// and type checks are handled by the toolbox before Invoke runs.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// upstream wraps an adapter failure into the caller-facing error kind.
func upstream(err error) *protocol.ResponseError {
	return &protocol.ResponseError{Code: protocol.CodeUpstreamFailure, Message: err.Error()}
}

func invalidArgs() *protocol.ResponseError {
	return &protocol.ResponseError{Code: protocol.CodeInvalidArgument, Message: "invalid arguments"}
}

// listResult renders a record list as a readable summary followed by the
// raw record JSON, so callers get both a narrative and the exact payload.
func listResult(summary string, recs []bc.Record) protocol.CallResult {
	pretty, _ := json.MarshalIndent(recs, "", "  ")
	text := summary
	if len(recs) > 0 {
		text += "\n\nRaw:\n" + string(pretty)
	}
	return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: text}}}
}

func detailResult(summary string, rec bc.Record) protocol.CallResult {
	pretty, _ := json.MarshalIndent(rec, "", "  ")
	return protocol.CallResult{Content: []protocol.ContentPart{{Type: "text", Text: summary + "\n\nRaw:\n" + string(pretty)}}}
}

// fieldString returns the first non-empty value among the given paths,
// formatted as a string. A path may contain one dot to reach into a
// nested object (the remote API nests addresses; the sample CSVs are
// flat).
func fieldString(rec bc.Record, paths ...string) string {
	for _, path := range paths {
		if v, ok := lookup(rec, path); ok {
			s := stringify(v)
			if s != "" {
				return s
			}
		}
	}
	return "N/A"
}

func lookup(rec bc.Record, path string) (any, bool) {
	key, rest, nested := strings.Cut(path, ".")
	v, ok := rec[key]
	if !ok {
		return nil, false
	}
	if !nested {
		return v, true
	}
	inner, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return lookup(inner, rest)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), ".")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// topArgs is the argument shape shared by the list tools.
type topArgs struct {
	Top int `json:"top"`
}

func topProperty(description string, defaultTop int) protocol.JSONSchema {
	return protocol.JSONSchema{
		Type:        "integer",
		Description: description,
		Default:     defaultTop,
	}
}
