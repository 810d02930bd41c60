package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getItemsTool lists items from Business Central.
type getItemsTool struct {
	store *bc.Adapter
}

// GetItems constructs the item list tool.
func GetItems(store *bc.Adapter) *getItemsTool {
	return &getItemsTool{store: store}
}

func (t *getItemsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_items",
		Description: "Get items list from Business Central",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"top": topProperty("Maximum number of items to return (default: 20)", 20),
			},
			AdditionalProperties: false,
		},
	}
}

func (t *getItemsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args topArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs()
		}
	}

	items, err := t.store.Items(ctx, args.Top)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Business Central Items (showing %d results)\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s (No: %s)\n  Price: %s\n  Stock: %s\n",
			fieldString(item, "displayName"),
			fieldString(item, "number"),
			fieldString(item, "unitPrice"),
			fieldString(item, "inventory"),
		)
	}
	return listResult(strings.TrimSpace(b.String()), items), nil
}
