package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getItemDetailsTool fetches a single item by its number.
type getItemDetailsTool struct {
	store *bc.Adapter
}

// GetItemDetails constructs the item detail tool.
func GetItemDetails(store *bc.Adapter) *getItemDetailsTool {
	return &getItemDetailsTool{store: store}
}

func (t *getItemDetailsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_item_details",
		Description: "Get detailed information about a specific item",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"item_no": {Type: "string", Description: "Item number"},
			},
			Required:             []string{"item_no"},
			AdditionalProperties: false,
		},
	}
}

type itemDetailsArgs struct {
	ItemNo string `json:"item_no"`
}

func (t *getItemDetailsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args itemDetailsArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return protocol.CallResult{}, invalidArgs()
	}

	item, err := t.store.ItemByNumber(ctx, args.ItemNo)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	summary := fmt.Sprintf(
		"Item Details\n\nName: %s\nNumber: %s\nPrice: %s\nStock: %s\nCategory: %s\nUnit of measure: %s",
		fieldString(item, "displayName"),
		fieldString(item, "number"),
		fieldString(item, "unitPrice"),
		fieldString(item, "inventory"),
		fieldString(item, "itemCategoryCode"),
		fieldString(item, "baseUnitOfMeasure", "baseUnitOfMeasureCode"),
	)
	return detailResult(summary, item), nil
}
