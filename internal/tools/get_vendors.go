package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getVendorsTool lists vendors from Business Central.
type getVendorsTool struct {
	store *bc.Adapter
}

// GetVendors constructs the vendor list tool.
func GetVendors(store *bc.Adapter) *getVendorsTool {
	return &getVendorsTool{store: store}
}

func (t *getVendorsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_vendors",
		Description: "Get vendor list from Business Central",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"top": topProperty("Maximum number of vendors to return (default: 20)", 20),
			},
			AdditionalProperties: false,
		},
	}
}

func (t *getVendorsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args topArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs()
		}
	}

	vendors, err := t.store.Vendors(ctx, args.Top)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Business Central Vendors (showing %d results)\n", len(vendors))
	for _, v := range vendors {
		fmt.Fprintf(&b, "\n- %s (ID: %s)\n  City: %s\n  Phone: %s\n",
			fieldString(v, "displayName"),
			fieldString(v, "id"),
			fieldString(v, "address.city", "city"),
			fieldString(v, "phoneNumber"),
		)
	}
	return listResult(strings.TrimSpace(b.String()), vendors), nil
}
