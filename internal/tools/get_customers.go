package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getCustomersTool lists customers from Business Central.
type getCustomersTool struct {
	store *bc.Adapter
}

// GetCustomers constructs the customer list tool.
func GetCustomers(store *bc.Adapter) *getCustomersTool {
	return &getCustomersTool{store: store}
}

func (t *getCustomersTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_customers",
		Description: "Get customer list from Business Central",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"top": topProperty("Maximum number of customers to return (default: 20)", 20),
			},
			AdditionalProperties: false,
		},
	}
}

func (t *getCustomersTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args topArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs()
		}
	}

	customers, err := t.store.Customers(ctx, args.Top)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Business Central Customers (showing %d results)\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(&b, "\n- %s (ID: %s)\n  City: %s\n  Phone: %s\n",
			fieldString(c, "displayName"),
			fieldString(c, "id"),
			fieldString(c, "address.city", "city"),
			fieldString(c, "phoneNumber"),
		)
	}
	return listResult(strings.TrimSpace(b.String()), customers), nil
}
