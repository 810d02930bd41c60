package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getSalesOrdersTool lists sales orders from Business Central.
type getSalesOrdersTool struct {
	store *bc.Adapter
}

// GetSalesOrders constructs the sales order list tool.
func GetSalesOrders(store *bc.Adapter) *getSalesOrdersTool {
	return &getSalesOrdersTool{store: store}
}

func (t *getSalesOrdersTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_sales_orders",
		Description: "Get sales orders from Business Central",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"top": topProperty("Maximum number of orders to return (default: 10)", 10),
			},
			AdditionalProperties: false,
		},
	}
}

func (t *getSalesOrdersTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args topArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs()
		}
	}

	orders, err := t.store.SalesOrders(ctx, args.Top)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sales Orders (showing %d results)\n", len(orders))
	for _, order := range orders {
		fmt.Fprintf(&b, "\n- Order %s - Customer: %s\n  Total: %s\n  Date: %s\n",
			fieldString(order, "number"),
			fieldString(order, "customerName"),
			fieldString(order, "totalAmountIncludingTax"),
			fieldString(order, "orderDate"),
		)
	}
	return listResult(strings.TrimSpace(b.String()), orders), nil
}
