package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getCustomerDetailsTool fetches a single customer by ID.
type getCustomerDetailsTool struct {
	store *bc.Adapter
}

// GetCustomerDetails constructs the customer detail tool.
func GetCustomerDetails(store *bc.Adapter) *getCustomerDetailsTool {
	return &getCustomerDetailsTool{store: store}
}

func (t *getCustomerDetailsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_customer_details",
		Description: "Get detailed information about a specific customer",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"customer_id": {Type: "string", Description: "Customer unique ID"},
			},
			Required:             []string{"customer_id"},
			AdditionalProperties: false,
		},
	}
}

type customerDetailsArgs struct {
	CustomerID string `json:"customer_id"`
}

func (t *getCustomerDetailsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args customerDetailsArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return protocol.CallResult{}, invalidArgs()
	}

	customer, err := t.store.CustomerByID(ctx, args.CustomerID)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	summary := fmt.Sprintf(
		"Customer Details\n\nName: %s\nID: %s\nPhone: %s\nEmail: %s\nAddress: %s, %s\nCountry: %s",
		fieldString(customer, "displayName"),
		fieldString(customer, "id"),
		fieldString(customer, "phoneNumber"),
		fieldString(customer, "email"),
		fieldString(customer, "address.street", "street"),
		fieldString(customer, "address.city", "city"),
		fieldString(customer, "address.countryLetterCode", "country"),
	)
	return detailResult(summary, customer), nil
}
