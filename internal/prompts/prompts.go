// Package prompts holds the analysis prompt templates the server offers
// alongside its tools.
package prompts

import (
	"fmt"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

const customerAnalysisTemplate = `Analyze customer %s from Business Central:

1. Use the get_customer_details tool to retrieve customer information
2. Analyze the customer's purchase history and patterns
3. Identify trends and opportunities
4. Provide actionable insights for account management

Focus on data-driven insights and specific recommendations.`

const vendorAnalysisTemplate = `Analyze vendor %s from Business Central:

1. Use the get_vendors tool to retrieve vendor information
2. Analyze the vendor's performance and reliability
3. Identify trends in purchasing and delivery
4. Provide actionable insights for procurement optimization

Focus on data-driven insights and specific recommendations.`

// Catalog serves the fixed prompt set.
type Catalog struct {
	descriptors []protocol.PromptDescriptor
}

// NewCatalog builds the prompt catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		descriptors: []protocol.PromptDescriptor{
			{
				Name:        "customer_analysis",
				Description: "Detailed customer analysis with Business Central insights",
				Arguments: []protocol.PromptArgument{
					{Name: "customer_id", Description: "Customer ID to analyze", Required: true},
				},
			},
			{
				Name:        "vendor_analysis",
				Description: "Detailed vendor analysis",
				Arguments: []protocol.PromptArgument{
					{Name: "vendor_id", Description: "Vendor ID to analyze", Required: true},
				},
			},
		},
	}
}

// List returns all prompt descriptors in a stable order.
func (c *Catalog) List() []protocol.PromptDescriptor {
	return c.descriptors
}

// Get expands a prompt template with its arguments.
func (c *Catalog) Get(name string, args map[string]string) (protocol.GetPromptResult, *protocol.ResponseError) {
	var text string
	switch name {
	case "customer_analysis":
		text = fmt.Sprintf(customerAnalysisTemplate, args["customer_id"])
	case "vendor_analysis":
		text = fmt.Sprintf(vendorAnalysisTemplate, args["vendor_id"])
	default:
		return protocol.GetPromptResult{}, &protocol.ResponseError{
			Code:    protocol.CodeUnknownOperation,
			Message: fmt.Sprintf("unknown prompt: %s", name),
		}
	}

	return protocol.GetPromptResult{
		Description: fmt.Sprintf("Prompt for %s", name),
		Messages: []protocol.PromptMessage{
			{Role: "user", Content: protocol.ContentPart{Type: "text", Text: text}},
		},
	}, nil
}
