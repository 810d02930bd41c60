package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

// getCurrencyRatesTool lists currency exchange rates.
type getCurrencyRatesTool struct {
	store *bc.Adapter
}

// GetCurrencyExchangeRates constructs the currency rates tool.
func GetCurrencyExchangeRates(store *bc.Adapter) *getCurrencyRatesTool {
	return &getCurrencyRatesTool{store: store}
}

func (t *getCurrencyRatesTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_currency_exchange_rates",
		Description: "Get currency exchange rates from Business Central",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"top":           topProperty("Maximum number of rates to return (default: 20)", 20),
				"currency_code": {Type: "string", Description: "Optional currency code filter (e.g. USD, EUR)"},
			},
			AdditionalProperties: false,
		},
	}
}

type currencyRatesArgs struct {
	Top          int    `json:"top"`
	CurrencyCode string `json:"currency_code"`
}

func (t *getCurrencyRatesTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args currencyRatesArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return protocol.CallResult{}, invalidArgs()
		}
	}

	rates, err := t.store.CurrencyExchangeRates(ctx, args.Top, args.CurrencyCode)
	if err != nil {
		return protocol.CallResult{}, upstream(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Currency Exchange Rates (showing %d results)\n", len(rates))
	for _, rate := range rates {
		fmt.Fprintf(&b, "\n- %s - Rate: %s\n  Start date: %s\n",
			fieldString(rate, "currencyCode"),
			fieldString(rate, "relationalExchangeRateAmount", "exchangeRateAmount"),
			fieldString(rate, "startingDate"),
		)
	}
	return listResult(strings.TrimSpace(b.String()), rates), nil
}
