// Package app wires the gateway's components together. Construction is
// explicit: sources, credential state and the adapter are built once at
// startup and threaded through, with no package-level state.
package app

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/auth"
	"github.com/techspheredynamics/bc-mcp-server/internal/bc"
	"github.com/techspheredynamics/bc-mcp-server/internal/config"
	"github.com/techspheredynamics/bc-mcp-server/internal/mcp"
	"github.com/techspheredynamics/bc-mcp-server/internal/mockdata"
	"github.com/techspheredynamics/bc-mcp-server/internal/prompts"
	"github.com/techspheredynamics/bc-mcp-server/internal/resources"
	"github.com/techspheredynamics/bc-mcp-server/internal/tools"
)

// NewStore builds the Data Access Adapter from configuration: Azure AD
// token manager, Business Central client and CSV fallback source.
func NewStore(cfg config.Config, log *logrus.Entry) *bc.Adapter {
	tokens := auth.NewManager(cfg.AzureAD, log)
	remote := bc.NewClient(cfg.BC.BaseURL, cfg.BC.CompanyID, tokens, log)
	static := mockdata.New(cfg.DataDir, log)
	return bc.NewAdapter(remote, static, cfg, log)
}

// NewToolbox registers the Business Central tools in their advertised
// order.
func NewToolbox(store *bc.Adapter, log *logrus.Entry) *mcp.Toolbox {
	return mcp.NewToolbox(log,
		tools.GetCustomers(store),
		tools.GetItems(store),
		tools.GetSalesOrders(store),
		tools.GetCustomerDetails(store),
		tools.GetItemDetails(store),
		tools.GetCurrencyExchangeRates(store),
		tools.GetVendors(store),
	)
}

// NewServer constructs the MCP server with tools, prompts and resources.
func NewServer(cfg config.Config, log *logrus.Entry) *mcp.Server {
	store := NewStore(cfg, log)
	return mcp.NewServer(
		NewToolbox(store, log),
		prompts.NewCatalog(),
		resources.NewCatalog(cfg.DataDir, log),
	)
}

// RunHTTP starts the MCP HTTP server on the configured address.
func RunHTTP(cfg config.Config, addr string, log *logrus.Entry) error {
	return mcp.RunHTTP(NewServer(cfg, log), addr, log)
}

// RunStdio serves MCP over the given streams until EOF.
func RunStdio(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, log *logrus.Entry) error {
	return mcp.RunStdio(ctx, NewServer(cfg, log), in, out, log)
}
