// Package resources exposes the sample data files as readable MCP
// resources.
package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/techspheredynamics/bc-mcp-server/internal/protocol"
)

type entry struct {
	uri         string
	file        string
	name        string
	description string
}

// Catalog maps stable resource URIs to files under the data directory.
type Catalog struct {
	dir     string
	entries []entry
	log     *logrus.Entry
}

// NewCatalog builds the resource catalog for the given data directory.
func NewCatalog(dir string, log *logrus.Entry) *Catalog {
	return &Catalog{
		dir: dir,
		log: log,
		entries: []entry{
			{"file://data/customers.csv", "customers.csv", "Customer Data", "Customer data in CSV format"},
			{"file://data/items.csv", "items.csv", "Item Data", "Item/product data in CSV format"},
			{"file://data/prices.csv", "prices.csv", "Item Prices", "Item price data in CSV format"},
			{"file://data/vendors.csv", "vendors.csv", "Vendor Data", "Vendor data in CSV format"},
			{"file://data/sales_orders.csv", "sales_orders.csv", "Sales Orders", "Sales order data in CSV format"},
			{"file://data/currency_rates.csv", "currency_rates.csv", "Currency Rates", "Currency exchange rates in CSV format"},
		},
	}
}

// List returns all resource descriptors in a stable order.
func (c *Catalog) List() []protocol.ResourceDescriptor {
	list := make([]protocol.ResourceDescriptor, 0, len(c.entries))
	for _, e := range c.entries {
		list = append(list, protocol.ResourceDescriptor{
			URI:         e.uri,
			Name:        e.name,
			Description: e.description,
			MimeType:    "text/csv",
		})
	}
	return list
}

// Read returns the contents of one resource by URI.
func (c *Catalog) Read(uri string) (protocol.ReadResourceResult, *protocol.ResponseError) {
	for _, e := range c.entries {
		if e.uri != uri {
			continue
		}
		path := filepath.Join(c.dir, e.file)
		content, err := os.ReadFile(path)
		if err != nil {
			if c.log != nil {
				c.log.Warnf("read resource %s: %v", uri, err)
			}
			return protocol.ReadResourceResult{}, &protocol.ResponseError{
				Code:    protocol.CodeResourceNotFound,
				Message: fmt.Sprintf("resource unavailable: %s", uri),
			}
		}
		if c.log != nil {
			c.log.Debugf("read resource %s (%d bytes)", uri, len(content))
		}
		return protocol.ReadResourceResult{
			Contents: []protocol.ResourceContents{{URI: uri, MimeType: "text/csv", Text: string(content)}},
		}, nil
	}

	return protocol.ReadResourceResult{}, &protocol.ResponseError{
		Code:    protocol.CodeResourceNotFound,
		Message: fmt.Sprintf("resource not found: %s", uri),
	}
}
