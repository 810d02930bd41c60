// Package mockdata serves sample records from local CSV files. It is the
// fallback of last resort, so it never fails: a missing or unreadable file
// yields an empty record set.
package mockdata

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Files maps entity collection names to their sample files, relative to
// the data directory.
var files = map[string]string{
	"customers":             "customers.csv",
	"items":                 "items.csv",
	"salesOrders":           "sales_orders.csv",
	"currencyExchangeRates": "currency_rates.csv",
	"vendors":               "vendors.csv",
}

// Source reads sample entity data from a directory of CSV files. Files are
// parsed per request; the source holds no mutable state, so concurrent
// reads need no locking.
type Source struct {
	dir string
	log *logrus.Entry
}

// New builds a source rooted at dir.
func New(dir string, log *logrus.Entry) *Source {
	return &Source{dir: dir, log: log}
}

// Records returns up to top rows for the entity, in file order. A top of
// zero or less means no limit. Unknown entities and read failures return
// an empty slice.
func (s *Source) Records(entity string, top int) []map[string]any {
	rows := s.load(entity)
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	return rows
}

// Record returns the first row whose field matches value exactly.
func (s *Source) Record(entity, field, value string) (map[string]any, bool) {
	for _, row := range s.load(entity) {
		if v, ok := row[field].(string); ok && v == value {
			return row, true
		}
	}
	return nil, false
}

func (s *Source) load(entity string) []map[string]any {
	name, ok := files[entity]
	if !ok {
		if s.log != nil {
			s.log.Warnf("no sample file mapped for entity %q", entity)
		}
		return nil
	}
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		if s.log != nil {
			s.log.Debugf("sample file %s unavailable: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil || len(all) < 2 {
		if err != nil && s.log != nil {
			s.log.Warnf("parse %s: %v", path, err)
		}
		return nil
	}

	header := all[0]
	rows := make([]map[string]any, 0, len(all)-1)
	for _, cells := range all[1:] {
		row := make(map[string]any, len(header))
		for i, key := range header {
			if i < len(cells) {
				row[key] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
