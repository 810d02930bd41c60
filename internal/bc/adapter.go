package bc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RemoteSource is the live API surface the adapter fetches from.
type RemoteSource interface {
	List(ctx context.Context, collection string, q Query) ([]Record, error)
	Get(ctx context.Context, resource string) (Record, error)
}

// StaticSource is the local sample-data surface used in mock mode and as
// the per-invocation fallback when the remote call fails.
type StaticSource interface {
	Records(entity string, top int) []map[string]any
	Record(entity, field, value string) (map[string]any, bool)
}

// CredentialState reports whether the remote source is usable at all.
type CredentialState interface {
	Authenticated() bool
}

// Adapter fetches domain records, preferring the remote source and falling
// back to sample data. Each invocation routes independently: a remote
// failure is never cached, so the next call re-attempts the API.
type Adapter struct {
	remote RemoteSource
	static StaticSource
	creds  CredentialState
	log    *logrus.Entry
}

// NewAdapter wires the adapter with both sources and the credential state.
func NewAdapter(remote RemoteSource, static StaticSource, creds CredentialState, log *logrus.Entry) *Adapter {
	return &Adapter{remote: remote, static: static, creds: creds, log: log}
}

// Customers lists up to top customers.
func (a *Adapter) Customers(ctx context.Context, top int) ([]Record, error) {
	return a.list(ctx, "customers", Query{Top: top})
}

// CustomerByID fetches one customer by its unique ID.
func (a *Adapter) CustomerByID(ctx context.Context, id string) (Record, error) {
	return a.detail(ctx, "customers", fmt.Sprintf("customers(%s)", id), "id", id)
}

// Items lists up to top items.
func (a *Adapter) Items(ctx context.Context, top int) ([]Record, error) {
	return a.list(ctx, "items", Query{Top: top})
}

// ItemByNumber fetches one item by its item number. The API rejects direct
// access by number, so the remote path queries with a filter.
func (a *Adapter) ItemByNumber(ctx context.Context, number string) (Record, error) {
	if !a.creds.Authenticated() {
		return a.staticDetail("items", "number", number)
	}
	recs, err := a.remote.List(ctx, "items", Query{Top: 1, Filter: fmt.Sprintf("number eq '%s'", number)})
	if err != nil {
		a.logFallback("items", err)
		return a.staticDetail("items", "number", number)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("item %q not found", number)
	}
	return recs[0], nil
}

// SalesOrders lists up to top sales orders.
func (a *Adapter) SalesOrders(ctx context.Context, top int) ([]Record, error) {
	return a.list(ctx, "salesOrders", Query{Top: top})
}

// CurrencyExchangeRates lists exchange rates, optionally for one currency.
func (a *Adapter) CurrencyExchangeRates(ctx context.Context, top int, currencyCode string) ([]Record, error) {
	q := Query{Top: top}
	if currencyCode != "" {
		q.Filter = fmt.Sprintf("currencyCode eq '%s'", currencyCode)
	}

	if !a.creds.Authenticated() {
		rates := a.staticList("currencyExchangeRates", 0)
		if currencyCode != "" {
			rates = filterByField(rates, "currencyCode", currencyCode)
		}
		return truncate(rates, top), nil
	}

	recs, err := a.remote.List(ctx, "currencyExchangeRates", q)
	if err != nil {
		a.logFallback("currencyExchangeRates", err)
		rates := a.staticList("currencyExchangeRates", 0)
		if currencyCode != "" {
			rates = filterByField(rates, "currencyCode", currencyCode)
		}
		return truncate(rates, top), nil
	}
	return recs, nil
}

// Vendors lists up to top vendors.
func (a *Adapter) Vendors(ctx context.Context, top int) ([]Record, error) {
	return a.list(ctx, "vendors", Query{Top: top})
}

// list implements the routing policy for collection fetches. Exactly one
// source runs per invocation; sample data never fails, it only runs dry.
func (a *Adapter) list(ctx context.Context, collection string, q Query) ([]Record, error) {
	if !a.creds.Authenticated() {
		if a.log != nil {
			a.log.WithField("entity", collection).Info("no credentials, serving sample data")
		}
		return a.staticList(collection, q.Top), nil
	}

	recs, err := a.remote.List(ctx, collection, q)
	if err != nil {
		a.logFallback(collection, err)
		return a.staticList(collection, q.Top), nil
	}
	return recs, nil
}

func (a *Adapter) detail(ctx context.Context, entity, resource, field, value string) (Record, error) {
	if !a.creds.Authenticated() {
		return a.staticDetail(entity, field, value)
	}

	rec, err := a.remote.Get(ctx, resource)
	if err != nil {
		a.logFallback(entity, err)
		return a.staticDetail(entity, field, value)
	}
	return rec, nil
}

func (a *Adapter) staticList(entity string, top int) []Record {
	return a.static.Records(entity, top)
}

func (a *Adapter) staticDetail(entity, field, value string) (Record, error) {
	rec, ok := a.static.Record(entity, field, value)
	if !ok {
		return nil, fmt.Errorf("%s with %s %q not found", entity, field, value)
	}
	return rec, nil
}

func (a *Adapter) logFallback(entity string, err error) {
	if a.log != nil {
		a.log.WithField("entity", entity).Warnf("remote fetch failed, serving sample data: %v", err)
	}
}

func filterByField(recs []Record, field, value string) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if v, ok := rec[field].(string); ok && v == value {
			out = append(out, rec)
		}
	}
	return out
}

func truncate(recs []Record, top int) []Record {
	if top > 0 && len(recs) > top {
		return recs[:top]
	}
	return recs
}
