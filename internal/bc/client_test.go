package bc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type staticTokens struct {
	token       string
	invalidated atomic.Int64
	issued      atomic.Int64
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	s.issued.Add(1)
	return s.token, nil
}

func (s *staticTokens) Invalidate() {
	s.invalidated.Add(1)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *staticTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &staticTokens{token: "tok-1"}
	c := NewClient(srv.URL, "company-1", tokens, nil)
	c.backoffBase = time.Millisecond
	return c, tokens
}

func TestListSendsTopAndBearer(t *testing.T) {
	var gotTop, gotAuth, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTop = r.URL.Query().Get("$top")
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"value":[{"id":"C1"},{"id":"C2"}]}`)
	})

	recs, err := c.List(context.Background(), "customers", Query{Top: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if gotTop != "20" {
		t.Fatalf("expected $top=20, got %q", gotTop)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("bearer header missing: %q", gotAuth)
	}
	if gotPath != "/companies(company-1)/customers" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestListSendsFilter(t *testing.T) {
	var gotFilter string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("$filter")
		fmt.Fprint(w, `{"value":[]}`)
	})

	if _, err := c.List(context.Background(), "items", Query{Top: 1, Filter: "number eq '1896-S'"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotFilter != "number eq '1896-S'" {
		t.Fatalf("filter not forwarded: %q", gotFilter)
	}
}

func TestListMissingValueField(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"records":[]}`)
	})

	if _, err := c.List(context.Background(), "customers", Query{}); err == nil {
		t.Fatalf("expected error for missing value field")
	}
}

func TestListMalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value": [`)
	})

	if _, err := c.List(context.Background(), "customers", Query{}); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestUnauthorizedInvalidatesAndRetries(t *testing.T) {
	var calls atomic.Int64
	c, tokens := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"value":[{"id":"C1"}]}`)
	})

	recs, err := c.List(context.Background(), "customers", Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected recovery after 401")
	}
	if tokens.invalidated.Load() != 1 {
		t.Fatalf("expected one invalidation, got %d", tokens.invalidated.Load())
	}
}

func TestServerErrorRetriesThenFails(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.List(context.Background(), "customers", Query{}); err == nil {
		t.Fatalf("expected error after exhausted retries")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := c.List(context.Background(), "customers", Query{}); err == nil {
		t.Fatalf("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestGetSingleResource(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companies(company-1)/customers(C1)" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"C1","displayName":"Adatum"}`)
	})

	rec, err := c.Get(context.Background(), "customers(C1)")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec["displayName"] != "Adatum" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
