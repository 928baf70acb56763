package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"GiftChart/internal/model"
)

type fakeAuth struct {
	token       string
	err         error
	invalidated int
}

func (a *fakeAuth) Token(context.Context) (string, error) { return a.token, a.err }
func (a *fakeAuth) Invalidate()                           { a.invalidated++ }

func newTestFetcher(t *testing.T, h http.HandlerFunc, auth Authenticator) *PortalsFetcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewPortalsFetcher(PortalsConfig{
		BaseURL:         srv.URL,
		HistoryLimit:    50,
		RateLimitPerSec: 1000,
		HTTPClient:      srv.Client(),
	}, auth)
}

func TestPortalsFetcher_FetchListings(t *testing.T) {
	var got *http.Request
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"actions":[
			{"price":"12.5","listed_at":"2024-05-01T10:00:00.000000Z"},
			{"price":9,"listed_at":"2024-05-01T11:00:00.000000Z"},
			{"price":null,"listed_at":"2024-05-01T11:30:00.000000Z"}
		]}`))
	}, &fakeAuth{token: "abc"})

	events, err := f.FetchListings(context.Background(), "Plush Pepe")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Price != "12.5" || events[1].Price != "9" || events[2].Price != "" {
		t.Errorf("unexpected prices %q %q %q", events[0].Price, events[1].Price, events[2].Price)
	}

	if got.URL.Path != "/market/actions/" {
		t.Errorf("unexpected path %s", got.URL.Path)
	}
	q := got.URL.Query()
	if q.Get("gift_names") != "Plush Pepe" || q.Get("sort_by") != "price asc" ||
		q.Get("action_types") != "listing" || q.Get("limit") != "50" || q.Get("offset") != "0" {
		t.Errorf("unexpected query %s", got.URL.RawQuery)
	}
	if h := got.Header.Get("Authorization"); h != "tma abc" {
		t.Errorf("unexpected auth header %q", h)
	}
}

func TestPortalsFetcher_FetchCurrentPrice(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("current price should ask for one listing, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"actions":[{"price":"7.25","listed_at":"2024-05-01T10:00:00.000000Z"}]}`))
	}, &fakeAuth{token: "abc"})

	price, err := f.FetchCurrentPrice(context.Background(), "Plush Pepe")
	if err != nil {
		t.Fatal(err)
	}
	if price != 7.25 {
		t.Errorf("expected 7.25, got %v", price)
	}
}

func TestPortalsFetcher_NoCurrentListing(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"actions":[]}`))
	}, &fakeAuth{token: "abc"})

	if _, err := f.FetchCurrentPrice(context.Background(), "Plush Pepe"); !errors.Is(err, model.ErrNoCurrentPrice) {
		t.Errorf("expected ErrNoCurrentPrice, got %v", err)
	}
}

func TestPortalsFetcher_Unauthorized(t *testing.T) {
	auth := &fakeAuth{token: "stale"}
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, auth)

	_, err := f.FetchListings(context.Background(), "Plush Pepe")
	if !errors.Is(err, model.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
	if auth.invalidated != 1 {
		t.Errorf("expected session invalidation, got %d", auth.invalidated)
	}
}

func TestPortalsFetcher_Failures(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
		auth *fakeAuth
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, &fakeAuth{token: "abc"}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}, &fakeAuth{token: "abc"}},
		{"no session", func(w http.ResponseWriter, r *http.Request) {
			t.Error("request sent without a session")
		}, &fakeAuth{err: errors.New("no auth data")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, tt.h, tt.auth)
			if _, err := f.FetchListings(context.Background(), "x"); !errors.Is(err, model.ErrSourceUnavailable) {
				t.Errorf("expected ErrSourceUnavailable, got %v", err)
			}
			if tt.auth.invalidated != 0 {
				t.Error("non-auth failure should not invalidate the session")
			}
		})
	}
}

func TestRawPrice(t *testing.T) {
	tests := map[string]string{
		`"1.5"`: "1.5",
		`2`:     "2",
		`3.75`:  "3.75",
		`null`:  "",
		``:      "",
		`true`:  "true",
	}
	for in, want := range tests {
		if got := rawPrice([]byte(in)); got != want {
			t.Errorf("rawPrice(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPortalsFetcher_DefaultHistoryQuery(t *testing.T) {
	if got := PortalsConfigDefaults().HistoryLimit; got != DefaultHistoryLimit {
		t.Errorf("default history limit = %d", got)
	}
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"actions":[]}`))
	}))
	defer srv.Close()

	f := NewPortalsFetcher(PortalsConfig{BaseURL: srv.URL, HTTPClient: srv.Client()}, &fakeAuth{token: "abc"})
	if _, err := f.FetchListings(context.Background(), "Plush Pepe"); err != nil {
		t.Fatal(err)
	}
	if query.Get("limit") != "1000000" || query.Get("sort_by") != "price asc" {
		t.Errorf("unexpected default history query %s", query.Encode())
	}
}
