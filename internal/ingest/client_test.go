package ingest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFixturesByDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apisports-key"); got != "secret" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.URL.Query().Get("date"); got != "2026-09-01" {
			t.Errorf("date param = %q", got)
		}
		if got := r.URL.Query().Get("timezone"); got != "Europe/Belgrade" {
			t.Errorf("timezone param = %q", got)
		}
		w.Write([]byte(`{"response": [` + fixtureJSON + `]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret", Timezone: "Europe/Belgrade"}, testLogger())
	fixtures, err := c.FixturesByDate(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("FixturesByDate: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].FixtureID != 5001 {
		t.Fatalf("fixtures = %+v", fixtures)
	}
}

func TestClientRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"response": []}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "secret",
		Retries:    2,
		RetryDelay: time.Millisecond,
	}, testLogger())

	if _, err := c.FixturesByDate(context.Background(), "2026-09-01"); err != nil {
		t.Fatalf("expected success on the final attempt: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "secret",
		Retries:    2,
		RetryDelay: time.Millisecond,
	}, testLogger())

	if _, err := c.FixturesByDate(context.Background(), "2026-09-01"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want initial attempt plus 2 retries", got)
	}
}

func TestResultsByDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": [
			{"fixture": {"id": 1, "status": {"short": "FT"}}, "goals": {"home": 2, "away": 1}},
			{"fixture": {"id": 2, "status": {"short": "NS"}}, "goals": {"home": null, "away": null}},
			{"fixture": {"id": 3, "status": {"short": "AET"}, "date": ""}, "goals": {"home": 0, "away": 0}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret"}, testLogger())
	scores, err := c.ResultsByDate(context.Background(), "2026-08-31")
	if err != nil {
		t.Fatalf("ResultsByDate: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("scores = %+v, want finished fixtures only", scores)
	}
	if s := scores[1]; s.Home != 2 || s.Away != 1 {
		t.Errorf("score 1 = %+v", s)
	}
	if s := scores[3]; s.Total() != 0 {
		t.Errorf("score 3 total = %d, want 0", s.Total())
	}
}
