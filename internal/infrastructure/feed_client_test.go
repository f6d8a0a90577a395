package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adsdash/pkg/logger"
)

func newClient(url string) *FeedClient {
	return NewFeedClient(url, 5*time.Second, 100, logger.New("error"))
}

func TestFetchFeedParsesRecords(t *testing.T) {
	body := `[
		{"Date": "6/15/2024", "Core Campaign Name": "Spring", "Ads Campaign Name": "spring-video",
		 "Platform": "Facebook", "Objective": "Impression", "Device Target": "Mobile",
		 "Impression": "1,000", "Click": "50", "Spent": "20", "Budget": "30"},
		{"Date": "6/14/2024", "Core Campaign Name": "Winter"}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	records, err := newClient(srv.URL).FetchFeed(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Campaign != "Spring" || first.AdsName != "spring-video" ||
		first.Device != "Mobile" || first.Impression != "1,000" {
		t.Fatalf("field mapping wrong: %+v", first)
	}
}

func TestFetchFeedNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchFeed(context.Background())
	if err == nil {
		t.Fatalf("expected an error for a 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error should carry the status code, got %v", err)
	}
}

func TestFetchFeedMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).FetchFeed(context.Background()); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func TestFetchFeedContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := newClient(srv.URL).FetchFeed(ctx); err == nil {
		t.Fatalf("expected an error after context timeout")
	}
}

func TestHeaderSessionProvider(t *testing.T) {
	p := NewHeaderSessionProvider()

	if got := p.Current(context.Background()); got != nil {
		t.Fatalf("anonymous context should yield nil identity, got %+v", got)
	}

	ctx := WithIdentity(context.Background(), "u-42", "analyst")
	id := p.Current(ctx)
	if id == nil || id.ID != "u-42" || id.Role != "analyst" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
