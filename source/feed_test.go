package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ByLCY/newscard/seen"
)

const articles = `{
  "data": {
    "articles": [
      {"id": "a1", "title": "Markets rally"},
      {"id": 2, "title": "Rates hold"},
      {"id": "a3", "title": "Storm warning"}
    ]
  }
}`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchItems(t *testing.T) {
	ts := serve(t, articles)
	feed, err := NewFeed(Options{URL: ts.URL, ItemsPath: "data.articles", IDPath: "id"}, seen.NewMemory(time.Hour, nil))
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	items, err := feed.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "a1" || items[1].ID != "2" {
		t.Fatalf("unexpected ids %q %q", items[0].ID, items[1].ID)
	}
	if m, ok := items[2].Data.(map[string]any); !ok || m["title"] != "Storm warning" {
		t.Fatalf("item data not preserved: %v", items[2].Data)
	}
}

func TestFreshSkipsSeen(t *testing.T) {
	ts := serve(t, articles)
	store := seen.NewMemory(time.Hour, nil)
	feed, err := NewFeed(Options{URL: ts.URL, ItemsPath: "data.articles", IDPath: "id"}, store)
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	ctx := context.Background()
	if err := feed.Mark(ctx, "a1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	fresh, err := feed.Fresh(ctx)
	if err != nil {
		t.Fatalf("fresh: %v", err)
	}
	if len(fresh) != 2 || fresh[0].ID != "2" || fresh[1].ID != "a3" {
		t.Fatalf("unexpected fresh items %+v", fresh)
	}
	// Fresh 不会自动标记
	again, _ := feed.Fresh(ctx)
	if len(again) != 2 {
		t.Fatalf("Fresh must not mark items, got %d", len(again))
	}
}

func TestSingleObjectDocument(t *testing.T) {
	ts := serve(t, `{"id": "solo", "title": "Only one"}`)
	feed, err := NewFeed(Options{URL: ts.URL, IDPath: "id"}, seen.NewMemory(0, nil))
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	items, err := feed.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 1 || items[0].ID != "solo" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestFetchErrors(t *testing.T) {
	ts := serve(t, `{"data": {"articles": [{"title": "no id"}]}}`)
	feed, _ := NewFeed(Options{URL: ts.URL, ItemsPath: "data.articles", IDPath: "id"}, seen.NewMemory(0, nil))
	if _, err := feed.Fetch(context.Background()); err == nil {
		t.Fatalf("expected missing id error")
	}

	bad := serve(t, `not json`)
	feed, _ = NewFeed(Options{URL: bad.URL, IDPath: "id"}, seen.NewMemory(0, nil))
	if _, err := feed.Fetch(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}

	if _, err := NewFeed(Options{IDPath: "id"}, seen.NewMemory(0, nil)); err == nil {
		t.Fatalf("expected missing url error")
	}
	if _, err := NewFeed(Options{URL: "http://x", IDPath: "id"}, nil); err == nil {
		t.Fatalf("expected missing store error")
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(articles))
	}))
	defer ts.Close()

	feed, err := NewFeed(Options{URL: ts.URL, ItemsPath: "data.articles", IDPath: "id", RetryMax: 2}, seen.NewMemory(0, nil))
	if err != nil {
		t.Fatalf("new feed: %v", err)
	}
	feed.client.RetryWaitMin = time.Millisecond
	feed.client.RetryWaitMax = 5 * time.Millisecond
	items, err := feed.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch after retry: %v", err)
	}
	if len(items) != 3 || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected retry then success, calls=%d items=%d", calls, len(items))
	}
}
