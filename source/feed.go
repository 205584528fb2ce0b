// Package source fetches upstream article documents and hands back the items
// that have not been turned into cards yet.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/ByLCY/newscard/binding"
	"github.com/ByLCY/newscard/seen"
)

// Item is one upstream document with its identifier.
type Item struct {
	ID   string
	Data any
}

// Options configures a Feed.
type Options struct {
	URL       string
	ItemsPath string // path to the item array inside the document; empty means the root
	IDPath    string // path to each item's identifier
	RetryMax  int
	Timeout   time.Duration
}

// Feed fetches items over HTTP with retries and filters them through a seen store.
type Feed struct {
	opts   Options
	client *retryablehttp.Client
	seen   seen.Store
}

// NewFeed creates a feed. The seen store is required.
func NewFeed(opts Options, store seen.Store) (*Feed, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("source: 缺少 URL")
	}
	if opts.IDPath == "" {
		return nil, fmt.Errorf("source: 缺少 id 路径")
	}
	if store == nil {
		return nil, fmt.Errorf("source: 缺少 seen store")
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	if opts.RetryMax > 0 {
		client.RetryMax = opts.RetryMax
	}
	client.HTTPClient.Timeout = 10 * time.Second
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	client.Logger = nil // suppress retryablehttp's default logging
	return &Feed{opts: opts, client: client, seen: store}, nil
}

// Fetch downloads the document and returns every item in it.
func (f *Feed) Fetch(ctx context.Context) ([]Item, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: 构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: 请求 %s 失败: %w", f.opts.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: %s 返回状态 %d", f.opts.URL, resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("source: 解析 JSON 失败: %w", err)
	}
	return f.items(doc)
}

// Fresh returns the fetched items whose ids are not in the seen store.
// Items are not marked; call Mark once an item's card has been written.
func (f *Feed) Fresh(ctx context.Context) ([]Item, error) {
	items, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	fresh := items[:0]
	for _, it := range items {
		ok, err := f.seen.Seen(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			fresh = append(fresh, it)
		}
	}
	return fresh, nil
}

// Mark records id in the seen store.
func (f *Feed) Mark(ctx context.Context, id string) error {
	return f.seen.Mark(ctx, id)
}

func (f *Feed) items(doc any) ([]Item, error) {
	raw, ok := binding.Resolve(doc, f.opts.ItemsPath)
	if !ok {
		return nil, fmt.Errorf("source: 文档中没有 %q", f.opts.ItemsPath)
	}
	list, ok := raw.([]any)
	if !ok {
		// 单个对象视为只有一项
		list = []any{raw}
	}
	items := make([]Item, 0, len(list))
	for i, entry := range list {
		id, ok := binding.Resolve(entry, f.opts.IDPath)
		if !ok {
			return nil, fmt.Errorf("source: 第 %d 项缺少 %q", i, f.opts.IDPath)
		}
		items = append(items, Item{ID: binding.Format(id), Data: entry})
	}
	return items, nil
}
