/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package feed is the live Match Source: it fetches the knockout match list
 * from a JSON endpoint, falling back to an HTML fixtures table, and builds a
 * bracket from it.
 */
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/internal"
)

// ErrNoData means the endpoint answered but has nothing to show yet: status
// false, or status/data missing from the envelope.
var ErrNoData = errors.New("feed has no match data yet")

type Client struct {
	URL     string
	HTMLURL string
	Order   bracket.StageOrder

	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithURL(url string) Option {
	return func(c *Client) { c.URL = url }
}

// WithHTMLURL enables the fixtures-table fallback.
func WithHTMLURL(url string) Option {
	return func(c *Client) { c.HTMLURL = url }
}

func WithStageOrder(order bracket.StageOrder) Option {
	return func(c *Client) { c.Order = order }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each fetch; zero disables the client-side bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient returns a feed client. Without WithHTTPClient it uses the
// S3-backed caching client.
func NewClient(ctx context.Context, opts ...Option) *Client {
	c := &Client{
		URL:     internal.DefaultFeedURL,
		Order:   bracket.DefaultStageOrder(),
		timeout: internal.FeedTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		c.httpClient = internal.NewCachedHttpClient(ctx, internal.WebCacheBucket,
			internal.FeedCacheMaxAge)
	}

	return c
}

// Tournament fetches the feed and builds the bracket, satisfying
// bracket.Source.
func (c *Client) Tournament(ctx context.Context) (*bracket.Tournament, error) {
	recs, err := c.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	return bracket.Build(Matches(recs), c.Order), nil
}

// FetchRecords returns the raw match list. When the JSON feed fails and an
// HTML URL is configured the fixtures table is tried next; if that fails too
// the JSON error is returned.
func (c *Client) FetchRecords(ctx context.Context) ([]Record, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	recs, err := c.fetchJSON(ctx)
	if err == nil || c.HTMLURL == "" {
		return recs, err
	}

	log.Printf("feed.fetch: json feed failed: %v; trying %v", err, c.HTMLURL)
	webRecs, webErr := c.fetchHTML(ctx)
	if webErr != nil {
		log.Printf("feed.fetch: html fallback failed: %v", webErr)
		return nil, err
	}

	return webRecs, nil
}

func (c *Client) fetchJSON(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch feed (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch feed (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch %v: http status: %v", c.URL,
			resp.StatusCode)
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("unable to parse feed: %w", err)
	}
	if env.Status == nil || !*env.Status || env.Data == nil {
		return nil, ErrNoData
	}

	return *env.Data, nil
}
