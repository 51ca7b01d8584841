/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/bracketview/feed"
	"github.com/mikeb26/bracketview/internal"
)

// this program exists just to seed the http cache with the knockout feed and
// every team flag it references

// flag hosts throttle aggressive clients
const maxParallelFetches = 4

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	feedClient := feed.NewClient(ctx,
		feed.WithURL(cfg.FeedURL),
		feed.WithHTMLURL(cfg.HTMLURL),
		feed.WithTimeout(cfg.Timeout),
		feed.WithHTTPClient(internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
			cfg.CacheMaxAge)))
	recs, err := feedClient.FetchRecords(ctx)
	if err != nil {
		log.Fatalf("Error fetching feed: %v", err)
	}
	fmt.Printf("seeded feed (%v matches)\n", len(recs))

	flags := flagURLs(recs)
	if len(flags) == 0 {
		fmt.Println("no flags referenced by the feed")
		return
	}
	flagClient := internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
		internal.FlagCacheMaxAge)

	var eg errgroup.Group
	eg.SetLimit(maxParallelFetches)
	for _, url := range flags {
		eg.Go(func() error {
			if err := seedOne(ctx, flagClient, url); err != nil {
				// best effort
				log.Printf("cacheseed: %v", err)
				return nil
			}
			fmt.Printf("seeded %v\n", url)
			return nil
		})
	}
	_ = eg.Wait()
}

// flagURLs returns each distinct remote flag once, in feed order.
func flagURLs(recs []feed.Record) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, r := range recs {
		for _, f := range []string{r.HomeTeam.Flag, r.AwayTeam.Flag} {
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			urls = append(urls, f)
		}
	}
	return urls
}

func seedOne(ctx context.Context, hc *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (new): %w", url, err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (do): %w", url, err)
	}
	defer resp.Body.Close()

	// httpcache only stores a response once its body is fully read
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("unable to read %v: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to fetch %v: http status: %v", url, resp.StatusCode)
	}
	return nil
}
