/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package view

import (
	"context"
	"fmt"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/feed"
	"github.com/mikeb26/bracketview/internal"
	"github.com/mikeb26/bracketview/layout"
)

const (
	SourceStatic = "static"
	SourceFeed   = "feed"
)

// NewSource returns the named Match Source configured from cfg. The feed
// source uses the S3-backed HTTP cache in cfg.CacheBucket.
func NewSource(ctx context.Context, kind string, cfg internal.Config) (bracket.Source, error) {
	switch kind {
	case SourceStatic:
		return bracket.NewStaticSource(bracket.DefaultStaticTable()), nil
	case SourceFeed:
		opts := []feed.Option{
			feed.WithURL(cfg.FeedURL),
			feed.WithStageOrder(bracket.StageOrderFromStrings(cfg.Stages)),
			feed.WithTimeout(cfg.Timeout),
			feed.WithHTTPClient(internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
				cfg.CacheMaxAge)),
		}
		if cfg.HTMLURL != "" {
			opts = append(opts, feed.WithHTMLURL(cfg.HTMLURL))
		}
		return feed.NewClient(ctx, opts...), nil
	}

	return nil, fmt.Errorf("unknown source %q (want %v or %v)", kind, SourceStatic,
		SourceFeed)
}

// Dimensions converts the configured card geometry.
func Dimensions(cfg internal.Config) layout.Dimensions {
	d := cfg.Dimensions
	return layout.Dimensions{
		MatchWidth:        d.MatchWidth,
		MatchHeight:       d.MatchHeight,
		VerticalSpacing:   d.VerticalSpacing,
		HorizontalSpacing: d.HorizontalSpacing,
	}
}
