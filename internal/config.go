/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dimensions mirrors layout.Dimensions so the config file can be decoded
// without internal depending on the layout package.
type Dimensions struct {
	MatchWidth        float64 `yaml:"match_width"`
	MatchHeight       float64 `yaml:"match_height"`
	VerticalSpacing   float64 `yaml:"vertical_spacing"`
	HorizontalSpacing float64 `yaml:"horizontal_spacing"`
}

// Config is the optional bracketview.yaml. Zero fields in the file keep the
// compiled defaults.
type Config struct {
	FeedURL        string        `yaml:"feed_url"`
	HTMLURL        string        `yaml:"html_url"`
	CacheBucket    string        `yaml:"cache_bucket"`
	PublishBucket  string        `yaml:"publish_bucket"`
	PublishBaseURL string        `yaml:"publish_base_url"`
	CacheMaxAge    time.Duration `yaml:"cache_max_age"`
	Timeout        time.Duration `yaml:"timeout"`
	Stages         []string      `yaml:"stages"`
	Dimensions     Dimensions    `yaml:"dimensions"`
}

func DefaultConfig() Config {
	return Config{
		FeedURL:        DefaultFeedURL,
		CacheBucket:    WebCacheBucket,
		PublishBucket:  PublishBucket,
		PublishBaseURL: PublishBaseURL,
		CacheMaxAge:    FeedCacheMaxAge,
		Timeout:        FeedTimeout,
		Dimensions: Dimensions{
			MatchWidth:        150,
			MatchHeight:       80,
			VerticalSpacing:   20,
			HorizontalSpacing: 50,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config %v: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %v: %w", path, err)
	}
	cfg.merge(fileCfg)

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %v: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.FeedURL != "" {
		c.FeedURL = o.FeedURL
	}
	if o.HTMLURL != "" {
		c.HTMLURL = o.HTMLURL
	}
	if o.CacheBucket != "" {
		c.CacheBucket = o.CacheBucket
	}
	if o.PublishBucket != "" {
		c.PublishBucket = o.PublishBucket
	}
	if o.PublishBaseURL != "" {
		c.PublishBaseURL = o.PublishBaseURL
	}
	if o.CacheMaxAge != 0 {
		c.CacheMaxAge = o.CacheMaxAge
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if len(o.Stages) > 0 {
		c.Stages = append([]string(nil), o.Stages...)
	}
	if o.Dimensions.MatchWidth != 0 {
		c.Dimensions.MatchWidth = o.Dimensions.MatchWidth
	}
	if o.Dimensions.MatchHeight != 0 {
		c.Dimensions.MatchHeight = o.Dimensions.MatchHeight
	}
	if o.Dimensions.VerticalSpacing != 0 {
		c.Dimensions.VerticalSpacing = o.Dimensions.VerticalSpacing
	}
	if o.Dimensions.HorizontalSpacing != 0 {
		c.Dimensions.HorizontalSpacing = o.Dimensions.HorizontalSpacing
	}
}

func (c Config) validate() error {
	d := c.Dimensions
	if d.MatchWidth < 0 || d.MatchHeight < 0 || d.VerticalSpacing < 0 ||
		d.HorizontalSpacing < 0 {
		return fmt.Errorf("dimensions must be non-negative: %+v", d)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative: %v", c.Timeout)
	}
	seen := make(map[string]bool)
	for _, s := range c.Stages {
		if seen[s] {
			return fmt.Errorf("stage %v listed twice", s)
		}
		seen[s] = true
	}

	return nil
}
