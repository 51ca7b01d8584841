/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bracketview.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.FeedURL != DefaultFeedURL {
		t.Errorf("FeedURL = %q; want %q", cfg.FeedURL, DefaultFeedURL)
	}
	if cfg.Dimensions.MatchHeight != 80 || cfg.Dimensions.VerticalSpacing != 20 {
		t.Errorf("unexpected default dimensions %+v", cfg.Dimensions)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
feed_url: http://localhost:9000/matches
timeout: 3s
stages: [ROUND_OF_16, QUATER_FINAL, SEMI_FINAL, FINAL]
dimensions:
  match_height: 60
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.FeedURL != "http://localhost:9000/matches" {
		t.Errorf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v; want 3s", cfg.Timeout)
	}
	if len(cfg.Stages) != 4 {
		t.Errorf("Stages = %v; want 4 entries", cfg.Stages)
	}
	if cfg.Dimensions.MatchHeight != 60 {
		t.Errorf("MatchHeight = %v; want 60", cfg.Dimensions.MatchHeight)
	}
	// untouched fields keep their defaults
	if cfg.Dimensions.MatchWidth != 150 {
		t.Errorf("MatchWidth = %v; want 150", cfg.Dimensions.MatchWidth)
	}
	if cfg.CacheBucket != WebCacheBucket {
		t.Errorf("CacheBucket = %q; want default", cfg.CacheBucket)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "feed_url: [unterminated"},
		{name: "negative dimension", body: "dimensions:\n  match_width: -1\n"},
		{name: "duplicate stage", body: "stages: [FINAL, FINAL]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, c.body)); err == nil {
				t.Errorf("%s: expected error", c.name)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null", "  "} {
		got, err := ParseDateOrZero(s)
		if err != nil || !got.IsZero() {
			t.Errorf("ParseDateOrZero(%q) = %v, %v; want zero, nil", s, got, err)
		}
	}
	got, err := ParseDateOrZero("2024-07-14 21:00:00")
	if err != nil {
		t.Fatalf("ParseDateOrZero returned error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.July || got.Day() != 14 {
		t.Errorf("unexpected parsed date %v", got)
	}
}
