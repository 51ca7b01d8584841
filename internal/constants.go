/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent       = "bracketview/0.4.0 (+https://github.com/mikeb26/bracketview)"
	DefaultFeedURL  = "https://api.knockoutfeed.net/v1/matches/knockout"
	WebCacheBucket  = "bopmatic-bracketview-prod-webcache"
	PublishBucket   = "bopmatic-bracketview-prod-public"
	PublishBaseURL  = "https://bopmatic-bracketview-prod-public.s3.amazonaws.com"
	FeedCacheMaxAge = 2 * time.Minute
	FlagCacheMaxAge = 30 * 24 * time.Hour
	FeedTimeout     = 15 * time.Second
)
