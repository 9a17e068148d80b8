/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent      = "tshstats/0.3.0 (+https://github.com/mikeb26/tshstats)"
	WebCacheBucket = "bopmatic-tshstats-prod-webcache"
	WebCachePrefix = "s3cache"

	// tourney.js is rewritten after every round so keep this short
	DefaultCacheMaxAge = 10 * time.Minute
)
