/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"context"
	"strings"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/tshstats/internal"
)

func TestS3Cache(t *testing.T) {
	cache := New(context.Background(), Options{
		Bucket:    internal.WebCacheBucket,
		Prefix:    internal.WebCachePrefix + "-test",
		LogErrors: true,
	})
	if err := cache.Init(); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err)
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	cache := New(context.Background(), Options{
		Bucket:    internal.WebCacheBucket,
		Prefix:    internal.WebCachePrefix + "-test",
		Gzip:      true,
		LogErrors: true,
	})
	if err := cache.Init(); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err)
	}

	test.Cache(t, cache)
}

func TestObjectKey(t *testing.T) {
	cases := []struct {
		name       string
		opts       Options
		wantPrefix string
		wantSuffix string
	}{
		{name: "default prefix", opts: Options{Bucket: "b"},
			wantPrefix: "/s3cache/"},
		{name: "custom prefix trimmed", opts: Options{Bucket: "b", Prefix: "/tsh/"},
			wantPrefix: "/tsh/"},
		{name: "gzip suffix", opts: Options{Bucket: "b", Gzip: true},
			wantPrefix: "/s3cache/", wantSuffix: ".gz"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cache := New(context.Background(), c.opts)
			key := cache.ObjectKey("https://example.com/tourney.js")
			if !strings.HasPrefix(key, c.wantPrefix) {
				t.Errorf("ObjectKey = %q; want prefix %q", key, c.wantPrefix)
			}
			if c.wantSuffix != "" && !strings.HasSuffix(key, c.wantSuffix) {
				t.Errorf("ObjectKey = %q; want suffix %q", key, c.wantSuffix)
			}
			if key != cache.ObjectKey("https://example.com/tourney.js") {
				t.Errorf("ObjectKey not stable")
			}
			if key == cache.ObjectKey("https://example.com/other.js") {
				t.Errorf("distinct keys collided")
			}
		})
	}
}

func TestInitRequiresBucket(t *testing.T) {
	cache := New(context.Background(), Options{})
	if err := cache.Init(); err == nil {
		t.Fatalf("expected Init to fail without a bucket")
	}
}
