/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/tshstats/internal"
	"github.com/mikeb26/tshstats/s3cache"
)

// Options controls where and for how long responses are cached.
type Options struct {
	// S3 bucket backing the cache; empty selects an in-memory cache
	Bucket string
	Prefix string
	Gzip   bool
	MaxAge time.Duration
}

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If S3 cache initialization fails it falls back to an in-memory
// cache instead of no cache. It also enforces a client-side TTL by rewriting
// origin cache headers.
func NewCachedHttpClient(ctx context.Context, opts Options) *http.Client {
	var cache httpcache.Cache
	if opts.Bucket != "" {
		s3c := s3cache.New(ctx, s3cache.Options{
			Bucket:    opts.Bucket,
			Prefix:    opts.Prefix,
			Gzip:      opts.Gzip,
			LogErrors: true,
		})
		if err := s3c.Init(); err != nil {
			log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache", err)
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return newClient(cache, opts.MaxAge, http.DefaultTransport)
}

func newClient(cache httpcache.Cache, maxAge time.Duration,
	rt http.RoundTripper) *http.Client {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", internal.UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
