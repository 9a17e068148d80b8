/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/time/rate"

	"github.com/mikeb26/tshstats/internal/config"
	"github.com/mikeb26/tshstats/internal/httpcache"
	"github.com/mikeb26/tshstats/tsh"
)

// this program exists just to seed the http cache with the tourneys the bot
// is expected to be asked about

func main() {
	configFile := flag.String("config", "config.yaml",
		"Path to the configuration file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("cacheseed: failed to load config: %v", err)
	}

	httpClient := httpcache.NewCachedHttpClient(ctx, httpcache.Options{
		Bucket: cfg.Cache.Bucket,
		Prefix: cfg.Cache.Prefix,
		Gzip:   cfg.Cache.Gzip,
		MaxAge: cfg.Cache.MaxAge,
	})
	client := tsh.NewClient(httpClient, cfg.Source.Marker)

	urls := append(cfg.Seed.URLs, flag.Args()...)
	if cfg.Source.URL != "" {
		urls = append(urls, cfg.Source.URL)
	}
	seeded := seed(ctx, client, newLimiter(cfg.Seed.RequestsPerSecond), urls)
	fmt.Printf("seeded %v of %v tourneys\n", seeded, len(urls))
}

// newLimiter avoids pegging the hosting site
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func seed(ctx context.Context, client *tsh.Client, limiter *rate.Limiter,
	urls []string) int {

	seeded := 0
	seen := make(map[string]bool)
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true

		if err := limiter.Wait(ctx); err != nil {
			log.Printf("cacheseed: %v", err)
			return seeded
		}
		results, err := client.GetResults(ctx, u)
		if err != nil {
			// best effort
			log.Printf("cacheseed: %v: %v", u, err)
			continue
		}

		seeded++
		fmt.Printf("seeded %v (%v divisions)\n", u, len(results.Divisions))
	}

	return seeded
}
