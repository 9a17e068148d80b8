/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/tshstats/internal"
)

// Client retrieves tourney.js documents, either directly or by way of the
// HTML results page that loads them.
type Client struct {
	httpClient *http.Client
	marker     string
}

// NewClient returns a Client using httpClient for retrieval (typically one
// from httpcache.NewCachedHttpClient). An empty marker means DefaultMarker.
func NewClient(httpClient *http.Client, marker string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if marker == "" {
		marker = DefaultMarker
	}

	return &Client{
		httpClient: httpClient,
		marker:     marker,
	}
}

// GetResults loads source, which is either an http(s) URL or a local file
// path, and runs Analyze over it.
func (client *Client) GetResults(ctx context.Context,
	source string) (*Results, error) {

	var text string
	var err error
	if isURL(source) {
		text, err = client.FetchDocument(ctx, source)
	} else {
		text, err = LoadFile(source)
	}
	if err != nil {
		return nil, err
	}

	return Analyze(ctx, text, client.marker)
}

// LoadFile reads a tourney.js document from disk.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read %v: %w", path, err)
	}

	return string(data), nil
}

// FetchDocument returns the text holding the tournament object found at
// docURL. When docURL serves an HTML results page, the inline script
// containing the marker is returned, or failing that the first linked
// script that contains it.
func (client *Client) FetchDocument(ctx context.Context,
	docURL string) (string, error) {

	body, finalURL, contentType, err := client.get(ctx, docURL)
	if err != nil {
		return "", err
	}
	if !looksLikeHTML(contentType, body) {
		return string(body), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("unable to parse %v: %w", docURL, err)
	}

	markerName := strings.TrimSpace(strings.TrimSuffix(client.marker, "="))
	var inline string
	var srcs []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			srcs = append(srcs, src)
			return
		}
		if inline == "" && strings.Contains(s.Text(), markerName) {
			inline = s.Text()
		}
	})
	if inline != "" {
		return inline, nil
	}

	for _, src := range srcs {
		scriptURL, err := finalURL.Parse(src)
		if err != nil {
			log.Printf("tsh.fetch: skipping bad script src %q: %v", src, err)
			continue
		}
		script, _, _, err := client.get(ctx, scriptURL.String())
		if err != nil {
			log.Printf("tsh.fetch: skipping script %v: %v", scriptURL, err)
			continue
		}
		if strings.Contains(string(script), markerName) {
			return string(script), nil
		}
	}

	// let the extractor report the missing marker
	return string(body), nil
}

func (client *Client) get(ctx context.Context,
	docURL string) ([]byte, *url.URL, string, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", docURL, nil)
	if err != nil {
		return nil, nil, "", fmt.Errorf("unable to fetch %v (new): %w", docURL,
			err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, nil, "", fmt.Errorf("unable to fetch %v (do): %w", docURL,
			err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, "", fmt.Errorf("status %d fetching %s",
			resp.StatusCode, docURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, "", fmt.Errorf("unable to read %v: %w", docURL, err)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return body, finalURL, resp.Header.Get("Content-Type"), nil
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("<"))
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}
