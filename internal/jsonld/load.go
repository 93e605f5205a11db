package jsonld

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobposter/internal/network"
)

var pageHeaders = map[string]string{
	"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"accept-language": "en-US,en;q=0.9",
}

// IsURL reports whether source should be fetched rather than read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load parses source as HTML, fetching it with doer when it is a URL.
func Load(ctx context.Context, doer network.Doer, source string) (*goquery.Document, error) {
	if IsURL(source) {
		return FetchDocument(ctx, doer, source)
	}
	return ReadDocument(source)
}

func FetchDocument(ctx context.Context, doer network.Doer, target string) (*goquery.Document, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range pageHeaders {
		req.Header.Set(key, value)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: http %d", target, resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func ReadDocument(path string) (*goquery.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer file.Close()

	return goquery.NewDocumentFromReader(file)
}
