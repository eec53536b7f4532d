package venue

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"
)

// Fetcher retrieves a page and returns its readable text content.
type Fetcher interface {
	Get(ctx context.Context, pageURL string) (string, error)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// StaticFetcher fetches pages with a plain HTTP client and a rotating
// user agent, then reduces the HTML to readable text. Safe for
// concurrent use.
type StaticFetcher struct {
	client *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStaticFetcher creates a static page fetcher. TLS verification is
// relaxed only on this fetcher's transport when insecure is true.
func NewStaticFetcher(timeout time.Duration, insecure bool) *StaticFetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{}
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &StaticFetcher{
		client: &http.Client{Timeout: timeout, Transport: transport},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get fetches pageURL and returns its readable text.
func (f *StaticFetcher) Get(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	agent := userAgents[f.rng.Intn(len(userAgents))]
	f.mu.Unlock()
	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}
	return pageText(string(body), pageURL), nil
}

// HeadlessFetcher renders pages in a headless browser before text
// extraction, for result pages that come back empty statically.
type HeadlessFetcher struct {
	Timeout time.Duration
}

// Get navigates to pageURL headlessly and returns its readable text.
func (f HeadlessFetcher) Get(ctx context.Context, pageURL string) (string, error) {
	if strings.TrimSpace(pageURL) == "" {
		return "", errors.New("invalid url")
	}
	timeout := f.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent(userAgents[0]),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return pageText(html, pageURL), nil
}

// pageText extracts readable text from HTML, falling back to the raw
// HTML when readability cannot parse the page. The address and phone
// patterns work on either.
func pageText(html, pageURL string) string {
	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(pageURL))
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		return html
	}
	return article.TextContent
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
