package venue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeFetcher struct {
	pages map[string]string
	urls  []string
}

func (f *fakeFetcher) Get(_ context.Context, u string) (string, error) {
	f.urls = append(f.urls, u)
	for prefix, page := range f.pages {
		if strings.HasPrefix(u, prefix) {
			return page, nil
		}
	}
	return "", errors.New("fetch failed")
}

func TestExtractDetails(t *testing.T) {
	text := "The Pink Door is at 1919 Post Alley, Seattle and also listed as " +
		"123 Main Street, Springfield. Call (206) 443-3241 for reservations."

	d := ExtractDetails(text)

	if d.Address == "" || !strings.Contains(d.Address, "Street") {
		t.Fatalf("expected street address, got %q", d.Address)
	}
	if d.Phone != "(206) 443-3241" {
		t.Fatalf("unexpected phone: %q", d.Phone)
	}
}

func TestExtractDetailsRejectsShortMatches(t *testing.T) {
	d := ExtractDetails("meet me at 12 A St")
	if d.Address != "" {
		t.Fatalf("short match should be rejected, got %q", d.Address)
	}
}

func TestExtractDetailsNoMatch(t *testing.T) {
	d := ExtractDetails("a lovely restaurant with great views and no contact info")
	if d.Address != "" || d.Phone != "" {
		t.Fatalf("expected empty details, got %+v", d)
	}
}

func TestLookupSearchPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.google.com/search": "Located at 123 Main Street, Springfield. Phone: 555-123-4567.",
	}}
	s := NewScraper(fetcher, nil, time.Millisecond, 2*time.Millisecond)

	d, err := s.Lookup(context.Background(), "The Pink Door", "Seattle", KindRestaurant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.Address, "123 Main Street") {
		t.Fatalf("unexpected address: %q", d.Address)
	}
	if d.Phone != "555-123-4567" {
		t.Fatalf("unexpected phone: %q", d.Phone)
	}
}

func TestLookupDirectoryFallbackForRestaurants(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.yelp.com/biz/": "Address: 1919 Post Alley Way, Seattle, WA 98101",
	}}
	s := NewScraper(fetcher, nil, time.Millisecond, 2*time.Millisecond)

	d, err := s.Lookup(context.Background(), "The Pink Door", "Seattle", KindRestaurant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Address == "" {
		t.Fatalf("expected address from directory fallback")
	}
	found := false
	for _, u := range fetcher.urls {
		if u == "https://www.yelp.com/biz/the-pink-door-seattle" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected slugged directory URL, got %v", fetcher.urls)
	}
}

func TestLookupNonRestaurantSkipsDirectory(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := NewScraper(fetcher, nil, time.Millisecond, 2*time.Millisecond)

	_, err := s.Lookup(context.Background(), "Discovery Park", "Seattle", KindOutdoor)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(fetcher.urls) != 1 {
		t.Fatalf("outdoor lookup should only try the search page, got %v", fetcher.urls)
	}
}

func TestLookupNotFound(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.google.com/search": "no useful information here",
		"https://www.yelp.com/":         "still nothing",
	}}
	s := NewScraper(fetcher, nil, time.Millisecond, 2*time.Millisecond)

	_, err := s.Lookup(context.Background(), "Nowhere Cafe", "Seattle", KindRestaurant)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPauseBetweenLookups(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.google.com/search": "123 Main Street, Springfield",
	}}
	s := NewScraper(fetcher, nil, 30*time.Millisecond, 40*time.Millisecond)

	// First lookup establishes the baseline without waiting.
	if _, err := s.Lookup(context.Background(), "A", "Seattle", KindOutdoor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := time.Now()
	if _, err := s.Lookup(context.Background(), "B", "Seattle", KindOutdoor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected a courtesy pause before the second lookup, waited %s", elapsed)
	}
}

func TestConcurrentLookups(t *testing.T) {
	// One scraper is shared across concurrent pipeline runs; lookups from
	// multiple goroutines must not race on the throttle state.
	fetcher := &concurrentFetcher{page: "123 Main Street, Springfield"}
	s := NewScraper(fetcher, nil, time.Millisecond, 2*time.Millisecond)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				d, err := s.Lookup(context.Background(), "The Pink Door", "Seattle", KindOutdoor)
				if err != nil {
					t.Errorf("lookup: %v", err)
					return
				}
				if d.Address == "" {
					t.Errorf("expected address")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// concurrentFetcher is a goroutine-safe page stub for concurrency tests.
type concurrentFetcher struct {
	page string
}

func (f *concurrentFetcher) Get(_ context.Context, _ string) (string, error) {
	return f.page, nil
}

func TestStaticFetcherConcurrentGets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>123 Main Street, Springfield</body></html>"))
	}))
	defer srv.Close()

	f := NewStaticFetcher(time.Second, false)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := f.Get(context.Background(), srv.URL); err != nil {
					t.Errorf("get: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDirectorySlug(t *testing.T) {
	if got := directorySlug("The Pink Door"); got != "the-pink-door" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := directorySlug("Lowell's Restaurant"); got != "lowells-restaurant" {
		t.Fatalf("apostrophes should be dropped: %q", got)
	}
}
