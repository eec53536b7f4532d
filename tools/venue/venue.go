package venue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Kind classifies a venue or activity.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindMovie      Kind = "movie"
	KindOutdoor    Kind = "outdoor"
	KindEvent      Kind = "event"
)

// Details holds whatever contact information a lookup managed to find.
// Absent fields stay empty; they are never defaulted to placeholder
// values that could be mistaken for real data.
type Details struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// ErrNotFound is returned when no address could be extracted.
var ErrNotFound = errors.New("venue details not found")

var (
	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s+[A-Z][a-zA-Z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Plaza|Square|Circle|Parkway|Pkwy)(?:[\s,]+[A-Za-z\s]+)?(?:,\s*[A-Z]{2})?\s*\d{5}`),
		regexp.MustCompile(`(?i)\d+\s+[A-Z][a-zA-Z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)[,\s]+[A-Za-z\s]+`),
		regexp.MustCompile(`(?i)\d{1,5}\s+[A-Z][a-zA-Z\s]+\w+.*(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way)`),
	}
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	digitPattern = regexp.MustCompile(`\d`)
)

// Scraper resolves venue contact details by pattern matching over public
// search-result pages. It is best-effort by design: no retries, no
// guarantees, and every failure is reported as a plain error the caller
// can ignore.
type Scraper struct {
	fetcher  Fetcher
	logger   *log.Logger
	minPause time.Duration
	maxPause time.Duration

	// mu guards the throttle state; one scraper is shared across
	// concurrent runs and rand.Rand is not goroutine-safe.
	mu   sync.Mutex
	rng  *rand.Rand
	last time.Time
}

// NewScraper creates a scraper using the given page fetcher. minPause
// and maxPause bound the randomized courtesy pause inserted between
// successive lookups.
func NewScraper(fetcher Fetcher, logger *log.Logger, minPause, maxPause time.Duration) *Scraper {
	if logger == nil {
		logger = log.New(log.Writer(), "[VENUE] ", log.LstdFlags)
	}
	if minPause <= 0 {
		minPause = time.Second
	}
	if maxPause < minPause {
		maxPause = 2 * time.Second
	}
	return &Scraper{
		fetcher:  fetcher,
		logger:   logger,
		minPause: minPause,
		maxPause: maxPause,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Lookup attempts to resolve address, phone and website for a venue.
// A search-result page is tried first; for restaurants a business
// directory page is tried as fallback. Returns ErrNotFound when nothing
// usable was extracted.
func (s *Scraper) Lookup(ctx context.Context, name, location string, kind Kind) (Details, error) {
	s.pause(ctx)

	d, err := s.scrapeSearch(ctx, name, location)
	if err == nil && d.Address != "" {
		return d, nil
	}
	if err != nil {
		s.logger.Printf("search scrape failed for %q: %v", name, err)
	}

	if kind == KindRestaurant {
		d, err = s.scrapeDirectory(ctx, name, location)
		if err == nil && d.Address != "" {
			return d, nil
		}
		if err != nil {
			s.logger.Printf("directory scrape failed for %q: %v", name, err)
		}
	}

	return Details{}, ErrNotFound
}

// pause sleeps a randomized interval since the previous lookup as a
// courtesy to the scraped service. It is throttling, not correctness.
// Each caller reserves its slot under the lock and sleeps outside it,
// so concurrent lookups come out spaced rather than racing.
func (s *Scraper) pause(ctx context.Context) {
	s.mu.Lock()
	now := time.Now()
	if s.last.IsZero() {
		s.last = now
		s.mu.Unlock()
		return
	}
	span := s.maxPause - s.minPause
	wait := s.minPause
	if span > 0 {
		wait += time.Duration(s.rng.Int63n(int64(span)))
	}
	slot := s.last.Add(wait)
	if slot.Before(now) {
		slot = now
	}
	s.last = slot
	s.mu.Unlock()

	if d := time.Until(slot); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}
}

func (s *Scraper) scrapeSearch(ctx context.Context, name, location string) (Details, error) {
	query := url.QueryEscape(fmt.Sprintf("%s %s address", name, location))
	page, err := s.fetcher.Get(ctx, "https://www.google.com/search?q="+query)
	if err != nil {
		return Details{}, err
	}
	return ExtractDetails(page), nil
}

func (s *Scraper) scrapeDirectory(ctx context.Context, name, location string) (Details, error) {
	slug := directorySlug(name) + "-" + directorySlug(location)
	page, err := s.fetcher.Get(ctx, "https://www.yelp.com/biz/"+slug)
	if err != nil {
		searchURL := fmt.Sprintf("https://www.yelp.com/search?find_desc=%s&find_loc=%s",
			url.QueryEscape(name), url.QueryEscape(location))
		page, err = s.fetcher.Get(ctx, searchURL)
		if err != nil {
			return Details{}, err
		}
	}
	return ExtractDetails(page), nil
}

// ExtractDetails runs the address and phone patterns over page text.
func ExtractDetails(text string) Details {
	var d Details
	for _, pattern := range addressPatterns {
		if m := pattern.FindString(text); m != "" {
			candidate := strings.TrimSpace(m)
			// Reject matches too short to be a street address.
			if len(candidate) > 10 && digitPattern.MatchString(candidate) {
				d.Address = candidate
				break
			}
		}
	}
	if m := phonePattern.FindString(text); m != "" {
		d.Phone = strings.TrimSpace(m)
	}
	return d
}

func directorySlug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	return strings.ReplaceAll(s, " ", "-")
}
