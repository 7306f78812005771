package source

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"mtlfest/internal/classify"
	appLog "mtlfest/internal/log"
	"mtlfest/internal/metro"
	"mtlfest/internal/model"
)

// Per-page limits for the scraping adapter.
const (
	scrapeTimeout      = 30 * time.Second
	maxItemsPerPage    = 15
	scrapeSourceLabel  = "Tourism Sites"
	defaultScrapeVenue = "Montreal"
)

// extractListingsJS pulls candidate event cards out of a rendered listing
// page. Tourism sites mark up listings inconsistently, so this matches any
// element whose class mentions event/festival/activity and takes the first
// heading, date-ish node, location-ish node and link inside it.
const extractListingsJS = `
(() => {
  const selector = '[class*="event"], [class*="festival"], [class*="activity"]';
  const items = [];
  for (const el of document.querySelectorAll(selector)) {
    if (items.length >= %LIMIT%) break;
    const heading = el.querySelector('h1,h2,h3,h4,h5');
    if (!heading) continue;
    const dateEl = el.querySelector('time, [class*="date"], [class*="when"]');
    const locEl = el.querySelector('[class*="location"], [class*="venue"], [class*="where"]');
    const linkEl = el.querySelector('a');
    items.push({
      title: heading.textContent.trim(),
      date: dateEl ? dateEl.textContent.trim() : '',
      location: locEl ? locEl.textContent.trim() : '',
      href: linkEl ? linkEl.href : '',
    });
  }
  return items;
})()`

// scrapedItem is what the in-page extraction script returns per listing.
type scrapedItem struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Href     string `json:"href"`
}

// Scraper renders tourism listing pages in headless Chromium and converts
// the extracted cards into Events. Pages are visited sequentially; a page
// that fails is skipped, not fatal for the source.
type Scraper struct {
	urls []string
	loc  *time.Location
	now  func() time.Time
}

func NewScraper(urls []string, loc *time.Location) *Scraper {
	if loc == nil {
		loc = time.Local
	}
	return &Scraper{urls: urls, loc: loc, now: time.Now}
}

func (s *Scraper) Name() string { return scrapeSourceLabel }

func (s *Scraper) Enabled() bool { return len(s.urls) > 0 }

func (s *Scraper) Fetch(ctx context.Context) ([]model.Event, error) {
	if !s.Enabled() {
		return nil, errMissingCredentials
	}

	// One browser context shared across pages.
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	all := make([]model.Event, 0)
	for _, pageURL := range s.urls {
		items, err := s.extractPage(browserCtx, pageURL)
		if err != nil {
			appLog.Error("scrape page failed", err, "url", redactURL(pageURL))
			continue
		}
		all = append(all, s.convert(items)...)
	}

	appLog.Info("source fetch completed", "source", s.Name(), "event_count", len(all))
	return all, nil
}

func (s *Scraper) extractPage(ctx context.Context, pageURL string) ([]scrapedItem, error) {
	pageCtx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	script := strings.Replace(extractListingsJS, "%LIMIT%", strconv.Itoa(maxItemsPerPage), 1)

	var items []scrapedItem
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(script, &items),
	)
	if err != nil {
		return nil, err
	}
	if len(items) > maxItemsPerPage {
		items = items[:maxItemsPerPage]
	}
	return items, nil
}

// convert turns scraped cards into Events. Non-cultural listings
// (conferences, trade shows) are dropped; dates come in many formats and
// fall back to today when unrecognizable.
func (s *Scraper) convert(items []scrapedItem) []model.Event {
	events := make([]model.Event, 0, len(items))

	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if !isCulturalEvent(item.Title) {
			continue
		}

		location := item.Location
		if location == "" {
			location = defaultScrapeVenue
		}

		date := s.parseListingDate(item.Date)

		events = append(events, model.Event{
			Name:      item.Title,
			Venue:     location,
			Address:   location,
			StartDate: date,
			EndDate:   date,
			URL:       item.Href,
			Source:    scrapeSourceLabel,
			Category:  classify.Categorize(item.Title),
			Price:     DefaultPrice,
			Metro:     metro.Nearest(location),
		})
	}

	return events
}

// listingDateFormats covers the date renderings seen across tourism sites.
var listingDateFormats = []string{
	"2006-01-02",
	"January 2, 2006",
	"2 January 2006",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

func (s *Scraper) parseListingDate(text string) string {
	text = strings.TrimSpace(text)
	for _, layout := range listingDateFormats {
		if t, err := time.ParseInLocation(layout, text, s.loc); err == nil {
			return t.Format("2006-01-02T15:04:05")
		}
	}
	return s.now().In(s.loc).Format("2006-01-02T15:04:05")
}

// Cultural/business keyword screens for scraped listings. Pages mix
// festivals with trade shows; only the former belong here.
var (
	culturalKeywords = []string{
		"festival", "concert", "music", "jazz", "rock", "pop", "classical",
		"art", "exhibition", "gallery", "museum", "theatre", "theater",
		"dance", "ballet", "comedy", "film", "movie", "cinema",
		"food", "culinary", "wine", "beer", "taste", "culture",
		"performance", "show", "entertainment", "celebration",
	}
	businessKeywords = []string{
		"conference", "summit", "expo", "trade", "business", "technology",
		"cyber", "security", "startup", "networking", "workshop",
		"seminar", "meeting", "forum",
	}
)

func isCulturalEvent(title string) bool {
	lower := strings.ToLower(title)

	cultural := false
	for _, kw := range culturalKeywords {
		if strings.Contains(lower, kw) {
			cultural = true
			break
		}
	}
	if !cultural {
		return false
	}
	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
