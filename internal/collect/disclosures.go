package collect

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/mrsyedhasan/congresstrading/internal/normalize"
)

// DisclosureScraper pulls House financial disclosure pages and applies
// heuristic text extraction to produce best-effort trade records. The
// extraction is explicitly low confidence: it pattern-matches uppercase
// runs as candidate tickers and dollar strings as amounts, nothing more.
type DisclosureScraper struct {
	indexURL string
	feedURL  string // when set, detail links come from an RSS/Atom feed
	maxPages int
	client   *http.Client
	parser   *gofeed.Parser
	now      func() time.Time
}

// NewDisclosureScraper creates a scraper. maxPages caps detail-page
// fan-out from a single index fetch.
func NewDisclosureScraper(indexURL, feedURL string, maxPages int) *DisclosureScraper {
	if maxPages <= 0 {
		maxPages = 10
	}
	return &DisclosureScraper{
		indexURL: indexURL,
		feedURL:  feedURL,
		maxPages: maxPages,
		client:   &http.Client{Timeout: 30 * time.Second},
		parser:   gofeed.NewParser(),
		now:      time.Now,
	}
}

// tickerParens matches a ticker given in parentheses, e.g. "(MSFT)".
var tickerParens = regexp.MustCompile(`\(([A-Z]{1,5})\)`)

// tickerBare matches a bare run of uppercase letters.
var tickerBare = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// tickerStoplist holds common uppercase words that are not tickers.
var tickerStoplist = map[string]struct{}{
	"THE": {}, "AND": {}, "OR": {}, "FOR": {}, "INC": {}, "CORP": {},
}

var amountPattern = regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$?[\d,]+)?`)

var typePattern = regexp.MustCompile(`(?i)\b(purchase[d]?|bought|buy|sale|sold|sell|exchange[d]?)\b`)

var filedPattern = regexp.MustCompile(`(?i)filed[:\s]+([A-Za-z0-9, /-]{6,30})`)

// FetchRecords fetches the disclosure index, follows up to maxPages
// detail links, and extracts a record from each page that yields a
// member name and a ticker candidate. Page failures are logged and
// skipped; only an unreachable index fails the fetch.
func (s *DisclosureScraper) FetchRecords(ctx context.Context) ([]normalize.DisclosureRecord, error) {
	links, err := s.collectLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting disclosure links: %w", err)
	}
	if len(links) > s.maxPages {
		links = links[:s.maxPages]
	}

	var records []normalize.DisclosureRecord
	for _, link := range links {
		rec, err := s.scrapePage(ctx, link)
		if err != nil {
			log.Printf("skipping disclosure page %s: %v", link, err)
			continue
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, nil
}

// collectLinks gathers detail-page URLs, preferring the filing feed when
// one is configured.
func (s *DisclosureScraper) collectLinks(ctx context.Context) ([]string, error) {
	if s.feedURL != "" {
		feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
		if err != nil {
			return nil, err
		}
		var links []string
		for _, item := range feed.Items {
			if item.Link != "" {
				links = append(links, item.Link)
			}
		}
		return links, nil
	}

	body, err := s.fetch(ctx, s.indexURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.indexURL)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(strings.ToLower(href), "disclosure") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if abs != s.indexURL {
			links = append(links, abs)
		}
	})
	return links, nil
}

// scrapePage extracts a best-effort record from one detail page. Returns
// nil when the page yields no member name or ticker candidate.
func (s *DisclosureScraper) scrapePage(ctx context.Context, pageURL string) (*normalize.DisclosureRecord, error) {
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(body), parsed)
	if err != nil {
		return nil, fmt.Errorf("extracting page text: %w", err)
	}

	name := strings.TrimSpace(article.Title)
	if name == "" {
		name = firstHeading(body)
	}
	if len(name) <= 3 {
		return nil, nil
	}

	text := article.TextContent
	ticker := extractTicker(text)
	if ticker == "" {
		return nil, nil
	}

	rec := &normalize.DisclosureRecord{
		MemberName: name,
		Ticker:     ticker,
		Type:       extractType(text),
		// The pages carry no machine-readable transaction date; default
		// to thirty days back, the long-standing placeholder.
		TransactionDate: s.now().UTC().AddDate(0, 0, -30).Format(time.RFC3339),
		Description:     "Scraped from House disclosure",
	}

	if m := amountPattern.FindString(text); m != "" {
		rec.Amount = m
	}
	if m := filedPattern.FindStringSubmatch(text); m != nil {
		if t, err := dateparse.ParseAny(strings.TrimSpace(m[1])); err == nil {
			rec.FilingDate = t.UTC().Format(time.RFC3339)
		}
	}

	return rec, nil
}

// extractTicker finds a candidate ticker: a parenthesized uppercase run,
// else any bare uppercase run not on the stoplist.
func extractTicker(text string) string {
	if m := tickerParens.FindStringSubmatch(text); m != nil {
		if _, stop := tickerStoplist[m[1]]; !stop {
			return m[1]
		}
	}
	for _, m := range tickerBare.FindAllString(text, 20) {
		if _, stop := tickerStoplist[m]; !stop {
			return m
		}
	}
	return ""
}

func extractType(text string) string {
	m := typePattern.FindString(text)
	if m == "" {
		return "Unknown"
	}
	switch strings.ToLower(m)[0] {
	case 'p', 'b':
		return "Buy"
	case 's':
		return "Sell"
	default:
		return "Exchange"
	}
}

// firstHeading pulls the first h1/h2 text out of raw HTML.
func firstHeading(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("h1, h2").First().Text())
}

func (s *DisclosureScraper) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pageURL)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
