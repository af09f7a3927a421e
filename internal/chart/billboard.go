package chart

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const billboardURL = "https://www.billboard.com/charts/hot-100/"

// Billboard scrapes the Hot 100 page. The chart carries artwork, so this is
// the one source whose entries populate ImageURL from the page itself.
type Billboard struct {
	url  string
	http *http.Client
}

func NewBillboard(timeout time.Duration) *Billboard {
	return &Billboard{
		url:  billboardURL,
		http: &http.Client{Timeout: timeout},
	}
}

func (b *Billboard) Platform() string { return PlatformBillboard }

func (b *Billboard) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch billboard chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch billboard chart: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse billboard chart: %w", err)
	}

	rows := doc.Find("div.o-chart-results-list-row")
	if rows.Length() == 0 {
		return nil, fmt.Errorf("parse billboard chart: no chart rows in page")
	}

	var entries []Entry
	rows.Each(func(i int, row *goquery.Selection) {
		title := strings.TrimSpace(row.Find("h3#title-of-a-story").First().Text())
		artist := strings.TrimSpace(row.Find("span.c-label").First().Text())
		if title == "" || artist == "" {
			log.Printf("⚠️ Skipping row %d: missing title or artist", i+1)
			return
		}

		img := row.Find("img.c-lazy-image__img").First()
		imageURL, ok := img.Attr("data-lazy-src")
		if !ok {
			imageURL, _ = img.Attr("src")
		}

		entries = append(entries, Entry{
			Title:    title,
			Artist:   artist,
			Rank:     i + 1,
			ImageURL: imageURL,
		})
	})
	return entries, nil
}
