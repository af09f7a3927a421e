package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ITunesFeed reads a top-songs RSS feed (JSON rendering) for one country
// edition. Feed entries carry artwork plus a playable preview asset, which
// is what the media acquisition path downloads.
type ITunesFeed struct {
	country string
	url     string
	http    *http.Client
}

func NewITunesFeed(country string, timeout time.Duration) *ITunesFeed {
	return &ITunesFeed{
		country: country,
		url:     fmt.Sprintf("https://itunes.apple.com/%s/rss/topsongs/limit=100/json", country),
		http:    &http.Client{Timeout: timeout},
	}
}

func (f *ITunesFeed) Platform() string { return "itunes_" + f.country }

type feedLabel struct {
	Label string `json:"label"`
}

type feedLink struct {
	Attributes struct {
		Href      string `json:"href"`
		AssetType string `json:"im:assetType"`
	} `json:"attributes"`
}

type feedEntry struct {
	Name   feedLabel       `json:"im:name"`
	Artist feedLabel       `json:"im:artist"`
	Images []feedLabel     `json:"im:image"`
	Link   json.RawMessage `json:"link"`
}

func (f *ITunesFeed) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch itunes feed %s: %w", f.country, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch itunes feed %s: status %d", f.country, resp.StatusCode)
	}

	var payload struct {
		Feed struct {
			Entry []feedEntry `json:"entry"`
		} `json:"feed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse itunes feed %s: %w", f.country, err)
	}
	if len(payload.Feed.Entry) == 0 {
		return nil, fmt.Errorf("parse itunes feed %s: no entries in feed", f.country)
	}

	var entries []Entry
	for i, item := range payload.Feed.Entry {
		title := item.Name.Label
		artist := item.Artist.Label
		if title == "" || artist == "" {
			log.Printf("⚠️ Skipping itunes entry %d: missing title or artist", i+1)
			continue
		}

		// The feed lists artwork small to large; keep the largest.
		imageURL := ""
		if len(item.Images) > 0 {
			imageURL = item.Images[len(item.Images)-1].Label
		}

		entries = append(entries, Entry{
			Title:      title,
			Artist:     artist,
			Rank:       i + 1,
			ImageURL:   imageURL,
			PreviewURL: previewHref(item.Link),
		})
	}
	return entries, nil
}

// previewHref digs the audio asset out of the entry's link element, which
// the feed renders either as a single object or as a list.
func previewHref(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var links []feedLink
	if err := json.Unmarshal(raw, &links); err != nil {
		var single feedLink
		if err := json.Unmarshal(raw, &single); err != nil {
			return ""
		}
		links = []feedLink{single}
	}

	for _, l := range links {
		if l.Attributes.AssetType == "preview" {
			return l.Attributes.Href
		}
	}
	return ""
}
