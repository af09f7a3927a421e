package media

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const geniusAPI = "https://api.genius.com"

// LyricsClient looks lyrics up on Genius: a search call to find the song
// page, then a scrape of the page itself. Strictly best-effort; every
// failure path returns empty text.
type LyricsClient struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewLyricsClient(token string, timeout time.Duration) *LyricsClient {
	return &LyricsClient{
		token:   token,
		baseURL: geniusAPI,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *LyricsClient) FetchLyrics(artist, title string) string {
	if c.token == "" {
		return ""
	}

	songURL := c.searchSongURL(artist, title)
	if songURL == "" {
		return ""
	}
	return c.scrapeLyrics(songURL)
}

func (c *LyricsClient) searchSongURL(artist, title string) string {
	term := strings.ReplaceAll(fmt.Sprintf("%s %s", artist, title), "&", "and")

	req, err := http.NewRequest(http.MethodGet,
		c.baseURL+"/search?q="+url.QueryEscape(term), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("   ⚠️ Genius search failed for %s - %s: %v", artist, title, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var result struct {
		Response struct {
			Hits []struct {
				Result struct {
					URL string `json:"url"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}
	if len(result.Response.Hits) == 0 {
		return ""
	}
	return result.Response.Hits[0].Result.URL
}

func (c *LyricsClient) scrapeLyrics(pageURL string) string {
	resp, err := c.http.Get(pageURL)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("div[data-lyrics-container='true']").Each(func(_ int, sel *goquery.Selection) {
		parts = append(parts, sel.Text())
	})
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
