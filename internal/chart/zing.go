package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const zingChartURL = "https://zingmp3.vn/api/v2/page/get/chart-home"

// Zing reads the realtime chart from the ZingMP3 chart-home API.
type Zing struct {
	url  string
	http *http.Client
}

func NewZing(timeout time.Duration) *Zing {
	return &Zing{
		url:  zingChartURL,
		http: &http.Client{Timeout: timeout},
	}
}

func (z *Zing) Platform() string { return PlatformZing }

func (z *Zing) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, z.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Referer", "https://zingmp3.vn/zing-chart")

	resp, err := z.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch zing chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch zing chart: status %d", resp.StatusCode)
	}

	var payload struct {
		Err  int    `json:"err"`
		Msg  string `json:"msg"`
		Data struct {
			RTChart struct {
				Items []struct {
					Title        string `json:"title"`
					ArtistsNames string `json:"artistsNames"`
					Position     int    `json:"position"`
					Thumbnail    string `json:"thumbnail"`
				} `json:"items"`
			} `json:"RTChart"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse zing chart: %w", err)
	}
	if payload.Err != 0 {
		return nil, fmt.Errorf("zing chart API error %d: %s", payload.Err, payload.Msg)
	}

	var entries []Entry
	for i, item := range payload.Data.RTChart.Items {
		if item.Title == "" || item.ArtistsNames == "" {
			log.Printf("⚠️ Skipping zing item %d: missing title or artist", i+1)
			continue
		}
		rank := item.Position
		if rank < 1 {
			rank = i + 1
		}
		entries = append(entries, Entry{
			Title:      item.Title,
			Artist:     item.ArtistsNames,
			Rank:       rank,
			PreviewURL: item.Thumbnail,
		})
	}
	return entries, nil
}
