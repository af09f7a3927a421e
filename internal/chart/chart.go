// Package chart fetches ranked track lists from the external chart
// sources. Each adapter normalizes its source's payload into Entry records;
// everything downstream is source-agnostic.
package chart

import "context"

// Platform identifiers as recorded in the ranking rows.
const (
	PlatformBillboard = "Billboard"
	PlatformSpotify   = "Spotify"
	PlatformZing      = "ZingMP3"
	PlatformITunesUS  = "itunes_us"
	PlatformITunesVN  = "itunes_vn"
)

// Entry is one normalized chart position.
type Entry struct {
	Title      string
	Artist     string
	Rank       int // 1 = best
	ImageURL   string
	PreviewURL string // source-hosted audio asset, when the source exposes one
}

// Source produces one run's worth of entries. A Fetch error means the run
// for that source is aborted; per-entry problems are handled inside the
// adapter by skipping the entry.
type Source interface {
	Platform() string
	Fetch(ctx context.Context) ([]Entry, error)
}
