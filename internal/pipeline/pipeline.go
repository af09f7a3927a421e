// Package pipeline drives one batch ingestion run per chart source:
// fetch the entry list, then for each entry acquire media (iTunes path
// only), offload it, and record identity plus ranking. Per-entry failures
// are isolated; only a failed top-level fetch aborts a run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"chartsync/internal/chart"
	"chartsync/internal/store"
)

// MediaAcquirer is the best-effort collaborator that fetches lyrics and
// downloads the audio asset for a track. Both operations degrade to "no
// result" instead of failing the entry.
type MediaAcquirer interface {
	FetchLyrics(artist, title string) string
	DownloadAudio(artist, title, assetURL string) (string, bool)
}

// Offloader relocates a downloaded audio file into durable storage.
type Offloader interface {
	Upload(localPath, artist, title string) (string, error)
}

type Runner struct {
	store *store.Store
	merge store.MergeStrategy
	media MediaAcquirer
	files Offloader
}

// New builds a runner for metadata-only sources. merge is the identity
// merge policy the source has always used.
func New(st *store.Store, merge store.MergeStrategy) *Runner {
	return &Runner{store: st, merge: merge}
}

// WithMedia enables the acquisition + offload steps (the iTunes path).
func (r *Runner) WithMedia(m MediaAcquirer, o Offloader) *Runner {
	r.media = m
	r.files = o
	return r
}

// Run processes one source to completion. The returned error is non-nil
// only when the entry list itself could not be fetched; individual entry
// failures are logged, counted, and skipped.
func (r *Runner) Run(ctx context.Context, src chart.Source) error {
	platform := src.Platform()
	log.Printf("Fetching %s chart...", platform)

	entries, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s entries: %w", platform, err)
	}
	log.Printf("Found %d entries on %s.", len(entries), platform)

	ok, failed := 0, 0
	for _, e := range entries {
		log.Printf("Processing: %d. %s - %s", e.Rank, e.Title, e.Artist)
		if err := r.processEntry(platform, e); err != nil {
			log.Printf("❌ FAILED %s - %s: %v", e.Artist, e.Title, err)
			entriesTotal.WithLabelValues(platform, "failure").Inc()
			failed++
			continue
		}
		entriesTotal.WithLabelValues(platform, "success").Inc()
		ok++
	}

	log.Printf("✅ %s run complete: %d ingested, %d skipped", platform, ok, failed)
	return nil
}

func (r *Runner) processEntry(platform string, e chart.Entry) error {
	timer := prometheus.NewTimer(entryDuration)
	defer timer.ObserveDuration()

	artistID, err := r.store.ResolveOrCreateArtist(e.Artist, e.ImageURL, r.merge)
	if err != nil {
		return err
	}

	in := store.TrackInput{
		Title:    e.Title,
		ArtistID: artistID,
		ImageURL: e.ImageURL,
		MediaURL: e.PreviewURL,
	}

	if r.media != nil {
		in.Lyrics = r.media.FetchLyrics(e.Artist, e.Title)

		// A failed download or upload degrades to metadata-only ingestion:
		// identity and ranking are still recorded without a durable URL.
		if localPath, got := r.media.DownloadAudio(e.Artist, e.Title, e.PreviewURL); !got {
			log.Printf("   ⚠️ No audio for %s - %s", e.Artist, e.Title)
		} else if url, err := r.files.Upload(localPath, e.Artist, e.Title); err != nil {
			log.Printf("   ⚠️ Offload failed for %s - %s: %v", e.Artist, e.Title, err)
		} else {
			in.MediaURL = url
		}
	}

	musicID, err := r.store.ResolveOrCreateTrack(in, r.merge)
	if err != nil {
		return err
	}

	return r.store.UpsertRanking(platform, musicID, e.Rank, time.Time{})
}
