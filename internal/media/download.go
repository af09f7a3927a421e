package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"

	"chartsync/internal/utils"
)

// Downloader fetches source-hosted audio assets into a local staging
// directory. Output is complete-or-nothing: bytes land in a temp file that
// is promoted only after the size check and a tag sniff pass, so the
// offload path never sees a partial file.
type Downloader struct {
	dir  string
	http *http.Client
}

func NewDownloader(dir string, timeout time.Duration) *Downloader {
	_ = os.MkdirAll(dir, 0755)
	return &Downloader{
		dir:  dir,
		http: &http.Client{Timeout: timeout},
	}
}

// DownloadAudio returns the local path of the downloaded asset, or ok=false
// when the asset is missing, unreachable, or fails validation.
func (d *Downloader) DownloadAudio(artist, title, assetURL string) (string, bool) {
	if assetURL == "" {
		return "", false
	}

	resp, err := d.http.Get(assetURL)
	if err != nil {
		log.Printf("   ⚠️ Download failed for %s - %s: %v", artist, title, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("   ⚠️ Download failed for %s - %s: status %d", artist, title, resp.StatusCode)
		return "", false
	}

	tmp, err := os.CreateTemp(d.dir, "*.part")
	if err != nil {
		return "", false
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, resp.Body)
	tmp.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", false
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		log.Printf("   ⚠️ Truncated download for %s - %s (%d of %d bytes)", artist, title, n, resp.ContentLength)
		os.Remove(tmpPath)
		return "", false
	}
	if err := validateAudio(tmpPath); err != nil {
		log.Printf("   ⚠️ Discarding invalid download for %s - %s: %v", artist, title, err)
		os.Remove(tmpPath)
		return "", false
	}

	finalPath := filepath.Join(d.dir, fmt.Sprintf("%s-%s.mp3",
		utils.Sanitize(artist, "Unknown_Artist"),
		utils.Sanitize(title, "Unknown_Title")))
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", false
	}
	return finalPath, true
}

// Sweep removes whatever is left in the staging directory. Runs at the end
// of a batch so failed offloads don't accumulate local copies.
func (d *Downloader) Sweep() {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		_ = os.Remove(filepath.Join(d.dir, e.Name()))
	}
}

func validateAudio(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return errors.New("empty file")
	}
	// Too small to carry tags at all; the sniff needs room to seek an
	// ID3v1 frame and would report a seek error, not a missing tag.
	if info.Size() < 128 {
		return nil
	}

	// An untagged file is fine; an unreadable one is not.
	if _, err := tag.ReadFrom(f); err != nil && !errors.Is(err, tag.ErrNoTagsFound) {
		return err
	}
	return nil
}
