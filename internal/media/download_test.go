package media

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownloadAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake mp3 payload"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), 2*time.Second)
	path, ok := d.DownloadAudio("Daft Punk", "One More Time", srv.URL+"/preview.mp3")
	if !ok {
		t.Fatal("expected successful download")
	}
	if filepath.Base(path) != "Daft_Punk-One_More_Time.mp3" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fake mp3 payload" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestDownloadAudioSmallCompleteFile(t *testing.T) {
	// A complete asset shorter than an ID3v1 frame must still be accepted.
	payload := make([]byte, 127)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), time.Second)
	path, ok := d.DownloadAudio("A", "B", srv.URL)
	if !ok {
		t.Fatal("complete small file must not be discarded")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 127 {
		t.Errorf("expected 127 bytes, got %d", info.Size())
	}
}

func TestDownloadAudioMissingURL(t *testing.T) {
	d := NewDownloader(t.TempDir(), time.Second)
	if _, ok := d.DownloadAudio("A", "B", ""); ok {
		t.Error("empty asset URL must not download")
	}
}

func TestDownloadAudioHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, time.Second)
	if _, ok := d.DownloadAudio("A", "B", srv.URL); ok {
		t.Error("404 must not produce a file")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("staging dir must stay clean on failure, found %d entries", len(entries))
	}
}

func TestDownloadAudioRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, time.Second)
	if _, ok := d.DownloadAudio("A", "B", srv.URL); ok {
		t.Error("empty body must fail validation")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no temp files may survive a rejected download, found %d", len(entries))
	}
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, time.Second)
	for _, name := range []string{"a.mp3", "b.part"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	d.Sweep()

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("sweep left %d entries behind", len(entries))
	}
}
