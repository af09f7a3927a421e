package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// memProvider keeps objects in a map so tests never touch a network.
type memProvider struct {
	objects map[string][]byte
	failPut bool
}

func newMemProvider() *memProvider {
	return &memProvider{objects: make(map[string][]byte)}
}

func (m *memProvider) Put(bucket, key string, body io.ReadSeeker, contentType string, publicRead bool) error {
	if m.failPut {
		return errors.New("simulated put failure")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memProvider) Delete(bucket, key string) error {
	full := bucket + "/" + key
	if _, ok := m.objects[full]; !ok {
		return errors.New("no such object")
	}
	delete(m.objects, full)
	return nil
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Daft_Punk-One_More_Time.mp3")
	if err := os.WriteFile(path, []byte("fake audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestObjectKeyDeterministic(t *testing.T) {
	k1 := ObjectKey("Daft Punk", "One More Time")
	k2 := ObjectKey("Daft Punk", "One More Time")
	if k1 != k2 {
		t.Errorf("keys differ: %q vs %q", k1, k2)
	}
	if k1 != "music/Daft_Punk/One_More_Time.mp3" {
		t.Errorf("unexpected key %q", k1)
	}
}

func TestObjectKeySanitizesUnsafeCharacters(t *testing.T) {
	key := ObjectKey("AC/DC", "T.N.T.")
	if key != "music/ACDC/TNT.mp3" {
		t.Errorf("unexpected key %q", key)
	}
}

func TestUploadSuccessRemovesLocalFile(t *testing.T) {
	provider := newMemProvider()
	client := NewWithProvider(provider, "charts")
	local := writeTempAudio(t)

	url, err := client.Upload(local, "Daft Punk", "One More Time")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://charts.s3.amazonaws.com/music/Daft_Punk/One_More_Time.mp3" {
		t.Errorf("unexpected url %q", url)
	}
	if _, err := os.Stat(local); !os.IsNotExist(err) {
		t.Error("local file must be removed after a successful upload")
	}
	if _, ok := provider.objects["charts/music/Daft_Punk/One_More_Time.mp3"]; !ok {
		t.Error("object missing from backend")
	}
}

func TestUploadTwiceSameAddress(t *testing.T) {
	provider := newMemProvider()
	client := NewWithProvider(provider, "charts")

	url1, err := client.Upload(writeTempAudio(t), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatal(err)
	}
	url2, err := client.Upload(writeTempAudio(t), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatal(err)
	}
	if url1 != url2 {
		t.Errorf("repeated uploads must land at the same address: %q vs %q", url1, url2)
	}
	if len(provider.objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(provider.objects))
	}
}

func TestUploadFailureLeavesLocalFile(t *testing.T) {
	provider := newMemProvider()
	provider.failPut = true
	client := NewWithProvider(provider, "charts")
	local := writeTempAudio(t)

	url, err := client.Upload(local, "Daft Punk", "One More Time")
	if err == nil {
		t.Fatal("expected upload error")
	}
	if url != "" {
		t.Errorf("failed upload must not return a URL, got %q", url)
	}
	if _, statErr := os.Stat(local); statErr != nil {
		t.Error("local file must survive a failed upload")
	}
}

func TestUploadMissingFile(t *testing.T) {
	client := NewWithProvider(newMemProvider(), "charts")
	if _, err := client.Upload("/nonexistent/file.mp3", "A", "B"); err == nil {
		t.Error("expected error for missing local file")
	}
}

func TestDeleteByURL(t *testing.T) {
	provider := newMemProvider()
	client := NewWithProvider(provider, "charts")

	url, err := client.Upload(writeTempAudio(t), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatal(err)
	}
	if !client.Delete(url) {
		t.Error("delete of an existing object must succeed")
	}
	if len(provider.objects) != 0 {
		t.Error("object still present after delete")
	}
}

func TestDeleteKeyStartingWithBucketName(t *testing.T) {
	provider := newMemProvider()
	// Every key starts with "music/", so a bucket named "music" collides
	// with the leading key segment.
	client := NewWithProvider(provider, "music")

	url, err := client.Upload(writeTempAudio(t), "Daft Punk", "One More Time")
	if err != nil {
		t.Fatal(err)
	}
	if !client.Delete(url) {
		t.Error("delete must not strip the key segment matching the bucket name")
	}
	if len(provider.objects) != 0 {
		t.Error("object still present after delete")
	}
}

func TestDeletePathStyleURL(t *testing.T) {
	provider := newMemProvider()
	client := NewWithProvider(provider, "charts")
	provider.objects["charts/music/Daft_Punk/One_More_Time.mp3"] = []byte("x")

	if !client.Delete("https://s3.amazonaws.com/charts/music/Daft_Punk/One_More_Time.mp3") {
		t.Error("path-style delete must succeed")
	}
	if len(provider.objects) != 0 {
		t.Error("object still present after delete")
	}
}

func TestDeleteMalformedURL(t *testing.T) {
	client := NewWithProvider(newMemProvider(), "charts")
	for _, bad := range []string{"", "not a url", "https://charts.s3.amazonaws.com/"} {
		if client.Delete(bad) {
			t.Errorf("malformed URL %q must report failure", bad)
		}
	}
}
