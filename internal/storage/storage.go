package storage

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"chartsync/internal/config"
	"chartsync/internal/utils"
)

// Client offloads downloaded audio into durable object storage. Uploads are
// keyed deterministically by (artist, title) so repeated runs land at the
// same address.
type Client struct {
	backend Provider
	bucket  string
}

func New(cfg *config.Config) *Client {
	var backend Provider

	if cfg.S3.Provider == "local" {
		backend = NewLocalProvider(cfg.S3.LocalDir)
	} else {
		s3Config := &aws.Config{
			Credentials: credentials.NewStaticCredentials(cfg.S3.KeyID, cfg.S3.AppKey, ""),
			Region:      aws.String(cfg.S3.Region),
		}
		if cfg.S3.Endpoint != "" {
			s3Config.Endpoint = aws.String(cfg.S3.Endpoint)
			s3Config.S3ForcePathStyle = aws.Bool(true)
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	}

	return &Client{backend: backend, bucket: cfg.S3.Bucket}
}

// NewWithProvider wires an explicit backend. Tests use it to substitute a
// fake.
func NewWithProvider(p Provider, bucket string) *Client {
	return &Client{backend: p, bucket: bucket}
}

// ObjectKey builds the deterministic storage key for a track.
func ObjectKey(artist, title string) string {
	return fmt.Sprintf("music/%s/%s.mp3",
		utils.Sanitize(artist, "Unknown_Artist"),
		utils.Sanitize(title, "Unknown_Title"))
}

// Upload puts localPath into the bucket under the track's deterministic key
// with public-read access and returns the durable URL. The local file is
// deleted on success; on any failure it is left in place for the caller to
// retry or sweep, and an empty URL is returned with the error.
func (c *Client) Upload(localPath, artist, title string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}

	key := ObjectKey(artist, title)
	err = c.backend.Put(c.bucket, key, f, "audio/mpeg", true)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	// Success owns the local copy: remove it so no duplicate remains.
	if err := os.Remove(localPath); err != nil {
		return "", fmt.Errorf("uploaded %s but could not remove local copy: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key), nil
}

// Delete removes the object a durable URL points at. Malformed URLs report
// failure rather than panicking.
func (c *Client) Delete(rawURL string) bool {
	key, ok := c.objectKeyFromURL(rawURL)
	if !ok {
		log.Printf("⚠️ Cannot derive object key from URL: %s", rawURL)
		return false
	}

	if err := c.backend.Delete(c.bucket, key); err != nil {
		log.Printf("⚠️ Delete failed for %s: %v", key, err)
		return false
	}
	return true
}

// objectKeyFromURL recovers the storage key from a durable URL. Whether the
// bucket rides in the host (virtual-hosted) or leads the path (path-style)
// is decided by the host, never by matching the bucket name against key
// segments, so a key whose first segment happens to equal the bucket
// survives intact.
func (c *Client) objectKeyFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}

	key := strings.TrimPrefix(u.Path, "/")
	if !strings.HasPrefix(u.Host, c.bucket+".") {
		// Path-style: the first path segment must be the bucket.
		var found bool
		key, found = strings.CutPrefix(key, c.bucket+"/")
		if !found {
			return "", false
		}
	}
	if key == "" {
		return "", false
	}
	return key, true
}
