package storage

import "io"

// Provider defines the behavior the offload client needs from any object
// storage backend.
type Provider interface {
	Put(bucket, key string, body io.ReadSeeker, contentType string, publicRead bool) error
	Delete(bucket, key string) error
}
