// Package storage defines the boundary to the content-addressed store and
// its IPFS implementation. The pipeline treats these as opaque remote calls:
// no retry or backoff lives here.
package storage

import "context"

// ProgressFunc receives upload progress as a fraction in [0,1].
type ProgressFunc func(fraction float64)

// Client is the content-storage boundary. Upload returns the content id of
// the stored ciphertext; Stat is a cheap existence check; Pin asks the
// provider to keep the content resident.
type Client interface {
	Upload(ctx context.Context, data []byte, nameHint string, onProgress ProgressFunc) (string, error)
	Download(ctx context.Context, contentID string) ([]byte, error)
	Pin(ctx context.Context, contentID, nameHint string) error
	Stat(ctx context.Context, contentID string) error
}
