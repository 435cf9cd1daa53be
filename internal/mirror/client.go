// Package mirror pushes index entries to the remote metadata mirror.
// The mirror is zero-knowledge: the only name/type material that crosses
// this boundary is ciphertext produced by the envelope cipher. The local
// index keeps the plaintext; this client never sees it.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Record is the mirror's view of a file record: routing keys plus opaque
// envelope fields. NameCiphertext/TypeCiphertext are base64 AEAD output
// under the record's own DEK, with their own IVs.
type Record struct {
	ID             string `json:"id"`
	OwnerID        string `json:"owner_id"`
	NameCiphertext string `json:"name_ciphertext"`
	NameIV         string `json:"name_iv"`
	TypeCiphertext string `json:"type_ciphertext"`
	TypeIV         string `json:"type_iv"`
	ContentID      string `json:"content_id"`
	SizeBytes      int64  `json:"size_bytes"`
	WrappedKey     string `json:"wrapped_key"`
	KeyIV          string `json:"key_iv"`
	FileIV         string `json:"file_iv"`
}

// Client mirrors index entries to the remote metadata store.
type Client interface {
	PutRecord(ctx context.Context, rec Record) error
	DeleteRecord(ctx context.Context, ownerID, id string) error
}

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) recordURL(ownerID, id string) string {
	return fmt.Sprintf("%s/owners/%s/records/%s",
		c.baseURL, url.PathEscape(ownerID), url.PathEscape(id))
}

func (c *HTTPClient) PutRecord(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("mirror put %s: %w", rec.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.recordURL(rec.OwnerID, rec.ID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mirror put %s: %w", rec.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mirror put %s: %w", rec.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mirror put %s: unexpected status %d", rec.ID, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, ownerID, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.recordURL(ownerID, id), nil)
	if err != nil {
		return fmt.Errorf("mirror delete %s: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mirror delete %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("mirror delete %s: unexpected status %d", id, resp.StatusCode)
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
