package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/kapish505/CipherVault/internal/common"
)

// IPFSClient implements Client against an IPFS node's HTTP API.
type IPFSClient struct {
	sh *shell.Shell
}

// NewIPFSClient connects to the IPFS API at apiAddr (host:port or multiaddr).
func NewIPFSClient(apiAddr string) *IPFSClient {
	if apiAddr == "" {
		apiAddr = "127.0.0.1:5001"
	}
	return &IPFSClient{sh: shell.NewShell(apiAddr)}
}

// Ping verifies the node is reachable.
func (c *IPFSClient) Ping(ctx context.Context) error {
	if _, err := c.sh.ID(); err != nil {
		return fmt.Errorf("ipfs node unreachable: %w", err)
	}
	return nil
}

// Upload adds data to IPFS and returns its content id. Progress is reported
// as the add request body is consumed; the name hint only matters to humans
// looking at pin listings, the bytes are ciphertext either way.
func (c *IPFSClient) Upload(ctx context.Context, data []byte, nameHint string, onProgress ProgressFunc) (string, error) {
	reader := newProgressReader(bytes.NewReader(data), int64(len(data)), onProgress)

	cid, err := c.sh.Add(reader)
	if err != nil {
		return "", fmt.Errorf("%w: add %q: %v", common.ErrStorageUploadFailed, nameHint, err)
	}
	return cid, nil
}

// Download fetches the full object for a content id.
func (c *IPFSClient) Download(ctx context.Context, contentID string) ([]byte, error) {
	rc, err := c.sh.Cat(contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: cat %s: %v", common.ErrStorageDownloadFailed, contentID, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorageDownloadFailed, contentID, err)
	}
	return data, nil
}

// Pin asks the node to keep the content resident.
func (c *IPFSClient) Pin(ctx context.Context, contentID, nameHint string) error {
	if err := c.sh.Pin(contentID); err != nil {
		return fmt.Errorf("pin %s (%s): %w", contentID, nameHint, err)
	}
	return nil
}

// Stat checks the object exists without transferring it.
func (c *IPFSClient) Stat(ctx context.Context, contentID string) error {
	if _, err := c.sh.ObjectStat(contentID); err != nil {
		return fmt.Errorf("stat %s: %w", contentID, err)
	}
	return nil
}

var _ Client = (*IPFSClient)(nil)

// progressReader reports consumption of a fixed-size body to a ProgressFunc.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onProgress ProgressFunc) io.Reader {
	if onProgress == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, onProgress: onProgress}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		p.onProgress(float64(p.read) / float64(p.total))
	}
	return n, err
}
