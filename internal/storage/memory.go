package storage

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/kapish505/CipherVault/internal/common"
)

// MemoryClient is an in-process Client used by tests and offline runs.
// Content ids are derived from the bytes, so it is content-addressed like
// the real thing. Failure fields let tests force specific error paths.
type MemoryClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	pins    map[string]int

	FailUpload   error
	FailDownload error
	FailPin      error
	FailStat     error
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		objects: make(map[string][]byte),
		pins:    make(map[string]int),
	}
}

func memoryCID(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("mem%x", sum[:16])
}

func (m *MemoryClient) Upload(ctx context.Context, data []byte, nameHint string, onProgress ProgressFunc) (string, error) {
	if m.FailUpload != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorageUploadFailed, m.FailUpload)
	}

	if onProgress != nil {
		onProgress(0.5)
		onProgress(1.0)
	}

	cid := memoryCID(data)
	m.mu.Lock()
	m.objects[cid] = append([]byte(nil), data...)
	m.mu.Unlock()
	return cid, nil
}

func (m *MemoryClient) Download(ctx context.Context, contentID string) ([]byte, error) {
	if m.FailDownload != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageDownloadFailed, m.FailDownload)
	}

	m.mu.Lock()
	data, ok := m.objects[contentID]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s not stored", common.ErrStorageDownloadFailed, contentID)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryClient) Pin(ctx context.Context, contentID, nameHint string) error {
	if m.FailPin != nil {
		return m.FailPin
	}
	m.mu.Lock()
	m.pins[contentID]++
	m.mu.Unlock()
	return nil
}

func (m *MemoryClient) Stat(ctx context.Context, contentID string) error {
	if m.FailStat != nil {
		return m.FailStat
	}
	m.mu.Lock()
	_, ok := m.objects[contentID]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("stat %s: not stored", contentID)
	}
	return nil
}

// PinCount reports how often a content id was pinned.
func (m *MemoryClient) PinCount(contentID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pins[contentID]
}

var _ Client = (*MemoryClient)(nil)
