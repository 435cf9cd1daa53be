package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/kapish505/CipherVault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_RoundTrip(t *testing.T) {
	m := NewMemoryClient()
	ctx := context.Background()

	var fractions []float64
	cid, err := m.Upload(ctx, []byte("ciphertext"), "a.bin", func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cid)
	assert.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])

	got, err := m.Download(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), got)

	require.NoError(t, m.Stat(ctx, cid))
	require.NoError(t, m.Pin(ctx, cid, "a.bin"))
	assert.Equal(t, 1, m.PinCount(cid))
}

func TestMemoryClient_ContentAddressed(t *testing.T) {
	m := NewMemoryClient()
	ctx := context.Background()

	cid1, err := m.Upload(ctx, []byte("same"), "x", nil)
	require.NoError(t, err)
	cid2, err := m.Upload(ctx, []byte("same"), "y", nil)
	require.NoError(t, err)
	cid3, err := m.Upload(ctx, []byte("different"), "x", nil)
	require.NoError(t, err)

	assert.Equal(t, cid1, cid2)
	assert.NotEqual(t, cid1, cid3)
}

func TestMemoryClient_Failures(t *testing.T) {
	m := NewMemoryClient()
	ctx := context.Background()
	boom := errors.New("boom")

	m.FailUpload = boom
	_, err := m.Upload(ctx, []byte("x"), "x", nil)
	assert.ErrorIs(t, err, common.ErrStorageUploadFailed)

	_, err = m.Download(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrStorageDownloadFailed)

	assert.Error(t, m.Stat(ctx, "missing"))
}

func TestProgressReader_ReportsFractions(t *testing.T) {
	var last float64
	r := newProgressReader(bytes.NewReader(make([]byte, 64)), 64, func(f float64) { last = f })

	_, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, 1.0, last)
}
