package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapish505/CipherVault/internal/config"
	"github.com/kapish505/CipherVault/internal/health"
	"github.com/kapish505/CipherVault/internal/keyring"
	"github.com/kapish505/CipherVault/internal/logging"
	"github.com/kapish505/CipherVault/internal/pipeline"
	"github.com/kapish505/CipherVault/internal/records"
	"github.com/kapish505/CipherVault/internal/storage"
)

// newTestApp wires an App against an in-memory index and storage client so
// command handlers can run end to end without a daemon.
func newTestApp(t *testing.T) *App {
	t.Helper()

	ctx := context.Background()
	store, err := records.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := store.Repo()
	client := storage.NewMemoryClient()
	session := keyring.NewSession()
	log := logging.NewDefault()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = ":memory:"

	pipe := pipeline.New(session, repo, client, log)
	pipe.SetTargetReplicas(cfg.TargetReplicas)

	app := &App{
		config:  cfg,
		log:     log,
		session: session,
		store:   store,
		repo:    repo,
		client:  client,
		pipe:    pipe,
		monitor: health.NewMonitor(repo, client, nil, log),
	}
	session.Subscribe(app)
	return app
}

func TestApp_CommandsRequireOpenSession(t *testing.T) {
	silencePrintln(t)
	app := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, app.List(ctx), errNoSession)
	assert.ErrorIs(t, app.Upload(ctx, []string{"x"}), errNoSession)
	assert.ErrorIs(t, app.Export(ctx, []string{"x"}), errNoSession)
	assert.ErrorIs(t, app.Purge(ctx), errNoSession)
}

func TestApp_UploadProcessGetRoundTrip(t *testing.T) {
	silencePrintln(t)
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, []string{"0xABCdef0123"}))

	dir := t.TempDir()
	src := filepath.Join(dir, "note.txt")
	payload := []byte("vault round trip")
	require.NoError(t, os.WriteFile(src, payload, 0o600))

	require.NoError(t, app.Upload(ctx, []string{src}))
	require.NoError(t, app.Process(ctx))

	recs, err := app.repo.ListByOwner(ctx, "0xabcdef0123")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "note.txt", recs[0].DisplayName)

	dst := filepath.Join(dir, "out.txt")
	require.NoError(t, app.Get(ctx, []string{recs[0].ID, dst}))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestApp_MkdirMoveAndTrashLifecycle(t *testing.T) {
	silencePrintln(t)
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, []string{"owner@example.com"}))
	require.NoError(t, app.Mkdir(ctx, []string{"documents"}))

	recs, err := app.repo.ListByOwner(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	folderID := recs[0].ID

	dir := t.TempDir()
	src := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(src, []byte{1, 2, 3}, 0o600))
	require.NoError(t, app.Upload(ctx, []string{src}))
	require.NoError(t, app.Process(ctx))

	recs, err = app.repo.ListByOwner(ctx, "owner@example.com")
	require.NoError(t, err)

	var fileID string
	for _, r := range recs {
		if !r.IsFolder() {
			fileID = r.ID
		}
	}
	require.NotEmpty(t, fileID)

	require.NoError(t, app.Move(ctx, []string{fileID, folderID}))
	require.NoError(t, app.Remove(ctx, []string{fileID}))
	require.NoError(t, app.Restore(ctx, []string{fileID}))
	require.NoError(t, app.Remove(ctx, []string{fileID}))
	require.NoError(t, app.Delete(ctx, []string{fileID}))

	_, err = app.repo.Get(ctx, fileID)
	require.Error(t, err)
}

func TestApp_ExportImportSnapshot(t *testing.T) {
	silencePrintln(t)
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, []string{"0xOwner"}))
	require.NoError(t, app.Mkdir(ctx, []string{"keep"}))

	dir := t.TempDir()
	snap := filepath.Join(dir, "backup.json")
	require.NoError(t, app.Export(ctx, []string{snap}))

	other := newTestApp(t)
	require.NoError(t, other.Open(ctx, []string{"0xOwner"}))
	require.NoError(t, other.Import(ctx, []string{snap}))

	recs, err := other.repo.ListByOwner(ctx, "0xowner")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "keep", recs[0].DisplayName)
}
