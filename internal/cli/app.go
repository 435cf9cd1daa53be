package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/kapish505/CipherVault/internal/config"
	"github.com/kapish505/CipherVault/internal/health"
	"github.com/kapish505/CipherVault/internal/keyring"
	"github.com/kapish505/CipherVault/internal/logging"
	"github.com/kapish505/CipherVault/internal/mirror"
	"github.com/kapish505/CipherVault/internal/pipeline"
	"github.com/kapish505/CipherVault/internal/records"
	"github.com/kapish505/CipherVault/internal/storage"
)

// App wires the vault components together behind the REPL commands.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *keyring.Session
	store   *records.Store
	repo    records.Repository
	client  storage.Client
	pipe    *pipeline.Pipeline
	monitor *health.Monitor
	reader  *bufio.Reader
}

// NewApp opens the local index, connects the storage client and constructs
// the pipeline and health monitor. The session starts closed; commands that
// need key material fail until the user runs "open".
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := records.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	repo := store.Repo()

	client := storage.NewIPFSClient(c.IPFSAPIAddr)

	session := keyring.NewSession()

	pipe := pipeline.New(session, repo, client, log)
	pipe.SetTargetReplicas(c.TargetReplicas)
	if c.MirrorBaseURL != "" {
		pipe.SetMirror(mirror.NewHTTPClient(c.MirrorBaseURL))
	}

	monitor := health.NewMonitor(repo, client, c.GatewayURLs, log)

	app := &App{
		config:  c,
		log:     log,
		session: session,
		store:   store,
		repo:    repo,
		client:  client,
		pipe:    pipe,
		monitor: monitor,
		reader:  bufio.NewReader(os.Stdin),
	}
	session.Subscribe(app)

	return app, nil
}

// SessionChanged implements keyring.Observer. Opening a session triggers an
// opportunistic purge of trash past the retention window.
func (a *App) SessionChanged(event keyring.Event, identity string) {
	if event != keyring.EventOpened {
		return
	}
	ctx := context.Background()
	n, err := a.repo.PurgeExpiredTrash(ctx, identity, a.config.RetentionDays)
	if err != nil {
		a.log.Warn(ctx, "trash purge failed", "error", err)
		return
	}
	if n > 0 {
		a.log.Info(ctx, "purged expired trash", "records", n)
	}
}

func (a *App) isOpen() bool {
	return a.session.IsOpen()
}

func (a *App) getStatus() string {
	if id := a.session.Identity(); id != "" {
		return fmt.Sprintf("(%s)", id)
	}
	return "(locked)"
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	printlnFn("CipherVault CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
