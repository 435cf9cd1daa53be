// Package pipeline drives upload tasks through the envelope-encryption state
// machine: Queued → Encrypting → Uploading → Completed | Failed.
//
// Tasks are processed strictly one at a time. Uploads are user-initiated and
// network-bound, so batching has linear wall-clock cost; in exchange a slow
// upload never starves a sibling's encryption or the caller's progress
// reporting.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kapish505/CipherVault/internal/cryptox"
	"github.com/kapish505/CipherVault/internal/keyring"
	"github.com/kapish505/CipherVault/internal/logging"
	"github.com/kapish505/CipherVault/internal/mirror"
	"github.com/kapish505/CipherVault/internal/models"
	"github.com/kapish505/CipherVault/internal/records"
	"github.com/kapish505/CipherVault/internal/storage"
)

// DefaultTargetReplicas is the replica goal stamped on new records.
const DefaultTargetReplicas = 3

// Pipeline orchestrates the envelope cipher, the identity keyring, the
// content store and the record index. The task list is owned by the
// pipeline; callers read snapshots via Tasks.
type Pipeline struct {
	session *keyring.Session
	repo    records.Repository
	store   storage.Client
	mirror  mirror.Client
	log     logging.Logger

	targetReplicas int

	mu    sync.Mutex
	tasks []*models.UploadTask
}

func New(session *keyring.Session, repo records.Repository, store storage.Client, log logging.Logger) *Pipeline {
	return &Pipeline{
		session:        session,
		repo:           repo,
		store:          store,
		log:            log,
		targetReplicas: DefaultTargetReplicas,
	}
}

// SetMirror enables best-effort pushes of opaque metadata to the remote
// mirror after each successful upload.
func (p *Pipeline) SetMirror(c mirror.Client) {
	p.mirror = c
}

func (p *Pipeline) SetTargetReplicas(n int) {
	if n > 0 {
		p.targetReplicas = n
	}
}

// Enqueue adds a new task in state Queued and returns a snapshot of it.
func (p *Pipeline) Enqueue(name string, data []byte, contentType, parentID string, class models.Classification) models.UploadTask {
	if name == "" {
		name = "unnamed"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if class == "" {
		class = models.ClassificationPrivate
	}

	t := &models.UploadTask{
		ID:             uuid.NewString(),
		Name:           name,
		Data:           data,
		ContentType:    contentType,
		Status:         models.TaskQueued,
		ParentID:       parentID,
		Classification: class,
	}

	p.mu.Lock()
	p.tasks = append(p.tasks, t)
	p.mu.Unlock()
	return *t
}

// Tasks returns a copy of the task list for display.
func (p *Pipeline) Tasks() []models.UploadTask {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.UploadTask, 0, len(p.tasks))
	for _, t := range p.tasks {
		out = append(out, *t)
	}
	return out
}

func (p *Pipeline) find(id string) *models.UploadTask {
	for _, t := range p.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RemoveQueued drops a task that has not started yet. A task past Queued
// cannot be cancelled; it runs to Completed or Failed.
func (p *Pipeline) RemoveQueued(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, t := range p.tasks {
		if t.ID == id {
			if t.Status != models.TaskQueued {
				return fmt.Errorf("task %s is %s, only queued tasks can be removed", id, t.Status)
			}
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s not found", id)
}

// Retry re-queues a failed task. This is the only externally triggered
// transition; nothing retries automatically.
func (p *Pipeline) Retry(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.find(id)
	if t == nil {
		return fmt.Errorf("task %s not found", id)
	}
	if t.Status != models.TaskFailed {
		return fmt.Errorf("task %s is %s, only failed tasks can be retried", id, t.Status)
	}
	t.Status = models.TaskQueued
	t.Progress = 0
	t.Error = ""
	return nil
}

func (p *Pipeline) setState(t *models.UploadTask, status models.TaskStatus, progress int) {
	p.mu.Lock()
	t.Status = status
	if progress >= 0 {
		t.Progress = progress
	}
	p.mu.Unlock()
}

// ProcessQueued runs every queued task to completion, one at a time, in
// enqueue order. Failures are captured on the task and do not stop the
// batch.
func (p *Pipeline) ProcessQueued(ctx context.Context) {
	p.mu.Lock()
	queued := make([]*models.UploadTask, 0, len(p.tasks))
	for _, t := range p.tasks {
		if t.Status == models.TaskQueued {
			queued = append(queued, t)
		}
	}
	p.mu.Unlock()

	for _, t := range queued {
		if err := p.process(ctx, t); err != nil {
			p.mu.Lock()
			t.Status = models.TaskFailed
			t.Error = err.Error()
			p.mu.Unlock()
			p.log.Error(ctx, "upload failed", "task", t.ID, "name", t.Name, "error", err)
		}
	}
}

// process runs one task through the state machine. The record write is the
// last step: a failed task leaves no trace in the index, and partial records
// are never visible to listing operations.
func (p *Pipeline) process(ctx context.Context, t *models.UploadTask) error {
	owner := p.session.Identity()
	if owner == "" {
		return fmt.Errorf("no open session")
	}

	p.setState(t, models.TaskEncrypting, 10)

	dek := cryptox.GenerateDEK()
	ciphertext, fileIV, err := cryptox.Encrypt(t.Data, dek)
	if err != nil {
		return err
	}

	kek, err := p.session.DeriveKEK()
	if err != nil {
		return err
	}

	// The key-wrap IV is generated inside WrapKey and is independent of
	// fileIV; both are persisted separately.
	wrapped, keyIV, err := cryptox.WrapKey(dek, kek)
	if err != nil {
		return err
	}

	p.setState(t, models.TaskUploading, 50)

	cid, err := p.store.Upload(ctx, ciphertext, t.Name, func(fraction float64) {
		p.setState(t, models.TaskUploading, 50+int(fraction*45))
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := &models.FileRecord{
		ID:             t.ID,
		OwnerID:        owner,
		DisplayName:    t.Name,
		SizeBytes:      int64(len(t.Data)),
		ContentType:    t.ContentType,
		ContentID:      cid,
		WrappedKey:     cryptox.EncodeField(wrapped),
		KeyIV:          cryptox.EncodeField(keyIV),
		FileIV:         cryptox.EncodeField(fileIV),
		ParentID:       t.ParentID,
		Classification: t.Classification,
		AccessedAt:     now,
		CreatedAt:      now,
		TargetReplicas: p.targetReplicas,
		// One acknowledged copy so far; the health monitor upgrades the
		// status once it measures real replication.
		CurrentReplicas: 1,
		HealthStatus:    models.HealthDegraded,
	}

	if err := p.repo.Put(ctx, rec); err != nil {
		return err
	}

	p.pushToMirror(ctx, t, rec, dek)

	p.setState(t, models.TaskCompleted, 100)
	p.log.Info(ctx, "upload complete", "task", t.ID, "cid", cid, "size", rec.SizeBytes)
	return nil
}

// pushToMirror sends the opaque form of the record to the metadata mirror.
// Best-effort: the local index is authoritative and the task has already
// succeeded, so mirror failures are logged and dropped.
func (p *Pipeline) pushToMirror(ctx context.Context, t *models.UploadTask, rec *models.FileRecord, dek []byte) {
	if p.mirror == nil {
		return
	}

	nameCT, nameIV, err := cryptox.Encrypt([]byte(rec.DisplayName), dek)
	if err != nil {
		p.log.Warn(ctx, "mirror push skipped", "task", t.ID, "error", err)
		return
	}
	typeCT, typeIV, err := cryptox.Encrypt([]byte(rec.ContentType), dek)
	if err != nil {
		p.log.Warn(ctx, "mirror push skipped", "task", t.ID, "error", err)
		return
	}

	m := mirror.Record{
		ID:             rec.ID,
		OwnerID:        rec.OwnerID,
		NameCiphertext: cryptox.EncodeField(nameCT),
		NameIV:         cryptox.EncodeField(nameIV),
		TypeCiphertext: cryptox.EncodeField(typeCT),
		TypeIV:         cryptox.EncodeField(typeIV),
		ContentID:      rec.ContentID,
		SizeBytes:      rec.SizeBytes,
		WrappedKey:     rec.WrappedKey,
		KeyIV:          rec.KeyIV,
		FileIV:         rec.FileIV,
	}
	if err := p.mirror.PutRecord(ctx, m); err != nil {
		p.log.Warn(ctx, "mirror push failed", "task", t.ID, "error", err)
	}
}

// Download fetches, unwraps and decrypts a stored file. Key-unwrap failures
// and content-decryption failures surface as distinct errors: the first
// means the acting identity does not own this record, the second that the
// stored ciphertext is damaged.
func (p *Pipeline) Download(ctx context.Context, recordID string) (*models.FileRecord, []byte, error) {
	rec, err := p.repo.Get(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	if rec.IsFolder() {
		return nil, nil, fmt.Errorf("record %s is a folder", recordID)
	}

	wrapped, err := cryptox.DecodeField(rec.WrappedKey)
	if err != nil {
		return nil, nil, fmt.Errorf("record %s: bad wrapped key: %w", recordID, err)
	}
	keyIV, err := cryptox.DecodeField(rec.KeyIV)
	if err != nil {
		return nil, nil, fmt.Errorf("record %s: bad key iv: %w", recordID, err)
	}
	fileIV, err := cryptox.DecodeField(rec.FileIV)
	if err != nil {
		return nil, nil, fmt.Errorf("record %s: bad file iv: %w", recordID, err)
	}

	kek, err := p.session.DeriveKEK()
	if err != nil {
		return nil, nil, err
	}
	dek, err := cryptox.UnwrapKey(wrapped, keyIV, kek)
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err := p.store.Download(ctx, rec.ContentID)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := cryptox.Decrypt(ciphertext, fileIV, dek)
	if err != nil {
		return nil, nil, err
	}

	if err := p.repo.TouchAccess(ctx, rec.ID); err != nil {
		p.log.Warn(ctx, "access-time bump failed", "record", rec.ID, "error", err)
	}

	return rec, plaintext, nil
}
