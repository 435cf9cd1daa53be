package records

import (
	"context"
	"time"

	"github.com/kapish505/CipherVault/internal/models"
)

// DefaultRetentionDays is how long a trashed record stays recoverable.
const DefaultRetentionDays = 30

// Repository describes the operations of the local record index. All listing
// operations are keyed by owner identity; mutations are keyed by record id.
type Repository interface {
	// Put upserts a record by id. The owner id is normalized on the way in;
	// the operation is idempotent.
	Put(ctx context.Context, rec *models.FileRecord) error

	// Get returns the record by id or common.ErrRecordNotFound.
	Get(ctx context.Context, id string) (*models.FileRecord, error)

	// ListByOwner returns the owner's non-trashed records, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error)

	// ListTrashed returns the owner's trashed records.
	ListTrashed(ctx context.Context, ownerID string) ([]*models.FileRecord, error)

	// ListStarred returns the owner's starred, non-trashed records.
	ListStarred(ctx context.Context, ownerID string) ([]*models.FileRecord, error)

	// ListRecent returns up to limit non-trashed records by last access.
	ListRecent(ctx context.Context, ownerID string, limit int) ([]*models.FileRecord, error)

	// Rename changes the plaintext display name in the local index.
	Rename(ctx context.Context, id, displayName string) error

	// MoveToTrash soft-deletes a record. The content stays pinned so a
	// restore within the retention window always works.
	MoveToTrash(ctx context.Context, id string) error

	// Restore clears the trash flags.
	Restore(ctx context.Context, id string) error

	// HardDelete permanently removes a trashed record. Refused for records
	// that are not in the trash.
	HardDelete(ctx context.Context, id string) error

	// PurgeExpiredTrash permanently deletes the owner's trashed records
	// older than the retention window and reports how many were removed.
	// This and HardDelete are the only paths that destroy a record.
	PurgeExpiredTrash(ctx context.Context, ownerID string, retentionDays int) (int, error)

	// ToggleStar flips the star flag.
	ToggleStar(ctx context.Context, id string) error

	// TouchAccess bumps the last-access time.
	TouchAccess(ctx context.Context, id string) error

	// MoveToFolder reparents a record. Moves that would make a record its
	// own ancestor are rejected with common.ErrCycleRejected.
	MoveToFolder(ctx context.Context, id, newParentID string) error

	// ResolvePath returns the /-joined folder path of a record.
	ResolvePath(ctx context.Context, id string) (string, error)

	// UpdateReplicaHealth writes the measured replica count and status.
	UpdateReplicaHealth(ctx context.Context, id string, current int, status models.HealthStatus, healedAt *time.Time) error

	// ExportAll serializes every record of the owner (trash included) into
	// a backup snapshot.
	ExportAll(ctx context.Context, ownerID string) ([]byte, error)

	// ImportAll restores records from a snapshot, silently skipping any
	// item whose owner does not match the importing identity.
	ImportAll(ctx context.Context, blob []byte, ownerID string) (int, error)
}
