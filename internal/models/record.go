// Package models defines the file/folder record, upload task, and backup
// snapshot types shared across the vault.
package models

import "time"

// FolderContentType is the sentinel content type marking a record as a
// folder. Folders have no content id and no envelope fields.
const FolderContentType = "application/x-directory"

// Classification is an advisory sensitivity label. It never alters the
// cipher; every file is encrypted the same way.
type Classification string

const (
	ClassificationPublic       Classification = "public"
	ClassificationPrivate      Classification = "private"
	ClassificationConfidential Classification = "confidential"
)

// HealthStatus is the replica health of a stored object.
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "healthy"
	HealthDegraded   HealthStatus = "degraded"
	HealthRecovering HealthStatus = "recovering"
)

// FileRecord is one row of the local index. DisplayName is plaintext here:
// the local store is a device-trusted convenience cache. The network-facing
// mirror only ever receives the ciphertext form of the name.
//
// WrappedKey, KeyIV and FileIV hold base64 envelope fields and are empty for
// folders. ParentID links records into a forest; no record may be its own
// ancestor.
type FileRecord struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"owner_id"`
	DisplayName    string         `json:"display_name"`
	SizeBytes      int64          `json:"size_bytes"`
	ContentType    string         `json:"content_type"`
	ContentID      string         `json:"content_id"`
	WrappedKey     string         `json:"wrapped_key"`
	KeyIV          string         `json:"key_iv"`
	FileIV         string         `json:"file_iv"`
	ParentID       string         `json:"parent_id,omitempty"`
	Classification Classification `json:"classification"`

	IsTrashed  bool       `json:"is_trashed"`
	TrashedAt  *time.Time `json:"trashed_at,omitempty"`
	IsStarred  bool       `json:"is_starred"`
	AccessedAt time.Time  `json:"accessed_at"`
	CreatedAt  time.Time  `json:"created_at"`

	TargetReplicas  int          `json:"target_replicas"`
	CurrentReplicas int          `json:"current_replicas"`
	HealthStatus    HealthStatus `json:"health_status"`
	LastHealedAt    *time.Time   `json:"last_healed_at,omitempty"`
}

// IsFolder reports whether the record is a folder.
func (r *FileRecord) IsFolder() bool {
	return r.ContentType == FolderContentType
}
