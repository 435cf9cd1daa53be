package models

// SnapshotVersion is the current backup snapshot format version.
const SnapshotVersion = 1

// Snapshot is the export/import backup format: all of one owner's records
// at a point in time, serialized as JSON.
type Snapshot struct {
	Version   int           `json:"version"`
	Timestamp int64         `json:"timestamp"`
	OwnerID   string        `json:"owner_id"`
	Items     []*FileRecord `json:"items"`
}
