package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kapish505/CipherVault/internal/common"
	"github.com/kapish505/CipherVault/internal/dbx"
	"github.com/kapish505/CipherVault/internal/models"
)

// ExportAll serializes the owner's full index, trash included, into a
// versioned snapshot. Envelope fields travel as the opaque strings they are;
// no key material is involved.
func (r *SQLiteRepository) ExportAll(ctx context.Context, ownerID string) ([]byte, error) {
	owner := normalizeOwner(ownerID)

	items, err := r.list(ctx,
		`SELECT `+recordColumns+` FROM records WHERE owner_id = ? ORDER BY created_at, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}

	snap := models.Snapshot{
		Version:   models.SnapshotVersion,
		Timestamp: time.Now().Unix(),
		OwnerID:   owner,
		Items:     items,
	}

	blob, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	return blob, nil
}

// ImportAll restores records from a snapshot blob. Items whose owner does
// not match the importing identity are skipped silently: a restored backup
// must not contaminate the index with another tenant's records. Returns the
// number of records imported.
func (r *SQLiteRepository) ImportAll(ctx context.Context, blob []byte, ownerID string) (int, error) {
	owner := normalizeOwner(ownerID)

	var snap models.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}
	if snap.Items == nil {
		return 0, fmt.Errorf("%w: missing items", common.ErrInvalidSnapshot)
	}
	if snap.Version != models.SnapshotVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", common.ErrInvalidSnapshot, snap.Version)
	}

	// Import atomically when the repository holds a root *sql.DB handle;
	// inside an existing transaction the Puts run on that handle as is.
	if db, ok := r.db.(*sql.DB); ok {
		var imported int
		err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			imported, err = r.importItems(ctx, tx, snap.Items, owner)
			return err
		})
		return imported, err
	}
	return r.importItems(ctx, r.db, snap.Items, owner)
}

func (r *SQLiteRepository) importItems(ctx context.Context, db dbx.DBTX, items []*models.FileRecord, owner string) (int, error) {
	imported := 0
	for _, item := range items {
		if item == nil || normalizeOwner(item.OwnerID) != owner {
			continue
		}
		if err := r.putOn(ctx, db, item); err != nil {
			return imported, fmt.Errorf("import record %s: %w", item.ID, err)
		}
		imported++
	}
	return imported, nil
}
