package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kapish505/CipherVault/internal/common"
	"github.com/kapish505/CipherVault/internal/dbx"
	"github.com/kapish505/CipherVault/internal/models"
)

// maxPathDepth caps parent-chain walks. MoveToFolder is the primary cycle
// guard; this bound only guarantees termination if the invariant was ever
// violated upstream.
const maxPathDepth = 20

// SQLiteRepository is the SQLite-backed Repository.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// normalizeOwner matches the identity normalization used for KEK derivation:
// owners compare case-insensitively.
func normalizeOwner(ownerID string) string {
	return strings.ToLower(strings.TrimSpace(ownerID))
}

const recordColumns = `id, owner_id, display_name, size_bytes, content_type, content_id,
	wrapped_key, key_iv, file_iv, parent_id, classification,
	is_trashed, trashed_at, is_starred, accessed_at, created_at,
	target_replicas, current_replicas, health_status, last_healed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.FileRecord, error) {
	var (
		rec                  models.FileRecord
		classification       string
		healthStatus         string
		isTrashed, isStarred int64
		accessedAt, created  int64
		trashedAt, healedAt  sql.NullInt64
	)

	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.DisplayName, &rec.SizeBytes, &rec.ContentType, &rec.ContentID,
		&rec.WrappedKey, &rec.KeyIV, &rec.FileIV, &rec.ParentID, &classification,
		&isTrashed, &trashedAt, &isStarred, &accessedAt, &created,
		&rec.TargetReplicas, &rec.CurrentReplicas, &healthStatus, &healedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Classification = models.Classification(classification)
	rec.HealthStatus = models.HealthStatus(healthStatus)
	rec.IsTrashed = isTrashed != 0
	rec.IsStarred = isStarred != 0
	rec.AccessedAt = fromUnix(accessedAt)
	rec.CreatedAt = fromUnix(created)
	rec.TrashedAt = fromNullUnix(trashedAt)
	rec.LastHealedAt = fromNullUnix(healedAt)
	return &rec, nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func toNullUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func fromNullUnix(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func (r *SQLiteRepository) Put(ctx context.Context, rec *models.FileRecord) error {
	return r.putOn(ctx, r.db, rec)
}

func (r *SQLiteRepository) putOn(ctx context.Context, db dbx.DBTX, rec *models.FileRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("put record: empty id")
	}

	owner := normalizeOwner(rec.OwnerID)
	if owner == "" {
		return fmt.Errorf("put record %s: empty owner", rec.ID)
	}
	rec.OwnerID = owner

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.AccessedAt.IsZero() {
		rec.AccessedAt = rec.CreatedAt
	}
	if rec.Classification == "" {
		rec.Classification = models.ClassificationPrivate
	}
	if rec.HealthStatus == "" {
		rec.HealthStatus = models.HealthHealthy
	}

	query := `INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			display_name = excluded.display_name,
			size_bytes = excluded.size_bytes,
			content_type = excluded.content_type,
			content_id = excluded.content_id,
			wrapped_key = excluded.wrapped_key,
			key_iv = excluded.key_iv,
			file_iv = excluded.file_iv,
			parent_id = excluded.parent_id,
			classification = excluded.classification,
			is_trashed = excluded.is_trashed,
			trashed_at = excluded.trashed_at,
			is_starred = excluded.is_starred,
			accessed_at = excluded.accessed_at,
			created_at = excluded.created_at,
			target_replicas = excluded.target_replicas,
			current_replicas = excluded.current_replicas,
			health_status = excluded.health_status,
			last_healed_at = excluded.last_healed_at`

	_, err := db.ExecContext(ctx, query,
		rec.ID, rec.OwnerID, rec.DisplayName, rec.SizeBytes, rec.ContentType, rec.ContentID,
		rec.WrappedKey, rec.KeyIV, rec.FileIV, rec.ParentID, string(rec.Classification),
		boolToInt(rec.IsTrashed), toNullUnix(rec.TrashedAt), boolToInt(rec.IsStarred),
		toUnix(rec.AccessedAt), toUnix(rec.CreatedAt),
		rec.TargetReplicas, rec.CurrentReplicas, string(rec.HealthStatus), toNullUnix(rec.LastHealedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.FileRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get record %s: %w", id, common.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error selecting records: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM records WHERE owner_id = ? AND is_trashed = 0 ORDER BY created_at DESC, id`,
		normalizeOwner(ownerID))
}

func (r *SQLiteRepository) ListTrashed(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM records WHERE owner_id = ? AND is_trashed = 1 ORDER BY trashed_at DESC, id`,
		normalizeOwner(ownerID))
}

func (r *SQLiteRepository) ListStarred(ctx context.Context, ownerID string) ([]*models.FileRecord, error) {
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM records WHERE owner_id = ? AND is_trashed = 0 AND is_starred = 1 ORDER BY created_at DESC, id`,
		normalizeOwner(ownerID))
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]*models.FileRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM records WHERE owner_id = ? AND is_trashed = 0 ORDER BY accessed_at DESC, id LIMIT ?`,
		normalizeOwner(ownerID), limit)
}

func (r *SQLiteRepository) execOne(ctx context.Context, op, id, query string, args ...any) error {
	err := dbx.ExecOne(ctx, r.db, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %s: %w", op, id, common.ErrRecordNotFound)
		}
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, id, displayName string) error {
	return r.execOne(ctx, "rename record", id,
		`UPDATE records SET display_name = ? WHERE id = ?`, displayName, id)
}

func (r *SQLiteRepository) MoveToTrash(ctx context.Context, id string) error {
	return r.execOne(ctx, "trash record", id,
		`UPDATE records SET is_trashed = 1, trashed_at = ? WHERE id = ? AND is_trashed = 0`,
		time.Now().Unix(), id)
}

func (r *SQLiteRepository) Restore(ctx context.Context, id string) error {
	return r.execOne(ctx, "restore record", id,
		`UPDATE records SET is_trashed = 0, trashed_at = NULL WHERE id = ? AND is_trashed = 1`, id)
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id string) error {
	// Deleting is only allowed out of the trash.
	return r.execOne(ctx, "delete record", id,
		`DELETE FROM records WHERE id = ? AND is_trashed = 1`, id)
}

func (r *SQLiteRepository) PurgeExpiredTrash(ctx context.Context, ownerID string, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM records WHERE owner_id = ? AND is_trashed = 1 AND trashed_at IS NOT NULL AND trashed_at <= ?`,
		normalizeOwner(ownerID), cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge trash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge trash: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRepository) ToggleStar(ctx context.Context, id string) error {
	return r.execOne(ctx, "star record", id,
		`UPDATE records SET is_starred = 1 - is_starred WHERE id = ?`, id)
}

func (r *SQLiteRepository) TouchAccess(ctx context.Context, id string) error {
	return r.execOne(ctx, "touch record", id,
		`UPDATE records SET accessed_at = ? WHERE id = ?`, time.Now().Unix(), id)
}

func (r *SQLiteRepository) MoveToFolder(ctx context.Context, id, newParentID string) error {
	if newParentID == id {
		return fmt.Errorf("move record %s: %w", id, common.ErrCycleRejected)
	}

	if newParentID != "" {
		target, err := r.Get(ctx, newParentID)
		if err != nil {
			return fmt.Errorf("move record %s: %w", id, err)
		}
		if !target.IsFolder() {
			return fmt.Errorf("move record %s: destination %s is not a folder", id, newParentID)
		}

		// Walk up from the destination: if the record being moved shows up
		// among its ancestors, the move would close a cycle.
		cur := target
		for depth := 0; depth < maxPathDepth; depth++ {
			if cur.ID == id {
				return fmt.Errorf("move record %s: %w", id, common.ErrCycleRejected)
			}
			if cur.ParentID == "" {
				break
			}
			cur, err = r.Get(ctx, cur.ParentID)
			if err != nil {
				return fmt.Errorf("move record %s: %w", id, err)
			}
		}
	}

	return r.execOne(ctx, "move record", id,
		`UPDATE records SET parent_id = ? WHERE id = ?`, newParentID, id)
}

func (r *SQLiteRepository) ResolvePath(ctx context.Context, id string) (string, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}

	parts := []string{rec.DisplayName}
	for depth := 0; rec.ParentID != ""; depth++ {
		if depth >= maxPathDepth {
			return "", fmt.Errorf("resolve path %s: parent chain deeper than %d", id, maxPathDepth)
		}
		rec, err = r.Get(ctx, rec.ParentID)
		if err != nil {
			return "", err
		}
		parts = append([]string{rec.DisplayName}, parts...)
	}

	return "/" + strings.Join(parts, "/"), nil
}

func (r *SQLiteRepository) UpdateReplicaHealth(ctx context.Context, id string, current int, status models.HealthStatus, healedAt *time.Time) error {
	return r.execOne(ctx, "update replica health", id,
		`UPDATE records SET current_replicas = ?, health_status = ?, last_healed_at = COALESCE(?, last_healed_at) WHERE id = ?`,
		current, string(status), toNullUnix(healedAt), id)
}
