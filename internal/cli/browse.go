package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kapish505/CipherVault/internal/models"
)

const recentLimit = 20

// formatRecord renders one index row for the terminal.
func formatRecord(rec *models.FileRecord) string {
	kind := "file"
	if rec.IsFolder() {
		kind = "dir "
	}
	flags := []string{}
	if rec.IsStarred {
		flags = append(flags, "*")
	}
	if rec.IsTrashed {
		flags = append(flags, "trashed")
	}
	suffix := ""
	if len(flags) > 0 {
		suffix = "  [" + strings.Join(flags, " ") + "]"
	}
	return fmt.Sprintf("%s  %s  %8d  %-9s  %s%s",
		rec.ID, kind, rec.SizeBytes, rec.HealthStatus, rec.DisplayName, suffix)
}

func (a *App) printList(recs []*models.FileRecord) {
	if len(recs) == 0 {
		printlnFn("No records")
		return
	}
	for _, rec := range recs {
		printlnFn(formatRecord(rec))
	}
}

// List shows the owner's active records, newest first.
func (a *App) List(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	recs, err := a.repo.ListByOwner(ctx, owner)
	if err != nil {
		return err
	}
	a.printList(recs)
	return nil
}

// Trash shows the owner's trashed records.
func (a *App) Trash(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	recs, err := a.repo.ListTrashed(ctx, owner)
	if err != nil {
		return err
	}
	a.printList(recs)
	return nil
}

// Starred shows the owner's starred records.
func (a *App) Starred(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	recs, err := a.repo.ListStarred(ctx, owner)
	if err != nil {
		return err
	}
	a.printList(recs)
	return nil
}

// Recent shows the most recently accessed records.
func (a *App) Recent(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	recs, err := a.repo.ListRecent(ctx, owner, recentLimit)
	if err != nil {
		return err
	}
	a.printList(recs)
	return nil
}

// Star toggles the star flag on a record.
func (a *App) Star(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("star <id>")
	}
	return a.repo.ToggleStar(ctx, args[0])
}

// Remove moves a record to the trash. The stored content stays pinned so a
// restore within the retention window always works.
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("rm <id>")
	}
	return a.repo.MoveToTrash(ctx, args[0])
}

// Restore brings a record back from the trash.
func (a *App) Restore(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("restore <id>")
	}
	return a.repo.Restore(ctx, args[0])
}

// Delete permanently removes a trashed record from the index.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("del <id>")
	}
	return a.repo.HardDelete(ctx, args[0])
}

// Purge permanently deletes all trash past the retention window.
func (a *App) Purge(ctx context.Context) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	n, err := a.repo.PurgeExpiredTrash(ctx, owner, a.config.RetentionDays)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Purged %d record(s)", n))
	return nil
}

// Move reparents a record. "-" as the destination moves it to the root.
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("move <id> <folder-id|->")
	}
	dest := args[1]
	if dest == "-" {
		dest = ""
	}
	if err := a.repo.MoveToFolder(ctx, args[0], dest); err != nil {
		return err
	}
	path, err := a.repo.ResolvePath(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn("Moved to", path)
	return nil
}

// Rename changes a record's display name in the local index.
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("rename <id> <name>")
	}
	return a.repo.Rename(ctx, args[0], strings.Join(args[1:], " "))
}

// Mkdir creates a folder record. Folders exist only in the index; nothing
// is uploaded for them.
func (a *App) Mkdir(ctx context.Context, args []string) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return usage("mkdir <name> [folder-id]")
	}

	parentID := ""
	if len(args) > 1 {
		parentID = args[1]
	}

	rec := &models.FileRecord{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		DisplayName: args[0],
		ContentType: models.FolderContentType,
		ParentID:    parentID,
	}
	if err := a.repo.Put(ctx, rec); err != nil {
		return err
	}
	printlnFn("Created folder", rec.ID)
	return nil
}
