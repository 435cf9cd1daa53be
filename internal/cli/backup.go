package cli

import (
	"context"
	"fmt"
	"os"
)

// Export writes an index snapshot to the given path. Envelope fields stay in
// their encrypted form, so the snapshot is safe to park on untrusted media.
func (a *App) Export(ctx context.Context, args []string) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return usage("export <path>")
	}

	blob, err := a.repo.ExportAll(ctx, owner)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], blob, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	printlnFn("Snapshot written to", args[0])
	return nil
}

// Import restores records from a snapshot file. Items belonging to other
// identities are skipped.
func (a *App) Import(ctx context.Context, args []string) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return usage("import <path>")
	}

	blob, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	n, err := a.repo.ImportAll(ctx, blob, owner)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Imported %d record(s)", n))
	return nil
}
