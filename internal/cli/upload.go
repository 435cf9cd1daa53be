package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/kapish505/CipherVault/internal/filex"
	"github.com/kapish505/CipherVault/internal/models"
)

// Upload reads a local file and places it on the upload queue. The file is
// not encrypted or transferred until "process" runs the queue.
func (a *App) Upload(ctx context.Context, args []string) error {
	if _, err := a.owner(); err != nil {
		return err
	}
	if len(args) < 1 {
		return usage("upload <path> [folder-id]")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	parentID := ""
	if len(args) > 1 {
		parentID = args[1]
	}

	name := filepath.Base(args[0])
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	task := a.pipe.Enqueue(name, data, contentType, parentID, models.ClassificationPrivate)
	printlnFn(fmt.Sprintf("queued %s as task %s (%d bytes)", name, task.ID, len(data)))
	return nil
}

// Process drains the upload queue serially and reports per-task outcomes.
func (a *App) Process(ctx context.Context) error {
	a.pipe.ProcessQueued(ctx)
	return a.Tasks(ctx)
}

// Tasks prints the current upload queue.
func (a *App) Tasks(ctx context.Context) error {
	tasks := a.pipe.Tasks()
	if len(tasks) == 0 {
		printlnFn("No upload tasks")
		return nil
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s  %-10s %3d%%  %s", t.ID, t.Status, t.Progress, t.Name)
		if t.Status == models.TaskFailed && t.Error != "" {
			line += "  (" + t.Error + ")"
		}
		printlnFn(line)
	}
	return nil
}

// Retry moves a failed task back to the queue.
func (a *App) Retry(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("retry <task-id>")
	}
	return a.pipe.Retry(args[0])
}

// Dequeue drops a task that has not started yet.
func (a *App) Dequeue(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("dequeue <task-id>")
	}
	return a.pipe.RemoveQueued(args[0])
}

// Get downloads a record's ciphertext, decrypts it and writes the plaintext
// to the given path, or to ./downloads/<name> when no path is given.
func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("get <id> [path]")
	}

	rec, plaintext, err := a.pipe.Download(ctx, args[0])
	if err != nil {
		return err
	}

	outPath := ""
	if len(args) > 1 {
		outPath = args[1]
	} else {
		dir, err := filex.EnsureSubdir("downloads")
		if err != nil {
			return err
		}
		outPath = filepath.Join(dir, filex.SafeBaseName(rec.DisplayName))
	}

	if err := os.WriteFile(outPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	printlnFn("File saved to:", outPath)
	return nil
}
