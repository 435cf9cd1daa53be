package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isOpen() bool
	Open(ctx context.Context, args []string) error
	Close(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Process(ctx context.Context) error
	Tasks(ctx context.Context) error
	Retry(ctx context.Context, args []string) error
	Dequeue(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Trash(ctx context.Context) error
	Starred(ctx context.Context) error
	Recent(ctx context.Context) error
	Star(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Purge(ctx context.Context) error
	Move(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Mkdir(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Health(ctx context.Context, args []string) error
	Heal(ctx context.Context, args []string) error
}

const helpLocked = "Available commands: open <identity>, help, exit"

const helpOpen = `Available commands:
  upload <path> [folder-id]   queue a file for encrypted upload
  process                     run all queued uploads
  tasks                       show the upload queue
  retry <task-id>             requeue a failed upload
  dequeue <task-id>           drop a queued upload
  list | trash | starred | recent
  star <id>                   toggle the star flag
  rm <id>                     move a record to trash
  restore <id>                restore a record from trash
  del <id>                    permanently delete a trashed record
  purge                       delete all trash past retention
  move <id> <folder-id|->     move a record (use - for root)
  rename <id> <name>          rename a record
  mkdir <name> [folder-id]    create a folder
  get <id> [path]             download and decrypt a file
  export <path>               write an index snapshot
  import <path>               restore an index snapshot
  health <id>                 probe replica health
  heal <id>                   re-pin and re-probe a record
  close | exit`

// runREPL starts a simple read-eval-print loop for the CipherVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Command handlers return errors; the loop prints them so handlers stay free
// of REPL-facing output concerns.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn("error:", err)
		}
	}

	for {
		printlnFn(fmt.Sprintf("cvault %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isOpen() {
				printlnFn(helpOpen)
			} else {
				printlnFn(helpLocked)
			}

		case "open":
			report(a.Open(ctx, args))

		case "close":
			report(a.Close(ctx))

		case "upload":
			report(a.Upload(ctx, args))

		case "process":
			report(a.Process(ctx))

		case "tasks":
			report(a.Tasks(ctx))

		case "retry":
			report(a.Retry(ctx, args))

		case "dequeue":
			report(a.Dequeue(ctx, args))

		case "l", "list":
			report(a.List(ctx))

		case "trash":
			report(a.Trash(ctx))

		case "starred":
			report(a.Starred(ctx))

		case "recent":
			report(a.Recent(ctx))

		case "star":
			report(a.Star(ctx, args))

		case "rm":
			report(a.Remove(ctx, args))

		case "restore":
			report(a.Restore(ctx, args))

		case "del":
			report(a.Delete(ctx, args))

		case "purge":
			report(a.Purge(ctx))

		case "move":
			report(a.Move(ctx, args))

		case "rename":
			report(a.Rename(ctx, args))

		case "mkdir":
			report(a.Mkdir(ctx, args))

		case "get":
			report(a.Get(ctx, args))

		case "export":
			report(a.Export(ctx, args))

		case "import":
			report(a.Import(ctx, args))

		case "health":
			report(a.Health(ctx, args))

		case "heal":
			report(a.Heal(ctx, args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
