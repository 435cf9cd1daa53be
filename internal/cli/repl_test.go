package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	open bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isOpen() bool { return f.open }
func (f *fakeExec) Open(ctx context.Context, args []string) error {
	f.open = true
	return f.record("open", args)
}
func (f *fakeExec) Close(ctx context.Context) error {
	f.open = false
	return f.record("close", nil)
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error { return f.record("upload", args) }
func (f *fakeExec) Process(ctx context.Context) error               { return f.record("process", nil) }
func (f *fakeExec) Tasks(ctx context.Context) error                 { return f.record("tasks", nil) }
func (f *fakeExec) Retry(ctx context.Context, args []string) error  { return f.record("retry", args) }
func (f *fakeExec) Dequeue(ctx context.Context, args []string) error {
	return f.record("dequeue", args)
}
func (f *fakeExec) List(ctx context.Context) error                  { return f.record("list", nil) }
func (f *fakeExec) Trash(ctx context.Context) error                 { return f.record("trash", nil) }
func (f *fakeExec) Starred(ctx context.Context) error               { return f.record("starred", nil) }
func (f *fakeExec) Recent(ctx context.Context) error                { return f.record("recent", nil) }
func (f *fakeExec) Star(ctx context.Context, args []string) error   { return f.record("star", args) }
func (f *fakeExec) Remove(ctx context.Context, args []string) error { return f.record("rm", args) }
func (f *fakeExec) Restore(ctx context.Context, args []string) error {
	return f.record("restore", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error { return f.record("del", args) }
func (f *fakeExec) Purge(ctx context.Context) error                 { return f.record("purge", nil) }
func (f *fakeExec) Move(ctx context.Context, args []string) error   { return f.record("move", args) }
func (f *fakeExec) Rename(ctx context.Context, args []string) error {
	return f.record("rename", args)
}
func (f *fakeExec) Mkdir(ctx context.Context, args []string) error  { return f.record("mkdir", args) }
func (f *fakeExec) Get(ctx context.Context, args []string) error    { return f.record("get", args) }
func (f *fakeExec) Export(ctx context.Context, args []string) error { return f.record("export", args) }
func (f *fakeExec) Import(ctx context.Context, args []string) error { return f.record("import", args) }
func (f *fakeExec) Health(ctx context.Context, args []string) error { return f.record("health", args) }
func (f *fakeExec) Heal(ctx context.Context, args []string) error   { return f.record("heal", args) }

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_OpenFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"open 0xABCdef",
		"help",
		"upload report.pdf",
		"process",
		"list",
		"star 123",
		"get 123",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"open", "upload", "process", "list", "star", "get"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_PassesArguments(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("move abc def\nquit\n")
	exec := &fakeExec{open: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "move" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if got := exec.args[0]; len(got) != 2 || got[0] != "abc" || got[1] != "def" {
		t.Fatalf("unexpected args: %v", got)
	}
}

func TestRunREPL_ReportsHandlerErrors(t *testing.T) {
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		if len(a) > 0 {
			if s, ok := a[0].(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	input := strings.NewReader("list\nexit\n")
	exec := &fakeExec{open: true, err: errors.New("boom")}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	found := false
	for _, s := range printed {
		if s == "error:" {
			found = true
		}
	}
	if !found {
		t.Fatalf("handler error was not reported, printed: %v", printed)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
