package cli

import (
	"context"
	"errors"
	"fmt"
)

var errNoSession = errors.New("no open session: run 'open <identity>' first")

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

// Open binds the session to a wallet identity. Matching is case-insensitive,
// so any capitalization of the same address opens the same vault.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("open <identity>")
	}
	if err := a.session.Open(args[0]); err != nil {
		return err
	}
	printlnFn("Vault opened for", a.session.Identity())
	return nil
}

// Close drops the bound identity. No key material needs wiping since none
// is retained between operations.
func (a *App) Close(ctx context.Context) error {
	a.session.Close()
	printlnFn("Vault closed")
	return nil
}

// owner returns the bound identity or errNoSession.
func (a *App) owner() (string, error) {
	id := a.session.Identity()
	if id == "" {
		return "", errNoSession
	}
	return id, nil
}
