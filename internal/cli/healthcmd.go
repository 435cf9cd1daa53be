package cli

import (
	"context"
	"fmt"

	"github.com/kapish505/CipherVault/internal/health"
)

// Health probes the configured gateways for a record's content and updates
// the stored replica count.
func (a *App) Health(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("health <id>")
	}
	count, err := a.monitor.Refresh(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d replica(s) reachable, status %s", count, health.StatusFor(count)))
	return nil
}

// Heal re-pins a record's content and re-probes it.
func (a *App) Heal(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("heal <id>")
	}
	count, err := a.monitor.Heal(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("heal finished: %d replica(s) reachable, status %s", count, health.StatusFor(count)))
	return nil
}
