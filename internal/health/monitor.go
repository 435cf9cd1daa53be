// Package health measures the external redundancy of stored objects by
// probing independent public retrieval gateways, and attempts repair by
// re-pinning.
//
// Redundancy loss is a monitored condition, not an exception: probe
// failures fold into the replica count and a Degraded status, they never
// surface as errors.
package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kapish505/CipherVault/internal/logging"
	"github.com/kapish505/CipherVault/internal/models"
	"github.com/kapish505/CipherVault/internal/records"
	"github.com/kapish505/CipherVault/internal/storage"
)

// DefaultProbeTimeout bounds each individual gateway probe. Probes race
// their own timeouts, so a verification never waits longer than the single
// slowest non-timed-out probe.
const DefaultProbeTimeout = 2 * time.Second

// healthyThreshold is the probe count at and above which an object counts
// as healthy. Below it everything is Degraded; zero successful probes is
// not a separate "lost" state.
const healthyThreshold = 2

// Monitor verifies and repairs replica health for stored objects.
type Monitor struct {
	repo         records.Repository
	store        storage.Client
	gateways     []string
	probeTimeout time.Duration
	http         *http.Client
	log          logging.Logger
}

func NewMonitor(repo records.Repository, store storage.Client, gateways []string, log logging.Logger) *Monitor {
	return &Monitor{
		repo:         repo,
		store:        store,
		gateways:     gateways,
		probeTimeout: DefaultProbeTimeout,
		http:         &http.Client{},
		log:          log,
	}
}

// SetProbeTimeout overrides the per-probe timeout.
func (m *Monitor) SetProbeTimeout(d time.Duration) {
	if d > 0 {
		m.probeTimeout = d
	}
}

// StatusFor maps a measured replica count to a health status.
func StatusFor(count int) models.HealthStatus {
	if count >= healthyThreshold {
		return models.HealthHealthy
	}
	return models.HealthDegraded
}

// Verify probes every configured gateway for the content id concurrently
// and returns the number of gateways that can serve it.
func (m *Monitor) Verify(ctx context.Context, contentID string) int {
	var wg sync.WaitGroup
	results := make(chan bool, len(m.gateways))

	for _, gw := range m.gateways {
		wg.Add(1)
		go func(gateway string) {
			defer wg.Done()
			results <- m.probe(ctx, gateway, contentID)
		}(gw)
	}
	wg.Wait()
	close(results)

	count := 0
	for ok := range results {
		if ok {
			count++
		}
	}
	return count
}

// probe issues a HEAD for the object on one gateway. Any transport error,
// timeout, or non-2xx status counts as a failed probe.
func (m *Monitor) probe(ctx context.Context, gateway, contentID string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	url := strings.TrimRight(gateway, "/") + "/ipfs/" + contentID
	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Refresh measures replica health for a record and writes the result back.
func (m *Monitor) Refresh(ctx context.Context, recordID string) (int, error) {
	rec, err := m.repo.Get(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if rec.IsFolder() || rec.ContentID == "" {
		return 0, fmt.Errorf("record %s has no stored content", recordID)
	}

	count := m.Verify(ctx, rec.ContentID)
	if err := m.repo.UpdateReplicaHealth(ctx, rec.ID, count, StatusFor(count), nil); err != nil {
		return count, err
	}
	return count, nil
}

// Heal marks a record Recovering, asks the storage provider to re-pin its
// content (best-effort: a pin failure does not abort healing), then
// re-verifies and writes back the measured count. The final status always
// comes from a real measurement.
func (m *Monitor) Heal(ctx context.Context, recordID string) (int, error) {
	rec, err := m.repo.Get(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if rec.IsFolder() || rec.ContentID == "" {
		return 0, fmt.Errorf("record %s has no stored content", recordID)
	}

	if err := m.repo.UpdateReplicaHealth(ctx, rec.ID, rec.CurrentReplicas, models.HealthRecovering, nil); err != nil {
		return 0, err
	}

	if err := m.store.Pin(ctx, rec.ContentID, rec.DisplayName); err != nil {
		m.log.Warn(ctx, "re-pin failed, continuing heal", "record", rec.ID, "cid", rec.ContentID, "error", err)
	}

	count := m.Verify(ctx, rec.ContentID)
	now := time.Now().UTC()
	if err := m.repo.UpdateReplicaHealth(ctx, rec.ID, count, StatusFor(count), &now); err != nil {
		return count, err
	}

	m.log.Info(ctx, "heal finished", "record", rec.ID, "replicas", count, "status", StatusFor(count))
	return count, nil
}
