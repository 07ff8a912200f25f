package prune

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"searchops/esprune/pkg/cluster"
	"searchops/esprune/pkg/config"
)

// NodeDialer establishes a connection handle for one node.
// *cluster.Dialer is the production implementation.
type NodeDialer interface {
	Dial(ctx context.Context, node string) (cluster.Conn, error)
}

// Notifier delivers the end-of-run report.
type Notifier interface {
	Notify(ctx context.Context, result *RunResult) error
}

// Observer receives completed run results, e.g. for metrics.
type Observer interface {
	ObserveRun(result *RunResult)
}

// Runner orchestrates one cleanup cycle: dial each configured node in order,
// prune it, collect per-node outcomes, and send the notification email.
//
// Nodes are processed sequentially and independently. A node that fails to
// connect or errors mid-prune is recorded as a failed outcome and the run
// continues with the remaining nodes; the caller decides whether any failure
// affects the process exit code. Deletions already performed are never
// rolled back, including when the notification itself fails.
type Runner struct {
	dialer   NodeDialer
	observer Observer
	logger   *slog.Logger

	// now is the clock; replaced in tests.
	now func() time.Time

	mu       sync.RWMutex
	cfg      *config.Config
	notifier Notifier
}

// NewRunner creates a Runner. notifier and observer may be nil.
func NewRunner(cfg *config.Config, dialer NodeDialer, notifier Notifier, observer Observer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		dialer:   dialer,
		observer: observer,
		logger:   logger.With("component", "runner"),
		now:      time.Now,
		cfg:      cfg,
		notifier: notifier,
	}
}

// SetConfig swaps the runner's configuration. The next run picks it up;
// a run already in progress keeps its snapshot.
func (r *Runner) SetConfig(cfg *config.Config) {
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
}

// SetNotifier swaps the notifier used for end-of-run reports, e.g. after a
// configuration reload changed the mail settings. A nil notifier makes run
// reports log-only. The next run picks it up.
func (r *Runner) SetNotifier(notifier Notifier) {
	r.mu.Lock()
	r.notifier = notifier
	r.mu.Unlock()
}

// Run executes one cleanup cycle and returns the aggregated result.
//
// The returned error is non-nil only when the notification could not be
// sent; per-node failures are reported through the result itself
// (RunResult.Failed). The result is always non-nil.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	r.mu.RLock()
	cfg := r.cfg
	notifier := r.notifier
	r.mu.RUnlock()

	start := r.now()
	cutoff := CutoffDate(start, cfg.KeepDays)

	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: start,
		Cutoff:    cutoff,
		KeepDays:  cfg.KeepDays,
		Prefix:    cfg.Prefix,
		Outcomes:  make([]NodeOutcome, 0, len(cfg.Nodes)),
	}

	logger := r.logger.With("run_id", result.RunID)
	logger.Info("starting retention cleanup",
		"nodes", len(cfg.Nodes),
		"prefix", cfg.Prefix,
		"keep_days", cfg.KeepDays,
		"cutoff", cutoff.Format(indexDateLayout),
	)

	pruner := NewPruner(cfg.Prefix, cutoff, logger)

	for _, node := range cfg.Nodes {
		outcome := r.processNode(ctx, pruner, node)
		if outcome.Err != nil {
			outcome.Error = outcome.Err.Error()
			logger.Error("node failed", "node", node, "error", outcome.Err)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Duration = r.now().Sub(start)

	logger.Info("retention cleanup finished",
		"deleted", result.TotalDeleted(),
		"skipped", result.TotalSkipped(),
		"failed_nodes", len(result.FailedNodes()),
		"duration", result.Duration,
	)

	if r.observer != nil {
		r.observer.ObserveRun(result)
	}

	if notifier != nil {
		if err := notifier.Notify(ctx, result); err != nil {
			// Deletions have already happened; the report is just lost.
			return result, fmt.Errorf("notification failed: %w", err)
		}
	}

	return result, nil
}

// processNode dials one node, prunes it, and closes the handle. The handle
// is scoped to this call regardless of outcome.
func (r *Runner) processNode(ctx context.Context, pruner *Pruner, node string) NodeOutcome {
	conn, err := r.dialer.Dial(ctx, node)
	if err != nil {
		return NodeOutcome{Node: node, Err: err}
	}
	defer conn.Close()

	report, err := pruner.PruneNode(ctx, conn)
	if err != nil {
		return NodeOutcome{Node: node, Err: err}
	}

	return NodeOutcome{Node: node, Report: report}
}
