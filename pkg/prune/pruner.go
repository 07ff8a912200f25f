package prune

import (
	"context"
	"log/slog"
	"time"

	"searchops/esprune/pkg/cluster"
)

// Pruner deletes stale indices on a single node. The cutoff is computed once
// at run start and shared across all nodes of the run.
type Pruner struct {
	prefix string
	cutoff time.Time
	logger *slog.Logger
}

// NewPruner creates a Pruner for one run. prefix is the wildcard index name
// pattern; cutoff is the retention cutoff date from CutoffDate.
func NewPruner(prefix string, cutoff time.Time, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		prefix: prefix,
		cutoff: cutoff,
		logger: logger.With("component", "pruner"),
	}
}

// PruneNode lists indices matching the pattern on conn's node, deletes those
// dated strictly before the cutoff, and returns the node's report.
//
// A listing that matches nothing is not an error: the node's report carries
// an empty DeletionRecord. Index names whose trailing segment does not parse
// as a date are skipped with a warning and recorded in the report.
// Transport failures during listing or deletion fail the node.
func (p *Pruner) PruneNode(ctx context.Context, conn cluster.Conn) (*NodeReport, error) {
	node := conn.Addr()
	logger := p.logger.With("node", node)

	report := &NodeReport{
		Node:    node,
		Deleted: DeletionRecord{},
	}

	names, err := conn.ListIndices(ctx, p.prefix)
	if err != nil {
		if cluster.IsNotFound(err) {
			// A pattern that matches nothing and a misconfigured prefix
			// look identical here; the debug line is the operator's hint.
			logger.Debug("no indices matched pattern", "pattern", p.prefix)
			return report, nil
		}
		return nil, err
	}

	for _, name := range names {
		date, err := ParseIndexDate(name)
		if err != nil {
			logger.Warn("skipping index without parseable date",
				"index", name,
				"error", err,
			)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		if !date.Before(p.cutoff) {
			continue
		}

		acknowledged, err := conn.DeleteIndex(ctx, name)
		if err != nil {
			return nil, err
		}
		report.Deleted[name] = acknowledged

		logger.Info("deleted stale index",
			"index", name,
			"index_date", date.Format(indexDateLayout),
			"acknowledged", acknowledged,
		)
	}

	if len(report.Deleted) == 0 {
		logger.Debug("no stale indices on node",
			"pattern", p.prefix,
			"cutoff", p.cutoff.Format(indexDateLayout),
		)
	}

	return report, nil
}
