package prune

import (
	"time"
)

// DeletionRecord maps an index name to the cluster's acknowledgement flag
// for its deletion (true = the cluster confirmed the delete).
type DeletionRecord map[string]bool

// NodeReport is the result of pruning a single node.
type NodeReport struct {
	// Node is the configured address of the node.
	Node string `json:"node"`

	// Deleted maps each deleted index name to its acknowledgement flag.
	// Empty when no matching indices were stale or none existed.
	Deleted DeletionRecord `json:"deleted"`

	// Skipped lists matching index names whose trailing segment did not
	// parse as a date. They are left untouched.
	Skipped []string `json:"skipped,omitempty"`
}

// NodeOutcome is the per-node entry in a RunResult: either a report or a
// typed failure, never both.
type NodeOutcome struct {
	// Node is the configured address of the node.
	Node string `json:"node"`

	// Report holds the node's deletion results. Nil when the node failed.
	Report *NodeReport `json:"report,omitempty"`

	// Err is the node's failure, typically a *cluster.NodeError.
	// Nil when the node was processed successfully.
	Err error `json:"-"`

	// Error is the failure message for serialized output.
	Error string `json:"error,omitempty"`
}

// Failed reports whether this node's processing failed.
func (o *NodeOutcome) Failed() bool {
	return o.Err != nil
}

// RunResult is the aggregated outcome of one cleanup run: one entry per
// configured node, in input order, plus run metadata.
type RunResult struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID string `json:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// Cutoff is the retention cutoff date used for this run. Indices
	// dated strictly before it were deletion candidates.
	Cutoff time.Time `json:"cutoff"`

	// KeepDays is the retention window the cutoff was derived from.
	KeepDays int `json:"keep_days"`

	// Prefix is the index name pattern the run matched against.
	Prefix string `json:"prefix"`

	// Outcomes holds one entry per node, in configuration order.
	Outcomes []NodeOutcome `json:"outcomes"`
}

// Failed reports whether any node in the run failed.
func (r *RunResult) Failed() bool {
	for i := range r.Outcomes {
		if r.Outcomes[i].Failed() {
			return true
		}
	}
	return false
}

// TotalDeleted returns the number of indices deleted across all nodes.
func (r *RunResult) TotalDeleted() int {
	var n int
	for i := range r.Outcomes {
		if rep := r.Outcomes[i].Report; rep != nil {
			n += len(rep.Deleted)
		}
	}
	return n
}

// TotalSkipped returns the number of index names skipped across all nodes
// because their trailing segment did not parse as a date.
func (r *RunResult) TotalSkipped() int {
	var n int
	for i := range r.Outcomes {
		if rep := r.Outcomes[i].Report; rep != nil {
			n += len(rep.Skipped)
		}
	}
	return n
}

// FailedNodes returns the addresses of all nodes that failed, in order.
func (r *RunResult) FailedNodes() []string {
	var nodes []string
	for i := range r.Outcomes {
		if r.Outcomes[i].Failed() {
			nodes = append(nodes, r.Outcomes[i].Node)
		}
	}
	return nodes
}
