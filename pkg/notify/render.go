package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"searchops/esprune/pkg/prune"
)

// Render produces the plain-text email body for a run result: a header with
// the run metadata, one section per node in processing order, and a totals
// line.
func Render(result *prune.RunResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Search index retention cleanup report\n")
	fmt.Fprintf(&sb, "Run ID:   %s\n", result.RunID)
	fmt.Fprintf(&sb, "Started:  %s\n", result.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Pattern:  %s\n", result.Prefix)
	fmt.Fprintf(&sb, "Cutoff:   %s (keeping %d days)\n", result.Cutoff.Format("2006-01-02"), result.KeepDays)

	for i := range result.Outcomes {
		outcome := &result.Outcomes[i]
		fmt.Fprintf(&sb, "\nNode %s:\n", outcome.Node)

		if outcome.Failed() {
			fmt.Fprintf(&sb, "  FAILED: %v\n", outcome.Err)
			continue
		}

		report := outcome.Report
		if len(report.Deleted) == 0 && len(report.Skipped) == 0 {
			fmt.Fprintf(&sb, "  nothing to delete\n")
			continue
		}

		for _, name := range sortedNames(report.Deleted) {
			ack := "acknowledged"
			if !report.Deleted[name] {
				ack = "NOT acknowledged"
			}
			fmt.Fprintf(&sb, "  deleted %s (%s)\n", name, ack)
		}
		for _, name := range report.Skipped {
			fmt.Fprintf(&sb, "  skipped %s (no parseable date)\n", name)
		}
	}

	fmt.Fprintf(&sb, "\nTotals: %d deleted, %d skipped, %d failed node(s)\n",
		result.TotalDeleted(), result.TotalSkipped(), len(result.FailedNodes()))

	return sb.String()
}

// sortedNames returns the record's index names in lexical order so the
// report is stable regardless of map iteration order.
func sortedNames(record prune.DeletionRecord) []string {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
