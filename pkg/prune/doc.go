// Package prune implements retention cleanup of time-partitioned search
// indices: parsing the date embedded in each index name, deleting indices
// older than the retention cutoff, and aggregating per-node results for
// reporting. Nodes are processed sequentially and independently; one node's
// failure never suppresses the results of the others.
package prune
