// Package cluster provides the search-cluster client used by the pruner.
// It wraps the official Elasticsearch client with the three operations the
// cleanup job needs: listing indices by wildcard pattern, deleting an index
// by exact name, and distinguishing "pattern matched nothing" from genuine
// transport failures.
package cluster
