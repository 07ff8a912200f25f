// Esprune deletes time-partitioned search-engine indices that have aged out
// of their retention window and emails the outcome.
//
// It connects to each configured Elasticsearch/OpenSearch node in turn,
// lists indices matching a wildcard name pattern, parses the trailing
// YYYY.MM.DD date from each name, deletes the indices dated before the
// cutoff (today minus keep_days), and sends a plain-text report through an
// SMTP relay.
//
// Usage:
//
//	# Single cleanup run with a config file
//	esprune run --config /etc/esprune/config.yaml
//
//	# One-off run against ad-hoc nodes
//	esprune run --nodes es-data-01,es-data-02 --keep-days 90 --prefix "logstash-*"
//
//	# Daemon mode: run on a cron schedule with a metrics endpoint
//	esprune run --schedule "0 3 * * *"
//
//	# Show version information
//	esprune version
package main

func main() {
	Execute()
}
