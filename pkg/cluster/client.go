package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
)

// Conn is a connection handle to a single search-cluster node. Handles are
// scoped to one node's processing window: acquired from a Dialer, used for
// listing and deletion, then closed.
type Conn interface {
	// Addr returns the configured node address this handle is bound to.
	Addr() string

	// ListIndices returns the names of all indices matching the wildcard
	// pattern, in lexical order. When the pattern matches nothing it
	// returns an error satisfying IsNotFound.
	ListIndices(ctx context.Context, pattern string) ([]string, error)

	// DeleteIndex deletes a single index by exact name and returns the
	// cluster's acknowledgement flag.
	DeleteIndex(ctx context.Context, name string) (bool, error)

	// Close releases the handle's transport resources.
	Close() error
}

// Dialer establishes per-node connection handles.
type Dialer struct {
	logger *slog.Logger
}

// NewDialer creates a Dialer. A nil logger falls back to slog.Default.
func NewDialer(logger *slog.Logger) *Dialer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dialer{logger: logger.With("component", "cluster")}
}

// Dial creates a connection handle for one node and verifies the node is
// reachable. A failure is returned as a *NodeError naming the node.
func (d *Dialer) Dial(ctx context.Context, node string) (Conn, error) {
	transport := &http.Transport{}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{NormalizeAddr(node)},
		Transport: transport,
	})
	if err != nil {
		transport.CloseIdleConnections()
		return nil, &NodeError{Node: node, Op: "connect", Err: err}
	}

	conn := &nodeConn{
		node:      node,
		es:        es,
		transport: transport,
		logger:    d.logger.With("node", node),
	}

	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		conn.Close()
		return nil, &NodeError{Node: node, Op: "connect", Err: err}
	}
	defer res.Body.Close()
	if res.IsError() {
		conn.Close()
		return nil, &NodeError{Node: node, Op: "connect",
			Err: fmt.Errorf("ping returned status %d", res.StatusCode)}
	}

	conn.logger.Debug("connected to node")
	return conn, nil
}

// NormalizeAddr turns a bare hostname or IP into a full endpoint URL.
// "es-data-01" becomes "http://es-data-01:9200"; addresses that already
// carry a scheme are returned unchanged.
func NormalizeAddr(node string) string {
	if strings.Contains(node, "://") {
		return node
	}
	if !strings.Contains(node, ":") {
		node += ":9200"
	}
	return "http://" + node
}

// nodeConn is the Elasticsearch-backed Conn implementation.
type nodeConn struct {
	node      string
	es        *elasticsearch.Client
	transport *http.Transport
	logger    *slog.Logger
}

func (c *nodeConn) Addr() string {
	return c.node
}

func (c *nodeConn) ListIndices(ctx context.Context, pattern string) ([]string, error) {
	res, err := c.es.Indices.Get([]string{pattern},
		c.es.Indices.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, &NodeError{Node: c.node, Op: "list", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pattern)
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, &NodeError{Node: c.node, Op: "list",
			Err: fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))}
	}

	// The response body is a JSON object keyed by index name.
	var indices map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&indices); err != nil {
		return nil, &NodeError{Node: c.node, Op: "list",
			Err: fmt.Errorf("failed to decode listing: %w", err)}
	}

	names := make([]string, 0, len(indices))
	for name := range indices {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (c *nodeConn) DeleteIndex(ctx context.Context, name string) (bool, error) {
	res, err := c.es.Indices.Delete([]string{name},
		c.es.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return false, &NodeError{Node: c.node, Op: "delete", Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return false, &NodeError{Node: c.node, Op: "delete",
			Err: fmt.Errorf("index %q: status %d: %s", name, res.StatusCode, strings.TrimSpace(string(body)))}
	}

	var ack struct {
		Acknowledged bool `json:"acknowledged"`
	}
	if err := json.NewDecoder(res.Body).Decode(&ack); err != nil {
		// A successful delete with an unreadable body still deleted the
		// index; report it unacknowledged rather than failing the node.
		c.logger.Warn("failed to decode delete response", "index", name, "error", err)
		return false, nil
	}

	return ack.Acknowledged, nil
}

func (c *nodeConn) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}
