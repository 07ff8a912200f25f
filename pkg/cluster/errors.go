package cluster

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that an index listing matched no indices. The pruner
// recovers from this locally; it is never a run-level failure.
var ErrNotFound = errors.New("no indices matched pattern")

// IsNotFound reports whether err represents an empty listing result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NodeError represents a connection or transport failure against a specific
// node. It names the node and the operation that failed so run reports and
// log lines can identify the responsible endpoint.
type NodeError struct {
	// Node is the configured address of the failing node.
	Node string

	// Op is the operation that failed ("connect", "list", "delete").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q: %s failed: %v", e.Node, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *NodeError) Unwrap() error {
	return e.Err
}
