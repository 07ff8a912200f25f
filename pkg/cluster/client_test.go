package cluster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeNode starts an httptest server that speaks just enough of the
// Elasticsearch REST API for the client: HEAD / for the connection check,
// GET /<pattern> for listing, DELETE /<name> for deletion.
func newFakeNode(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The v8 client verifies it is talking to Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		if r.Method == http.MethodHead && r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialFake(t *testing.T, srv *httptest.Server) Conn {
	t.Helper()
	conn, err := NewDialer(nil).Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"es-data-01", "http://es-data-01:9200"},
		{"10.0.4.7", "http://10.0.4.7:9200"},
		{"10.0.4.7:9201", "http://10.0.4.7:9201"},
		{"http://es-data-01:9200", "http://es-data-01:9200"},
		{"https://es-data-01:9243", "https://es-data-01:9243"},
	}

	for _, tt := range tests {
		if got := NormalizeAddr(tt.in); got != tt.want {
			t.Errorf("NormalizeAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDial_UnreachableNode(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewDialer(nil).Dial(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected dial failure for unreachable node")
	}

	var ne *NodeError
	if !errors.As(err, &ne) {
		t.Fatalf("error is %T, want *NodeError", err)
	}
	if ne.Op != "connect" {
		t.Errorf("error op = %q, want connect", ne.Op)
	}
	if ne.Node != srv.URL {
		t.Errorf("error should name the failing node, got %q", ne.Node)
	}
}

func TestListIndices(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/filebeat-*" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"filebeat-2024.01.01":{},"filebeat-2023.11.01":{}}`))
	})

	conn := dialFake(t, srv)
	names, err := conn.ListIndices(context.Background(), "filebeat-*")
	if err != nil {
		t.Fatalf("ListIndices() failed: %v", err)
	}

	want := []string{"filebeat-2023.11.01", "filebeat-2024.01.01"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q (lexical order)", i, names[i], want[i])
		}
	}
}

func TestListIndices_NotFound(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
	})

	conn := dialFake(t, srv)
	_, err := conn.ListIndices(context.Background(), "filebeat-*")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound() = false for %v", err)
	}
}

func TestListIndices_ServerError(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	conn := dialFake(t, srv)
	_, err := conn.ListIndices(context.Background(), "filebeat-*")
	if err == nil {
		t.Fatal("expected error for server failure")
	}
	if IsNotFound(err) {
		t.Error("server failure must not be treated as not-found")
	}

	var ne *NodeError
	if !errors.As(err, &ne) {
		t.Fatalf("error is %T, want *NodeError", err)
	}
	if ne.Op != "list" {
		t.Errorf("error op = %q, want list", ne.Op)
	}
}

func TestDeleteIndex(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/filebeat-2023.11.01" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"acknowledged":true}`))
	})

	conn := dialFake(t, srv)
	ack, err := conn.DeleteIndex(context.Background(), "filebeat-2023.11.01")
	if err != nil {
		t.Fatalf("DeleteIndex() failed: %v", err)
	}
	if !ack {
		t.Error("expected acknowledged deletion")
	}
}

func TestDeleteIndex_Unacknowledged(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"acknowledged":false}`))
	})

	conn := dialFake(t, srv)
	ack, err := conn.DeleteIndex(context.Background(), "filebeat-2023.11.01")
	if err != nil {
		t.Fatalf("DeleteIndex() failed: %v", err)
	}
	if ack {
		t.Error("expected unacknowledged deletion")
	}
}

func TestDeleteIndex_Failure(t *testing.T) {
	srv := newFakeNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"blocked"}`))
	})

	conn := dialFake(t, srv)
	_, err := conn.DeleteIndex(context.Background(), "filebeat-2023.11.01")
	if err == nil {
		t.Fatal("expected error for rejected deletion")
	}

	var ne *NodeError
	if !errors.As(err, &ne) {
		t.Fatalf("error is %T, want *NodeError", err)
	}
	if ne.Op != "delete" {
		t.Errorf("error op = %q, want delete", ne.Op)
	}
}
