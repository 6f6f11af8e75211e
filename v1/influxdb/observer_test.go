package influxdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/asphalt-framework/asphalt-influxdb/v1/observability"
)

// TestObserver is a mock observer for testing.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]observability.OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

func TestObserveOperationNilObserverNoPanic(t *testing.T) {
	c := &InfluxDBClient{
		observer: nil,
	}

	// Should not panic.
	c.observeOperation("write", "metrics", "", 10*time.Millisecond, nil, 0, nil)
}

func TestObserveOperationCallsObserver(t *testing.T) {
	obs := &TestObserver{}
	c := &InfluxDBClient{
		observer: obs,
	}

	c.observeOperation("write", "metrics", "weekly", 10*time.Millisecond, nil, 25, nil)

	ops := obs.GetOperations()
	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}
	if ops[0].Component != "influxdb" {
		t.Fatalf("expected component influxdb, got %q", ops[0].Component)
	}
	if ops[0].Operation != "write" {
		t.Fatalf("expected operation write, got %q", ops[0].Operation)
	}
	if ops[0].Resource != "metrics" {
		t.Fatalf("expected resource metrics, got %q", ops[0].Resource)
	}
	if ops[0].SubResource != "weekly" {
		t.Fatalf("expected sub-resource weekly, got %q", ops[0].SubResource)
	}
	if ops[0].Size != 25 {
		t.Fatalf("expected size 25, got %d", ops[0].Size)
	}
}

func TestWithObserver(t *testing.T) {
	obs := &TestObserver{}
	c := &InfluxDBClient{
		observer: nil,
	}

	if c.observer != nil {
		t.Fatalf("expected no observer initially")
	}

	out := c.WithObserver(obs)
	if out != c {
		t.Fatalf("WithObserver should return same instance for chaining")
	}
	if c.observer != obs {
		t.Fatalf("expected observer to be set")
	}
}

func TestObserverSeesOperations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/query" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[{"series":[{"name":"cpu","columns":["time","value"],"values":[[0,1.5],[1,2.5]]}]}]}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	obs := &TestObserver{}
	client := startTestClient(t, server.URL, nil)
	client.WithObserver(obs)

	ctx := context.Background()
	if err := client.WritePoint(ctx, "cpu", nil, map[string]interface{}{"value": 1.0}, time.Unix(1, 0)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := client.RawQuery(ctx, "SELECT value FROM cpu"); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	ops := obs.GetOperations()
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
	if ops[0].Operation != "write" || ops[0].Size != 1 {
		t.Fatalf("unexpected write observation: %#v", ops[0])
	}
	if ops[1].Operation != "query" || ops[1].Size != 2 {
		t.Fatalf("unexpected query observation: %#v", ops[1])
	}
	if ops[1].Resource != "testdb" {
		t.Fatalf("expected resource testdb, got %q", ops[1].Resource)
	}
}
