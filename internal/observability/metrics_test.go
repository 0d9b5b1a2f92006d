package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/swaps", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/swaps", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/swaps", "POST", 201, 3*time.Millisecond)

	if got := m.RequestTotal("/swaps", "GET", 200); got != 2 {
		t.Errorf("RequestTotal(GET 200) = %d, want 2", got)
	}
	if got := m.RequestTotal("/swaps", "POST", 201); got != 1 {
		t.Errorf("RequestTotal(POST 201) = %d, want 1", got)
	}
	if got := m.RequestTotal("/users", "GET", 200); got != 0 {
		t.Errorf("RequestTotal(unseen) = %d, want 0", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/swaps", "GET", 200, time.Millisecond)
	m.RecordError("/swaps", "GET", "NOT_FOUND")
	if got := m.RequestTotal("/swaps", "GET", 200); got != 0 {
		t.Errorf("nil metrics RequestTotal = %d, want 0", got)
	}
}
