package feed

import (
	"sync"
	"testing"
	"time"
)

// collector records emitted updates and signals each arrival.
type collector struct {
	mu      sync.Mutex
	updates []Update
	arrived chan struct{}
}

func newCollector() *collector {
	return &collector{arrived: make(chan struct{}, 256)}
}

func (c *collector) emit(u Update) {
	c.mu.Lock()
	c.updates = append(c.updates, u)
	c.mu.Unlock()
	select {
	case c.arrived <- struct{}{}:
	default:
	}
}

func (c *collector) snapshot() []Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Update, len(c.updates))
	copy(out, c.updates)
	return out
}

// waitFor blocks until at least n updates have arrived.
func (c *collector) waitFor(t *testing.T, n int) []Update {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		if got := c.snapshot(); len(got) >= n {
			return got
		}
		select {
		case <-c.arrived:
		case <-deadline:
			t.Fatalf("timed out waiting for %d updates, got %d", n, len(c.snapshot()))
		}
	}
}

func TestSnapshotAndFailure(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := clock
	clock = func() time.Time { return fixed }
	defer func() { clock = orig }()

	u := snapshot("demo", nil)
	if u.Source != "demo" || !u.At.Equal(fixed) || u.Err != nil {
		t.Errorf("snapshot() = %+v", u)
	}

	f := failure("ws", errTest)
	if f.Source != "ws" || f.Err != errTest || f.Entries != nil {
		t.Errorf("failure() = %+v", f)
	}
}
