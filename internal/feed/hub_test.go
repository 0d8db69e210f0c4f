package feed

import (
	"context"
	"testing"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/testutil"
)

func recv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return u
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
	return Update{}
}

func TestHub_LatestAndLateSubscriber(t *testing.T) {
	h := NewHub()
	if _, ok := h.Latest(); ok {
		t.Error("empty hub reported a latest update")
	}

	h.Publish(Update{Source: "a", Entries: testutil.MixedHeist()})
	ch, cancel := h.Subscribe()
	defer cancel()

	if got := recv(t, ch); len(got.Entries) != 4 {
		t.Errorf("late subscriber got %+v, want the last snapshot", got)
	}
	if u, ok := h.Latest(); !ok || u.Source != "a" {
		t.Errorf("Latest() = %+v, %v", u, ok)
	}
}

func TestHub_LateSubscriberSeesSnapshotThenError(t *testing.T) {
	h := NewHub()
	h.Publish(Update{Entries: testutil.MixedHeist()})
	h.Publish(Update{Err: errTest})

	ch, cancel := h.Subscribe()
	defer cancel()

	if got := recv(t, ch); got.Err != nil || len(got.Entries) != 4 {
		t.Errorf("first = %+v, want snapshot", got)
	}
	if got := recv(t, ch); got.Err != errTest {
		t.Errorf("second = %+v, want error", got)
	}

	if u, ok := h.LastSnapshot(); !ok || len(u.Entries) != 4 {
		t.Errorf("LastSnapshot() = %+v, %v, want the snapshot", u, ok)
	}
	if u, _ := h.Latest(); u.Err != errTest {
		t.Errorf("Latest() = %+v, want the error", u)
	}
}

func TestHub_SlowSubscriberGetsNewest(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := range 5 {
		h.Publish(Update{Entries: []leaderboard.Entry{testutil.Running("t", "T", "vault", float64(i*10))}})
	}

	var last Update
	n := 0
	for len(ch) > 0 {
		last = <-ch
		n++
	}
	if n == 0 || n > 2 {
		t.Fatalf("buffered %d updates, want 1 or 2", n)
	}
	if got := last.Entries[0].ProgressPercent; got != 40 {
		t.Errorf("last progress = %v, want 40", got)
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers())
	}
	cancel()
	cancel()
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after cancel, want 0", h.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}
	h.Publish(Update{})
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	h.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel still open after Close")
	}
	h.Publish(Update{Source: "late"})
	if _, ok := h.Latest(); ok {
		t.Error("publish after Close was recorded")
	}

	late, _ := h.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscribe after Close returned an open channel")
	}
}

type stubSource struct {
	name    string
	updates []Update
	err     error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Run(ctx context.Context, emit Emit) error {
	for _, u := range s.updates {
		emit(u)
	}
	return s.err
}

func TestHub_Run(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	ok := &stubSource{name: "ok", updates: []Update{{Source: "ok", Entries: testutil.MixedHeist()}}}
	bad := &stubSource{name: "bad", err: errTest}

	err := h.Run(context.Background(), nil, ok, bad)
	if !errors.Is(err, errTest) {
		t.Errorf("Run() error = %v, want errTest", err)
	}

	got := recv(t, ch)
	if got.Source != "ok" {
		t.Errorf("received %+v, want update from ok", got)
	}
	if _, open := <-ch; open {
		t.Error("hub not closed after Run returned")
	}
}

func TestPump(t *testing.T) {
	src := &stubSource{
		name:    "stub",
		updates: []Update{{Entries: testutil.MixedHeist()}},
		err:     errTest,
	}
	ch := Pump(context.Background(), src, nil)

	if got := recv(t, ch); len(got.Entries) != 4 {
		t.Errorf("first = %+v, want snapshot", got)
	}
	if got := recv(t, ch); !errors.Is(got.Err, errTest) || got.Source != "stub" {
		t.Errorf("second = %+v, want the source error", got)
	}
	if _, ok := <-ch; ok {
		t.Error("channel open after source returned")
	}
}
