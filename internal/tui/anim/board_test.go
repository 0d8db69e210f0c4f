package anim

import (
	"testing"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
)

func team(id string, progress float64) leaderboard.Entry {
	return leaderboard.Entry{ID: id, Name: "Team " + id, ProgressPercent: progress, PlayerCount: 3}
}

func settle(t *testing.T, b *Board) int {
	t.Helper()
	for i := 0; i < 60*20; i++ {
		if !b.Animating() {
			return i
		}
		b.Step()
	}
	t.Fatal("board did not settle")
	return 0
}

func frameByKey(frames []leaderboard.Frame, key string) (leaderboard.Frame, bool) {
	for _, f := range frames {
		if f.Key == key {
			return f, true
		}
	}
	return leaderboard.Frame{}, false
}

func TestNewBoard_Defaults(t *testing.T) {
	b := NewBoard(Options{SlideDistance: -1})
	opts := b.Options()
	if opts.FPS != DefaultFPS {
		t.Errorf("FPS = %d, want %d", opts.FPS, DefaultFPS)
	}
	if opts.Row != RowParams || opts.Progress != ProgressParams {
		t.Errorf("params = %+v / %+v", opts.Row, opts.Progress)
	}
	if opts.SlideDistance != DefaultSlideDistance {
		t.Errorf("SlideDistance = %v", opts.SlideDistance)
	}
	if b.Animating() || b.Len() != 0 || len(b.Frames()) != 0 {
		t.Error("new board should be empty and idle")
	}
}

func TestBoard_Enter(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 45)})

	frames := b.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	f := frames[0]
	if f.Opacity != 0 || f.Slide != -DefaultSlideDistance || f.Fill != 0 || f.Runner != 0 {
		t.Errorf("entering row should start invisible, left and empty: %+v", f)
	}
	if !b.Animating() {
		t.Fatal("board should animate after an enter")
	}

	settle(t, b)

	f = b.Frames()[0]
	if f.Opacity != 1 || f.Slide != 0 || f.Fill != 45 || f.Runner != 42 || f.Y != 0 {
		t.Errorf("settled row = %+v", f)
	}
}

func TestBoard_EnterIsMonotoneEarly(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 80)})
	b.Step()
	f := b.Frames()[0]
	if f.Opacity <= 0 || f.Opacity > 1 {
		t.Errorf("opacity after one frame = %v", f.Opacity)
	}
	if f.Slide <= -DefaultSlideDistance {
		t.Errorf("slide after one frame = %v", f.Slide)
	}
	if f.Fill <= 0 || f.Fill >= 80 {
		t.Errorf("fill after one frame = %v", f.Fill)
	}
}

func TestBoard_ReorderMovesRows(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 30), team("b", 60)})
	settle(t, b)

	diff := b.SetEntries([]leaderboard.Entry{team("b", 60), team("a", 30)})
	if len(diff.Added) != 0 || len(diff.Removed) != 0 || len(diff.Moved) != 2 {
		t.Fatalf("diff = %+v, want two moves", diff)
	}

	frames := b.Frames()
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	fb, _ := frameByKey(frames, "b")
	if fb.Opacity != 1 || fb.Y != 1 || fb.Index != 0 {
		t.Errorf("moved row should stay visible and start from its old position: %+v", fb)
	}

	settle(t, b)
	fb, _ = frameByKey(b.Frames(), "b")
	fa, _ := frameByKey(b.Frames(), "a")
	if fb.Y != 0 || fa.Y != 1 {
		t.Errorf("settled Y: b=%v a=%v", fb.Y, fa.Y)
	}
	if fb.Fill != 60 || fa.Fill != 30 {
		t.Errorf("fill should be untouched by a reorder: b=%v a=%v", fb.Fill, fa.Fill)
	}
}

func TestBoard_ProgressUpdateAnimatesFromCurrent(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 20)})
	settle(t, b)

	b.SetEntries([]leaderboard.Entry{team("a", 70)})
	f := b.Frames()[0]
	if f.Fill != 20 || f.Opacity != 1 {
		t.Errorf("updated row should start at its old fill: %+v", f)
	}
	settle(t, b)
	f = b.Frames()[0]
	if f.Fill != 70 || f.Runner != 67 {
		t.Errorf("settled row = %+v", f)
	}
}

func TestBoard_Exit(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 10), team("b", 20)})
	settle(t, b)

	diff := b.SetEntries([]leaderboard.Entry{team("b", 20)})
	if len(diff.Removed) != 1 || diff.Removed[0] != "a" {
		t.Fatalf("Removed = %q", diff.Removed)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}

	frames := b.Frames()
	if len(frames) != 2 {
		t.Fatalf("exiting row should still be drawn: %d frames", len(frames))
	}
	if !frames[0].Exiting || frames[0].Key != "a" {
		t.Errorf("exiting rows are drawn first: %+v", frames[0])
	}
	if frames[1].Exiting {
		t.Error("live row marked exiting")
	}

	for i := 0; i < 5; i++ {
		b.Step()
	}
	fa, ok := frameByKey(b.Frames(), "a")
	if !ok {
		t.Fatal("exit finished too early")
	}
	if fa.Slide <= 0 || fa.Opacity >= 1 {
		t.Errorf("exiting row should slide right and fade: %+v", fa)
	}

	settle(t, b)
	if _, ok := frameByKey(b.Frames(), "a"); ok {
		t.Error("exited row should be dropped once invisible")
	}
}

func TestBoard_Revive(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 10)})
	settle(t, b)

	b.SetEntries([]leaderboard.Entry{team("b", 5)})
	b.Step()
	b.SetEntries([]leaderboard.Entry{team("a", 15)})

	frames := b.Frames()
	fa, ok := frameByKey(frames, "a")
	if !ok || fa.Exiting {
		t.Fatalf("revived row should be live: %+v", frames)
	}
	settle(t, b)
	fa, _ = frameByKey(b.Frames(), "a")
	if fa.Opacity != 1 || fa.Slide != 0 || fa.Fill != 15 {
		t.Errorf("revived row should settle in place: %+v", fa)
	}
	if len(b.Frames()) != 1 {
		t.Errorf("got %d frames, want only the revived row", len(b.Frames()))
	}
}

func TestBoard_EmptyClearsImmediately(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 10), team("b", 20)})
	b.Step()

	diff := b.SetEntries([]leaderboard.Entry{})
	if len(diff.Removed) != 2 {
		t.Errorf("Removed = %q", diff.Removed)
	}
	if len(b.Frames()) != 0 || b.Animating() {
		t.Error("an empty snapshot should leave nothing to draw")
	}
	if b.Entries() == nil {
		t.Error("Entries() should keep the empty snapshot")
	}
}

func TestBoard_Disabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Disabled = true
	b := NewBoard(opts)

	b.SetEntries([]leaderboard.Entry{team("a", 50), team("b", 0)})
	if b.Animating() {
		t.Error("disabled board should never animate")
	}
	frames := b.Frames()
	if frames[0].Fill != 50 || frames[0].Opacity != 1 || frames[1].Runner != 2 {
		t.Errorf("frames should be settled: %+v", frames)
	}

	b.SetEntries([]leaderboard.Entry{team("b", 0)})
	if len(b.Frames()) != 1 {
		t.Errorf("removed row should vanish at once: %+v", b.Frames())
	}
}

func TestBoard_SetDisabledMidFlight(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 80), team("b", 10)})
	b.Step()
	b.SetEntries([]leaderboard.Entry{team("b", 10)})
	if !b.Animating() {
		t.Fatal("board should be animating")
	}

	b.SetDisabled(true)
	if b.Animating() {
		t.Error("SetDisabled(true) should land every row")
	}
	if frames := b.Frames(); len(frames) != 1 || frames[0].Key != "b" || frames[0].Fill != 10 {
		t.Errorf("frames = %+v, want b at rest", frames)
	}

	b.SetDisabled(false)
	b.SetEntries([]leaderboard.Entry{team("b", 40)})
	if !b.Animating() {
		t.Error("re-enabled board should animate progress changes")
	}
}

func TestBoard_SettledMatchesSettledFrames(t *testing.T) {
	entries := []leaderboard.Entry{team("a", 100), team("b", 55.5), team("c", 0)}
	b := NewBoard(DefaultOptions())
	b.SetEntries(entries)
	settle(t, b)

	got := b.Frames()
	want := leaderboard.SettledFrames(entries)
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBoard_Release(t *testing.T) {
	b := NewBoard(DefaultOptions())
	b.SetEntries([]leaderboard.Entry{team("a", 10)})
	b.Release()
	if b.Animating() || b.Len() != 0 || len(b.Frames()) != 0 || b.Entries() != nil {
		t.Error("Release should drop everything")
	}
}
