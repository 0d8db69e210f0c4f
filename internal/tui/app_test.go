package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/heistboard/internal/feed"
)

func TestApp_QuitKey(t *testing.T) {
	src := &feed.Reader{R: strings.NewReader(`[{"id":"a","name":"Alpha","progressPercent":40}]` + "\n")}
	app := New(src, Options{}).
		WithAltScreen(false).
		WithInput(strings.NewReader("q")).
		WithOutput(io.Discard)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after q")
	}
}

func TestApp_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	app := New(nil, Options{}).
		WithAltScreen(false).
		WithInput(pr).
		WithOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
