package serve

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/testutil"
	"github.com/Iron-Ham/heistboard/internal/tui/view"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	gossh "golang.org/x/crypto/ssh"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Host: "localhost", Port: 2222}, "localhost:2222"},
		{Config{Host: "", Port: 23234}, ":23234"},
		{Config{Host: "::1", Port: 22}, "[::1]:22"},
	}
	for _, tt := range tests {
		if got := tt.cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, nil, nil); err == nil {
		t.Error("New() without a hub should fail")
	}

	_, err := New(Config{Theme: "disco", HostKeyPath: filepath.Join(t.TempDir(), "key")}, feed.NewHub(), nil)
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("New() error = %v, want *ValidationError", err)
	}
	if verr.Field != "serve.theme" {
		t.Errorf("Field = %q, want serve.theme", verr.Field)
	}
}

func TestSnapshot(t *testing.T) {
	hub := feed.NewHub()
	s, err := New(Config{HostKeyPath: filepath.Join(t.TempDir(), "key")}, hub, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r := lipgloss.NewRenderer(io.Discard)

	empty := ansi.Strip(s.Snapshot(r, 80))
	if !strings.Contains(empty, view.PlaceholderTitle) {
		t.Errorf("empty hub snapshot missing placeholder:\n%s", empty)
	}

	hub.Publish(feed.Update{Entries: testutil.MixedHeist()})
	hub.Publish(feed.Update{Err: errors.New("lost connection")})
	out := ansi.Strip(s.Snapshot(r, 80))
	for _, want := range []string{"Night Owls", "Silent Alarm"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q:\n%s", want, out)
		}
	}
}

// startServer serves on a loopback listener and returns its address.
func startServer(t *testing.T, hub *feed.Hub) string {
	t.Helper()
	testutil.SkipIfShort(t)

	s, err := New(Config{HostKeyPath: filepath.Join(t.TempDir(), "host_ed25519")}, hub, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = s.Serve(l) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			_ = s.Close()
		}
	})
	return l.Addr().String()
}

func runCommand(t *testing.T, addr, cmd string) (string, error) {
	t.Helper()

	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            "spectator",
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = client.Close() }()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer func() { _ = sess.Close() }()

	out, err := sess.CombinedOutput(cmd)
	return string(out), err
}

func TestServer_SnapshotCommand(t *testing.T) {
	hub := feed.NewHub()
	hub.Publish(feed.Update{Entries: testutil.MixedHeist()})
	addr := startServer(t, hub)

	out, err := runCommand(t, addr, SnapshotCommand)
	if err != nil {
		t.Fatalf("snapshot command error = %v\n%s", err, out)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{view.TitleText, "Night Owls", "Velvet Gloves"} {
		if !strings.Contains(plain, want) {
			t.Errorf("output missing %q:\n%s", want, plain)
		}
	}
}

func TestServer_SnapshotCommandReportsFeedError(t *testing.T) {
	hub := feed.NewHub()
	hub.Publish(feed.Update{Entries: testutil.MixedHeist()})
	hub.Publish(feed.Update{Source: "ws", Err: errors.NewFeedError("read failed", errors.ErrFeedClosed)})
	addr := startServer(t, hub)

	out, err := runCommand(t, addr, SnapshotCommand)
	if err != nil {
		t.Fatalf("snapshot command error = %v\n%s", err, out)
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Night Owls") {
		t.Errorf("last good snapshot missing:\n%s", plain)
	}
	if !strings.Contains(plain, "feed error") {
		t.Errorf("feed error not reported:\n%s", plain)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	addr := startServer(t, feed.NewHub())

	out, err := runCommand(t, addr, "rob-the-bank")
	if err == nil {
		t.Error("unknown command should exit non-zero")
	}
	if !strings.Contains(out, "unknown command") {
		t.Errorf("output = %q, want an unknown command message", out)
	}
}
