// Package testutil provides testing utilities for heistboard tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
)

// Running returns an entry for a team still on the track.
func Running(id, name, view string, progress float64) leaderboard.Entry {
	return leaderboard.Entry{
		ID:              id,
		Name:            name,
		CurrentView:     view,
		ProgressPercent: progress,
		TasksCompleted:  int(progress / 10),
		PlayerCount:     3,
	}
}

// Finished returns an entry for a team that escaped in position pos.
func Finished(id, name string, pos int) leaderboard.Entry {
	at := int64(1_700_000_000_000 + pos*1000)
	return leaderboard.Entry{
		ID:              id,
		Name:            name,
		CurrentView:     "exit",
		ProgressPercent: 100,
		TasksCompleted:  10,
		FinishPosition:  &pos,
		CompletedAt:     &at,
		PlayerCount:     4,
		IsComplete:      true,
	}
}

// MixedHeist returns two finished teams followed by two running teams,
// in the order an upstream would rank them.
func MixedHeist() []leaderboard.Entry {
	return []leaderboard.Entry{
		Finished("t1", "Night Owls", 1),
		Finished("t2", "Glass Cutters", 2),
		Running("t3", "Velvet Gloves", "vault", 55),
		Running("t4", "Silent Alarm", "signal_jammer", 20),
	}
}

// MarshalSnapshot encodes entries as a bare JSON array.
func MarshalSnapshot(t *testing.T, entries []leaderboard.Entry) []byte {
	t.Helper()

	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	return data
}

// MarshalEnvelope encodes entries in a {"type": "leaderboard"} envelope.
func MarshalEnvelope(t *testing.T, entries []leaderboard.Entry) []byte {
	t.Helper()

	data, err := json.Marshal(map[string]any{
		"type": leaderboard.MessageType,
		"data": entries,
	})
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return data
}

// WriteSnapshot writes entries to name inside dir and returns the path.
// The file is replaced by rename so readers never see a partial write.
func WriteSnapshot(t *testing.T, dir, name string, entries []leaderboard.Entry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		t.Fatalf("failed to create temp snapshot: %v", err)
	}
	if _, err := tmp.Write(MarshalSnapshot(t, entries)); err != nil {
		_ = tmp.Close()
		t.Fatalf("failed to write snapshot: %v", err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("failed to close snapshot: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		t.Fatalf("failed to rename snapshot into place: %v", err)
	}
	return path
}

// Eventually polls cond until it returns true or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}

// SkipIfShort skips tests that depend on filesystem notifications or
// sockets when running with -short.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping in short mode")
	}
}
