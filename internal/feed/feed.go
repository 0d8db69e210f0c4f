// Package feed delivers leaderboard snapshots to the board.
//
// A [Source] produces whole snapshots and hands them to an emit callback;
// it never ranks or merges entries. Sources run until their context ends
// or their input is exhausted. Transient failures are emitted as an
// [Update] carrying Err so the board can show them without losing the last
// good snapshot.
package feed

import (
	"context"
	"time"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
)

// Update is one delivery from a feed: a snapshot, or an error.
type Update struct {
	// Source names the feed that produced the update.
	Source string
	// Entries is the snapshot; nil when Err is set.
	Entries []leaderboard.Entry
	// Err reports a feed failure. The previous snapshot stays valid.
	Err error
	// At is when the update was produced.
	At time.Time
}

// Emit receives updates from a source. It must not retain Entries beyond
// treating them as read-only.
type Emit func(Update)

// Source produces snapshots.
type Source interface {
	// Name identifies the source in logs and the status line.
	Name() string
	// Run emits updates until ctx is done or the input ends.
	Run(ctx context.Context, emit Emit) error
}

// clock is overridden in tests.
var clock = time.Now

func snapshot(source string, entries []leaderboard.Entry) Update {
	return Update{Source: source, Entries: entries, At: clock()}
}

func failure(source string, err error) Update {
	return Update{Source: source, Err: err, At: clock()}
}
