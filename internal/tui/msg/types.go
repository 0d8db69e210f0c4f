package msg

import (
	"time"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
)

// TickMsg is sent once a second to refresh the status line.
type TickMsg time.Time

// FrameMsg advances the animation by one frame.
type FrameMsg time.Time

// EntriesMsg delivers a new snapshot. It replaces the entries on screen.
type EntriesMsg struct {
	Entries []leaderboard.Entry
	Source  string
	At      time.Time
}

// FeedErrMsg reports a feed failure. The last snapshot stays on screen.
type FeedErrMsg struct {
	Source string
	Err    error
	At     time.Time
}

// FeedClosedMsg signals that the feed has no more updates.
type FeedClosedMsg struct{}
