// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// Two clocks drive the board: [FrameMsg] advances the row springs and only
// runs while something is moving, and [TickMsg] refreshes the status line
// once a second. Snapshots arrive from a feed as [EntriesMsg]; feed
// failures arrive as [FeedErrMsg] and never replace the entries on screen.
//
// Message types are exported so that both the local TUI and the SSH
// spectator sessions can produce and handle them.
package msg
