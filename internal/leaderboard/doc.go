// Package leaderboard defines the team-progress entries shown on the heist
// leaderboard and every value the board derives from them.
//
// Entries are owned by the caller and treated as read-only. All display
// values (palette color, badge, status chip, percent text, runner offset,
// fill gradient) are pure functions of an entry and its position in the
// sequence, recomputed on every render.
//
// # Position versus identity
//
// Rank badges and palette colors follow the row's position, not the team:
// the row at index i always uses SquadColors[i%10] and, while running,
// shows rank i+1. If the upstream reorders teams, colors move with the
// rows. Identity only matters for animation, where Reconcile matches rows
// across snapshots by ID.
//
// # Snapshots
//
// Decode accepts the snapshot shapes feeds deliver: a bare JSON array, an
// {"entries": [...]} object, or a {"type": "leaderboard", "data": ...}
// envelope.
package leaderboard
