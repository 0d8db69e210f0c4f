// Package view renders the heist leaderboard.
//
// Rendering is split the same way everywhere in this package: the
// leaderboard package derives what a row shows (badge, chip, colors,
// runner offset), and this package decides where it goes on the terminal
// grid. Nothing here holds state between renders; animation state arrives
// as [leaderboard.Frame] values.
//
// # Layout
//
// [LeaderboardView] draws a framed panel containing:
//   - Title: the centered "HEIST PROGRESS" heading
//   - Track header: five waypoint labels over a gradient strip
//   - Rows: one bordered box per entry with badge, name, status chip,
//     operatives count and a progress bar
//   - Placeholder: shown instead of rows when there are no entries
//
// Rows are stacked on a line canvas, so a row moving between positions
// can be drawn at a fractional offset and rows leaving the board can be
// drawn underneath the ones that stay.
package view
