// Package anim drives the leaderboard's motion.
//
// Every animated quantity of a row (opacity, horizontal slide, vertical
// position, fill width and runner offset) is a damped spring stepped at a
// fixed frame rate. A [Board] keeps one set of springs per row key, so a
// reordered snapshot moves existing rows instead of recreating them, and
// removed rows stay on the board until their exit transition finishes.
//
// The package has no timer of its own. The caller steps the board once per
// frame, typically from a tea.Tick command, and stops ticking when
// [Board.Animating] reports false.
package anim
