package leaderboard

// Entry is one team's current standing in the heist.
type Entry struct {
	// ID is the stable identity used to match rows across snapshots.
	ID string `json:"id"`
	// Name is the team's display name.
	Name string `json:"name"`
	// CurrentView is the machine-readable stage tag, e.g. "signal_jammer".
	CurrentView string `json:"currentView"`
	// ProgressPercent is the progress along the track, nominally 0-100.
	ProgressPercent float64 `json:"progressPercent"`
	// TasksCompleted is accepted from upstream but not rendered.
	TasksCompleted int `json:"tasksCompleted"`
	// FinishPosition is the 1-based final rank; nil until the team finishes.
	FinishPosition *int `json:"finishPosition"`
	// CompletedAt is the finish time in unix milliseconds; not rendered.
	CompletedAt *int64 `json:"completedAt"`
	// PlayerCount is the number of operatives on the team.
	PlayerCount int `json:"playerCount"`
	// IsComplete reports whether the team has escaped.
	IsComplete bool `json:"isComplete"`
}

// HasFinishPosition reports whether the entry carries a finish position.
func (e Entry) HasFinishPosition() bool {
	return e.FinishPosition != nil
}

// Position returns the finish position, or 0 when absent.
func (e Entry) Position() int {
	if e.FinishPosition == nil {
		return 0
	}
	return *e.FinishPosition
}
