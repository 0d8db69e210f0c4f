package leaderboard

// Frame is the render state of one row at one animation instant.
type Frame struct {
	Key   string
	Entry Entry
	// Index is the row's position in the sequence; exiting rows keep the
	// last index they were shown at.
	Index int
	// Opacity runs from 0 (invisible) to 1.
	Opacity float64
	// Slide is the horizontal offset in cells; negative is left.
	Slide float64
	// Y is the vertical position measured in rows.
	Y float64
	// Fill is the drawn fill width in percent of the bar.
	Fill float64
	// Runner is the drawn runner offset in percent of the bar.
	Runner float64
	// Exiting is set for rows removed from the sequence that are still
	// animating out.
	Exiting bool
}

// SettledFrames returns frames for entries with every animation at rest.
func SettledFrames(entries []Entry) []Frame {
	keys := Keys(entries)
	frames := make([]Frame, len(entries))
	for i, e := range entries {
		frames[i] = Frame{
			Key:     keys[i],
			Entry:   e,
			Index:   i,
			Opacity: 1,
			Y:       float64(i),
			Fill:    e.ProgressPercent,
			Runner:  RunnerOffset(e.ProgressPercent),
		}
	}
	return frames
}
