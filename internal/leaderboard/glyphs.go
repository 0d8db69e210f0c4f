package leaderboard

// Glyphs is the set of icons the board draws.
type Glyphs struct {
	Trophy    string
	Silver    string
	Bronze    string
	Runner    string
	Celebrate string
	Bank      string
	Door      string
}

// EmojiGlyphs is the default icon set.
var EmojiGlyphs = Glyphs{
	Trophy:    "🏆",
	Silver:    "🥈",
	Bronze:    "🥉",
	Runner:    "🏃",
	Celebrate: "🎉",
	Bank:      "🏦",
	Door:      "🚪",
}

// ASCIIGlyphs is used on terminals without emoji support.
var ASCIIGlyphs = Glyphs{
	Trophy:    "1st",
	Silver:    "2nd",
	Bronze:    "3rd",
	Runner:    ">",
	Celebrate: "*",
	Bank:      "$",
	Door:      "]",
}

// RunnerGlyph returns the icon riding the progress bar.
func (g Glyphs) RunnerGlyph(e Entry) string {
	if e.IsComplete {
		return g.Celebrate
	}
	return g.Runner
}
