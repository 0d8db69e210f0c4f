package msg

import (
	"time"

	"github.com/Iron-Ham/heistboard/internal/feed"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusInterval is how often the status line refreshes.
const StatusInterval = time.Second

// Tick returns a command that sends a TickMsg after StatusInterval.
func Tick() tea.Cmd {
	return tea.Tick(StatusInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Frame returns a command that sends a FrameMsg after one frame at fps.
// A non-positive fps falls back to 60.
func Frame(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Listen returns a command that waits for the next feed update and
// converts it to a message. The model re-issues Listen after every
// update it receives. A nil channel never delivers.
func Listen(updates <-chan feed.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return FeedClosedMsg{}
		}
		return FromUpdate(u)
	}
}

// FromUpdate converts a feed update to the message the model handles.
func FromUpdate(u feed.Update) tea.Msg {
	if u.Err != nil {
		return FeedErrMsg{Source: u.Source, Err: u.Err, At: u.At}
	}
	return EntriesMsg{Entries: u.Entries, Source: u.Source, At: u.At}
}
