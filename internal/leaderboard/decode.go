package leaderboard

import (
	"bytes"
	"encoding/json"

	"github.com/Iron-Ham/heistboard/internal/errors"
)

// MessageType is the envelope type carrying a leaderboard snapshot.
const MessageType = "leaderboard"

// ErrNotLeaderboard is returned for envelopes of another message type.
// Feeds sharing a channel with other game messages should skip them.
var ErrNotLeaderboard = errors.New("not a leaderboard message")

type snapshotObject struct {
	Type    *string         `json:"type"`
	Data    json.RawMessage `json:"data"`
	Entries json.RawMessage `json:"entries"`
}

// Decode parses a snapshot payload into entries. It accepts a JSON array,
// an {"entries": [...]} object, or a {"type": "leaderboard", "data": ...}
// envelope. A JSON null decodes to an empty, non-nil slice.
func Decode(data []byte) ([]Entry, error) {
	return decode(data, 0)
}

// envelopes nest at most once ("data" holding an entries object).
const maxDepth = 2

func decode(data []byte, depth int) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewDecodeError("empty snapshot", data, errors.ErrEmptyPayload)
	}

	switch trimmed[0] {
	case '[', 'n':
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, errors.NewDecodeError("invalid entries array", trimmed, err)
		}
		if entries == nil {
			entries = []Entry{}
		}
		return entries, nil

	case '{':
		if depth >= maxDepth {
			return nil, errors.NewDecodeError("snapshot nested too deeply", trimmed, nil)
		}
		var obj snapshotObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, errors.NewDecodeError("invalid snapshot object", trimmed, err)
		}
		if obj.Type != nil {
			if *obj.Type != MessageType {
				return nil, ErrNotLeaderboard
			}
			if obj.Data == nil {
				return []Entry{}, nil
			}
			return decode(obj.Data, depth+1)
		}
		if obj.Entries != nil {
			return decode(obj.Entries, depth+1)
		}
		return nil, errors.NewDecodeError("snapshot object has no entries", trimmed, nil)

	default:
		return nil, errors.NewDecodeError("snapshot must be an array or object", trimmed, nil)
	}
}
