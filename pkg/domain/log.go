package domain

// Log is a single progress update posted by the designer.
type Log struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Text      string   `json:"text"`
	Progress  int      `json:"progress"`
	Reactions []string `json:"reactions"`
}

// HasReaction reports whether emoji is in the log's reaction set.
func (l Log) HasReaction(emoji string) bool {
	for _, r := range l.Reactions {
		if r == emoji {
			return true
		}
	}
	return false
}

// ToggleReaction returns a copy of the log with emoji added to or removed from
// the reaction set, and whether it was added.
func (l Log) ToggleReaction(emoji string) (Log, bool) {
	out := l
	if l.HasReaction(emoji) {
		out.Reactions = make([]string, 0, len(l.Reactions))
		for _, r := range l.Reactions {
			if r != emoji {
				out.Reactions = append(out.Reactions, r)
			}
		}
		return out, false
	}
	out.Reactions = append(append(make([]string, 0, len(l.Reactions)+1), l.Reactions...), emoji)
	return out, true
}

// Reactions offered under each log entry.
var Reactions = []string{"🔥", "👍", "❤️", "👀"}
