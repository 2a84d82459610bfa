// Package queues maps the human-facing mode selector to Riot queue ids and
// back to display labels.
package queues

import "strings"

// ModeAll disables the upstream queue filter.
const ModeAll = "all"

var queueByMode = map[string]int{
	"solo_duo":    420,
	"ranked_flex": 440,
	"draft":       400,
	"aram":        450,
	"swiftplay":   480,
	"arena":       1700,
}

// QueueID returns the queue id for a mode key. ok is false when no filter
// should be applied; unknown keys behave like "all".
func QueueID(mode string) (id int, ok bool) {
	id, ok = queueByMode[strings.ToLower(strings.TrimSpace(mode))]
	return id, ok
}

// Label classifies a match for display from its queue id and game mode. The
// two upstream signals overlap and sometimes conflict: an explicit queue id
// wins over gameMode inference, except that a SWIFTPLAY gameMode overrides
// the generic queue-400 label, since fast-variant games report queue 400.
func Label(queueID int, gameMode string) string {
	mode := strings.ToUpper(gameMode)
	switch queueID {
	case 420:
		return "Ranked Solo/Duo"
	case 440:
		return "Ranked Flex"
	case 450:
		return "ARAM"
	case 400:
		if mode == "SWIFTPLAY" {
			return "Swiftplay"
		}
		return "Normal Draft"
	case 480:
		return "Swiftplay"
	case 1700:
		return "Arena"
	}
	switch mode {
	case "ARAM":
		return "ARAM"
	case "CHERRY":
		return "Arena"
	case "SWIFTPLAY":
		return "Swiftplay"
	case "":
		return "Other"
	}
	return gameMode
}
