package selector

import tea "github.com/charmbracelet/bubbletea"

// event is a decoded key press. Bubble Tea already lexes raw bytes and
// escape sequences into KeyMsg values; decodeKey narrows those down to the
// handful of events a selector reacts to.
type event int

const (
	eventNone event = iota
	eventUp
	eventDown
	eventToggle
	eventConfirm
	eventInterrupt
)

func (e event) String() string {
	switch e {
	case eventUp:
		return "up"
	case eventDown:
		return "down"
	case eventToggle:
		return "toggle"
	case eventConfirm:
		return "confirm"
	case eventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

func decodeKey(msg tea.KeyMsg) event {
	if msg.Paste {
		return eventNone
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return eventInterrupt
	case tea.KeyEnter, tea.KeyCtrlJ:
		if msg.Alt {
			return eventNone
		}
		return eventConfirm
	case tea.KeyUp:
		if msg.Alt {
			return eventNone
		}
		return eventUp
	case tea.KeyDown:
		if msg.Alt {
			return eventNone
		}
		return eventDown
	case tea.KeySpace:
		return eventToggle
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return eventNone
		}
		return runeEvent(msg.Runes[0])
	}
	return eventNone
}

// decodeKeys is decodeKey for messages that may carry several typed runes.
// Bubble Tea delivers runes read in one chunk as a single KeyMsg, so "jj"
// typed quickly arrives together and means two moves.
func decodeKeys(msg tea.KeyMsg) []event {
	if msg.Type == tea.KeyRunes && !msg.Paste && !msg.Alt && len(msg.Runes) > 1 {
		evs := make([]event, len(msg.Runes))
		for i, r := range msg.Runes {
			evs[i] = runeEvent(r)
		}
		return evs
	}
	return []event{decodeKey(msg)}
}

func runeEvent(r rune) event {
	switch r {
	case 'k':
		return eventUp
	case 'j':
		return eventDown
	case ' ':
		return eventToggle
	}
	return eventNone
}
