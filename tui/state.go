package tui

type state int

const (
	loadingState state = iota
	watchState
	menuState
	channelsState
	sourcesState
	channelFormState
	sourceFormState
	confirmState
	errorState
)

var stateNames = map[state]string{
	loadingState:     "loading",
	watchState:       "watch",
	menuState:        "menu",
	channelsState:    "channels",
	sourcesState:     "sources",
	channelFormState: "channel form",
	sourceFormState:  "source form",
	confirmState:     "confirm",
	errorState:       "error",
}

func (s state) String() string {
	return stateNames[s]
}

// management reports whether s belongs to the management surface.
func (s state) management() bool {
	switch s {
	case channelsState, sourcesState, channelFormState, sourceFormState, confirmState:
		return true
	default:
		return false
	}
}

// textual reports whether s has a focused text input.
func (s state) textual() bool {
	return s == channelFormState || s == sourceFormState
}
