package player

// State is the engine transport state.
//
//	Stopped --Play--> Playing --Pause--> Paused
//	   ^                 |  ^               |
//	   |                 |  +----Resume-----+
//	   +-----Stop/end----+------Stop--------+
//
// Pause on a non-playing engine and Resume on a non-paused engine are
// no-ops. Play always stops the current media first.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if media is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
