package presenter

import "fmt"

// State is the UI state of the presenter.
//
//	Idle -> Loading -> Shown | Error -> Loading -> ...
type State int

const (
	StateIdle State = iota
	StateLoading
	StateShown
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateShown:
		return "shown"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
