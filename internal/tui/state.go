package tui

// State is the lifecycle state of a TUI session.
type State int

const (
	StateStarting State = iota
	StateReady
	StateReconfiguring
	StateExecuting
	StateError
	StateExiting
)

var stateNames = map[State]string{
	StateStarting:      "starting",
	StateReady:         "ready",
	StateReconfiguring: "reconfiguring",
	StateExecuting:     "executing",
	StateError:         "error",
	StateExiting:       "exiting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// transitions lists the states reachable from each state. Exiting is
// reachable from everywhere and is checked separately.
var transitions = map[State][]State{
	StateStarting: {StateReady},
	StateReady:    {StateReconfiguring, StateExecuting},
	// Executing -> Reconfiguring lets a newer configuration supersede the
	// run in flight.
	StateExecuting: {StateReady, StateReconfiguring},
	// Reconfiguring -> Executing: a new run started, or the prompt was
	// cancelled while a run is still in flight.
	StateReconfiguring: {StateReady, StateExecuting, StateError},
	StateError:         {StateReady, StateExecuting},
}

// CanTransition reports whether the session may move from one state to another.
func CanTransition(from, to State) bool {
	if to == StateExiting {
		return from != StateExiting
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
