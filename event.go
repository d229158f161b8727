package gatesim

import "log/slog"

// EventKind identifies the operation that produced an Event.
//
type EventKind int

// Event kinds.
const (
	ValueChanged EventKind = iota // a terminal accepted a new value
	Connected                     // an edge was added
	Disconnected                  // an edge was removed
	Named                         // a circuit or terminal was created or renamed
	Removed                       // a circuit or terminal was destroyed
	Diagnostic                    // propagation was aborted
)

const (
	levelDebug = slog.LevelDebug
	levelInfo  = slog.LevelInfo
	levelError = slog.LevelError
)

var eventNames = [...]string{
	ValueChanged: "value",
	Connected:    "connect",
	Disconnected: "disconnect",
	Named:        "name",
	Removed:      "remove",
	Diagnostic:   "diagnostic",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// An Event describes a change in a simulation. Terminal and Peer are set to
// NoTerminal when they do not apply to a given kind.
//
type Event struct {
	Kind  EventKind
	Level slog.Level
	Msg   string

	Circuit  Circuit  // circuit concerned, or owner of Terminal
	Terminal Terminal // value changes, connections (destination), terminal naming
	Peer     Terminal // connections: source terminal

	// Path is the full path of the subject: Terminal if set, else Circuit.
	Path string

	Old, New Value // ValueChanged only
}

// Observer receives simulation events. Observe is called synchronously from
// within the simulation and must not call back into the Sim.
//
type Observer interface {
	Observe(e *Event)
}

// ObserverFunc adapts a function to the Observer interface.
//
type ObserverFunc func(e *Event)

// Observe implements Observer.
//
func (f ObserverFunc) Observe(e *Event) { f(e) }

func (s *Sim) emit(e Event) {
	if len(s.obs) == 0 {
		return
	}
	if e.Path == "" {
		if e.Terminal != NoTerminal {
			e.Path = s.Path(e.Terminal)
		} else if e.Circuit >= 0 {
			e.Path = s.CircuitPath(e.Circuit)
		}
	}
	for _, o := range s.obs {
		o.Observe(&e)
	}
}
