package gatesim

import "github.com/pkg/errors"

// Errors returned by construction and stimulus operations. Each rejected
// operation returns exactly one of these, wrapped with the names of the
// components involved. Use errors.Is or errors.Cause to test them.
//
var (
	// ErrDuplicateName: the name of a circuit collides with a sibling's, or
	// a terminal name collides with another terminal of the same circuit.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrSelfConnection: a terminal cannot be connected to itself.
	ErrSelfConnection = errors.New("self connection")
	// ErrScopeViolation: the terminals cannot be wired together given their
	// direction and position in the circuit hierarchy.
	ErrScopeViolation = errors.New("scope violation")
	// ErrAlreadyDriven: the destination terminal already has a source.
	ErrAlreadyDriven = errors.New("terminal already driven")
	// ErrNotConnected: there is no edge between the given terminals.
	ErrNotConnected = errors.New("terminals not connected")
	// ErrInvalidComponent: the component is not owned by the given circuit,
	// or the operation is not supported on primitive circuits.
	ErrInvalidComponent = errors.New("invalid component")
	// ErrNonStabilizing: propagation exceeded the step budget.
	ErrNonStabilizing = errors.New("circuit does not stabilize")
	// ErrQueueClosed: a command was submitted to a disposed Queue.
	ErrQueueClosed = errors.New("command queue closed")
)
