/*
Package gatesim provides a boolean, gate level, logic circuit simulator and an
API to compose basic components (logic gates, latches, flip-flops, etc.) into
more complex ones.

Terminals carry a tri-state Value (Unknown, Low or High). A change on a
terminal is propagated synchronously through the circuit graph: inputs of
primitive circuits trigger their evaluation rule (a Component) and outputs
forward their value to the terminals they drive. Propagation stops at a fixed
point, where setting a terminal to the value it already holds is a no-op. This
is what stabilizes feedback loops such as the ones found in latches. Circuits
that never settle, like an inverter driving its own input, are reported with
ErrNonStabilizing once the step budget of a single stimulus is exhausted.

A Sim is single threaded. Goroutines that need to stimulate a circuit
concurrently, like the clock driver in package clock, submit commands to a
Queue.

A library of ready made parts is available in package gatelib.

*/
package gatesim
