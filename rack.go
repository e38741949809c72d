/*
Package rack provides the core vocabulary to compose typed
signal-processing units into larger structures.

# Concept

Everything a host application can patch together is a Card: an immutable
processing unit with a typed port signature and a process function.
Cards declare what they consume and produce through Ports, each tagged
with a signal Kind:

	audio, midi, notes, control, trigger, gate, clock, transport

or a namespaced extension kind ("vendor:kind"). The compatibility matrix
between kinds lives here too, including the adapter metadata reported
when two kinds can be bridged but not connected directly.

Cards are organized into stacks by the stack package, projected into
visual graphs by the graph package and reduced back to single executable
cards by the stack compiler. This package only defines the values those
subsystems share.

Cards built once are shared by reference and never mutated. All
composition in this module follows the same discipline: operations take
values and return new values, so retained old values stay valid and can
back undo.
*/
package rack

import "github.com/rs/xid"

// NewUID returns a new unique id value.
func NewUID() string {
	return xid.New().String()
}
