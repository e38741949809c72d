package rack

import (
	"strings"
	"sync"
)

// Kind identifies the signal carried by a port. It is either one of the
// canonical kinds defined below or a namespaced extension kind in the
// "vendor:kind" form.
type Kind string

// Canonical signal kinds.
const (
	Audio     = Kind("audio")
	MIDI      = Kind("midi")
	Notes     = Kind("notes")
	Control   = Kind("control")
	Trigger   = Kind("trigger")
	Gate      = Kind("gate")
	Clock     = Kind("clock")
	Transport = Kind("transport")
)

// Direction of a port.
type Direction int

const (
	// In marks a port that consumes signal.
	In Direction = iota
	// Out marks a port that produces signal.
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	}
	return "unknown"
}

// Port is a named, typed connection point on a card signature.
type Port struct {
	Name      string
	Kind      Kind
	Direction Direction
}

// Compatibility describes how two kinds can be connected. A zero value
// means a direct connection; RequiresAdapter means the connection is
// possible only through the named adapter.
type Compatibility struct {
	RequiresAdapter bool
	Adapter         string
}

// Canonical reports whether k is one of the canonical kinds.
func (k Kind) Canonical() bool {
	switch k {
	case Audio, MIDI, Notes, Control, Trigger, Gate, Clock, Transport:
		return true
	}
	return false
}

// Namespaced reports whether k is an extension kind in the
// "vendor:kind" form.
func (k Kind) Namespaced() bool {
	i := strings.IndexByte(string(k), ':')
	if i <= 0 || i == len(k)-1 {
		return false
	}
	return strings.IndexByte(string(k[i+1:]), ':') < 0
}

type adapterPair struct {
	from Kind
	to   Kind
}

// adapters holds the fixed cross-kind allow-list. Extension kinds add
// their own pairs through RegisterAdapter.
var (
	adaptersMu sync.RWMutex
	adapters   = map[adapterPair]string{
		{Notes, MIDI}:      "notes-to-midi",
		{Trigger, Gate}:    "trigger-gate",
		{Gate, Trigger}:    "trigger-gate",
		{Clock, Transport}: "clock-transport",
		{Transport, Clock}: "clock-transport",
	}
)

// RegisterAdapter registers a named adapter bridging two kinds.
// Extension authors own adapter pairs for their namespaced kinds.
func RegisterAdapter(from, to Kind, name string) {
	adaptersMu.Lock()
	adapters[adapterPair{from, to}] = name
	adaptersMu.Unlock()
}

// Compatible returns how a signal of kind from can feed a port of kind
// to. Identical kinds connect directly. A fixed allow-list of
// cross-kind pairs connects through an adapter. Everything else is
// incompatible and returns nil.
func Compatible(from, to Kind) *Compatibility {
	if from == to {
		return &Compatibility{}
	}
	adaptersMu.RLock()
	name, ok := adapters[adapterPair{from, to}]
	adaptersMu.RUnlock()
	if !ok {
		return nil
	}
	return &Compatibility{RequiresAdapter: true, Adapter: name}
}

// CanConnect reports whether a port of kind from with direction fromDir
// can be connected to a port of kind to with direction toDir.
// Connections run out to in only; any other polarity is rejected
// regardless of kinds.
func CanConnect(from Kind, fromDir Direction, to Kind, toDir Direction) bool {
	if fromDir != Out || toDir != In {
		return false
	}
	return Compatible(from, to) != nil
}
