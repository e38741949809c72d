/*
Package stack composes cards into ordered structures with one of four
modes: serial chain, parallel fan-out, weighted layer-mix or
single-active-tab. A stack's visible signature is always derived from
its entries and mode; every edit returns a new stack value and leaves
the old one intact, so hosts implement structural undo by retaining
prior values.
*/
package stack

import (
	"fmt"

	"github.com/patchbay/rack"
)

// Mode defines how a stack composes its entries.
type Mode int

const (
	// Serial chains entries one after another.
	Serial Mode = iota
	// Parallel fans the same input out to every entry.
	Parallel
	// Layer is parallel with per-entry mix weighting in the compiled
	// card. The visible signature is identical to Parallel.
	Layer
	// Tabs presents all entries but routes through one at a time.
	Tabs
)

func (m Mode) String() string {
	switch m {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case Layer:
		return "layer"
	case Tabs:
		return "tabs"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

type (
	// Entry wraps one card inside a stack, carrying per-instance
	// control state. The card itself is shared and read-only.
	Entry struct {
		ID       string
		Card     *rack.Card
		Bypassed bool
		Solo     bool
		Mix      float64
		State    any
	}

	// Stack is an ordered collection of cards composed under one mode.
	// Signature is always derived from Entries and Mode, never set by
	// hand. Entry order is semantically significant.
	Stack struct {
		ID        string
		Name      string
		Mode      Mode
		Entries   []Entry
		Signature rack.Signature

		newUID func() string
	}

	// Option configures a stack on construction.
	Option func(*Stack)
)

// WithName sets the display name of a stack.
func WithName(name string) Option {
	return func(s *Stack) {
		s.Name = name
	}
}

// WithIDs sets the id generator used for the stack and its entries.
// Without it ids come from rack.NewUID. Injecting a deterministic
// generator keeps tests reproducible.
func WithIDs(gen func() string) Option {
	return func(s *Stack) {
		s.newUID = gen
	}
}

// WithMode overrides the mode, used by Merge.
func WithMode(m Mode) Option {
	return func(s *Stack) {
		s.Mode = m
	}
}

// New builds a stack from cards. Each card is wrapped in a fresh entry
// with bypass and solo off and full mix. The signature is inferred from
// the entries and mode.
func New(cards []*rack.Card, mode Mode, options ...Option) Stack {
	s := Stack{
		Mode:   mode,
		newUID: rack.NewUID,
	}
	for _, option := range options {
		option(&s)
	}
	s.ID = s.newUID()
	s.Entries = make([]Entry, 0, len(cards))
	for _, c := range cards {
		s.Entries = append(s.Entries, Entry{
			ID:   s.newUID(),
			Card: c,
			Mix:  1,
		})
	}
	s.Signature = InferPorts(s.Entries, mode)
	return s
}

// uid returns a new id, falling back to rack.NewUID for zero stacks.
func (s Stack) uid() string {
	if s.newUID == nil {
		return rack.NewUID()
	}
	return s.newUID()
}

// clone copies the stack with its own entries slice. Entries themselves
// are value-copied; their cards and states stay shared.
func (s Stack) clone() Stack {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	s.Entries = entries
	return s
}

// InferPorts derives the visible signature of a composite from its
// entries and mode. Zero entries produce an empty signature for every
// mode.
func InferPorts(entries []Entry, mode Mode) rack.Signature {
	if len(entries) == 0 {
		return rack.Signature{}
	}
	switch mode {
	case Serial:
		return rack.NewSignature(
			entries[0].Card.Signature.Inputs,
			entries[len(entries)-1].Card.Signature.Outputs,
		)
	case Parallel, Layer:
		var outputs []rack.Port
		for _, e := range entries {
			outputs = append(outputs, e.Card.Signature.Outputs...)
		}
		return rack.NewSignature(entries[0].Card.Signature.Inputs, outputs)
	case Tabs:
		// any tab may become active, so the compound signature
		// presents the superset of all entries.
		var inputs, outputs []rack.Port
		for _, e := range entries {
			inputs = append(inputs, e.Card.Signature.Inputs...)
			outputs = append(outputs, e.Card.Signature.Outputs...)
		}
		return rack.NewSignature(inputs, outputs)
	}
	panic(fmt.Sprintf("infer ports: unknown stack mode %v", mode))
}

// ActiveEntries returns the entries eligible to process input. If any
// entry is soloed, active entries are those soloed and not bypassed;
// otherwise all entries not bypassed. This function is the single owner
// of the rule: the compiler and any renderer must use it rather than
// reimplement it.
func (s Stack) ActiveEntries() []Entry {
	soloed := false
	for _, e := range s.Entries {
		if e.Solo {
			soloed = true
			break
		}
	}
	active := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Bypassed {
			continue
		}
		if soloed && !e.Solo {
			continue
		}
		active = append(active, e)
	}
	return active
}

// Entry returns the entry with the provided id.
func (s Stack) Entry(entryID string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return Entry{}, false
}
