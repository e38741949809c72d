package rack

import (
	"context"
	"fmt"
)

type (
	// Signature is a card's full set of input and output ports. It is
	// a structural value: two signatures with equal content are equal.
	Signature struct {
		Inputs  []Port
		Outputs []Port
	}

	// ProcessFunc transforms an input payload into an output payload.
	// State is opaque to the engine: the function receives the state
	// produced by its previous invocation, or nil, and may return a
	// new one.
	ProcessFunc func(ctx context.Context, in, state any) (out, newState any, err error)

	// Card is an immutable typed processing unit. Identity is its ID;
	// cards are built once and shared by reference, never mutated.
	Card struct {
		ID        string
		Name      string
		Signature Signature
		Process   ProcessFunc
	}
)

// NewSignature builds a signature from input and output ports. Port
// directions are stamped to match the side they are placed on; no
// deeper validation happens here.
func NewSignature(inputs, outputs []Port) Signature {
	s := Signature{
		Inputs:  make([]Port, len(inputs)),
		Outputs: make([]Port, len(outputs)),
	}
	for i, p := range inputs {
		p.Direction = In
		s.Inputs[i] = p
	}
	for i, p := range outputs {
		p.Direction = Out
		s.Outputs[i] = p
	}
	return s
}

// Equal reports whether two signatures have the same ports in the same
// order.
func (s Signature) Equal(other Signature) bool {
	if len(s.Inputs) != len(other.Inputs) || len(s.Outputs) != len(other.Outputs) {
		return false
	}
	for i := range s.Inputs {
		if s.Inputs[i] != other.Inputs[i] {
			return false
		}
	}
	for i := range s.Outputs {
		if s.Outputs[i] != other.Outputs[i] {
			return false
		}
	}
	return true
}

// Compose chains two cards serially: the result consumes a's inputs,
// produces b's outputs and pipes a's output into b. It is a low-level,
// unchecked primitive: port compatibility between a's outputs and b's
// inputs is the stack validator's job, not Compose's.
//
// The composed process runs a to completion before invoking b. State
// threads through as a two-slot pair, one slot per side, so folded
// chains nest without either card knowing about the other.
func Compose(a, b *Card) *Card {
	return &Card{
		ID:        NewUID(),
		Name:      a.Name + " > " + b.Name,
		Signature: NewSignature(a.Signature.Inputs, b.Signature.Outputs),
		Process: func(ctx context.Context, in, state any) (any, any, error) {
			var stateA, stateB any
			if pair, ok := state.([]any); ok && len(pair) == 2 {
				stateA, stateB = pair[0], pair[1]
			}
			mid, stateA, err := a.Process(ctx, in, stateA)
			if err != nil {
				return nil, nil, fmt.Errorf("card %s: %w", a.ID, err)
			}
			out, stateB, err := b.Process(ctx, mid, stateB)
			if err != nil {
				return nil, nil, fmt.Errorf("card %s: %w", b.ID, err)
			}
			return out, []any{stateA, stateB}, nil
		},
	}
}

// Identity returns a pass-through card with the provided signature. Its
// process returns the input unchanged for any input.
func Identity(sig Signature) *Card {
	return &Card{
		ID:        NewUID(),
		Name:      "identity",
		Signature: sig,
		Process: func(_ context.Context, in, state any) (any, any, error) {
			return in, state, nil
		},
	}
}
