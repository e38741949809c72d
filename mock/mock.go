// Package mock provides counting cards for tests.
package mock

import (
	"context"
	"sync/atomic"

	"github.com/patchbay/rack"
)

// Card builds a rack.Card that counts its process invocations. OnProcess
// defines the payload transformation; nil passes input through.
type Card struct {
	Name        string
	Inputs      []rack.Port
	Outputs     []rack.Port
	OnProcess   func(in any) (any, error)
	ErrorOnCall error

	calls atomic.Int64
}

// Card returns the rack card for this mock.
func (m *Card) Card() *rack.Card {
	return &rack.Card{
		ID:        rack.NewUID(),
		Name:      m.Name,
		Signature: rack.NewSignature(m.Inputs, m.Outputs),
		Process: func(_ context.Context, in, state any) (any, any, error) {
			m.calls.Add(1)
			if m.ErrorOnCall != nil {
				return nil, nil, m.ErrorOnCall
			}
			if m.OnProcess == nil {
				return in, state, nil
			}
			out, err := m.OnProcess(in)
			return out, state, err
		},
	}
}

// Calls returns how many times the card processed input.
func (m *Card) Calls() int {
	return int(m.calls.Load())
}

// audio in/out ports shared by the arithmetic helpers.
func monoPorts() ([]rack.Port, []rack.Port) {
	return []rack.Port{{Name: "in", Kind: rack.Audio}},
		[]rack.Port{{Name: "out", Kind: rack.Audio}}
}

// Double returns a card doubling a float64 payload.
func Double() *rack.Card {
	in, out := monoPorts()
	return (&Card{
		Name:    "double",
		Inputs:  in,
		Outputs: out,
		OnProcess: func(in any) (any, error) {
			return in.(float64) * 2, nil
		},
	}).Card()
}

// Increment returns a card adding one to a float64 payload.
func Increment() *rack.Card {
	in, out := monoPorts()
	return (&Card{
		Name:    "increment",
		Inputs:  in,
		Outputs: out,
		OnProcess: func(in any) (any, error) {
			return in.(float64) + 1, nil
		},
	}).Card()
}

// Passthrough returns a card with one input and one output of the
// provided kind, returning input unchanged.
func Passthrough(kind rack.Kind) *rack.Card {
	return (&Card{
		Name:    "passthrough",
		Inputs:  []rack.Port{{Name: "in", Kind: kind}},
		Outputs: []rack.Port{{Name: "out", Kind: kind}},
	}).Card()
}

// Source returns a card with no inputs and one output of the provided
// kind.
func Source(kind rack.Kind) *rack.Card {
	return (&Card{
		Name:    "source",
		Outputs: []rack.Port{{Name: "out", Kind: kind}},
	}).Card()
}

// Sink returns a card with one input of the provided kind and no
// outputs.
func Sink(kind rack.Kind) *rack.Card {
	return (&Card{
		Name:   "sink",
		Inputs: []rack.Port{{Name: "in", Kind: kind}},
	}).Card()
}
