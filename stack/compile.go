package stack

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/patchbay/rack"
)

// Take is one entry's contribution to the output of a compiled parallel
// or layer card. Takes are ordered by original entry order regardless
// of completion order; Mix carries the entry's layer weight and is 1
// for parallel mode. Weighted summation is a downstream concern.
type Take struct {
	EntryID string
	Mix     float64
	Value   any
}

// Compile reduces the stack to one executable card honoring bypass and
// solo. It never re-verifies port compatibility: composing a stack that
// failed validation yields a card whose runtime behavior is not
// guaranteed.
//
// An empty stack, or one with every entry bypassed, compiles to an
// identity pass-through. Tabs mode runs the first active entry by entry
// order; stacks that need an explicit selected tab should bypass the
// others before compiling.
func (s Stack) Compile() *rack.Card {
	active := s.ActiveEntries()
	if len(active) == 0 {
		c := rack.Identity(s.Signature)
		c.ID = s.ID + ":compiled"
		return c
	}

	var process rack.ProcessFunc
	switch s.Mode {
	case Serial:
		card := active[0].Card
		for _, e := range active[1:] {
			card = rack.Compose(card, e.Card)
		}
		process = card.Process
	case Parallel, Layer:
		process = s.fanOut(active)
	case Tabs:
		first := active[0].Card
		process = first.Process
	default:
		panic(fmt.Sprintf("compile: unknown stack mode %v", s.Mode))
	}

	return &rack.Card{
		ID:        s.ID + ":compiled",
		Name:      s.Name,
		Signature: s.Signature,
		Process:   process,
	}
}

// fanOut builds the process of a parallel or layer card: every active
// entry runs against the same input concurrently and contributes one
// Take, placed by entry order. State threads through as one slot per
// active entry.
func (s Stack) fanOut(active []Entry) rack.ProcessFunc {
	layered := s.Mode == Layer
	return func(ctx context.Context, in, state any) (any, any, error) {
		takes := make([]Take, len(active))
		states, _ := state.([]any)
		if len(states) != len(active) {
			states = make([]any, len(active))
		}
		newStates := make([]any, len(active))

		g, ctx := errgroup.WithContext(ctx)
		for i, e := range active {
			i, e := i, e
			g.Go(func() error {
				out, ns, err := e.Card.Process(ctx, in, states[i])
				if err != nil {
					return fmt.Errorf("entry %s: %w", e.ID, err)
				}
				mix := 1.0
				if layered {
					mix = e.Mix
				}
				takes[i] = Take{EntryID: e.ID, Mix: mix, Value: out}
				newStates[i] = ns
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		return takes, newStates, nil
	}
}
