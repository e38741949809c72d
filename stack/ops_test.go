package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patchbay/rack"
	"github.com/patchbay/rack/mock"
	"github.com/patchbay/rack/stack"
)

func TestInsertCard(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double(), mock.Increment()},
		stack.Serial,
		stack.WithIDs(sequentialIDs()),
	)

	inserted := s.InsertCard(mock.Passthrough(rack.Audio), 1)
	assert.Equal(t, 3, len(inserted.Entries))
	assert.Equal(t, "passthrough", inserted.Entries[1].Card.Name)
	assert.Equal(t, "id-4", inserted.Entries[1].ID)

	// prior value stays intact.
	assert.Equal(t, 2, len(s.Entries))

	// out-of-range positions clamp to the ends.
	head := s.InsertCard(mock.Passthrough(rack.Audio), -3)
	assert.Equal(t, "passthrough", head.Entries[0].Card.Name)
	tail := s.InsertCard(mock.Passthrough(rack.Audio), 99)
	assert.Equal(t, "passthrough", tail.Entries[2].Card.Name)
}

func TestRemoveCard(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double(), mock.Increment()},
		stack.Serial,
		stack.WithIDs(sequentialIDs()),
	)

	removed := s.RemoveCard("id-2")
	assert.Equal(t, 1, len(removed.Entries))
	assert.Equal(t, "id-3", removed.Entries[0].ID)
	assert.Equal(t, 2, len(s.Entries), "prior value intact")

	unknown := s.RemoveCard("nope")
	assert.Equal(t, 2, len(unknown.Entries))
}

func TestReorderCards(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double(), mock.Increment(), mock.Passthrough(rack.Audio)},
		stack.Serial,
		stack.WithIDs(sequentialIDs()),
	)

	reordered := s.ReorderCards(0, 2)
	assert.Equal(t, []string{"id-3", "id-4", "id-2"}, ids(reordered))
	assert.Equal(t, []string{"id-2", "id-3", "id-4"}, ids(s), "prior value intact")

	// moved entries keep identity and state.
	assert.Equal(t, s.Entries[0].Card, reordered.Entries[2].Card)

	// serial signature follows the new first and last entries.
	assert.True(t, reordered.Signature.Equal(stack.InferPorts(reordered.Entries, reordered.Mode)))

	clamped := s.ReorderCards(-5, 42)
	assert.Equal(t, []string{"id-3", "id-4", "id-2"}, ids(clamped))
}

func TestBypassToggle(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double()},
		stack.Serial,
		stack.WithIDs(sequentialIDs()),
	)

	once := s.BypassCard("id-2")
	assert.True(t, once.Entries[0].Bypassed)

	// applying the toggle twice restores the original state.
	twice := once.BypassCard("id-2")
	assert.Equal(t, s.Entries[0].Bypassed, twice.Entries[0].Bypassed)

	assert.False(t, s.Entries[0].Bypassed, "prior value intact")
}

func TestSoloToggle(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double()},
		stack.Serial,
		stack.WithIDs(sequentialIDs()),
	)

	once := s.SoloCard("id-2")
	assert.True(t, once.Entries[0].Solo)
	twice := once.SoloCard("id-2")
	assert.False(t, twice.Entries[0].Solo)
}

func TestSetMix(t *testing.T) {
	s := stack.New(
		[]*rack.Card{mock.Double()},
		stack.Layer,
		stack.WithIDs(sequentialIDs()),
	)

	tests := []struct {
		mix  float64
		want float64
		msg  string
	}{
		{0.5, 0.5, "in range"},
		{-1, 0, "clamped low"},
		{7, 1, "clamped high"},
	}
	for _, test := range tests {
		next := s.SetMix("id-2", test.mix)
		assert.Equal(t, test.want, next.Entries[0].Mix, test.msg)
	}
	assert.Equal(t, 1.0, s.Entries[0].Mix, "prior value intact")
}

func ids(s stack.Stack) []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.ID)
	}
	return out
}
