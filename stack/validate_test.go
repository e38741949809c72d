package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patchbay/rack"
	"github.com/patchbay/rack/mock"
	"github.com/patchbay/rack/stack"
)

func TestValidateEmpty(t *testing.T) {
	v := stack.New(nil, stack.Serial).Validate()

	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	if assert.Equal(t, 1, len(v.Warnings)) {
		assert.Equal(t, stack.CodeEmptyStack, v.Warnings[0].Code)
	}
}

func TestValidateSerial(t *testing.T) {
	tests := []struct {
		cards    []*rack.Card
		valid    bool
		errors   []string
		warnings []string
		msg      string
	}{
		{
			cards: []*rack.Card{mock.Passthrough(rack.Audio), mock.Passthrough(rack.Audio)},
			valid: true,
			msg:   "compatible chain",
		},
		{
			cards:  []*rack.Card{mock.Sink(rack.Audio), mock.Passthrough(rack.Audio)},
			valid:  false,
			errors: []string{stack.CodeDeadEnd},
			msg:    "dead end: no outputs feeding inputs",
		},
		{
			cards:  []*rack.Card{mock.Passthrough(rack.Audio), mock.Passthrough(rack.MIDI)},
			valid:  false,
			errors: []string{stack.CodeKindMismatch},
			msg:    "incompatible kinds",
		},
		{
			cards:    []*rack.Card{mock.Passthrough(rack.Notes), mock.Passthrough(rack.MIDI)},
			valid:    true,
			warnings: []string{stack.CodeAdapterRequired},
			msg:      "adaptable kinds warn, never error",
		},
		{
			cards: []*rack.Card{mock.Passthrough(rack.Audio), mock.Source(rack.Audio)},
			valid: true,
			msg:   "right side without inputs needs no connection",
		},
	}
	for _, test := range tests {
		v := stack.New(test.cards, stack.Serial).Validate()
		assert.Equal(t, test.valid, v.Valid, test.msg)
		assert.Equal(t, test.errors, codes(v.Errors), test.msg)
		assert.Equal(t, test.warnings, codes(v.Warnings), test.msg)
	}
}

func TestValidateParallel(t *testing.T) {
	even := stack.New(
		[]*rack.Card{mock.Passthrough(rack.Audio), mock.Passthrough(rack.Audio)},
		stack.Parallel,
	).Validate()
	assert.True(t, even.Valid)
	assert.Empty(t, even.Warnings)

	uneven := stack.New(
		[]*rack.Card{mock.Passthrough(rack.Audio), mock.Source(rack.Audio)},
		stack.Parallel,
	).Validate()
	assert.True(t, uneven.Valid, "heterogeneous inputs are legal")
	assert.Equal(t, []string{stack.CodeUnevenParallelIn}, codes(uneven.Warnings))
}

func TestValidateTabs(t *testing.T) {
	v := stack.New(
		[]*rack.Card{mock.Passthrough(rack.Audio), mock.Passthrough(rack.MIDI)},
		stack.Tabs,
	).Validate()
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func codes(issues []stack.Issue) []string {
	var out []string
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}
