package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patchbay/rack"
	"github.com/patchbay/rack/mock"
)

func TestCardCounts(t *testing.T) {
	m := mock.Card{Name: "counting"}
	card := m.Card()

	for i := 0; i < 3; i++ {
		out, _, err := card.Process(context.Background(), i, nil)
		assert.NoError(t, err)
		assert.Equal(t, i, out, "nil OnProcess passes through")
	}
	assert.Equal(t, 3, m.Calls())
}

func TestCardError(t *testing.T) {
	errCall := errors.New("call failed")
	m := mock.Card{Name: "failing", ErrorOnCall: errCall}

	_, _, err := m.Card().Process(context.Background(), nil, nil)
	assert.ErrorIs(t, err, errCall)
	assert.Equal(t, 1, m.Calls())
}

func TestArithmeticCards(t *testing.T) {
	out, _, err := mock.Double().Process(context.Background(), 5.0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, out)

	out, _, err = mock.Increment().Process(context.Background(), 5.0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 6.0, out)
}

func TestShapes(t *testing.T) {
	src := mock.Source(rack.MIDI)
	assert.Empty(t, src.Signature.Inputs)
	assert.Equal(t, rack.MIDI, src.Signature.Outputs[0].Kind)

	snk := mock.Sink(rack.MIDI)
	assert.Equal(t, rack.MIDI, snk.Signature.Inputs[0].Kind)
	assert.Empty(t, snk.Signature.Outputs)
}
