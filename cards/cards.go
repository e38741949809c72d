// Package cards provides stock cards for common patching chores: plain
// audio gain staging and the canonical notes-to-midi adapter. Hosts
// that decide to insert an adapter reported by validation can use the
// one built here.
package cards

import (
	"context"
	"fmt"

	"github.com/go-audio/audio"

	"github.com/patchbay/rack"
)

// Note is one symbolic note of the notes signal kind.
type Note struct {
	Pitch    int
	Velocity int
	Start    float64
	Duration float64
}

// MIDIEvent is one event of the midi signal kind.
type MIDIEvent struct {
	Status byte
	Data1  byte
	Data2  byte
	Time   float64
}

const (
	noteOn  = 0x90
	noteOff = 0x80
)

// audioSignature is the mono in/out signature shared by the audio
// cards.
func audioSignature() rack.Signature {
	return rack.NewSignature(
		[]rack.Port{{Name: "in", Kind: rack.Audio}},
		[]rack.Port{{Name: "out", Kind: rack.Audio}},
	)
}

// Gain returns an audio card scaling every sample of a
// *audio.FloatBuffer by factor. The input buffer is not modified.
func Gain(factor float64) *rack.Card {
	return &rack.Card{
		ID:        rack.NewUID(),
		Name:      fmt.Sprintf("gain %.2f", factor),
		Signature: audioSignature(),
		Process: func(_ context.Context, in, state any) (any, any, error) {
			buf, err := floatBuffer(in)
			if err != nil {
				return nil, nil, err
			}
			out := buf.Clone().AsFloatBuffer()
			for i := range out.Data {
				out.Data[i] *= factor
			}
			return out, state, nil
		},
	}
}

// Offset returns an audio card adding delta to every sample of a
// *audio.FloatBuffer. The input buffer is not modified.
func Offset(delta float64) *rack.Card {
	return &rack.Card{
		ID:        rack.NewUID(),
		Name:      fmt.Sprintf("offset %.2f", delta),
		Signature: audioSignature(),
		Process: func(_ context.Context, in, state any) (any, any, error) {
			buf, err := floatBuffer(in)
			if err != nil {
				return nil, nil, err
			}
			out := buf.Clone().AsFloatBuffer()
			for i := range out.Data {
				out.Data[i] += delta
			}
			return out, state, nil
		},
	}
}

func floatBuffer(in any) (*audio.FloatBuffer, error) {
	buf, ok := in.(*audio.FloatBuffer)
	if !ok {
		return nil, fmt.Errorf("expected *audio.FloatBuffer, got %T", in)
	}
	return buf, nil
}

// NotesToMIDI returns the canonical notes-to-midi adapter as a card:
// each []Note becomes note-on/note-off pairs ordered by time.
func NotesToMIDI() *rack.Card {
	return &rack.Card{
		ID:   rack.NewUID(),
		Name: "notes-to-midi",
		Signature: rack.NewSignature(
			[]rack.Port{{Name: "in", Kind: rack.Notes}},
			[]rack.Port{{Name: "out", Kind: rack.MIDI}},
		),
		Process: func(_ context.Context, in, state any) (any, any, error) {
			notes, ok := in.([]Note)
			if !ok {
				return nil, nil, fmt.Errorf("expected []Note, got %T", in)
			}
			events := make([]MIDIEvent, 0, 2*len(notes))
			for _, n := range notes {
				events = append(events,
					MIDIEvent{Status: noteOn, Data1: byte(n.Pitch), Data2: byte(n.Velocity), Time: n.Start},
					MIDIEvent{Status: noteOff, Data1: byte(n.Pitch), Time: n.Start + n.Duration},
				)
			}
			sortByTime(events)
			return events, state, nil
		},
	}
}

func sortByTime(events []MIDIEvent) {
	// insertion sort: note lists in a single card invocation are
	// short, and note-on must stay before its own note-off on ties.
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Time < events[j-1].Time; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}
