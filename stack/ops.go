package stack

import "github.com/patchbay/rack"

// Structural and control edits. Every operation is pure: it returns a
// new stack and re-infers the signature, leaving the receiver intact.
// Unaffected entries keep their identity and state.

// InsertCard returns a stack with the card wrapped in a fresh entry at
// position. Position is clamped to the entry range.
func (s Stack) InsertCard(card *rack.Card, position int) Stack {
	next := s.clone()
	if position < 0 {
		position = 0
	}
	if position > len(next.Entries) {
		position = len(next.Entries)
	}
	entry := Entry{ID: s.uid(), Card: card, Mix: 1}
	next.Entries = append(next.Entries[:position], append([]Entry{entry}, next.Entries[position:]...)...)
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}

// RemoveCard returns a stack without the entry identified by entryID.
// An unknown id leaves the entries unchanged.
func (s Stack) RemoveCard(entryID string) Stack {
	next := s.clone()
	entries := next.Entries[:0]
	for _, e := range next.Entries {
		if e.ID != entryID {
			entries = append(entries, e)
		}
	}
	next.Entries = entries
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}

// ReorderCards returns a stack with the entry at from moved to to.
// Indices are clamped. The signature is always re-inferred: in serial
// mode it changes whenever the first or last entry does.
func (s Stack) ReorderCards(from, to int) Stack {
	next := s.clone()
	if len(next.Entries) == 0 {
		return next
	}
	from = clamp(from, len(next.Entries)-1)
	to = clamp(to, len(next.Entries)-1)
	entry := next.Entries[from]
	next.Entries = append(next.Entries[:from], next.Entries[from+1:]...)
	next.Entries = append(next.Entries[:to], append([]Entry{entry}, next.Entries[to:]...)...)
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}

// BypassCard toggles the bypass flag of the entry identified by
// entryID. Applying it twice restores the original state.
func (s Stack) BypassCard(entryID string) Stack {
	return s.updateEntry(entryID, func(e Entry) Entry {
		e.Bypassed = !e.Bypassed
		return e
	})
}

// SoloCard toggles the solo flag of the entry identified by entryID.
func (s Stack) SoloCard(entryID string) Stack {
	return s.updateEntry(entryID, func(e Entry) Entry {
		e.Solo = !e.Solo
		return e
	})
}

// SetMix sets the mix weight of the entry identified by entryID,
// clamped to [0, 1].
func (s Stack) SetMix(entryID string, mix float64) Stack {
	if mix < 0 {
		mix = 0
	}
	if mix > 1 {
		mix = 1
	}
	return s.updateEntry(entryID, func(e Entry) Entry {
		e.Mix = mix
		return e
	})
}

func (s Stack) updateEntry(entryID string, update func(Entry) Entry) Stack {
	next := s.clone()
	for i, e := range next.Entries {
		if e.ID == entryID {
			next.Entries[i] = update(e)
			break
		}
	}
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
