package stack

import "time"

type (
	// EntryState is the captured control state of one entry.
	EntryState struct {
		Bypassed bool
		Solo     bool
		Mix      float64
	}

	// Snapshot captures the control state of every entry at one point
	// in time. It restores state only; structural undo relies on
	// retaining whole prior stack values instead, so toggling a
	// control back never undoes an unrelated structural edit.
	Snapshot struct {
		ID      string
		TakenAt time.Time
		Order   []string
		States  map[string]EntryState
	}

	// Diff is a structural comparison of two stacks. StateChanges maps
	// each common entry id to the names of control fields that differ;
	// ids with no differing fields are omitted.
	Diff struct {
		Added        []string
		Removed      []string
		Reordered    bool
		StateChanges map[string][]string
	}
)

// TakeSnapshot captures the control state of the stack's entries.
func (s Stack) TakeSnapshot() Snapshot {
	snap := Snapshot{
		ID:      s.uid(),
		TakenAt: time.Now(),
		Order:   make([]string, 0, len(s.Entries)),
		States:  make(map[string]EntryState, len(s.Entries)),
	}
	for _, e := range s.Entries {
		snap.Order = append(snap.Order, e.ID)
		snap.States[e.ID] = EntryState{Bypassed: e.Bypassed, Solo: e.Solo, Mix: e.Mix}
	}
	return snap
}

// Restore returns a stack with control state overwritten from the
// snapshot for every entry present in it. Entries added since the
// snapshot keep their state; snapshot ids removed since are ignored.
// Structure is never touched.
func (s Stack) Restore(snap Snapshot) Stack {
	next := s.clone()
	for i, e := range next.Entries {
		if st, ok := snap.States[e.ID]; ok {
			e.Bypassed = st.Bypassed
			e.Solo = st.Solo
			e.Mix = st.Mix
			next.Entries[i] = e
		}
	}
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}

// DiffStacks compares two stacks by entry id: ids only in after are
// added, ids only in before removed. Reordered is true iff the relative
// order of common ids differs.
func DiffStacks(before, after Stack) Diff {
	d := Diff{StateChanges: make(map[string][]string)}
	beforeIDs := make(map[string]Entry, len(before.Entries))
	for _, e := range before.Entries {
		beforeIDs[e.ID] = e
	}
	afterIDs := make(map[string]Entry, len(after.Entries))
	for _, e := range after.Entries {
		afterIDs[e.ID] = e
	}

	var commonBefore, commonAfter []string
	for _, e := range before.Entries {
		if _, ok := afterIDs[e.ID]; ok {
			commonBefore = append(commonBefore, e.ID)
		} else {
			d.Removed = append(d.Removed, e.ID)
		}
	}
	for _, e := range after.Entries {
		if b, ok := beforeIDs[e.ID]; ok {
			commonAfter = append(commonAfter, e.ID)
			if fields := changedFields(b, e); len(fields) > 0 {
				d.StateChanges[e.ID] = fields
			}
		} else {
			d.Added = append(d.Added, e.ID)
		}
	}
	for i := range commonBefore {
		if commonBefore[i] != commonAfter[i] {
			d.Reordered = true
			break
		}
	}
	if len(d.StateChanges) == 0 {
		d.StateChanges = nil
	}
	return d
}

func changedFields(before, after Entry) []string {
	var fields []string
	if before.Bypassed != after.Bypassed {
		fields = append(fields, "bypassed")
	}
	if before.Solo != after.Solo {
		fields = append(fields, "solo")
	}
	if before.Mix != after.Mix {
		fields = append(fields, "mix")
	}
	return fields
}

// Merge concatenates two stacks: a's entries then b's, ids preserved.
// Callers own collision avoidance between the two id spaces. The result
// keeps a's mode unless WithMode overrides it; the signature is
// re-inferred under the resulting mode.
func Merge(a, b Stack, options ...Option) Stack {
	next := a.clone()
	next.ID = a.uid()
	next.Entries = append(next.Entries, b.Entries...)
	for _, option := range options {
		option(&next)
	}
	next.Signature = InferPorts(next.Entries, next.Mode)
	return next
}
