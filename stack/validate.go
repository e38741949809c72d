package stack

import (
	"fmt"

	"github.com/patchbay/rack"
)

type (
	// Issue is one validation finding. Code is stable so hosts can map
	// findings to editor hints; EntryID points at the offending entry
	// when one exists.
	Issue struct {
		Code    string
		Message string
		EntryID string
	}

	// Validation is the result of validating a stack. A stack may
	// legally exist in an invalid state: validation is advisory and
	// must be requested explicitly, e.g. before compiling.
	Validation struct {
		Valid    bool
		Errors   []Issue
		Warnings []Issue
	}
)

// Issue codes.
const (
	CodeEmptyStack       = "empty-stack"
	CodeDeadEnd          = "dead-end"
	CodeKindMismatch     = "kind-mismatch"
	CodeAdapterRequired  = "adapter-required"
	CodeUnevenParallelIn = "uneven-parallel-inputs"
)

// Validate runs mode-specific structural checks. Findings are returned
// as data, never raised.
func (s Stack) Validate() Validation {
	v := Validation{Valid: true}
	if len(s.Entries) == 0 {
		v.Warnings = append(v.Warnings, Issue{
			Code:    CodeEmptyStack,
			Message: "stack has no entries",
		})
		return v
	}
	switch s.Mode {
	case Serial:
		v.checkSerial(s)
	case Parallel, Layer:
		v.checkParallel(s)
	case Tabs:
		// every tab stands alone, nothing structural to check.
	default:
		panic(fmt.Sprintf("validate: unknown stack mode %v", s.Mode))
	}
	v.Valid = len(v.Errors) == 0
	return v
}

// checkSerial verifies that adjacent entries can feed each other: a
// left side with no outputs cannot feed a right side expecting input,
// and the first connected pair of ports must have compatible kinds.
// Pairs bridgeable through an adapter produce a warning naming it;
// inserting the adapter stays a caller decision.
func (v *Validation) checkSerial(s Stack) {
	for i := 0; i < len(s.Entries)-1; i++ {
		left, right := s.Entries[i], s.Entries[i+1]
		outs := left.Card.Signature.Outputs
		ins := right.Card.Signature.Inputs
		if len(ins) == 0 {
			continue
		}
		if len(outs) == 0 {
			v.Errors = append(v.Errors, Issue{
				Code:    CodeDeadEnd,
				Message: fmt.Sprintf("entry %s has no outputs to feed %s", left.ID, right.ID),
				EntryID: left.ID,
			})
			continue
		}
		compat := rack.Compatible(outs[0].Kind, ins[0].Kind)
		switch {
		case compat == nil:
			v.Errors = append(v.Errors, Issue{
				Code:    CodeKindMismatch,
				Message: fmt.Sprintf("cannot connect %s to %s", outs[0].Kind, ins[0].Kind),
				EntryID: right.ID,
			})
		case compat.RequiresAdapter:
			v.Warnings = append(v.Warnings, Issue{
				Code:    CodeAdapterRequired,
				Message: fmt.Sprintf("connecting %s to %s requires adapter %q", outs[0].Kind, ins[0].Kind, compat.Adapter),
				EntryID: right.ID,
			})
		}
	}
}

// checkParallel flags entries whose input-port count differs from the
// first entry's. Heterogeneous parallel inputs are legal but
// surprising.
func (v *Validation) checkParallel(s Stack) {
	want := len(s.Entries[0].Card.Signature.Inputs)
	for _, e := range s.Entries[1:] {
		if got := len(e.Card.Signature.Inputs); got != want {
			v.Warnings = append(v.Warnings, Issue{
				Code:    CodeUnevenParallelIn,
				Message: fmt.Sprintf("entry %s has %d inputs, first entry has %d", e.ID, got, want),
				EntryID: e.ID,
			})
		}
	}
}
