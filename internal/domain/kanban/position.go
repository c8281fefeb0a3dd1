package kanban

import (
	"errors"
	"fmt"
)

// Position planning for dense orderings. Lanes within a board and checklist
// items within a card share the same invariant: positions form a contiguous
// 0..N-1 sequence, unique within the parent scope. The planners below
// compute the sibling shifts a repository must apply, all inside one
// transaction, so no reader observes a gap or duplicate.

var (
	// ErrInvalidPosition signals a target position outside [0, count-1]
	// (or [0, count] for inserts).
	ErrInvalidPosition = errors.New("position out of range")

	// ErrSetMismatch signals a bulk reorder whose id set does not match the
	// existing sibling set exactly.
	ErrSetMismatch = errors.New("reorder set does not match existing siblings")
)

// Shift is a range update on sibling positions: every sibling with
// MinPos <= position <= MaxPos moves by Delta. MaxPos of -1 means
// unbounded above.
type Shift struct {
	MinPos int
	MaxPos int
	Delta  int
}

// Unbounded marks a Shift with no upper position limit.
const Unbounded = -1

// PlanInsert returns the position a new sibling takes and the shifts to
// apply first. A nil requested position appends; an explicit position
// shifts everything at or after it up by one.
func PlanInsert(count int, requested *int) (int, []Shift, error) {
	if requested == nil {
		return count, nil, nil
	}

	pos := *requested
	if pos < 0 || pos > count {
		return 0, nil, fmt.Errorf("insert at %d with %d siblings: %w", pos, count, ErrInvalidPosition)
	}
	if pos == count {
		return pos, nil, nil
	}

	return pos, []Shift{{MinPos: pos, MaxPos: Unbounded, Delta: +1}}, nil
}

// PlanRemove returns the shifts that close the gap left at the removed
// sibling's position.
func PlanRemove(position int) []Shift {
	return []Shift{{MinPos: position + 1, MaxPos: Unbounded, Delta: -1}}
}

// PlanMove returns the shifts for moving a sibling from one position to
// another. Moving down decrements the range crossed; moving up increments
// it. The moved row itself is set to the target afterwards.
func PlanMove(count, from, to int) ([]Shift, error) {
	if from < 0 || from > count-1 {
		return nil, fmt.Errorf("move from %d with %d siblings: %w", from, count, ErrInvalidPosition)
	}
	if to < 0 || to > count-1 {
		return nil, fmt.Errorf("move to %d with %d siblings: %w", to, count, ErrInvalidPosition)
	}
	if from == to {
		return nil, nil
	}

	if to > from {
		return []Shift{{MinPos: from + 1, MaxPos: to, Delta: -1}}, nil
	}
	return []Shift{{MinPos: to, MaxPos: from - 1, Delta: +1}}, nil
}

// PositionAssignment pairs a sibling id with its requested position in a
// bulk reorder.
type PositionAssignment struct {
	ID       uint
	Position int
}

// ValidateReorder checks that a bulk reorder covers exactly the existing
// sibling set and that the requested positions are a permutation of
// 0..N-1. The assignments are applied verbatim, not via arithmetic shift.
func ValidateReorder(existingIDs []uint, assignments []PositionAssignment) error {
	if len(assignments) != len(existingIDs) {
		return fmt.Errorf("%d assignments for %d siblings: %w", len(assignments), len(existingIDs), ErrSetMismatch)
	}

	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	seenIDs := make(map[uint]bool, len(assignments))
	seenPositions := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if !existing[a.ID] {
			return fmt.Errorf("id %d does not belong to this scope: %w", a.ID, ErrSetMismatch)
		}
		if seenIDs[a.ID] {
			return fmt.Errorf("id %d appears twice: %w", a.ID, ErrSetMismatch)
		}
		seenIDs[a.ID] = true

		if a.Position < 0 || a.Position > len(existingIDs)-1 {
			return fmt.Errorf("position %d with %d siblings: %w", a.Position, len(existingIDs), ErrInvalidPosition)
		}
		if seenPositions[a.Position] {
			return fmt.Errorf("position %d assigned twice: %w", a.Position, ErrInvalidPosition)
		}
		seenPositions[a.Position] = true
	}

	return nil
}
