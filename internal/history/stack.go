package history

import "github.com/modaltree/structon/internal/selection"

// Stack is a buffer's undo/redo history. The core is single-threaded
// cooperative (spec §5), so unlike the teacher's History this carries no
// mutex: callers bracket mutation in a narrow scope themselves.
type Stack struct {
	undo []Patch
	redo []Patch

	maxEntries int
}

// New creates a Stack. maxEntries <= 0 means unbounded (spec §4.8: "undo
// stacks are bounded only by available memory").
func New(maxEntries int) *Stack {
	return &Stack{maxEntries: maxEntries}
}

// Record captures a successful forward transaction: oldText/newText are
// the buffer's text before and after the transaction, and selectionBefore
// is the selection set as it stood before the transaction. Clears the
// redo stack (spec §4.8: "Redo stack is cleared on every forward edit").
func (s *Stack) Record(oldText, newText string, selectionBefore selection.Set) {
	s.undo = append(s.undo, Patch{
		Selection: selectionBefore,
		Diff:      makeDiff(newText, oldText),
	})
	s.redo = nil
	s.enforceLimit()
}

func (s *Stack) enforceLimit() {
	if s.maxEntries <= 0 || len(s.undo) <= s.maxEntries {
		return
	}
	excess := len(s.undo) - s.maxEntries
	s.undo = s.undo[excess:]
}

// CanUndo reports whether Undo has an entry to apply.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo has an entry to apply.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoCount returns the number of undo entries available.
func (s *Stack) UndoCount() int { return len(s.undo) }

// RedoCount returns the number of redo entries available.
func (s *Stack) RedoCount() int { return len(s.redo) }

// Undo applies the most recent undo patch against currentText: it
// reverses the last recorded transaction's text change and returns the
// text and selection set to restore. A forward diff back to currentText
// is pushed onto the redo stack together with currentSelection, so a
// following Redo reproduces currentText and currentSelection exactly
// (spec §4.8 invariant: redo(undo(state)) == state).
func (s *Stack) Undo(currentText string, currentSelection selection.Set) (string, selection.Set, error) {
	if len(s.undo) == 0 {
		return "", selection.Set{}, ErrNothingToUndo
	}
	entry := s.undo[len(s.undo)-1]

	restoredText, err := applyDiff(entry.Diff, currentText)
	if err != nil {
		return "", selection.Set{}, err
	}

	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, Patch{
		Selection: currentSelection,
		Diff:      makeDiff(restoredText, currentText),
	})

	return restoredText, entry.Selection, nil
}

// Redo is the mirror of Undo: it reapplies the most recent undone
// transaction against currentText.
func (s *Stack) Redo(currentText string, currentSelection selection.Set) (string, selection.Set, error) {
	if len(s.redo) == 0 {
		return "", selection.Set{}, ErrNothingToRedo
	}
	entry := s.redo[len(s.redo)-1]

	restoredText, err := applyDiff(entry.Diff, currentText)
	if err != nil {
		return "", selection.Set{}, err
	}

	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, Patch{
		Selection: currentSelection,
		Diff:      makeDiff(restoredText, currentText),
	})

	return restoredText, entry.Selection, nil
}

// Clear removes all undo/redo history.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
