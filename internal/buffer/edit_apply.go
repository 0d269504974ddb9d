package buffer

import (
	"context"
	"sort"

	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/overlay"
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/syntax"
)

// ApplyEditTransaction implements spec §4.2 apply_edit_transaction:
// atomically applies every ActionGroup's edits, pushes an undo patch,
// clears the redo stack, reparses (subject to the freeze policy), and
// returns current's selections translated to post-edit indices.
func (b *Buffer) ApplyEditTransaction(ctx context.Context, txn edit.Transaction, current selection.Set) (selection.Set, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldRope := b.rope
	oldText := oldRope.String()

	result, err := edit.Apply(oldRope, txn)
	if err != nil {
		return selection.Set{}, err
	}

	b.replayEdits(ctx, oldRope, txn)

	b.history.Record(oldText, result.Rope.String(), current)
	b.rope = result.Rope
	b.overlays.ClampToLength(b.rope.CharLen())
	b.revision = NewRevisionID()

	return rebuildSelectionSet(current, result.Selections), nil
}

// rebuildSelectionSet maps current's selections (in All() order, the
// same order the caller built txn's groups in) onto the Select ranges
// edit.Apply collected for each group. A group that contributed no
// Select action keeps the prior selection's (unshifted) range, per
// internal/multicursor's documented convention.
func rebuildSelectionSet(prior selection.Set, selected [][]position.Range) selection.Set {
	priorAll := prior.All()
	updated := make([]selection.Selection, len(priorAll))
	for i, sel := range priorAll {
		if i < len(selected) && len(selected[i]) > 0 {
			updated[i] = selection.New(selected[i][0])
		} else {
			updated[i] = sel
		}
	}
	return prior.WithAll(updated)
}

// orderedEdit is one flattened edit.Edit in the application order
// edit.Apply itself uses: groups sorted by leftmost edit start, and
// within a group its edits sorted by Range.Start — a caller may build a
// single ActionGroup's edits out of document order (internal/workspace's
// ApplyPositionalEdits does exactly this for language-server edits, which
// carry no ordering guarantee), and edit.Apply's shift accumulation only
// produces correct effective ranges when edits are walked in position
// order regardless of how they were added.
type orderedEdit struct {
	start rope.CharIndex
	end   rope.CharIndex
	new   string
}

func flattenOrderedEdits(txn edit.Transaction) []orderedEdit {
	type group struct {
		edits []edit.Edit
		min   rope.CharIndex
	}
	var groups []group
	for _, g := range txn.Groups {
		var edits []edit.Edit
		for _, a := range g.Actions {
			if a.Kind == edit.ActionEdit {
				edits = append(edits, a.Edit)
			}
		}
		if len(edits) == 0 {
			continue
		}
		min := edits[0].Range.Start
		for _, e := range edits[1:] {
			if e.Range.Start < min {
				min = e.Range.Start
			}
		}
		sort.SliceStable(edits, func(i, j int) bool { return edits[i].Range.Start < edits[j].Range.Start })
		groups = append(groups, group{edits: edits, min: min})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].min < groups[j].min })

	var out []orderedEdit
	for _, g := range groups {
		for _, e := range g.edits {
			out = append(out, orderedEdit{start: e.Range.Start, end: e.Range.End, new: e.New})
		}
	}
	return out
}

// replayEdits re-derives, edit by edit, the exact sequence of
// (pre-rope, post-rope, effective-range) steps edit.Apply folded into
// one final Rope — the unit both overlay shifting and incremental
// reparsing need per spec §4.2's "Highlight spans refresh whenever the
// tree is rebuilt". Mirrors edit.Apply's own running-shift arithmetic
// rather than depending on it, since Apply reports only the final rope
// and the collected Select ranges, not each intermediate step.
func (b *Buffer) replayEdits(ctx context.Context, oldRope rope.Rope, txn edit.Transaction) {
	ordered := flattenOrderedEdits(txn)
	if len(ordered) == 0 {
		return
	}

	canReparse := !b.frozen && !b.lang.IsZero() && b.tree != nil

	step := oldRope
	var shift int64
	for _, e := range ordered {
		effStart := shiftIndex(e.start, shift)
		effEnd := shiftIndex(e.end, shift)

		next := step.Replace(effStart, effEnd, e.new)

		b.overlays.ApplyEdit(step, next, overlay.Edit{Start: effStart, End: effEnd, NewText: e.new})

		if canReparse {
			se, ok := buildSyntaxEdit(step, next, effStart, effEnd, e.new)
			if !ok {
				canReparse = false
			} else if reparsed, err := b.tree.Reparse(ctx, se, []byte(next.String())); err == nil {
				b.tree = reparsed
			} else {
				canReparse = false
			}
		}

		oldLen := int64(e.end) - int64(e.start)
		shift += int64(len([]rune(e.new))) - oldLen
		step = next
	}

	// Frozen, no grammar set, or an incremental reparse failed partway:
	// leave the tree and highlight overlay exactly as they were rather
	// than recompute them against a rope state they weren't reparsed
	// against.
	if canReparse && b.tree != nil {
		b.overlays.Highlights.Replace(overlay.ComputeFromTree(step, b.tree.Root()))
	}
}

func shiftIndex(idx rope.CharIndex, shift int64) rope.CharIndex {
	shifted := int64(idx) + shift
	if shifted < 0 {
		shifted = 0
	}
	return rope.CharIndex(shifted)
}

// buildSyntaxEdit translates a single char-coordinate edit into the
// byte/point-based syntax.Edit tree-sitter's incremental reparse needs.
// Row/Column are resolved against preRope (pre-edit) for the start and
// old-end points and postRope (post-edit) for the new-end point, since
// tree-sitter points are byte offsets within a line, not rope.Point's
// char-based column — conflating the two would silently corrupt
// incremental reparse.
func buildSyntaxEdit(preRope, postRope rope.Rope, start, end rope.CharIndex, newText string) (syntax.Edit, bool) {
	startByte, ok1 := preRope.CharToByte(start)
	oldEndByte, ok2 := preRope.CharToByte(end)
	if !ok1 || !ok2 {
		return syntax.Edit{}, false
	}
	newEndByte := startByte + rope.ByteOffset(len(newText))

	startRow, startCol := bytePoint(preRope, startByte)
	oldEndRow, oldEndCol := bytePoint(preRope, oldEndByte)
	newEndRow, newEndCol := bytePoint(postRope, newEndByte)

	return syntax.Edit{
		StartByte:    uint32(startByte),
		OldEndByte:   uint32(oldEndByte),
		NewEndByte:   uint32(newEndByte),
		StartRow:     startRow,
		StartColumn:  startCol,
		OldEndRow:    oldEndRow,
		OldEndColumn: oldEndCol,
		NewEndRow:    newEndRow,
		NewEndColumn: newEndCol,
	}, true
}

// bytePoint resolves a byte offset into tree-sitter's (row, byte
// column within row) convention, distinct from rope.Point whose Column
// is char-based.
func bytePoint(r rope.Rope, b rope.ByteOffset) (row, col uint32) {
	charIdx, _ := r.ByteToChar(b)
	line := r.CharToLine(charIdx)
	lineStartByte := r.LineStartOffset(line)
	return line, uint32(b - lineStartByte)
}
