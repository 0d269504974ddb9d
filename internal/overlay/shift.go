package overlay

import "github.com/modaltree/structon/internal/rope"

// Edit describes a single applied text change in char coordinates, the
// unit overlay ranges are re-anchored against.
type Edit struct {
	Start   rope.CharIndex
	End     rope.CharIndex
	NewText string
}

func (e Edit) delta() int64 {
	oldLen := int64(e.End) - int64(e.Start)
	return int64(len([]rune(e.NewText))) - oldLen
}

// TransformOffset shifts a single char index through an edit: unaffected
// if entirely before the edit's start, moved to the edit's new end if it
// falls inside the edited span, otherwise shifted by the edit's length
// delta. Ported from the cursor-offset transform used for multi-cursor
// edits, applied here to overlay endpoints instead of cursors.
func TransformOffset(offset rope.CharIndex, edit Edit) rope.CharIndex {
	switch {
	case offset <= edit.Start:
		return offset
	case offset >= edit.End:
		shifted := int64(offset) + edit.delta()
		if shifted < int64(edit.Start) {
			shifted = int64(edit.Start)
		}
		return rope.CharIndex(shifted)
	default:
		newEnd := edit.Start + rope.CharIndex(len([]rune(edit.NewText)))
		return newEnd
	}
}

// TransformRange shifts both endpoints of a range through an edit,
// collapsing a range that the edit fully swallows to the edit's
// insertion point rather than letting Start overtake End.
func TransformRange(rg CharRange, edit Edit) CharRange {
	start := TransformOffset(rg.Start, edit)
	end := TransformOffset(rg.End, edit)
	if start > end {
		start = end
	}
	return CharRange{Start: start, End: end}
}

// CharRange is a half-open char-index range, used internally by overlays
// before they are re-expressed in Position terms.
type CharRange struct {
	Start rope.CharIndex
	End   rope.CharIndex
}
