package command

import (
	"context"
	"errors"
	"regexp"

	"github.com/modaltree/structon/internal/buffer"
	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/multicursor"
	"github.com/modaltree/structon/internal/ops"
	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
	"github.com/modaltree/structon/internal/selmode"
	"github.com/modaltree/structon/internal/syntax"
)

// ErrUnknownCommand is returned for a Kind outside the closed set this
// package defines.
var ErrUnknownCommand = errors.New("command: unknown kind")

// Dispatch routes cmd to its handler, mutating s and returning the
// outgoing dispatches spec §6 describes. A Command that is a structural
// no-op (e.g. Move against a mode with no candidates) returns a nil
// Outgoing slice and a nil error rather than failing.
func (s *State) Dispatch(ctx context.Context, cmd Command) ([]Outgoing, error) {
	switch cmd.Kind {
	case UpdateBuffer:
		s.Buffer.Update(ctx, cmd.Text)
		s.Selection = s.Selection.Clamp(s.Buffer.Rope().CharLen())
		return s.changed(), nil

	case ApplyTransaction:
		newSet, err := s.Buffer.ApplyEditTransaction(ctx, cmd.Transaction, s.Selection)
		if err != nil {
			return nil, err
		}
		s.Selection = newSet
		return s.changed(), nil

	case Undo:
		newSet, err := s.Buffer.Undo(ctx, s.Selection)
		if err != nil {
			return nil, err
		}
		s.Selection = newSet
		return s.changed(), nil

	case Redo:
		newSet, err := s.Buffer.Redo(ctx, s.Selection)
		if err != nil {
			return nil, err
		}
		s.Selection = newSet
		return s.changed(), nil

	case SaveBuffer:
		return s.dispatchSave(ctx, cmd)

	case SetDiagnostics:
		s.Buffer.SetDiagnostics(cmd.Diagnostics)
		return nil, nil

	case Move:
		return s.dispatchMove(cmd)

	case SetSelectionMode:
		s.Selection = multicursor.SetMode(s.Selection, cmd.Mode)
		return nil, nil

	case InstallFilter:
		if cmd.Filter.Mechanism == selection.MechanismRegex {
			if _, err := regexp.Compile(cmd.Filter.Pattern); err != nil {
				return nil, buffer.ErrFilterRegexInvalid
			}
		}
		s.Selection.Filters = append(s.Selection.Filters, cmd.Filter)
		return nil, nil

	case ClearFilters:
		s.Selection.Filters = nil
		return nil, nil

	case JumpTo:
		resolved := selmode.Jump(s.Buffer.Rope(), cmd.JumpCandidate)
		if !resolved.Found {
			return nil, nil
		}
		s.Selection.Primary = s.Selection.Primary.WithRange(resolved.Range)
		return nil, nil

	case Exchange:
		return s.dispatchExchange(ctx)

	case Raise:
		return s.dispatchRaise(ctx)

	case Kill:
		return s.dispatchKill(ctx, cmd)

	case Change:
		return s.applyPerCursor(ctx, func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action) {
			cr := ops.Change(r, sel.Range)
			return edit.Action{Kind: edit.ActionEdit, Edit: edit.Edit{Range: sel.Range, New: ""}},
				edit.Action{Kind: edit.ActionSelect, Select: cr.Selected}
		})

	case Cut:
		return s.dispatchCut(ctx)

	case Paste:
		return s.dispatchPaste(ctx, cmd)

	case ReplaceWithClipboard:
		return s.applyPerCursor(ctx, func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action) {
			_, selected := ops.ReplaceWithClipboard(r, sel.Range, s.Clipboard)
			return edit.Action{Kind: edit.ActionEdit, Edit: edit.Edit{Range: sel.Range, New: s.Clipboard.Get()}},
				edit.Action{Kind: edit.ActionSelect, Select: selected}
		})

	case ReplaceCut:
		return s.applyPerCursor(ctx, func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action) {
			_, selected, _ := ops.ReplaceCut(r, sel.Range, s.Clipboard)
			return edit.Action{Kind: edit.ActionEdit, Edit: edit.Edit{Range: sel.Range, New: ""}},
				edit.Action{Kind: edit.ActionSelect, Select: selected}
		})

	case AddToAll:
		s.Selection = multicursor.AddToAll(s.Selection, s.params())
		return nil, nil

	case AddCursor:
		s.Selection = multicursor.AddCursor(s.Selection, s.params(), cmd.Direction)
		return nil, nil

	case KeepPrimaryOnly:
		s.Selection = multicursor.KeepPrimaryOnly(s.Selection)
		return nil, nil

	case EnterVisualMode:
		s.Selection = multicursor.EnterVisualMode(s.Selection)
		return nil, nil

	case ExitVisualMode:
		s.Selection = multicursor.ExitVisualMode(s.Selection)
		return nil, nil

	case SetRectangle:
		s.Viewport.Rect = cmd.Rect
		return nil, nil

	case Scroll:
		s.Viewport.ScrollLine = cmd.ScrollLine
		s.Viewport.ScrollColumn = cmd.ScrollColumn
		return nil, nil

	case AlignTop, AlignCentre, AlignBottom:
		s.alignViewport(cmd.Kind)
		return nil, nil

	default:
		return nil, ErrUnknownCommand
	}
}

func (s *State) changed() []Outgoing {
	return []Outgoing{{Kind: DocumentDidChange, Path: s.Buffer.Path()}}
}

func (s *State) dispatchSave(ctx context.Context, cmd Command) ([]Outgoing, error) {
	newSet, err := s.Buffer.Save(ctx, s.Selection, cmd.Formatter)
	if err != nil {
		if errors.Is(err, buffer.ErrNoPath) {
			return []Outgoing{{Kind: ShowInfo, Message: "no path set"}}, err
		}
		if errors.Is(err, buffer.ErrFormatterFailed) {
			s.Selection = newSet
			return []Outgoing{
				{Kind: ShowInfo, Message: "formatter failed, saved unformatted"},
				{Kind: DocumentDidSave, Path: s.Buffer.Path()},
			}, nil
		}
		return nil, err
	}
	s.Selection = newSet
	return []Outgoing{{Kind: DocumentDidSave, Path: s.Buffer.Path()}}, nil
}

// dispatchMove resolves one movement step for every selection in the set
// (spec §4.9: mode changes and movement apply uniformly across primary
// and secondaries), leaving a selection untouched when the direction
// resolves to nothing (buffer boundary, empty mode, no tree).
func (s *State) dispatchMove(cmd Command) ([]Outgoing, error) {
	p := s.params()
	candidates := selmode.Candidates(p, s.Selection.Filters, nil)
	s.Selection = s.Selection.Map(func(sel selection.Selection) selection.Selection {
		rg, found := s.resolveMove(p, candidates, sel.Range, cmd.Direction, cmd.Index)
		if !found {
			return sel
		}
		return sel.WithRange(rg)
	})
	return nil, nil
}

// resolveMove dispatches a single Direction to the selmode entry point
// that handles it: Up/Down need the mode (line-structured vs fallback),
// Parent/FirstChild need the current syntax node rather than a candidate
// list, and everything else goes through the uniform Resolve.
func (s *State) resolveMove(p selmode.Params, candidates []selmode.Candidate, current position.Range, dir selmode.Direction, index int) (position.Range, bool) {
	switch dir {
	case selmode.Up, selmode.Down:
		resolved := selmode.ResolveUpDown(p.Rope, candidates, p.Mode, current, dir == selmode.Down)
		return resolved.Range, resolved.Found
	case selmode.Parent:
		node, err := s.Buffer.GetCurrentNode(current)
		if err != nil {
			return position.Range{}, false
		}
		resolved := selmode.ResolveParent(node)
		return resolved.Range, resolved.Found
	case selmode.FirstChild:
		node, err := s.Buffer.GetCurrentNode(current)
		if err != nil {
			return position.Range{}, false
		}
		resolved := selmode.ResolveFirstChild(node)
		return resolved.Range, resolved.Found
	default:
		resolved := selmode.Resolve(p.Rope, candidates, current, dir, index)
		return resolved.Range, resolved.Found
	}
}

// reparseFn builds the disposable Reparse Exchange/Raise use to validate
// a tentative structural swap. The parse is intentionally never closed:
// the ops package inspects the returned Node after this function
// returns, so closing here would free the native tree out from under it.
// Each Exchange/Raise dispatch parses at most a handful of candidates
// while searching for a valid swap, so the leak is small and bounded by
// one user-initiated command, not a steady-state cost.
//
// The returned error probe is scoped to a byte range rather than the
// whole tree (ops.Reparse's doc comment explains why): an unparseable
// reparse reports every range as erroring, so a swap against
// unparseable text is always rejected.
func (s *State) reparseFn() ops.Reparse {
	lang := s.Buffer.Language()
	return func(r rope.Rope) (syntax.Node, func(start, end uint32) bool) {
		if lang.IsZero() {
			return syntax.Node{}, func(uint32, uint32) bool { return false }
		}
		tree, err := syntax.Parse(context.Background(), lang, []byte(r.String()))
		if err != nil {
			return syntax.Node{}, func(uint32, uint32) bool { return true }
		}
		return tree.Root(), tree.HasErrorInRange
	}
}

func nextCandidateFn(p selmode.Params, candidates []selmode.Candidate) ops.NextCandidate {
	return func(after position.Range) (ops.Candidate, bool) {
		resolved := selmode.Resolve(p.Rope, candidates, after, selmode.Next, 0)
		if !resolved.Found {
			return ops.Candidate{}, false
		}
		startByte, ok1 := p.Rope.CharToByte(resolved.Range.Start)
		endByte, ok2 := p.Rope.CharToByte(resolved.Range.End)
		if !ok1 || !ok2 {
			return ops.Candidate{}, false
		}
		return ops.Candidate{Range: syntax.ByteRange{Start: uint32(startByte), End: uint32(endByte)}, Node: resolved.Node}, true
	}
}

// dispatchExchange and dispatchRaise apply against the primary selection
// only: a structural swap can move text anywhere in the document, not
// just within the transacted range, so the resulting whole-document edit
// cannot also carry a meaningful shifted position for secondary cursors.
// Secondaries are dropped rather than left stale (spec §4.6 frames
// Exchange/Raise in terms of a single current range; this is this
// package's Open Question decision for how that interacts with
// multi-cursor state).
func (s *State) dispatchExchange(ctx context.Context) ([]Outgoing, error) {
	p := s.params()
	candidates := selmode.Candidates(p, s.Selection.Filters, nil)
	next := nextCandidateFn(p, candidates)
	result, ok := ops.Exchange(s.Buffer.Rope(), s.Selection.Primary.Range, s.reparseFn(), next)
	if !ok {
		return nil, nil
	}
	return s.commitWholeDocument(ctx, result.Rope, result.Selected)
}

// dispatchRaise resolves the immediate parent as the first Raise
// candidate, then lets ops.Raise retry against successively outer
// ancestors (nextAncestorFn) when a candidate breaks structure.
func (s *State) dispatchRaise(ctx context.Context) ([]Outgoing, error) {
	current := s.Selection.Primary.Range
	node, err := s.Buffer.GetCurrentNode(current)
	if err != nil {
		return nil, nil
	}
	parent := selmode.ResolveParent(node)
	if !parent.Found {
		return nil, nil
	}
	r := s.Buffer.Rope()
	target, ok := candidateFromResolved(r, parent)
	if !ok {
		return nil, nil
	}
	result, ok := ops.Raise(r, current, target, nextAncestorFn(r), s.reparseFn())
	if !ok {
		return nil, nil
	}
	return s.commitWholeDocument(ctx, result.Rope, result.Selected)
}

// candidateFromResolved converts a selmode.Resolved's char-based range
// into the byte-based ops.Candidate Exchange/Raise operate on.
func candidateFromResolved(r rope.Rope, resolved selmode.Resolved) (ops.Candidate, bool) {
	startByte, ok1 := r.CharToByte(resolved.Range.Start)
	endByte, ok2 := r.CharToByte(resolved.Range.End)
	if !ok1 || !ok2 {
		return ops.Candidate{}, false
	}
	return ops.Candidate{Range: syntax.ByteRange{Start: uint32(startByte), End: uint32(endByte)}, Node: resolved.Node}, true
}

// nextAncestorFn walks from one Raise candidate to its own parent node,
// the ancestor-chain analogue of Exchange's sibling-movement retry.
func nextAncestorFn(r rope.Rope) func(ops.Candidate) (ops.Candidate, bool) {
	return func(target ops.Candidate) (ops.Candidate, bool) {
		if target.Node.IsNull() {
			return ops.Candidate{}, false
		}
		resolved := selmode.ResolveParent(target.Node)
		if !resolved.Found {
			return ops.Candidate{}, false
		}
		return candidateFromResolved(r, resolved)
	}
}

// commitWholeDocument applies an Exchange/Raise result as a single
// whole-document edit against the primary selection alone, intentionally
// dropping secondaries (see dispatchExchange).
func (s *State) commitWholeDocument(ctx context.Context, newRope rope.Rope, selected position.Range) ([]Outgoing, error) {
	oldLen := s.Buffer.Rope().CharLen()
	txn := edit.Transaction{Groups: []edit.ActionGroup{{Actions: []edit.Action{
		{Kind: edit.ActionEdit, Edit: edit.Edit{Range: position.Range{Start: 0, End: oldLen}, New: newRope.String()}},
		{Kind: edit.ActionSelect, Select: selected},
	}}}}
	single := selection.NewSet(s.Selection.Primary, s.Selection.Mode)
	single.Filters = s.Selection.Filters

	newSet, err := s.Buffer.ApplyEditTransaction(ctx, txn, single)
	if err != nil {
		return nil, err
	}
	s.Selection = newSet
	return s.changed(), nil
}

// dispatchKill builds next/previous closures once against the
// pre-transaction document and applies ops.Kill independently per
// cursor — each call only reads/writes around its own current range, so
// running every cursor against the same original rope (rather than a
// chained, sequentially-shifted one) is safe; internal/edit's own
// leftmost-sorted shifting reconciles the per-cursor ActionGroups into
// one transaction.
func (s *State) dispatchKill(ctx context.Context, cmd Command) ([]Outgoing, error) {
	p := s.params()
	candidates := selmode.Candidates(p, s.Selection.Filters, nil)
	isContiguous := s.Selection.Mode.IsContiguous()
	singleCursor := !s.Selection.IsMulti()

	next := func(after position.Range) (position.Range, bool) {
		resolved := selmode.Resolve(p.Rope, candidates, after, selmode.Next, 0)
		return resolved.Range, resolved.Found
	}
	previous := func(before position.Range) (position.Range, bool) {
		resolved := selmode.Resolve(p.Rope, candidates, before, selmode.Previous, 0)
		return resolved.Range, resolved.Found
	}

	return s.applyPerCursor(ctx, func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action) {
		kr := ops.Kill(r, sel.Range, isContiguous, next, previous, cmd.KillCut && singleCursor, s.Clipboard)
		deletedLen := r.CharLen() - kr.Rope.CharLen()
		editAction := edit.Action{Kind: edit.ActionEdit, Edit: edit.Edit{
			Range: position.Range{Start: sel.Range.Start, End: sel.Range.Start + deletedLen},
			New:   "",
		}}
		return editAction, edit.Action{Kind: edit.ActionSelect, Select: kr.Selected}
	})
}

// dispatchCut applies ops.Cut per cursor like dispatchKill/applyPerCursor,
// but additionally stamps each resulting selection's CopiedText with what
// that cursor removed (spec §4.7 Paste fallback) — something
// applyPerCursor's generic ActionGroup shape has no room to carry.
func (s *State) dispatchCut(ctx context.Context) ([]Outgoing, error) {
	r := s.Buffer.Rope()
	all := s.Selection.All()
	singleCursor := !s.Selection.IsMulti()

	groups := make([]edit.ActionGroup, len(all))
	removed := make([]string, len(all))
	for i, sel := range all {
		_, text := ops.Cut(r, sel.Range, singleCursor, s.Clipboard)
		removed[i] = text
		groups[i] = edit.ActionGroup{Actions: []edit.Action{
			{Kind: edit.ActionEdit, Edit: edit.Edit{Range: sel.Range, New: ""}},
			{Kind: edit.ActionSelect, Select: position.Range{Start: sel.Range.Start, End: sel.Range.Start}},
		}}
	}

	newSet, err := s.Buffer.ApplyEditTransaction(ctx, edit.Transaction{Groups: groups}, s.Selection)
	if err != nil {
		return nil, err
	}

	updated := newSet.All()
	for i := range updated {
		if i < len(removed) {
			copied := rope.FromString(removed[i])
			updated[i] = updated[i].WithCopiedText(copied)
		}
	}
	s.Selection = newSet.WithAll(updated)
	return s.changed(), nil
}

func (s *State) dispatchPaste(ctx context.Context, cmd Command) ([]Outgoing, error) {
	p := s.params()
	candidates := selmode.Candidates(p, s.Selection.Filters, nil)
	isContiguous := s.Selection.Mode.IsContiguous()
	neighborDir := selmode.Next
	if cmd.PasteDirection == ops.PasteBefore {
		neighborDir = selmode.Previous
	}
	neighbor := func(rg position.Range) (position.Range, bool) {
		resolved := selmode.Resolve(p.Rope, candidates, rg, neighborDir, 0)
		return resolved.Range, resolved.Found
	}

	return s.applyPerCursor(ctx, func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action) {
		copied := ""
		if sel.CopiedText != nil {
			copied = sel.CopiedText.String()
		}
		out, selected := ops.Paste(r, sel.Range, cmd.PasteDirection, copied, s.Clipboard, isContiguous, neighbor)
		insertAt := sel.Range.Start
		if cmd.PasteDirection == ops.PasteAfter {
			insertAt = sel.Range.End
		}
		editAction := edit.Action{Kind: edit.ActionEdit, Edit: edit.Edit{
			Range: position.Range{Start: insertAt, End: insertAt},
			New:   out.Slice(selected.Start, selected.End),
		}}
		return editAction, edit.Action{Kind: edit.ActionSelect, Select: selected}
	})
}

// perCursorBuilder computes one cursor's edit (in this cursor's own
// pre-transaction coordinates) and the local Select range to report it
// under, letting internal/edit's leftmost-sorted shifting fold every
// cursor's independent ActionGroup into one correctly-shifted result —
// the same convention internal/multicursor.PerCursor documents.
type perCursorBuilder func(r rope.Rope, sel selection.Selection) (edit.Action, edit.Action)

func (s *State) applyPerCursor(ctx context.Context, build perCursorBuilder) ([]Outgoing, error) {
	r := s.Buffer.Rope()
	all := s.Selection.All()
	groups := make([]edit.ActionGroup, len(all))
	for i, sel := range all {
		editAction, selectAction := build(r, sel)
		groups[i] = edit.ActionGroup{Actions: []edit.Action{editAction, selectAction}}
	}

	newSet, err := s.Buffer.ApplyEditTransaction(ctx, edit.Transaction{Groups: groups}, s.Selection)
	if err != nil {
		return nil, err
	}
	s.Selection = newSet
	return s.changed(), nil
}

// alignViewport repositions ScrollLine so the primary selection's line
// sits at the top, vertical centre, or bottom of the viewport rectangle.
func (s *State) alignViewport(kind Kind) {
	pos, err := position.CharToPosition(s.Buffer.Rope(), s.Selection.Primary.Range.Start)
	if err != nil {
		return
	}
	line := pos.Line
	switch kind {
	case AlignTop:
		s.Viewport.ScrollLine = line
	case AlignCentre:
		half := s.Viewport.Rect.Height / 2
		if line > half {
			s.Viewport.ScrollLine = line - half
		} else {
			s.Viewport.ScrollLine = 0
		}
	case AlignBottom:
		if s.Viewport.Rect.Height > 0 && line+1 > s.Viewport.Rect.Height {
			s.Viewport.ScrollLine = line + 1 - s.Viewport.Rect.Height
		} else {
			s.Viewport.ScrollLine = 0
		}
	}
}
