package overlay

import (
	"sort"

	"github.com/modaltree/structon/internal/position"
	"github.com/modaltree/structon/internal/rope"
)

// Severity mirrors the LSP severity tiers a language server reports.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a single language-server finding anchored by (line,column)
// rather than CharIndex, so it survives edits elsewhere in the document
// without drifting: set_diagnostics stores Position, and every subsequent
// edit re-derives the Position from the shifted char range against the
// buffer's current rope.
type Diagnostic struct {
	Range    position.PositionRange
	Severity Severity
	Message  string
	Source   string
}

// Diagnostics holds a buffer's diagnostic overlay, sorted by start
// position.
type Diagnostics struct {
	items []Diagnostic
}

// Set replaces all diagnostics, sorting by start position per spec §4.2
// set_diagnostics.
func (d *Diagnostics) Set(items []Diagnostic) {
	sorted := make([]Diagnostic, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Range.Start, sorted[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	d.items = sorted
}

// All returns every diagnostic, in sorted order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// HasErrorAt reports whether any error-severity diagnostic overlaps the
// given char range, resolved against r.
func (d *Diagnostics) HasErrorAt(r rope.Rope, rg CharRange) bool {
	for _, diag := range d.items {
		if diag.Severity != SeverityError {
			continue
		}
		cr, err := diag.Range.ToCharRange(r)
		if err != nil {
			continue
		}
		if cr.Start < rg.End && rg.Start < cr.End {
			return true
		}
	}
	return false
}

// ApplyEdit re-anchors every diagnostic across a single edit: each
// diagnostic's stored Position is resolved to a char range against the
// pre-edit rope, shifted through the edit, and re-expressed as a Position
// against the post-edit rope. A diagnostic whose range collapses entirely
// inside a deleted span survives at the deletion point rather than being
// dropped — language servers are expected to invalidate it on their own
// next pass.
func (d *Diagnostics) ApplyEdit(oldRope, newRope rope.Rope, edit Edit) {
	for i, diag := range d.items {
		cr, err := diag.Range.ToCharRange(oldRope)
		if err != nil {
			continue
		}
		shifted := TransformRange(CharRange{Start: cr.Start, End: cr.End}, edit)
		pr, err := position.FromCharRange(newRope, position.Range{Start: shifted.Start, End: shifted.End})
		if err != nil {
			continue
		}
		d.items[i].Range = pr
	}
}
