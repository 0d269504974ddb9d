package multicursor

import (
	"github.com/modaltree/structon/internal/edit"
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/selection"
)

// PerCursor builds one selection's ActionGroup for a multi-cursor edit
// command. idx indexes into set.All() (0 is always the primary). The
// group's Select actions are expected to carry exactly one entry: the
// cursor's resulting selection, in the group's own pre-group coordinate
// system — BuildTransaction relies on this to report ApplyToSet's result
// selections back in set.All() order.
type PerCursor func(idx int, sel selection.Selection) edit.ActionGroup

// BuildTransaction folds every cursor's independently-built ActionGroup
// into one Transaction (spec §4.9: "each cursor's independent ActionGroup
// is composed into one transaction").
func BuildTransaction(set selection.Set, perCursor PerCursor) edit.Transaction {
	all := set.All()
	groups := make([]edit.ActionGroup, len(all))
	for i, sel := range all {
		groups[i] = perCursor(i, sel)
	}
	return edit.Transaction{Groups: groups}
}

// ApplyToSet runs perCursor over every selection in set, applies the
// resulting Transaction via internal/edit, and rebuilds the SelectionSet
// from the shifted Select ranges edit.Apply reports — the primary/
// secondary split is preserved since set.All() always orders primary
// first. A cursor whose group contributed no Select action keeps its
// prior range, clamped to the new document length.
func ApplyToSet(r rope.Rope, set selection.Set, perCursor PerCursor) (rope.Rope, selection.Set, error) {
	txn := BuildTransaction(set, perCursor)
	result, err := edit.Apply(r, txn)
	if err != nil {
		return r, set, err
	}

	prior := set.All()
	updated := make([]selection.Selection, len(prior))
	for i, sel := range prior {
		ranges := result.Selections[i]
		if len(ranges) == 0 {
			updated[i] = sel
			continue
		}
		updated[i] = selection.New(ranges[0])
	}

	newSet := set.WithAll(updated).Clamp(result.Rope.CharLen())
	newSet.Mode = set.Mode
	newSet.Filters = set.Filters
	return result.Rope, newSet, nil
}
