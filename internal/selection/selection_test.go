package selection

import "testing"

func TestExtendedRangeIsConvexHull(t *testing.T) {
	sel := New(Range{Start: 10, End: 15}).EnterVisualMode()
	sel = sel.WithRange(Range{Start: 3, End: 8})

	got := sel.ExtendedRange()
	want := Range{Start: 3, End: 15}
	if got != want {
		t.Errorf("ExtendedRange() = %+v, want %+v", got, want)
	}
}

func TestSwapAnchorInvertsDirection(t *testing.T) {
	sel := New(Range{Start: 3, End: 8}).EnterVisualMode()
	sel = sel.WithRange(Range{Start: 10, End: 15})

	swapped := sel.SwapAnchor()
	if swapped.Range != (Range{Start: 3, End: 8}) {
		t.Errorf("after swap, Range = %+v, want the old anchor", swapped.Range)
	}
	if swapped.InitialRange == nil || *swapped.InitialRange != (Range{Start: 10, End: 15}) {
		t.Errorf("after swap, InitialRange = %+v, want the old range", swapped.InitialRange)
	}
}

func TestSetNormalizeDropsDuplicateOfPrimary(t *testing.T) {
	primary := New(Range{Start: 0, End: 5})
	set := NewSet(primary, Mode{Kind: Character})
	set = set.AddSecondary(New(Range{Start: 0, End: 5}))
	set = set.AddSecondary(New(Range{Start: 10, End: 12}))

	if len(set.Secondary) != 1 {
		t.Fatalf("expected duplicate-of-primary to be dropped, got %d secondaries", len(set.Secondary))
	}
	if set.Secondary[0].Range != (Range{Start: 10, End: 12}) {
		t.Errorf("unexpected surviving secondary: %+v", set.Secondary[0])
	}
}

func TestSetClampRestrictsToDocumentLength(t *testing.T) {
	set := NewSet(New(Range{Start: 5, End: 20}), Mode{Kind: Character})
	set = set.Clamp(10)
	if set.Primary.Range != (Range{Start: 5, End: 10}) {
		t.Errorf("Clamp(10) = %+v, want {5,10}", set.Primary.Range)
	}
}
