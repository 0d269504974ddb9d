// Package selmode implements the uniform SelectionMode capability set
// (spec §4.3): for every mode variant, an ordered candidate sequence
// (Iterator), a Current lookup, tree-only Parent/FirstChild, and jump
// labelling, plus the movement-resolution function (Next/Previous/First/
// Last/Index/Up/Down/Parent/FirstChild/Jump) that turns a mode's
// candidates into the next selection.
//
// Each mode's candidate sequence is modeled as an eagerly computed,
// forward-ordered, non-overlapping (except where overlap is intrinsic,
// e.g. nested syntax nodes) slice of byte ranges rather than a lazy
// stream — simpler than the teacher rope's stack-based ChunkIterator, and
// sufficient at the document sizes this core is exercised against.
package selmode
