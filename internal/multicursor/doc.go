// Package multicursor composes internal/selection, internal/selmode, and
// internal/edit into the multi-cursor operations of spec §4.9: materializing
// every element of a mode's iterator as a selection ("add to all"),
// discarding secondaries ("keep primary only"), and folding each cursor's
// independently-built ActionGroup into one Transaction so a multi-cursor
// edit applies, shifts, and re-selects as a single atomic step.
package multicursor
