// Package ops implements the structural transforms and clipboard
// operations that sit on top of internal/selmode's movement algebra and
// internal/edit's transaction pipeline: Exchange/Raise (spec §4.6) and
// Kill/Change/Cut/Paste (spec §4.7).
package ops
