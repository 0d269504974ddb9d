// Package edit implements the edit-transaction pipeline (spec §4.5):
// grouping a cursor's Edit/Select actions into an ActionGroup, and
// applying a transaction's groups against a rope with the running-shift
// algorithm ported from the teacher's cursor offset transforms.
package edit
