// Package workspace holds the in-memory working copy of one project and
// the diff/apply/undo state machine over it.
//
// State machine: Idle, or Reviewing with exactly one pending DiffState,
// plus an orthogonal single-slot UndoRecord. Review is re-entrant and
// replaces the pending diff. Accept commits and navigates to the target
// file. Apply bypasses review and records the undo slot. Undo restores
// the most recent Apply exactly once.
//
// The path-keyed content map is the source of truth; the file tree is
// rebuilt from the path set on every structural mutation, and rename
// moves the map key, tree node, active selection, and any pending diff
// or undo path together.
package workspace
