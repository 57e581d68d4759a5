// Package modal tracks dialog instances for a TUI and computes their stacking order.
//
// Core types:
//   - Handle: the UI-owned object the registry references (visibility + layer position)
//   - Entry: an (id, handle) pair in registration order
//   - DataEntry: an (id, payload) pair attached to a dialog
//   - Registry: the store of both sequences, safe for concurrent use
//
// The registry never creates or destroys handles. Payload entries may outlive
// the dialog they were attached to.
package modal
