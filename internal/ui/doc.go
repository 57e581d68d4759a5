// Package ui is the Bubble Tea front end for the modal registry.
//
// Core abstractions:
//   - View: a unit with its own update and view (Elm-style)
//   - Dialog: a modal View that is also a modal.Handle
//   - ModalHost: opens, closes and stacks dialogs through a modal.Registry
//   - KeybindRegistry / KeyHandler: leader-key (SPC) command bindings
//   - AppModel: root model wiring the above together
package ui
