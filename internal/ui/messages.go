package ui

// ShowDialogMsg opens (or raises) the dialog with the given id.
type ShowDialogMsg struct {
	ID string
}

// CloseDialogMsg hides the dialog with the given id; it stays registered.
type CloseDialogMsg struct {
	ID string
}

// RemoveDialogMsg unregisters the topmost dialog (SPC k).
type RemoveDialogMsg struct{}

// NewDialogMsg registers and opens an anonymous prompt dialog (SPC n).
type NewDialogMsg struct{}

// CycleDialogsMsg raises the lowest open dialog to the top (tab).
type CycleDialogsMsg struct{}

// DialogResultMsg carries the value a dialog produced; it is stored as the dialog's payload.
type DialogResultMsg struct {
	ID    string
	Value any
}

// DataCommittedMsg reports that queued payload writes were applied.
type DataCommittedMsg struct {
	Count int
}

// ResetDataMsg clears every payload (SPC r).
type ResetDataMsg struct{}

// ToggleInspectorMsg shows or hides the payload inspector (SPC i).
type ToggleInspectorMsg struct{}
