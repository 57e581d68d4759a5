package modal

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no entry matches the requested id.
	ErrNotFound = errors.New("modal not found")
	// ErrEmptyStack is returned by HighestLayer when no dialog is visible.
	ErrEmptyStack = errors.New("no open modals")
)

// Handle is the capability the registry needs from a dialog.
// The UI layer owns the handle and flips visibility as dialogs open and close.
type Handle interface {
	Visible() bool
	LayerPosition() int
	SetLayerPosition(int)
}

// Entry is one registered dialog.
type Entry struct {
	ID     string
	Handle Handle
}

// DataEntry is payload attached to a dialog id.
type DataEntry struct {
	ID   string
	Data any
}

// NewID returns a random id for dialogs that don't carry a name of their own.
func NewID() string {
	return "modal-" + uuid.NewString()[:8]
}
