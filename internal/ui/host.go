package ui

import (
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"modalstack/internal/modal"
)

// ModalHost opens, closes and stacks dialogs through a modal.Registry.
// The topmost open dialog (highest layer position) receives input first.
type ModalHost struct {
	Registry  *modal.Registry
	BaseLayer int // given to a dialog opened when nothing else is open
}

// NewModalHost creates a host over reg.
func NewModalHost(reg *modal.Registry, baseLayer int) *ModalHost {
	return &ModalHost{Registry: reg, BaseLayer: baseLayer}
}

// Add registers d. With overwrite, a dialog already registered under d.ID is replaced in place.
func (h *ModalHost) Add(d *Dialog, overwrite bool) {
	h.Registry.Register(modal.Entry{ID: d.ID, Handle: d}, overwrite)
}

// Dialog returns the dialog registered under id.
func (h *ModalHost) Dialog(id string) (*Dialog, error) {
	handle, err := h.Registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	d, ok := handle.(*Dialog)
	if !ok {
		return nil, fmt.Errorf("modal %q is %T, not a dialog", id, handle)
	}
	return d, nil
}

// Show opens id above every other open dialog. Showing the current top is a no-op.
func (h *ModalHost) Show(id string) error {
	d, err := h.Dialog(id)
	if err != nil {
		return err
	}
	if top, ok := h.Top(); ok && top == d {
		return nil
	}
	d.SetLayerPosition(h.nextLayer())
	d.setVisible(true)
	return nil
}

// Hide closes id. The dialog stays registered and keeps its payload.
func (h *ModalHost) Hide(id string) error {
	d, err := h.Dialog(id)
	if err != nil {
		return err
	}
	d.setVisible(false)
	return nil
}

// Remove hides and unregisters every dialog registered under id.
func (h *ModalHost) Remove(id string) error {
	for _, e := range h.Registry.All() {
		if d, ok := e.Handle.(*Dialog); ok && e.ID == id {
			d.setVisible(false)
		}
	}
	return h.Registry.Remove(id)
}

// Stack returns the open dialogs ordered bottom to top.
func (h *ModalHost) Stack() []*Dialog {
	open := h.Registry.Open()
	out := make([]*Dialog, 0, len(open))
	for _, e := range open {
		if d, ok := e.Handle.(*Dialog); ok {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LayerPosition() < out[j].LayerPosition()
	})
	return out
}

// Top returns the open dialog with the highest layer position.
func (h *ModalHost) Top() (*Dialog, bool) {
	stack := h.Stack()
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// Cycle raises the bottom open dialog to the top and returns its id.
// Returns the current top unchanged when fewer than two dialogs are open.
func (h *ModalHost) Cycle() string {
	stack := h.Stack()
	switch len(stack) {
	case 0:
		return ""
	case 1:
		return stack[0].ID
	}
	bottom := stack[0]
	bottom.SetLayerPosition(h.nextLayer())
	return bottom.ID
}

// UpdateTop passes msg to the top dialog.
// Returns the cmd from the dialog's Update. Caller must run the cmd.
func (h *ModalHost) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	top, ok := h.Top()
	if !ok {
		return nil, false
	}
	_, cmd := top.Update(msg)
	return cmd, true
}

// View renders dialogs underneath as collapsed tabs and the top dialog in full.
func (h *ModalHost) View() string {
	stack := h.Stack()
	if len(stack) == 0 {
		return ""
	}
	parts := make([]string, 0, len(stack))
	for _, d := range stack[:len(stack)-1] {
		parts = append(parts, d.Tab())
	}
	parts = append(parts, stack[len(stack)-1].View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// nextLayer is the layer that puts a dialog above everything open.
func (h *ModalHost) nextLayer() int {
	layer, err := h.Registry.HighestLayer()
	if errors.Is(err, modal.ErrEmptyStack) {
		return h.BaseLayer
	}
	return layer
}
