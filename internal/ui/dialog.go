package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"modalstack/internal/config"
	"modalstack/internal/modal"
	"modalstack/internal/payload"
)

// Dialog is a modal View and the handle the registry tracks for it.
// Enter/y confirms, n or Esc declines (confirm); Enter submits (prompt);
// Enter or Esc closes (info).
type Dialog struct {
	ID    string
	Title string
	Body  string
	Kind  string

	visible bool
	layer   int
	input   textinput.Model
}

var (
	_ View         = (*Dialog)(nil)
	_ modal.Handle = (*Dialog)(nil)
)

// NewDialog creates a hidden dialog. An empty id gets a generated one.
func NewDialog(id, title, body, kind string) *Dialog {
	if id == "" {
		id = modal.NewID()
	}
	if kind == "" {
		kind = config.KindInfo
	}
	d := &Dialog{ID: id, Title: title, Body: body, Kind: kind}
	if kind == config.KindPrompt {
		d.input = textinput.New()
		d.input.Placeholder = `text or JSON, e.g. {"x":1}`
		d.input.CharLimit = 256
		d.input.Width = 40
		d.input.Cursor.SetMode(cursor.CursorStatic)
	}
	return d
}

// NewDialogFromConfig creates a hidden dialog from its config entry.
func NewDialogFromConfig(dc config.DialogConfig) *Dialog {
	return NewDialog(dc.ID, dc.Title, dc.Body, dc.Kind)
}

// Visible implements modal.Handle.
func (d *Dialog) Visible() bool { return d.visible }

// LayerPosition implements modal.Handle.
func (d *Dialog) LayerPosition() int { return d.layer }

// SetLayerPosition implements modal.Handle.
func (d *Dialog) SetLayerPosition(p int) { d.layer = p }

// CapturesInput reports whether the dialog consumes every key (text entry).
func (d *Dialog) CapturesInput() bool {
	return d.Kind == config.KindPrompt
}

func (d *Dialog) setVisible(v bool) {
	d.visible = v
	if d.Kind != config.KindPrompt {
		return
	}
	if v {
		d.input.Focus()
	} else {
		d.input.Blur()
	}
}

// Init implements View.
func (d *Dialog) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (d *Dialog) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if d.Kind == config.KindPrompt {
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return d, cmd
		}
		return d, nil
	}

	switch d.Kind {
	case config.KindPrompt:
		switch keyMsg.String() {
		case "esc":
			return d, d.close
		case "enter":
			return d, d.result(payload.Parse(d.input.Value()))
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	case config.KindConfirm:
		switch keyMsg.String() {
		case "enter", "y":
			return d, d.result(true)
		case "esc", "n":
			return d, d.result(false)
		}
	default:
		switch keyMsg.String() {
		case "enter", "esc", "q":
			return d, d.close
		}
	}
	return d, nil
}

func (d *Dialog) close() tea.Msg {
	return CloseDialogMsg{ID: d.ID}
}

func (d *Dialog) result(v any) tea.Cmd {
	id := d.ID
	return func() tea.Msg { return DialogResultMsg{ID: id, Value: v} }
}

// View implements View; renders the dialog as the focused box.
func (d *Dialog) View() string {
	titleStyle, boxStyle := Styles.Title, Styles.Box
	if d.Kind == config.KindConfirm {
		titleStyle, boxStyle = Styles.TitleWarning, Styles.BoxDanger
	}
	content := titleStyle.Render(d.Title)
	if d.Body != "" {
		content += "\n\n" + Styles.Normal.Render(d.Body)
	}
	if d.Kind == config.KindPrompt {
		content += "\n\n" + d.input.View()
	}
	content += "\n\n" + Styles.Hint.Render(d.help())
	return boxStyle.Render(content)
}

// Tab renders the collapsed form used while another dialog is on top.
func (d *Dialog) Tab() string {
	return Styles.BoxBehind.Render(d.Title)
}

func (d *Dialog) help() string {
	switch d.Kind {
	case config.KindPrompt:
		return "Enter: save  Esc: cancel  Tab: next"
	case config.KindConfirm:
		return "y/Enter: confirm  n/Esc: decline  Tab: next"
	default:
		return "Enter/Esc: close  Tab: next"
	}
}
