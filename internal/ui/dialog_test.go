package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modalstack/internal/config"
)

// runCmd executes cmd and returns its message, or nil.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNewDialog_Defaults(t *testing.T) {
	d := NewDialog("", "Untitled", "", "")
	assert.True(t, strings.HasPrefix(d.ID, "modal-"))
	assert.Equal(t, config.KindInfo, d.Kind)
	assert.False(t, d.Visible())
	assert.Equal(t, 0, d.LayerPosition())

	d.SetLayerPosition(4)
	assert.Equal(t, 4, d.LayerPosition())
}

func TestDialog_InfoCloses(t *testing.T) {
	for _, k := range []string{"enter", "esc", "q"} {
		d := NewDialog("about", "About", "v1", config.KindInfo)
		_, cmd := d.Update(keyMsg(k))
		assert.Equal(t, CloseDialogMsg{ID: "about"}, runCmd(t, cmd), k)
	}
}

func TestDialog_ConfirmResults(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{key: "y", want: true},
		{key: "enter", want: true},
		{key: "n", want: false},
		{key: "esc", want: false},
	}
	for _, tt := range tests {
		d := NewDialog("quit", "Quit?", "", config.KindConfirm)
		_, cmd := d.Update(keyMsg(tt.key))
		assert.Equal(t, DialogResultMsg{ID: "quit", Value: tt.want}, runCmd(t, cmd), tt.key)
	}
}

func TestDialog_ConfirmIgnoresOtherKeys(t *testing.T) {
	d := NewDialog("quit", "Quit?", "", config.KindConfirm)
	_, cmd := d.Update(keyMsg("x"))
	assert.Nil(t, cmd)
}

func TestDialog_PromptParsesInput(t *testing.T) {
	d := NewDialog("note", "Note", "", config.KindPrompt)
	d.setVisible(true)
	for _, r := range `{"x":1}` {
		d.Update(keyMsg(string(r)))
	}

	_, cmd := d.Update(keyMsg("enter"))
	msg := runCmd(t, cmd)
	require.IsType(t, DialogResultMsg{}, msg)
	assert.Equal(t, map[string]any{"x": float64(1)}, msg.(DialogResultMsg).Value)
}

func TestDialog_PromptEscCloses(t *testing.T) {
	d := NewDialog("note", "Note", "", config.KindPrompt)
	d.setVisible(true)
	_, cmd := d.Update(keyMsg("esc"))
	assert.Equal(t, CloseDialogMsg{ID: "note"}, runCmd(t, cmd))
}

func TestDialog_View(t *testing.T) {
	d := NewDialog("quit", "Quit now?", "Unsaved notes are kept.", config.KindConfirm)
	out := d.View()
	assert.Contains(t, out, "Quit now?")
	assert.Contains(t, out, "Unsaved notes are kept.")
	assert.Contains(t, out, "y/Enter: confirm")
	assert.Contains(t, d.Tab(), "Quit now?")
}
