package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modalstack/internal/config"
	"modalstack/internal/modal"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Dialogs = []config.DialogConfig{
		{ID: "settings", Title: "Settings", Kind: config.KindInfo, Data: map[string]any{"theme": "dark"}},
		{ID: "quit", Title: "Quit?", Kind: config.KindConfirm},
		{ID: "welcome", Title: "Welcome", Kind: config.KindInfo, Open: true},
	}
	return cfg
}

func newTestApp(t *testing.T, opts ...modal.Option) (*AppModel, tea.Model) {
	t.Helper()
	reg := modal.NewRegistry(opts...)
	a := NewAppModel(reg, testConfig(), zerolog.Nop())
	return a, a.AsTeaModel()
}

// send delivers msg and then every message its commands produce, depth first.
// Batches are expanded; quit stops processing.
func send(t *testing.T, m tea.Model, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "message loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(tea.QuitMsg); ok {
			return
		}
		_, cmd := m.Update(next)
		queue = append(queue, expand(cmd)...)
	}
}

func expand(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, expand(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestNewAppModel_RegistersConfiguredDialogs(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, 3, a.Registry.Len())
	got, ok := a.Registry.Data("settings")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"theme": "dark"}, got)

	top, ok := a.Host.Top()
	require.True(t, ok)
	assert.Equal(t, "welcome", top.ID)
	assert.Equal(t, 1, top.LayerPosition())
}

func TestApp_LeaderOpensNumberedDialog(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, keyMsg("esc")) // close welcome

	send(t, m, keyMsg(" "))
	send(t, m, keyMsg("d"))
	send(t, m, keyMsg("2"))

	top, ok := a.Host.Top()
	require.True(t, ok)
	assert.Equal(t, "quit", top.ID)
	assert.Contains(t, a.Status, "opened quit")
}

func TestApp_LeaderStacksDialogOverOpenOne(t *testing.T) {
	a, m := newTestApp(t)
	require.Len(t, a.Host.Stack(), 1)

	send(t, m, keyMsg(" "))
	send(t, m, keyMsg("d"))
	send(t, m, keyMsg("1"))

	assert.Equal(t, []string{"welcome", "settings"}, stackIDs(a.Host))
	top, _ := a.Host.Top()
	assert.Equal(t, 2, top.LayerPosition())
}

func TestApp_PromptCapturesLeaderKey(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, NewDialogMsg{})
	top, _ := a.Host.Top()

	send(t, m, keyMsg(" "))
	assert.False(t, a.KeyHandler.LeaderWaiting, "space is typed into the prompt")
	now, _ := a.Host.Top()
	assert.Same(t, top, now)
}

func TestApp_ConfirmResultStoredAsPayload(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, ShowDialogMsg{ID: "quit"})

	send(t, m, keyMsg("y"))

	got, ok := a.Registry.Data("quit")
	require.True(t, ok)
	assert.Equal(t, true, got)
	q, _ := a.Host.Dialog("quit")
	assert.False(t, q.Visible(), "dialog closes after producing a result")
	top, _ := a.Host.Top()
	assert.Equal(t, "welcome", top.ID)
}

func TestApp_DeferredCommitAppliesOnNextTurn(t *testing.T) {
	a, m := newTestApp(t, modal.WithCommitMode(modal.CommitDeferred))
	_, ok := a.Registry.Data("settings")
	assert.False(t, ok, "config payload is queued until Init runs")

	for _, msg := range expand(m.Init()) {
		send(t, m, msg)
	}
	_, ok = a.Registry.Data("settings")
	assert.True(t, ok)

	_, cmd := m.Update(DialogResultMsg{ID: "quit", Value: false})
	assert.Equal(t, 1, a.Registry.Pending())
	require.NotNil(t, cmd)
	assert.Equal(t, DataCommittedMsg{Count: 1}, cmd())
	got, ok := a.Registry.Data("quit")
	require.True(t, ok)
	assert.Equal(t, false, got)
}

func TestApp_ResultForRemovedDialogIsDropped(t *testing.T) {
	a, m := newTestApp(t)
	require.NoError(t, a.Host.Remove("quit"))

	send(t, m, DialogResultMsg{ID: "quit", Value: true})

	_, ok := a.Registry.Data("quit")
	assert.False(t, ok)
	assert.Contains(t, a.Status, "result dropped")
}

func TestApp_NewPromptDialog(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, keyMsg("esc"))

	send(t, m, NewDialogMsg{})
	top, ok := a.Host.Top()
	require.True(t, ok)
	assert.Equal(t, config.KindPrompt, top.Kind)
	assert.Equal(t, 4, a.Registry.Len())

	for _, r := range "42" {
		send(t, m, keyMsg(string(r)))
	}
	send(t, m, keyMsg("enter"))

	got, ok := a.Registry.Data(top.ID)
	require.True(t, ok)
	assert.Equal(t, float64(42), got)
}

func TestApp_TabCyclesOpenDialogs(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, ShowDialogMsg{ID: "settings"})

	send(t, m, keyMsg("tab"))
	top, _ := a.Host.Top()
	assert.Equal(t, "welcome", top.ID)
}

func TestApp_RemoveTopDialog(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, RemoveDialogMsg{})

	assert.Equal(t, 2, a.Registry.Len())
	_, err := a.Registry.Lookup("welcome")
	assert.ErrorIs(t, err, modal.ErrNotFound)

	send(t, m, RemoveDialogMsg{})
	assert.Equal(t, 2, a.Registry.Len())
	assert.Contains(t, a.Status, "no open dialog")
}

func TestApp_ShowUnknownDialog(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, ShowDialogMsg{ID: "ghost"})
	assert.Contains(t, a.Status, `no dialog "ghost"`)
}

func TestApp_ResetData(t *testing.T) {
	a, m := newTestApp(t)
	send(t, m, keyMsg("esc"))

	send(t, m, keyMsg(" "))
	send(t, m, keyMsg("r"))

	assert.Empty(t, a.Registry.AllData())
}

func TestApp_KeysGoToTopDialogFirst(t *testing.T) {
	a, m := newTestApp(t)

	// q closes the info dialog instead of quitting
	_, cmd := m.Update(keyMsg("q"))
	assert.Equal(t, CloseDialogMsg{ID: "welcome"}, cmd())

	send(t, m, CloseDialogMsg{ID: "welcome"})
	_, open := a.Host.Top()
	require.False(t, open)

	_, cmd = m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_View(t *testing.T) {
	a, m := newTestApp(t)
	out := m.View()
	assert.Contains(t, out, "3 registered, 1 open")
	assert.Contains(t, out, "settings")
	assert.Contains(t, out, "Payloads")
	assert.Contains(t, out, `{"theme":"dark"}`)
	assert.Contains(t, out, "Welcome")

	send(t, m, ToggleInspectorMsg{})
	assert.False(t, a.ShowInspector)
	assert.NotContains(t, m.View(), "Payloads")
}
