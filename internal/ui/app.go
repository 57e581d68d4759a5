package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"modalstack/internal/config"
	"modalstack/internal/modal"
	"modalstack/internal/payload"
)

const maxNumberedDialogs = 9

// AppModel is the root model: a list of registered dialogs, the payload
// inspector, and the stack of open dialogs on top.
type AppModel struct {
	Registry      *modal.Registry
	Host          *ModalHost
	KeyHandler    *KeyHandler
	Logger        zerolog.Logger
	ShowInspector bool
	Status        string
	Width         int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the root model over reg and registers the dialogs in cfg.
// Dialogs marked open are shown in config order; configured payloads are set.
func NewAppModel(reg *modal.Registry, cfg config.Config, logger zerolog.Logger) *AppModel {
	a := &AppModel{
		Registry:      reg,
		Host:          NewModalHost(reg, cfg.BaseLayer),
		Logger:        logger,
		ShowInspector: true,
	}

	keys := NewKeybindRegistry()
	keys.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	keys.BindWithDesc("q", tea.Quit, "Quit")
	keys.BindWithDesc("SPC q", tea.Quit, "Quit")
	keys.BindWithDesc("tab", msgCmd(CycleDialogsMsg{}), "Next dialog")
	keys.BindWithDesc("SPC n", msgCmd(NewDialogMsg{}), "New prompt")
	keys.BindWithDesc("SPC k", msgCmd(RemoveDialogMsg{}), "Unregister top")
	keys.BindWithDesc("SPC r", msgCmd(ResetDataMsg{}), "Reset all data")
	keys.BindWithDesc("SPC i", msgCmd(ToggleInspectorMsg{}), "Inspector")

	for i, dc := range cfg.Dialogs {
		a.Host.Add(NewDialogFromConfig(dc), false)
		if dc.Data != nil {
			reg.SetData(dc.ID, dc.Data)
		}
		if i < maxNumberedDialogs {
			keys.BindWithDesc(fmt.Sprintf("SPC d %d", i+1), msgCmd(ShowDialogMsg{ID: dc.ID}), dc.Title)
		}
	}
	for _, dc := range cfg.Dialogs {
		if dc.Open {
			_ = a.Host.Show(dc.ID)
		}
	}
	a.KeyHandler = NewKeyHandler(keys)
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := []tea.Cmd{flushCmd(a.Registry)}
	for _, d := range a.Host.Stack() {
		cmds = append(cmds, d.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case ShowDialogMsg:
		if err := a.Host.Show(msg.ID); err != nil {
			return a, a.fail("show", msg.ID, err)
		}
		d, _ := a.Host.Dialog(msg.ID)
		a.Status = fmt.Sprintf("opened %s at layer %d", msg.ID, d.LayerPosition())
		return a, d.Init()
	case CloseDialogMsg:
		if err := a.Host.Hide(msg.ID); err != nil {
			return a, a.fail("close", msg.ID, err)
		}
		a.Status = "closed " + msg.ID
		return a, nil
	case CycleDialogsMsg:
		if id := a.Host.Cycle(); id != "" {
			a.Status = "focused " + id
		}
		return a, nil
	case NewDialogMsg:
		d := NewDialog("", "New note", "Saved as this dialog's payload.", config.KindPrompt)
		a.Host.Add(d, false)
		return a, msgCmd(ShowDialogMsg{ID: d.ID})
	case RemoveDialogMsg:
		top, ok := a.Host.Top()
		if !ok {
			a.Status = "no open dialog to unregister"
			return a, nil
		}
		if err := a.Host.Remove(top.ID); err != nil {
			return a, a.fail("remove", top.ID, err)
		}
		a.Status = "unregistered " + top.ID
		return a, nil
	case DialogResultMsg:
		if !a.Registry.SetData(msg.ID, msg.Value) {
			a.Status = "dialog " + msg.ID + " is gone; result dropped"
			return a, nil
		}
		_ = a.Host.Hide(msg.ID)
		a.Status = fmt.Sprintf("%s = %s", msg.ID, payload.Summary(msg.Value, 40))
		return a, flushCmd(a.Registry)
	case DataCommittedMsg:
		a.Logger.Debug().Int("count", msg.Count).Msg("payload writes committed")
		return a, nil
	case ResetDataMsg:
		a.Registry.ResetAllData()
		a.Status = "cleared all payloads"
		return a, nil
	case ToggleInspectorMsg:
		a.ShowInspector = !a.ShowInspector
		return a, nil
	}

	// Anything else goes to the top dialog.
	cmd, _ := a.Host.UpdateTop(msg)
	return a, cmd
}

// handleKey routes keys: ctrl+c and tab are global. Outside leader mode the
// top dialog sees the key first; keys it ignores fall through to keybinds
// unless it captures text input.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		if _, open := a.Host.Top(); open {
			return msgCmd(CycleDialogsMsg{})
		}
	}
	if !a.KeyHandler.LeaderWaiting {
		if top, open := a.Host.Top(); open {
			cmd, _ := a.Host.UpdateTop(msg)
			if cmd != nil || top.CapturesInput() {
				return cmd
			}
		}
	}
	_, cmd := a.KeyHandler.Handle(msg)
	return cmd
}

// fail records a failed dialog operation in the status line and the log.
func (a *AppModel) fail(op, id string, err error) tea.Cmd {
	a.Logger.Warn().Err(err).Str("op", op).Str("modal_id", id).Msg("dialog operation failed")
	if errors.Is(err, modal.ErrNotFound) {
		a.Status = fmt.Sprintf("%s: no dialog %q", op, id)
	} else {
		a.Status = fmt.Sprintf("%s %s: %v", op, id, err)
	}
	return nil
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("modalstack"))
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("  %d registered, %d open, commit %s",
		a.Registry.Len(), len(a.Registry.Open()), a.Registry.Mode())))
	b.WriteString("\n\n")
	b.WriteString(a.renderDialogList())

	if a.ShowInspector {
		b.WriteString("\n")
		b.WriteString(a.renderInspector())
	}

	if stack := a.Host.View(); stack != "" {
		b.WriteString("\n")
		b.WriteString(stack)
	}

	if a.Status != "" {
		b.WriteString("\n")
		b.WriteString(Styles.Status.Render(a.Status))
	}
	if help := RenderKeybindHelp(a.KeyHandler); help != "" {
		b.WriteString("\n")
		b.WriteString(help)
	} else {
		b.WriteString("\n")
		b.WriteString(Styles.Hint.Render("SPC: commands  Tab: next dialog  q: quit"))
	}
	return b.String()
}

func (a *AppModel) renderDialogList() string {
	entries := a.Registry.All()
	if len(entries) == 0 {
		return Styles.Empty.Render("No dialogs registered. SPC n creates one.")
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, Styles.Section.Render("Dialogs"))
	for i, e := range entries {
		state := Styles.Muted.Render("hidden")
		if e.Handle.Visible() {
			state = Styles.Status.Render("open @" + strconv.Itoa(e.Handle.LayerPosition()))
		}
		label := e.ID
		if d, ok := e.Handle.(*Dialog); ok && d.Title != "" && d.Title != e.ID {
			label += " " + Styles.Muted.Render("("+d.Title+")")
		}
		prefix := "   "
		if i < maxNumberedDialogs {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		lines = append(lines, Styles.Normal.Render(prefix+label)+"  "+state)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *AppModel) renderInspector() string {
	width := 60
	if a.Width > 0 && a.Width-4 < width {
		width = a.Width - 4
	}
	data := a.Registry.AllData()
	var body string
	if len(data) == 0 {
		body = Styles.Empty.Render("no payloads")
	} else {
		rows := make([]string, 0, len(data))
		for _, d := range data {
			prefix := d.ID + ": "
			rows = append(rows, Styles.Normal.Render(prefix)+payload.Summary(d.Data, width-len(prefix)))
		}
		body = strings.Join(rows, "\n")
	}
	if n := a.Registry.Pending(); n > 0 {
		body += "\n" + Styles.Muted.Render(fmt.Sprintf("%d write(s) pending", n))
	}
	return Styles.BoxCompact.Render(Styles.Section.Render("Payloads") + "\n" + body)
}

// flushCmd applies queued payload writes on the next turn of the event loop.
// Returns nil for registries that commit synchronously.
func flushCmd(reg *modal.Registry) tea.Cmd {
	if reg.Mode() != modal.CommitDeferred {
		return nil
	}
	return func() tea.Msg {
		return DataCommittedMsg{Count: reg.Flush()}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
