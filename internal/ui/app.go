package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/edit"
	"github.com/gravitrone/taxdesk/internal/logging"
	"github.com/gravitrone/taxdesk/internal/session"
	"github.com/gravitrone/taxdesk/internal/table"
	"github.com/gravitrone/taxdesk/internal/ui/components"
)

// Backend is the record store the app talks to. *api.Client satisfies it.
type Backend interface {
	session.Source
	edit.Updater
}

// --- Messages ---

type loadedMsg struct {
	snap session.Snapshot
	err  error
}

type savedMsg struct {
	id     string
	record *api.Record
	err    error
}

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

const defaultPageSize = 10

// --- App Model ---

// App is the root TUI model: the records table, the edit form and the
// load error state with retry.
type App struct {
	ctx     context.Context
	backend Backend
	width   int
	height  int

	session session.Session
	editor  edit.Controller
	columns table.Model[api.Record]
	rows    *components.RowCursor

	nameInput textinput.Model
	editFocus int

	spinner     spinner.Model
	help        help.Model
	helpOpen    bool
	quitConfirm bool
	toast       *appToast
}

// NewApp creates the root application model. ctx bounds every request the
// app makes and carries its logger.
func NewApp(ctx context.Context, backend Backend) App {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Enter name"
	input.CharLimit = 120

	return App{
		ctx:       ctx,
		backend:   backend,
		session:   session.New(),
		columns:   TaxColumns(),
		rows:      components.NewRowCursor(defaultPageSize),
		nameInput: input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SelectedStyle)),
		help:      help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadData)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.rows.SetPageSize(pageSizeFor(msg.Height))
		a.nameInput.Width = components.BoxContentWidth(msg.Width) - 4
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loadedMsg:
		a.session.ApplyLoad(msg.snap, msg.err)
		if msg.err != nil {
			a.logger().Error().Err(msg.err).Msg("load failed")
		} else {
			a.logger().Info().
				Int("records", len(a.session.Records)).
				Int("countries", len(a.session.Countries)).
				Msg("data loaded")
		}
		a.rows.SetRows(recordIDs(a.session.Records))
		return a, nil

	case savedMsg:
		return a.applySaved(msg)

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if isKey(msg, "ctrl+c") {
			return a.quit()
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.editor.Active() {
			return a.handleEditKeys(msg)
		}
		return a.handleTableKeys(msg)
	}

	if a.editor.Active() {
		var cmd tea.Cmd
		a.nameInput, cmd = a.nameInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleTableKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case isQuit(msg):
		return a.quit()
	case isKey(msg, "?"):
		a.helpOpen = true
		return a, nil
	}

	switch a.session.Phase {
	case session.PhaseFailed:
		if isKey(msg, "r") {
			return a.retry()
		}
	case session.PhaseReady:
		switch {
		case isDown(msg):
			a.rows.Down()
		case isUp(msg):
			a.rows.Up()
		case isEdit(msg):
			return a.startEdit()
		}
	}
	return a, nil
}

func (a App) quit() (App, tea.Cmd) {
	if a.hasUnsaved() || a.editor.Submitting() {
		a.quitConfirm = true
		return a, nil
	}
	return a, tea.Quit
}

// retry reloads both collections from scratch.
func (a App) retry() (App, tea.Cmd) {
	a.session.BeginLoad()
	a.rows.SetRows(nil)
	a.logger().Info().Msg("retrying load")
	return a, tea.Batch(a.spinner.Tick, a.loadData)
}

func (a App) loadData() tea.Msg {
	snap, err := session.Load(a.ctx, a.backend)
	return loadedMsg{snap: snap, err: err}
}

func (a App) busy() bool {
	return a.session.Phase == session.PhaseLoading || a.editor.Submitting()
}

func (a App) logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = components.ConfirmDialog("Quit", "Discard the open edit and quit?")
	case a.helpOpen:
		content = a.renderHelp()
	case a.editor.Active():
		content = a.renderEdit()
	default:
		content = a.renderRecords()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s%s", banner, content, hints, feedback)
}

func (a App) statusHints() []string {
	switch {
	case a.quitConfirm:
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	case a.helpOpen:
		return []string{components.Hint("esc", "Back")}
	case a.editor.Submitting():
		return []string{components.Hint("…", "Saving")}
	case a.editor.Active():
		return []string{
			components.Hint("tab", "Field"),
			components.Hint("←/→", "Country"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("esc", "Cancel"),
		}
	case a.session.Phase == session.PhaseFailed:
		return []string{
			components.Hint("r", "Retry"),
			components.Hint("q", "Quit"),
		}
	case a.session.Phase == session.PhaseLoading:
		return []string{components.Hint("q", "Quit")}
	}
	return []string{
		components.Hint("↑/↓", "Select"),
		components.Hint("e", "Edit"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
}

func (a App) renderHelp() string {
	h := a.help
	h.ShowAll = true
	body := MutedStyle.Render("esc to close") + "\n\n" + h.View(keys)
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title, text := "Info", a.toast.text
	switch a.toast.level {
	case "success":
		title, text = "Success", SuccessStyle.Render(text)
	case "warning":
		title, text = "Warning", WarningStyle.Render(text)
	case "error":
		return components.ErrorBox("Error", text, a.width)
	}
	return components.TitledBox(title, text, a.width)
}

// pageSizeFor leaves room for the banner, box chrome and status bar.
func pageSizeFor(height int) int {
	if height <= 0 {
		return defaultPageSize
	}
	n := height - 20
	if n < 3 {
		n = 3
	}
	return n
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
