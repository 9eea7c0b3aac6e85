package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/cli/formatter"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type checklistKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func (k checklistKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

func (k checklistKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultChecklistKeys = checklistKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "space", "x", "enter"), key.WithHelp("space", "toggle done")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// taskToggledMsg carries the result of a completion toggle.
type taskToggledMsg struct {
	resp *contract.ToggleTaskResponse
	err  error
}

// checklistModel lists today's study tasks and toggles them in place.
// Breaks are shown but skipped by the cursor.
type checklistModel struct {
	app    *App
	view   *contract.TodayView
	cursor int
	keys   checklistKeys
	help   help.Model
	err    error
	busy   bool
}

func newChecklistModel(app *App, view *contract.TodayView) *checklistModel {
	m := &checklistModel{app: app, view: view, keys: defaultChecklistKeys, help: help.New()}
	m.cursor = m.nextSelectable(-1, 1)
	return m
}

func (m *checklistModel) tasks() []domain.Task {
	if m.view.Session == nil {
		return nil
	}
	return m.view.Session.Tasks
}

// nextSelectable walks from i in direction dir to the next non-break task,
// or returns i unchanged when there is none.
func (m *checklistModel) nextSelectable(i, dir int) int {
	tasks := m.tasks()
	for j := i + dir; j >= 0 && j < len(tasks); j += dir {
		if !tasks[j].IsBreak() {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

func (m *checklistModel) Init() tea.Cmd { return nil }

func (m *checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskToggledMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		session := msg.resp.Session
		m.view.Session = &session
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = m.nextSelectable(m.cursor, -1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = m.nextSelectable(m.cursor, 1)
		case key.Matches(msg, m.keys.Toggle):
			tasks := m.tasks()
			if m.busy || m.cursor >= len(tasks) || tasks[m.cursor].IsBreak() {
				return m, nil
			}
			m.busy = true
			return m, m.toggle(tasks[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *checklistModel) toggle(taskID string) tea.Cmd {
	app, planID := m.app, m.view.PlanID
	return func() tea.Msg {
		resp, err := app.Plans.SetTaskCompleted(context.Background(), app.UserID, planID, taskID, nil)
		return taskToggledMsg{resp: resp, err: err}
	}
}

func (m *checklistModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s · %s", m.view.PlanTitle, m.view.Date.Format("Mon Jan 2"))) + "\n\n")

	tasks := m.tasks()
	if len(tasks) == 0 {
		b.WriteString(formatter.Dim("No study session today.") + "\n\n")
	}
	for i, t := range tasks {
		pointer := "  "
		if i == m.cursor {
			pointer = formatter.StyleHeader.Render("> ")
		}
		switch {
		case t.IsBreak():
			fmt.Fprintf(&b, "%s    %s %s\n", pointer, t.ScheduledAt.Format("15:04"), formatter.Dim(t.Title+" "+formatter.FormatMinutes(t.Duration)))
			continue
		case t.Completed:
			fmt.Fprintf(&b, "%s%s %s %s\n", pointer, formatter.StyleGreen.Render("[✔]"), t.ScheduledAt.Format("15:04"), formatter.Dim(t.Title))
		default:
			fmt.Fprintf(&b, "%s[ ] %s %s %s\n", pointer, t.ScheduledAt.Format("15:04"), t.Title, formatter.Dim(formatter.FormatMinutes(t.Duration)))
		}
	}

	if m.view.Session != nil {
		b.WriteString("\n" + formatter.RenderProgress(m.view.Session.CompletionRate, 20) + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func runTodayChecklist(ctx context.Context, app *App) error {
	view, err := app.Plans.Today(ctx, app.UserID, app.now())
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newChecklistModel(app, view)).Run()
	return err
}
