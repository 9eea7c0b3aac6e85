package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/teatest"
)

func todayModel(t *testing.T) (*App, *checklistModel) {
	t.Helper()
	app := testApp(t, nil)
	seedPlan(t, app)
	view, err := app.Plans.Today(context.Background(), app.UserID, app.now())
	require.NoError(t, err)
	require.NotNil(t, view.Session)
	return app, newChecklistModel(app, view)
}

func TestChecklist_CursorSkipsBreaks(t *testing.T) {
	_, m := todayModel(t)
	d := teatest.New(t, m)
	tasks := m.tasks()
	require.False(t, tasks[m.cursor].IsBreak())

	for range tasks {
		d.Press("down")
		assert.False(t, tasks[m.cursor].IsBreak())
	}
	for range tasks {
		d.Press("k")
		assert.False(t, tasks[m.cursor].IsBreak())
	}
	assert.Equal(t, 0, m.cursor)
}

func TestChecklist_ToggleUpdatesSession(t *testing.T) {
	app, m := todayModel(t)
	d := teatest.New(t, m)
	taskID := m.tasks()[m.cursor].ID

	d.Press("x")
	assert.False(t, m.busy)
	assert.NoError(t, m.err)
	assert.True(t, m.tasks()[m.cursor].Completed)
	assert.Greater(t, m.view.Session.CompletionRate, 0.0)
	assert.Contains(t, d.View(), "[✔]")

	p, err := app.Plans.Get(context.Background(), app.UserID, "")
	require.NoError(t, err)
	si, ti, err := p.FindTask(taskID)
	require.NoError(t, err)
	assert.True(t, p.Sessions[si].Tasks[ti].Completed)

	d.Press("enter")
	assert.False(t, m.tasks()[m.cursor].Completed)
}

func TestChecklist_IgnoresKeysWhileBusy(t *testing.T) {
	_, m := todayModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	_, again := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, again)

	m.Update(cmd())
	assert.False(t, m.busy)
	assert.True(t, m.tasks()[m.cursor].Completed)
}

func TestChecklist_ErrorIsShown(t *testing.T) {
	_, m := todayModel(t)
	d := teatest.New(t, m)
	d.Send(taskToggledMsg{err: domain.ErrTaskNotFound})
	assert.Contains(t, d.View(), "Error:")
}

func TestChecklist_QuitAndEmptyDay(t *testing.T) {
	m := newChecklistModel(&App{}, &contract.TodayView{PlanTitle: "Finals", Date: monday})
	d := teatest.New(t, m)
	assert.Contains(t, d.View(), "No study session today")

	d.Press("x")
	assert.False(t, d.Quitting)

	d.Press("q")
	assert.True(t, d.Quitting)
}
