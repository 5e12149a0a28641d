package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/memstore"
)

var now = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) // Saturday

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func setup(t *testing.T) (*store.Store, model.Project) {
	t.Helper()
	s := store.New(memstore.New(), store.WithClock(func() time.Time { return now }))
	require.NoError(t, s.Initialize())
	p, err := s.AddProject("Work")
	require.NoError(t, err)
	require.NoError(t, s.Update(p.ID, func(p *model.Project) {
		p.AddTodo().Text = "one"
		p.AddTodo().Text = "two"
	}))
	p, _ = s.Project(p.ID)
	return s, p
}

func selectedRow(t *testing.T, m Model) row {
	t.Helper()
	r, ok := m.selected()
	require.True(t, ok)
	return r
}

func TestRowsCarryIDs(t *testing.T) {
	s, p := setup(t)
	m := New(s, nil)

	items := m.list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, row{kind: projectRow, projectID: p.ID, filter: "Work"}, items[0])
	assert.Equal(t, p.Todos[1].ID, items[2].(row).todoID)
	assert.Contains(t, m.View(), "Work")
}

func TestToggleAndPriority(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down", " ", "p")

	got, _ := s.Project(p.ID)
	assert.True(t, got.Todos[0].Completed)
	assert.Equal(t, model.PriorityHigh, got.Todos[0].Priority)
	assert.Equal(t, p.Todos[0].ID, selectedRow(t, m).todoID)

	// space on a project row does nothing
	m, _ = press(t, New(s, nil), " ")
	got, _ = s.Project(p.ID)
	assert.False(t, got.Todos[1].Completed)
	assert.Empty(t, m.status)
}

func TestDueDateInput(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down", "down", "t")
	require.Equal(t, dating, m.mode)

	m, _ = press(t, m, "someday", "enter")
	assert.Equal(t, dating, m.mode)
	assert.Contains(t, m.inputErr, "YYYY-MM-DD")

	m.ti.SetValue("tomorrow")
	m, _ = press(t, m, "enter")
	assert.Equal(t, browsing, m.mode)
	items := s.DueTomorrow()
	require.Len(t, items, 1)
	assert.Equal(t, p.Todos[1].ID, items[0].Todo.ID)

	m, _ = press(t, m, "t")
	assert.Equal(t, "2026-10-18", m.ti.Value())
	m.ti.SetValue("none")
	_, _ = press(t, m, "enter")
	assert.Empty(t, s.DueTomorrow())
}

func TestEditTodoAndProject(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down", "e")
	require.Equal(t, editing, m.mode)
	assert.Equal(t, "one", m.ti.Value())
	m.ti.SetValue("uno")
	m, _ = press(t, m, "enter")
	assert.Equal(t, browsing, m.mode)

	m, _ = press(t, New(s, nil), "e")
	m.ti.SetValue("")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "Title cannot be empty", m.inputErr)
	m.ti.SetValue("Office")
	_, _ = press(t, m, "enter")

	got, _ := s.Project(p.ID)
	assert.Equal(t, "Office", got.Title)
	assert.Equal(t, "uno", got.Todos[0].Text)
}

func TestAddTodoAndProject(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down", "a", "three", "enter")

	got, _ := s.Project(p.ID)
	require.Len(t, got.Todos, 3)
	assert.Equal(t, "three", got.Todos[2].Text)
	assert.Equal(t, got.Todos[2].ID, selectedRow(t, m).todoID)

	m, _ = press(t, m, "n", "enter")
	assert.Equal(t, addingProject, m.mode)
	m, _ = press(t, m, "Home", "enter")
	projects := s.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "Home", projects[0].Title)
	assert.Equal(t, row{kind: projectRow, projectID: projects[0].ID, filter: "Home"}, selectedRow(t, m))

	// esc abandons the input without changes
	m, _ = press(t, m, "n", "Garden", "esc")
	assert.Equal(t, browsing, m.mode)
	assert.Equal(t, 2, s.Len())
}

func TestDelete(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down", "d")
	got, _ := s.Project(p.ID)
	require.Len(t, got.Todos, 1)
	assert.Equal(t, "two", got.Todos[0].Text)

	assert.Equal(t, p.Todos[1].ID, selectedRow(t, m).todoID)

	_, _ = press(t, New(s, nil), "d")
	assert.Equal(t, 0, s.Len())
}

func TestStaleRowReportsError(t *testing.T) {
	s, p := setup(t)
	m, _ := press(t, New(s, nil), "down")
	require.NoError(t, s.RemoveProject(p.ID))

	// the list still shows the old row; the store decides
	m, _ = press(t, m, "p")
	assert.Contains(t, m.status, store.ErrTodoNotFound.Error())
	assert.Empty(t, m.list.Items())
}

func TestDueSoonView(t *testing.T) {
	s, p := setup(t)
	d := now.AddDate(0, 0, 1)
	_, err := s.SetTodoDueDate(p.ID, p.Todos[0].ID, &d)
	require.NoError(t, err)

	m, _ := press(t, New(s, nil), "s")
	require.True(t, m.soon)
	view := m.View()
	assert.Contains(t, view, "Due soon")
	assert.Contains(t, view, "Tomorrow")
	assert.Contains(t, view, "(1)")
	assert.Contains(t, view, "one")

	m, _ = press(t, m, "s")
	assert.False(t, m.soon)
}

func TestQuit(t *testing.T) {
	s, _ := setup(t)
	_, cmd := press(t, New(s, nil), "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSize(t *testing.T) {
	s, _ := setup(t)
	next, _ := New(s, nil).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := next.(Model)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 96, m.list.Width())
}
