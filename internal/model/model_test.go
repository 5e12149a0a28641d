package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodoDefaults(t *testing.T) {
	td := NewTodo()

	assert.NotEmpty(t, td.ID)
	assert.Empty(t, td.Text)
	assert.False(t, td.Completed)
	assert.Equal(t, PriorityMedium, td.Priority)
	assert.False(t, td.HasDueDate())
	assert.Empty(t, td.DueDateDisplay())
}

func TestToggleCompleteTwiceRestores(t *testing.T) {
	td := NewTodo()
	td.ToggleComplete()
	assert.True(t, td.Completed)
	td.ToggleComplete()
	assert.False(t, td.Completed)
}

func TestDueDateDisplayFollowsDueDate(t *testing.T) {
	td := NewTodo()
	d := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	td.SetDueDate(&d)
	assert.Equal(t, "Saturday 17 Oct", td.DueDateDisplay())

	later := d.AddDate(0, 0, 3)
	td.SetDueDate(&later)
	assert.Equal(t, "Tuesday 20 Oct", td.DueDateDisplay())

	td.SetDueDate(nil)
	assert.Empty(t, td.DueDateDisplay())
}

func TestSetDueDateCopiesValue(t *testing.T) {
	td := NewTodo()
	d := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	td.SetDueDate(&d)

	d = d.AddDate(1, 0, 0)
	assert.Equal(t, 2026, td.DueDate.Year())
}

func TestProjectAddTodoAppends(t *testing.T) {
	p := NewProject("Groceries")
	first := p.AddTodo().ID
	second := p.AddTodo().ID

	require.Len(t, p.Todos, 2)
	assert.Equal(t, first, p.Todos[0].ID)
	assert.Equal(t, second, p.Todos[1].ID)
	assert.NotEqual(t, first, second)
}

func TestProjectRemoveTodo(t *testing.T) {
	p := NewProject("Work")
	a := p.AddTodo().ID
	b := p.AddTodo().ID
	c := p.AddTodo().ID

	p.RemoveTodo(b)
	require.Len(t, p.Todos, 2)
	assert.Equal(t, a, p.Todos[0].ID)
	assert.Equal(t, c, p.Todos[1].ID)
}

func TestProjectRemoveUnknownTodoIsNoop(t *testing.T) {
	p := NewProject("Work")
	p.AddTodo().Text = "one"
	p.AddTodo().Text = "two"
	before := p.Clone()

	p.RemoveTodo("does-not-exist")

	assert.Equal(t, before, p.Clone())
}

func TestProjectCloneIsDeep(t *testing.T) {
	p := NewProject("Work")
	td := p.AddTodo()
	d := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	td.SetDueDate(&d)

	c := p.Clone()
	c.Todos[0].Text = "changed"
	*c.Todos[0].DueDate = d.AddDate(0, 0, 1)

	assert.Empty(t, p.Todos[0].Text)
	assert.Equal(t, 17, p.Todos[0].DueDate.Day())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"low", PriorityLow, true},
		{" HIGH ", PriorityHigh, true},
		{"Medium", PriorityMedium, true},
		{"urgent", PriorityMedium, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePriority(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPriorityNextCycles(t *testing.T) {
	assert.Equal(t, PriorityMedium, PriorityLow.Next())
	assert.Equal(t, PriorityHigh, PriorityMedium.Next())
	assert.Equal(t, PriorityLow, PriorityHigh.Next())
}
