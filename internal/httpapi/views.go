package httpapi

import (
	"time"

	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/model"
)

type todoView struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	Completed      bool    `json:"completed"`
	Priority       string  `json:"priority"`
	DueDate        *string `json:"dueDate"`
	DueDateDisplay string  `json:"dueDateDisplay"`
}

type projectView struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Done    int        `json:"done"`
	Pending int        `json:"pending"`
	Todos   []todoView `json:"todos"`
}

type dueItemView struct {
	ProjectID    string   `json:"projectId"`
	ProjectTitle string   `json:"projectTitle"`
	Todo         todoView `json:"todo"`
}

func newTodoView(t model.Todo) todoView {
	v := todoView{
		ID:             t.ID,
		Text:           t.Text,
		Completed:      t.Completed,
		Priority:       string(t.Priority),
		DueDateDisplay: t.DueDateDisplay(),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format(time.DateOnly)
		v.DueDate = &s
	}
	return v
}

func newProjectView(p model.Project) projectView {
	d, pn := p.Stats()
	v := projectView{ID: p.ID, Title: p.Title, Done: d, Pending: pn, Todos: make([]todoView, 0, len(p.Todos))}
	for _, t := range p.Todos {
		v.Todos = append(v.Todos, newTodoView(t))
	}
	return v
}

func newDueViews(items []due.Item) []dueItemView {
	out := make([]dueItemView, 0, len(items))
	for _, it := range items {
		out = append(out, dueItemView{ProjectID: it.ProjectID, ProjectTitle: it.ProjectTitle, Todo: newTodoView(it.Todo)})
	}
	return out
}
