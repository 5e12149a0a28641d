package model

import "github.com/google/uuid"

// Project is a titled, ordered list of todos. Todos display in insertion order.
type Project struct {
	ID    string
	Title string
	Todos []Todo
}

// NewProject returns an empty project with a fresh id.
func NewProject(title string) *Project {
	return &Project{
		ID:    uuid.NewString(),
		Title: title,
		Todos: []Todo{},
	}
}

// AddTodo appends a new todo and returns a pointer to it.
// The pointer is only valid until the next change to Todos.
func (p *Project) AddTodo() *Todo {
	p.Todos = append(p.Todos, NewTodo())
	return &p.Todos[len(p.Todos)-1]
}

// RemoveTodo drops the todo with the given id. Unknown ids are ignored.
func (p *Project) RemoveTodo(id string) {
	kept := p.Todos[:0]
	for _, t := range p.Todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	// clear the tail so removed todos are not kept alive by the backing array
	for i := len(kept); i < len(p.Todos); i++ {
		p.Todos[i] = Todo{}
	}
	p.Todos = kept
}

// Todo returns the live todo with the given id, or nil.
func (p *Project) Todo(id string) *Todo {
	for i := range p.Todos {
		if p.Todos[i].ID == id {
			return &p.Todos[i]
		}
	}
	return nil
}

// Stats counts completed and pending todos.
func (p Project) Stats() (done, pending int) {
	for _, t := range p.Todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	c := Project{ID: p.ID, Title: p.Title, Todos: make([]Todo, len(p.Todos))}
	for i, t := range p.Todos {
		c.Todos[i] = t.Clone()
	}
	return c
}
