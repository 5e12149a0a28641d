// Package tui is the interactive Bubble Tea front end. Rows only carry ids;
// every action goes through the store and the list is rebuilt from a fresh
// snapshot afterwards.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/datepick"
	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

type rowKind int

const (
	projectRow rowKind = iota
	todoRow
)

// row adapts a project header or todo to bubbles/list.Item.
type row struct {
	kind      rowKind
	projectID string
	todoID    string
	filter    string
}

// Implement list.Item interface
func (r row) Title() string       { return r.filter }
func (r row) Description() string { return "" }
func (r row) FilterValue() string { return r.filter }

// snapshot is the read-only view the delegate renders from.
type snapshot struct {
	projects map[string]model.Project
	todos    map[string]model.Todo
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{ snap snapshot }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	var line string
	switch r.kind {
	case projectRow:
		p := d.snap.projects[r.projectID]
		dn, pn := p.Stats()
		line = fmt.Sprintf("%s  %s %d  %s %d",
			projectStyle.Render(p.Title),
			successStyle.Render(ui.Current().SymDone), dn,
			pendingStyle.Render(ui.Current().SymUnchecked), pn)
	case todoRow:
		line = "  " + todoLine(d.snap.todos[r.todoID])
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	addingTodo
	addingProject
	editing
	dating
)

var prompts = map[mode]string{
	addingTodo:    "Add todo",
	addingProject: "New project",
	editing:       "Edit",
	dating:        "Due date",
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add todo"))
	projectBind = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	dueBind     = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "due date"))
	prioBind    = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	soonBind    = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "due soon"))
)

// Model is the Bubble Tea model for the project list.
type Model struct {
	store *store.Store
	log   *log.Logger

	list list.Model
	ti   textinput.Model
	mode mode
	// target is the row an input refers to, captured when the input opens.
	target   row
	inputErr string
	status   string
	soon     bool

	width, height int
}

// New builds a model over s and loads the first snapshot.
func New(s *store.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := list.New(nil, itemDelegate{}, 78, 20)
	l.Title = titleStyle.Render("Projects")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("row", "rows")
	extra := func() []key.Binding {
		return []key.Binding{toggleBind, addBind, projectBind, editBind, dueBind, prioBind, deleteBind, soonBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{store: s, log: logger, list: l, ti: ti, width: 80, height: 24}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, s *store.Store, logger *log.Logger) error {
	p := tea.NewProgram(New(s, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// refresh rebuilds the rows from the store, keeping the selection on the
// same entity when it still exists.
func (m *Model) refresh() {
	keep, _ := m.selected()
	projects := m.store.Projects()
	snap := snapshot{projects: map[string]model.Project{}, todos: map[string]model.Todo{}}
	var items []list.Item
	sel := -1
	done, total := 0, 0
	for _, p := range projects {
		snap.projects[p.ID] = p
		r := row{kind: projectRow, projectID: p.ID, filter: p.Title}
		if r.same(keep) {
			sel = len(items)
		}
		items = append(items, r)
		for _, t := range p.Todos {
			snap.todos[t.ID] = t
			if t.Completed {
				done++
			}
			total++
			r := row{kind: todoRow, projectID: p.ID, todoID: t.ID, filter: p.Title + " " + t.Text}
			if r.same(keep) {
				sel = len(items)
			}
			items = append(items, r)
		}
	}
	m.list.SetDelegate(itemDelegate{snap: snap})
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Projects"),
		successStyle.Render(ui.Current().SymDone), done,
		pendingStyle.Render(ui.Current().SymUnchecked), total-done,
		accentStyle.Render("Total"), total,
	)
	switch {
	case sel >= 0:
		m.list.Select(sel)
	case m.list.Index() >= len(items) && len(items) > 0:
		m.list.Select(len(items) - 1)
	}
}

func (r row) same(o row) bool {
	return o.projectID != "" && r.kind == o.kind && r.projectID == o.projectID && r.todoID == o.todoID
}

func (m Model) selected() (row, bool) {
	r, ok := m.list.SelectedItem().(row)
	return r, ok
}

// apply reports err in the status line, then refreshes.
func (m *Model) apply(action string, err error) {
	if err != nil {
		m.status = errorStyle.Render(action + ": " + err.Error())
		m.log.Error("tui action failed", "action", action, "err", err)
	} else {
		m.status = ""
	}
	m.refresh()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(m.width-4, m.listHeight())
		return m, nil
	}
	if m.mode != browsing {
		return m.updateInput(msg)
	}
	if m.soon {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "s", "esc":
				m.soon = false
			}
		}
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if cmd, handled := m.handleKey(k); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Cmd, bool) {
	r, hasRow := m.selected()
	switch k.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			return nil, false
		}
		return tea.Quit, true
	case "s":
		m.soon = true
		return nil, true
	case "n":
		return m.openInput(addingProject, row{}, ""), true
	}
	if !hasRow {
		return nil, false
	}
	switch k.String() {
	case " ":
		if r.kind == todoRow {
			_, err := m.store.ToggleTodo(r.projectID, r.todoID)
			m.apply("toggle", err)
		}
		return nil, true
	case "a":
		return m.openInput(addingTodo, r, ""), true
	case "e":
		switch r.kind {
		case projectRow:
			p, ok := m.store.Project(r.projectID)
			if !ok {
				m.apply("edit", store.ErrProjectNotFound)
				return nil, true
			}
			return m.openInput(editing, r, p.Title), true
		default:
			t, ok := m.liveTodo(r)
			if !ok {
				m.apply("edit", store.ErrTodoNotFound)
				return nil, true
			}
			return m.openInput(editing, r, t.Text), true
		}
	case "t":
		if r.kind != todoRow {
			return nil, true
		}
		t, ok := m.liveTodo(r)
		if !ok {
			m.apply("due date", store.ErrTodoNotFound)
			return nil, true
		}
		cur := ""
		if t.DueDate != nil {
			cur = t.DueDate.Format("2006-01-02")
		}
		return m.openInput(dating, r, cur), true
	case "p":
		if r.kind != todoRow {
			return nil, true
		}
		t, ok := m.liveTodo(r)
		if !ok {
			m.apply("priority", store.ErrTodoNotFound)
			return nil, true
		}
		_, err := m.store.SetTodoPriority(r.projectID, r.todoID, t.Priority.Next())
		m.apply("priority", err)
		return nil, true
	case "d":
		var err error
		if r.kind == projectRow {
			err = m.store.RemoveProject(r.projectID)
		} else {
			err = m.store.RemoveTodo(r.projectID, r.todoID)
		}
		m.apply("delete", err)
		return nil, true
	}
	return nil, false
}

func (m Model) liveTodo(r row) (model.Todo, bool) {
	p, ok := m.store.Project(r.projectID)
	if !ok {
		return model.Todo{}, false
	}
	t := p.Todo(r.todoID)
	if t == nil {
		return model.Todo{}, false
	}
	return *t, true
}

func (m *Model) openInput(md mode, target row, value string) tea.Cmd {
	m.mode = md
	m.target = target
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	switch md {
	case dating:
		m.ti.Placeholder = datepick.Hint
	case addingProject:
		m.ti.Placeholder = "Project title..."
	default:
		m.ti.Placeholder = "Todo text..."
	}
	m.list.SetSize(m.width-4, m.listHeight())
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.list.SetSize(m.width-4, m.listHeight())
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			if problem := m.submit(strings.TrimSpace(m.ti.Value())); problem != "" {
				m.inputErr = problem
				return m, nil
			}
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// submit applies the open input. A non-empty result keeps the input open.
func (m *Model) submit(value string) string {
	r := m.target
	switch m.mode {
	case addingProject:
		if value == "" {
			return "Title cannot be empty"
		}
		p, err := m.store.AddProject(value)
		m.apply("new project", err)
		if err == nil {
			m.selectRow(row{kind: projectRow, projectID: p.ID})
		}
	case addingTodo:
		var id string
		err := m.store.Update(r.projectID, func(p *model.Project) {
			t := p.AddTodo()
			t.Text = value
			id = t.ID
		})
		m.apply("add todo", err)
		if err == nil {
			m.selectRow(row{kind: todoRow, projectID: r.projectID, todoID: id})
		}
	case editing:
		if r.kind == projectRow {
			if value == "" {
				return "Title cannot be empty"
			}
			m.apply("rename", m.store.Update(r.projectID, func(p *model.Project) { p.Title = value }))
			break
		}
		_, err := m.store.SetTodoText(r.projectID, r.todoID, value)
		m.apply("edit", err)
	case dating:
		sel, err := datepick.Pick(value, m.store.Now())
		switch {
		case errors.Is(err, datepick.ErrCleared):
			_, err = m.store.SetTodoDueDate(r.projectID, r.todoID, nil)
		case err != nil:
			return "Try " + datepick.Hint
		default:
			_, err = m.store.SetTodoDueDate(r.projectID, r.todoID, &sel.Date)
		}
		m.apply("due date", err)
	}
	return ""
}

func (m *Model) selectRow(target row) {
	for i, it := range m.list.Items() {
		if r, ok := it.(row); ok && r.same(target) {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) listHeight() int {
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	if m.status != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	if m.soon {
		return frameStyle.Render(soonView(m.store.DueSoon()))
	}
	content := m.list.View()
	if m.status != "" {
		content += "\n" + m.status
	}
	if m.mode != browsing {
		title := prompts[m.mode]
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		bar := frameStyle.Render(title + "\n" + m.ti.View())
		content = content + "\n" + bar
	}
	return frameStyle.Render(content)
}

func soonView(r due.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Due soon") + "\n")
	for _, bucket := range due.AllBuckets {
		items := r.Get(bucket)
		b.WriteString("\n" + accentStyle.Render(ui.BucketTitle(bucket)) + mutedStyle.Render(fmt.Sprintf(" (%d)", len(items))) + "\n")
		if len(items) == 0 {
			b.WriteString("  " + mutedStyle.Render("(none)") + "\n")
			continue
		}
		for _, it := range items {
			b.WriteString("  " + todoLine(it.Todo) + "  " + mutedStyle.Render(it.ProjectTitle) + "\n")
		}
	}
	b.WriteString("\n" + helpStyle.Render("s/esc back • q quit"))
	return b.String()
}
