package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Makepad-fr/tada/internal/datepick"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Env carries what subcommands need from the root command.
type Env struct {
	Store    *store.Store
	Out, Err io.Writer
	Log      *log.Logger

	// Registry is served at /metrics by `serve`.
	Registry *prometheus.Registry
	Addr     string

	// RunTUI and Serve default to the tui and httpapi packages.
	RunTUI func(ctx context.Context, env Env) error
	Serve  func(ctx context.Context, env Env) error
}

func (e *Env) defaults() {
	if e.Out == nil {
		e.Out = os.Stdout
	}
	if e.Err == nil {
		e.Err = os.Stderr
	}
	if e.Log == nil {
		e.Log = log.New(io.Discard)
	}
}

// usageError is reported with exit code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, env Env) int {
	env.defaults()
	if len(args) == 0 {
		PrintHelp(env.Err)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	var err error
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(env.Out)
		return ExitOK
	case "ls":
		err = doList(env)
	case "soon":
		err = doSoon(env)
	case "project":
		err = doProject(env, a)
	case "add":
		err = doAdd(env, a)
	case "edit":
		err = doEdit(env, a)
	case "done":
		err = doToggle(env, a)
	case "rm":
		err = doRemove(env, a)
	case "due":
		err = doDue(env, a)
	case "prio":
		err = doPriority(env, a)
	case "tui":
		if env.RunTUI == nil {
			err = errors.New("tui: not available")
			break
		}
		err = env.RunTUI(ctx, env)
	case "serve":
		if env.Serve == nil {
			err = errors.New("serve: not available")
			break
		}
		err = env.Serve(ctx, env)
	default:
		ui.Fail(env.Err, "unknown subcommand: "+cmd)
		fmt.Fprintln(env.Err)
		PrintHelp(env.Err)
		return ExitUsage
	}
	return report(env, cmd, err)
}

func report(env Env, cmd string, err error) int {
	if err == nil {
		return ExitOK
	}
	ui.Fail(env.Err, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	env.Log.Error("command failed", "cmd", cmd, "err", err)
	return ExitError
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `tada - projects, todos and what is due soon

Usage:
  tada [flags] <subcommand> [args]

Subcommands:
  ls                          List projects and their todos
  soon                        Show todos due today, tomorrow and next week
  project add <title...>      Create a project
  project rm <p>              Delete a project and its todos
  add <p> [text...]           Add a todo to project <p>
  edit <p> <t> <text...>      Change the text of todo <t>
  done <p> <t>                Toggle completion of todo <t>
  rm <p> <t>                  Delete todo <t>
  due <p> <t> <when>          Set the due date (%s)
  prio <p> <t> <level>        Set priority (low, medium, high)
  tui                         Interactive mode
  serve                       Read-only HTTP view with /metrics

<p> and <t> are 1-based indexes as shown by ls, or an id or unique id prefix.

Examples:
  tada project add Groceries
  tada add 1 Buy milk
  tada due 1 1 tomorrow
  tada done 1 1
`, datepick.Hint)
}

// -------------- subcommand impls ----------------

func doList(env Env) error {
	projects := env.Store.Projects()
	header, done, total := ui.Summary(projects)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(done, total, 28)))
	lines = append(lines, "")
	lines = append(lines, ui.ProjectLines(projects)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `tada add 1 \"Buy milk\"`"))
	ui.Panel(env.Out, lines)
	return nil
}

func doSoon(env Env) error {
	r := env.Store.DueSoon()
	lines := []string{ui.C(ui.Current().Title, "Due soon"), ""}
	lines = append(lines, ui.BucketLines(r)...)
	ui.Panel(env.Out, lines)
	return nil
}

func doProject(env Env, a []string) error {
	if len(a) == 0 {
		return usagef("usage: tada project <add|rm> ...")
	}
	switch a[0] {
	case "add":
		title := strings.TrimSpace(strings.Join(a[1:], " "))
		if title == "" {
			return usagef("usage: tada project add <title...>")
		}
		p, err := env.Store.AddProject(title)
		if err != nil {
			return fmt.Errorf("add project: %w", err)
		}
		ui.OK(env.Out, "added project "+shortID(p.ID))
		return nil
	case "rm":
		if len(a) != 2 {
			return usagef("usage: tada project rm <p>")
		}
		p, err := resolveProject(env.Store.Projects(), a[1])
		if err != nil {
			return err
		}
		if err := env.Store.RemoveProject(p.ID); err != nil {
			return fmt.Errorf("remove project: %w", err)
		}
		ui.OK(env.Out, "removed project "+p.Title)
		return nil
	}
	return usagef("project: unknown action %q", a[0])
}

func doAdd(env Env, a []string) error {
	if len(a) < 1 {
		return usagef("usage: tada add <p> [text...]")
	}
	p, err := resolveProject(env.Store.Projects(), a[0])
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(a[1:], " "))
	var id string
	err = env.Store.Update(p.ID, func(live *model.Project) {
		t := live.AddTodo()
		t.Text = text
		id = t.ID
	})
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}
	ui.OK(env.Out, "added todo "+shortID(id))
	return nil
}

func doEdit(env Env, a []string) error {
	if len(a) < 3 {
		return usagef("usage: tada edit <p> <t> <text...>")
	}
	p, t, err := resolveTodo(env.Store.Projects(), a[0], a[1])
	if err != nil {
		return err
	}
	if _, err := env.Store.SetTodoText(p.ID, t.ID, strings.TrimSpace(strings.Join(a[2:], " "))); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	ui.OK(env.Out, "updated")
	return nil
}

func doToggle(env Env, a []string) error {
	if len(a) != 2 {
		return usagef("usage: tada done <p> <t>")
	}
	p, t, err := resolveTodo(env.Store.Projects(), a[0], a[1])
	if err != nil {
		return err
	}
	updated, err := env.Store.ToggleTodo(p.ID, t.ID)
	if err != nil {
		return fmt.Errorf("toggle: %w", err)
	}
	if updated.Completed {
		ui.OK(env.Out, "completed")
	} else {
		ui.OK(env.Out, "reopened")
	}
	return nil
}

func doRemove(env Env, a []string) error {
	if len(a) != 2 {
		return usagef("usage: tada rm <p> <t>")
	}
	p, t, err := resolveTodo(env.Store.Projects(), a[0], a[1])
	if err != nil {
		return err
	}
	if err := env.Store.RemoveTodo(p.ID, t.ID); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	ui.OK(env.Out, "removed")
	return nil
}

func doDue(env Env, a []string) error {
	if len(a) < 3 {
		return usagef("usage: tada due <p> <t> <when>")
	}
	p, t, err := resolveTodo(env.Store.Projects(), a[0], a[1])
	if err != nil {
		return err
	}
	sel, err := datepick.Pick(strings.Join(a[2:], " "), env.Store.Now())
	switch {
	case errors.Is(err, datepick.ErrCleared):
		if _, err := env.Store.SetTodoDueDate(p.ID, t.ID, nil); err != nil {
			return fmt.Errorf("due: %w", err)
		}
		ui.OK(env.Out, "due date cleared")
		return nil
	case err != nil:
		return usagef("due: %v (try %s)", err, datepick.Hint)
	}
	if _, err := env.Store.SetTodoDueDate(p.ID, t.ID, &sel.Date); err != nil {
		return fmt.Errorf("due: %w", err)
	}
	ui.OK(env.Out, "due "+sel.Display)
	return nil
}

func doPriority(env Env, a []string) error {
	if len(a) != 3 {
		return usagef("usage: tada prio <p> <t> <low|medium|high>")
	}
	prio, ok := model.ParsePriority(a[2])
	if !ok {
		return usagef("prio: unknown priority %q", a[2])
	}
	p, t, err := resolveTodo(env.Store.Projects(), a[0], a[1])
	if err != nil {
		return err
	}
	if _, err := env.Store.SetTodoPriority(p.ID, t.ID, prio); err != nil {
		return fmt.Errorf("prio: %w", err)
	}
	ui.OK(env.Out, "priority "+string(prio))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
