package cli

import (
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// resolveProject finds a project by 1-based index, id, or unique id prefix.
func resolveProject(projects []model.Project, ref string) (model.Project, error) {
	i, err := resolve(len(projects), ref, func(i int) string { return projects[i].ID })
	if err != nil {
		return model.Project{}, usagef("project %s (have %d; run `tada ls`)", err.Error(), len(projects))
	}
	return projects[i], nil
}

// resolveTodo resolves a project reference, then a todo inside it.
func resolveTodo(projects []model.Project, pref, tref string) (model.Project, model.Todo, error) {
	p, err := resolveProject(projects, pref)
	if err != nil {
		return model.Project{}, model.Todo{}, err
	}
	i, err := resolve(len(p.Todos), tref, func(i int) string { return p.Todos[i].ID })
	if err != nil {
		return model.Project{}, model.Todo{}, usagef("todo %s in %q (have %d)", err.Error(), p.Title, len(p.Todos))
	}
	return p, p.Todos[i], nil
}

type refError string

func (e refError) Error() string { return string(e) }

func resolve(n int, ref string, id func(int) string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, refError("reference is empty")
	}
	if k, err := strconv.Atoi(ref); err == nil {
		if k < 1 || k > n {
			return 0, refError("index out of range: " + ref)
		}
		return k - 1, nil
	}
	match := -1
	for i := 0; i < n; i++ {
		cur := id(i)
		if cur == ref {
			return i, nil
		}
		if strings.HasPrefix(cur, ref) {
			if match >= 0 {
				return 0, refError("id prefix is ambiguous: " + ref)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, refError("not found: " + ref)
	}
	return match, nil
}
