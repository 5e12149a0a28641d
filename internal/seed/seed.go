// Package seed fills an empty store with a welcome project on first run.
package seed

import (
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// WelcomeTitle is the title of the seeded project.
const WelcomeTitle = "Welcome"

type example struct {
	text     string
	inDays   int // -1 means no due date
	done     bool
	priority model.Priority
}

var examples = []example{
	{"Add a project with `tada project add <title>`", 0, false, model.PriorityHigh},
	{"Add a task with `tada add <project> <text>`", 0, false, model.PriorityMedium},
	{"Pick a due date with `tada due <project> <task> tomorrow`", 1, false, model.PriorityMedium},
	{"See what is coming up with `tada soon`", 4, false, model.PriorityLow},
	{"Toggle a task with `tada done <project> <task>`", -1, true, model.PriorityLow},
	{"Try the interactive view with `tada tui`", -1, false, model.PriorityMedium},
}

// Welcome adds the example project when s has no projects.
// It reports whether anything was added.
func Welcome(s *store.Store, now time.Time) (bool, error) {
	if s.Len() > 0 {
		return false, nil
	}
	p, err := s.AddProject(WelcomeTitle)
	if err != nil {
		return false, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = s.Update(p.ID, func(p *model.Project) {
		for _, ex := range examples {
			t := p.AddTodo()
			t.Text = ex.text
			t.Completed = ex.done
			t.Priority = ex.priority
			if ex.inDays >= 0 {
				d := today.AddDate(0, 0, ex.inDays)
				t.SetDueDate(&d)
			}
		}
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
