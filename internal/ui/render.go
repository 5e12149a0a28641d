package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/model"
)

const maxText = 60

// PriorityGlyph returns the theme symbol for p, colored by urgency.
func PriorityGlyph(p model.Priority) string {
	t := Current()
	switch p {
	case model.PriorityHigh:
		return C(t.Error, t.PrioHigh)
	case model.PriorityLow:
		return C(t.Muted, t.PrioLow)
	default:
		return C(t.Pending, t.PrioMedium)
	}
}

// TodoLine renders one todo row without its index.
func TodoLine(td model.Todo) string {
	t := Current()
	box, color := t.BoxUnchecked, t.Muted
	if td.Completed {
		box, color = t.BoxChecked, t.Success
	}
	text := td.Text
	if text == "" {
		text = C(t.Muted, "(empty)")
	} else {
		text = Truncate(text, maxText)
	}
	line := fmt.Sprintf("%s %s %s", C(color, box), PriorityGlyph(td.Priority), text)
	if td.HasDueDate() {
		line += "  " + C(t.Accent, td.DueDateDisplay())
	}
	return line
}

// ProjectLines renders every project with its todos, numbered the way
// the cli resolves indexes.
func ProjectLines(projects []model.Project) []string {
	t := Current()
	if len(projects) == 0 {
		return []string{C(t.Muted, "no projects")}
	}
	var lines []string
	for i, p := range projects {
		if i > 0 {
			lines = append(lines, "")
		}
		d, pn := p.Stats()
		lines = append(lines, fmt.Sprintf("%s %s  %s %d  %s %d",
			Dim(fmt.Sprintf("%2d.", i+1)),
			C(t.Title, Truncate(p.Title, maxText)),
			C(t.Success, t.SymDone), d,
			C(t.Pending, t.SymUnchecked), pn,
		))
		if len(p.Todos) == 0 {
			lines = append(lines, "    "+C(t.Muted, "(no todos)"))
			continue
		}
		for j, td := range p.Todos {
			lines = append(lines, fmt.Sprintf("    %s %s", Dim(fmt.Sprintf("%2d.", j+1)), TodoLine(td)))
		}
	}
	return lines
}

// BucketTitle is the heading shown for a due-soon bucket.
func BucketTitle(b due.Bucket) string {
	switch b {
	case due.BucketToday:
		return "Today"
	case due.BucketTomorrow:
		return "Tomorrow"
	default:
		return "Next week"
	}
}

// BucketLines renders the three due-soon buckets in order.
func BucketLines(r due.Result) []string {
	t := Current()
	var lines []string
	for i, b := range due.AllBuckets {
		if i > 0 {
			lines = append(lines, "")
		}
		items := r.Get(b)
		lines = append(lines, fmt.Sprintf("%s %s", C(t.Accent, BucketTitle(b)), Dim(fmt.Sprintf("(%d)", len(items)))))
		if len(items) == 0 {
			lines = append(lines, "  "+C(t.Muted, "(none)"))
			continue
		}
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("  %s  %s", TodoLine(it.Todo), Dim(Truncate(it.ProjectTitle, 24))))
		}
	}
	return lines
}

// Summary is the header line with overall counts.
func Summary(projects []model.Project) (line string, done, total int) {
	t := Current()
	for _, p := range projects {
		d, pn := p.Stats()
		done += d
		total += d + pn
	}
	line = fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Projects"), C(t.Accent, "#"), len(projects),
		C(t.Success, t.SymDone), done,
		C(t.Pending, t.SymUnchecked), total-done,
	)
	return line, done, total
}
