package store

import (
	"encoding/json"
	"fmt"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

// Persisted layout: an array of projects, each with its nested todos.
// dueDateDisplay is written for readers of the raw blob and ignored on load.

type todoRecord struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	Completed      bool    `json:"completed"`
	Priority       string  `json:"priority,omitempty"`
	DueDate        *string `json:"dueDate"`
	DueDateDisplay string  `json:"dueDateDisplay"`
}

type projectRecord struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Todos []todoRecord `json:"todos"`
}

const projectsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": ["array", "null"],
  "items": {
    "type": "object",
    "required": ["id", "title", "todos"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "todos": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "required": ["id"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "text": {"type": "string"},
            "completed": {"type": "boolean"},
            "priority": {"type": "string"},
            "dueDate": {"type": ["string", "null"]},
            "dueDateDisplay": {"type": "string"}
          }
        }
      }
    }
  }
}`

var blobSchema = jsonschema.MustCompileString("projects.schema.json", projectsSchema)

func encode(projects []*model.Project) ([]byte, error) {
	out := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		rec := projectRecord{ID: p.ID, Title: p.Title, Todos: make([]todoRecord, 0, len(p.Todos))}
		for _, t := range p.Todos {
			tr := todoRecord{
				ID:             t.ID,
				Text:           t.Text,
				Completed:      t.Completed,
				Priority:       string(t.Priority),
				DueDateDisplay: t.DueDateDisplay(),
			}
			if t.DueDate != nil {
				s := t.DueDate.Format(time.RFC3339)
				tr.DueDate = &s
			}
			rec.Todos = append(rec.Todos, tr)
		}
		out = append(out, rec)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// decodeIssue describes something dropped while rebuilding entities.
type decodeIssue struct {
	msg  string
	args []any
}

// decode validates and parses a blob.
func decode(b []byte) ([]projectRecord, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := blobSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var recs []projectRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return recs, nil
}

// rebuild turns records into fresh entities, keeping ids and re-deriving typed fields.
func rebuild(recs []projectRecord, loc *time.Location) ([]*model.Project, []decodeIssue) {
	var issues []decodeIssue
	seenProjects := make(map[string]bool, len(recs))
	projects := make([]*model.Project, 0, len(recs))

	for _, pr := range recs {
		if seenProjects[pr.ID] {
			issues = append(issues, decodeIssue{"dropped duplicate project", []any{"id", pr.ID}})
			continue
		}
		seenProjects[pr.ID] = true

		p := model.NewProject(pr.Title)
		p.ID = pr.ID
		seenTodos := make(map[string]bool, len(pr.Todos))
		for _, tr := range pr.Todos {
			if seenTodos[tr.ID] {
				issues = append(issues, decodeIssue{"dropped duplicate todo", []any{"project", pr.ID, "id", tr.ID}})
				continue
			}
			seenTodos[tr.ID] = true

			t := model.NewTodo()
			t.ID = tr.ID
			t.Text = tr.Text
			t.Completed = tr.Completed
			if prio, ok := model.ParsePriority(tr.Priority); ok {
				t.Priority = prio
			}
			if tr.DueDate != nil && *tr.DueDate != "" {
				d, err := parseDate(*tr.DueDate, loc)
				if err != nil {
					issues = append(issues, decodeIssue{"dropped unparsable due date", []any{"todo", tr.ID, "value", *tr.DueDate}})
				} else {
					d = d.In(loc)
					t.DueDate = &d
				}
			}
			p.Todos = append(p.Todos, t)
		}
		projects = append(projects, p)
	}
	return projects, issues
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
