// Package due sorts todos into the "due soon" buckets shown by the aggregate view.
//
// All comparisons are made on calendar days in the location of the reference
// time, so a todo due at any moment of today's date is due today.
package due

import (
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// Bucket names one of the due-soon groupings.
type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketNextWeek Bucket = "week"
)

// AllBuckets lists the buckets in display order.
var AllBuckets = []Bucket{BucketToday, BucketTomorrow, BucketNextWeek}

// Item is a todo matched by a bucket, annotated with its parent project.
type Item struct {
	ProjectID    string
	ProjectTitle string
	Todo         model.Todo
}

// Result holds the three buckets computed in one pass.
type Result struct {
	Today    []Item
	Tomorrow []Item
	NextWeek []Item
}

// Get returns the items of bucket b.
func (r Result) Get(b Bucket) []Item {
	switch b {
	case BucketToday:
		return r.Today
	case BucketTomorrow:
		return r.Tomorrow
	case BucketNextWeek:
		return r.NextWeek
	}
	return nil
}

// Len is the number of items across all buckets.
func (r Result) Len() int { return len(r.Today) + len(r.Tomorrow) + len(r.NextWeek) }

// DaysUntil counts calendar days from now to d in now's location.
// Zero means the same day; negative values are in the past.
func DaysUntil(d, now time.Time) int {
	loc := now.Location()
	d = d.In(loc)
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Classify reports which bucket a due date falls in.
func Classify(d, now time.Time) (Bucket, bool) {
	switch n := DaysUntil(d, now); {
	case n == 0:
		return BucketToday, true
	case n == 1:
		return BucketTomorrow, true
	case n >= 2 && n <= 7:
		return BucketNextWeek, true
	}
	return "", false
}

// Today returns todos due on now's calendar day.
func Today(projects []model.Project, now time.Time) []Item {
	return filter(projects, now, BucketToday)
}

// Tomorrow returns todos due on the day after now.
func Tomorrow(projects []model.Project, now time.Time) []Item {
	return filter(projects, now, BucketTomorrow)
}

// NextWeek returns todos due between 2 and 7 days from now, inclusive.
func NextWeek(projects []model.Project, now time.Time) []Item {
	return filter(projects, now, BucketNextWeek)
}

// Buckets computes all three buckets at once.
func Buckets(projects []model.Project, now time.Time) Result {
	var r Result
	walk(projects, now, func(b Bucket, it Item) {
		switch b {
		case BucketToday:
			r.Today = append(r.Today, it)
		case BucketTomorrow:
			r.Tomorrow = append(r.Tomorrow, it)
		case BucketNextWeek:
			r.NextWeek = append(r.NextWeek, it)
		}
	})
	return r
}

func filter(projects []model.Project, now time.Time, want Bucket) []Item {
	var out []Item
	walk(projects, now, func(b Bucket, it Item) {
		if b == want {
			out = append(out, it)
		}
	})
	return out
}

func walk(projects []model.Project, now time.Time, fn func(Bucket, Item)) {
	for _, p := range projects {
		for _, t := range p.Todos {
			if t.DueDate == nil {
				continue
			}
			b, ok := Classify(*t.DueDate, now)
			if !ok {
				continue
			}
			fn(b, Item{ProjectID: p.ID, ProjectTitle: p.Title, Todo: t.Clone()})
		}
	}
}
