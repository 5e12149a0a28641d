package due

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

var now = time.Date(2026, time.October, 17, 15, 30, 0, 0, time.UTC)

func dated(p *model.Project, text string, d time.Time) {
	td := p.AddTodo()
	td.Text = text
	td.SetDueDate(&d)
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		d    time.Time
		want int
	}{
		{"same day earlier", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), 0},
		{"same day later", time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC), 0},
		{"tomorrow morning", time.Date(2026, 10, 18, 0, 1, 0, 0, time.UTC), 1},
		{"yesterday", time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC), -1},
		{"across month", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.d, now))
		})
	}
}

func TestDaysUntilUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	localNow := time.Date(2026, 10, 17, 8, 0, 0, 0, loc)
	// 22:00 UTC on the 17th is already the 18th in UTC+10
	d := time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(d, localNow))
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		offset int
		want   Bucket
		ok     bool
	}{
		{-1, "", false},
		{0, BucketToday, true},
		{1, BucketTomorrow, true},
		{2, BucketNextWeek, true},
		{7, BucketNextWeek, true},
		{8, "", false},
	}
	for _, tt := range tests {
		got, ok := Classify(now.AddDate(0, 0, tt.offset), now)
		assert.Equal(t, tt.ok, ok, "offset %d", tt.offset)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)
	}
}

func TestBucketsAreExclusive(t *testing.T) {
	p := model.NewProject("Home")
	dated(p, "today", now)
	dated(p, "tomorrow", now.AddDate(0, 0, 1))
	dated(p, "in three days", now.AddDate(0, 0, 3))
	dated(p, "in a month", now.AddDate(0, 1, 0))
	p.AddTodo().Text = "no date"
	projects := []model.Project{p.Clone()}

	today := Today(projects, now)
	require.Len(t, today, 1)
	assert.Equal(t, "today", today[0].Todo.Text)
	assert.Equal(t, "Home", today[0].ProjectTitle)
	assert.Equal(t, p.ID, today[0].ProjectID)

	tomorrow := Tomorrow(projects, now)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, "tomorrow", tomorrow[0].Todo.Text)

	week := NextWeek(projects, now)
	require.Len(t, week, 1)
	assert.Equal(t, "in three days", week[0].Todo.Text)
}

func TestBucketsMatchSingleFilters(t *testing.T) {
	work := model.NewProject("Work")
	home := model.NewProject("Home")
	dated(work, "w1", now)
	dated(home, "h1", now)
	dated(home, "h2", now.AddDate(0, 0, 6))
	projects := []model.Project{work.Clone(), home.Clone()}

	r := Buckets(projects, now)
	assert.Equal(t, Today(projects, now), r.Today)
	assert.Equal(t, Tomorrow(projects, now), r.Tomorrow)
	assert.Equal(t, NextWeek(projects, now), r.NextWeek)
	assert.Equal(t, 3, r.Len())

	// store order is kept: projects first, then todos
	require.Len(t, r.Today, 2)
	assert.Equal(t, "Work", r.Today[0].ProjectTitle)
	assert.Equal(t, "Home", r.Today[1].ProjectTitle)
}

func TestFiltersDoNotAliasInput(t *testing.T) {
	p := model.NewProject("Home")
	dated(p, "today", now)
	projects := []model.Project{p.Clone()}

	items := Today(projects, now)
	require.Len(t, items, 1)
	items[0].Todo.Text = "changed"
	*items[0].Todo.DueDate = now.AddDate(1, 0, 0)

	assert.Equal(t, "today", projects[0].Todos[0].Text)
	assert.Equal(t, 2026, projects[0].Todos[0].DueDate.Year())
}

func TestResultGet(t *testing.T) {
	p := model.NewProject("Home")
	dated(p, "t", now.AddDate(0, 0, 1))
	r := Buckets([]model.Project{p.Clone()}, now)

	assert.Len(t, r.Get(BucketTomorrow), 1)
	assert.Empty(t, r.Get(BucketToday))
	assert.Nil(t, r.Get("bogus"))
}
