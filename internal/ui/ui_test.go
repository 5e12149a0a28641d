package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/model"
)

func init() { SetTheme("mono") }

func TestThemes(t *testing.T) {
	defer SetTheme("mono")
	assert.Equal(t, []string{"classic", "mono", "neon"}, Themes())
	assert.True(t, SetTheme("NEON"))
	assert.Equal(t, "◼", Current().BoxChecked)
	assert.False(t, SetTheme("solarized"))
	assert.Equal(t, "☑", Current().BoxChecked)
}

func TestColorMode(t *testing.T) {
	defer SetTheme("mono")
	defer SetColorMode(ColorAuto)

	SetTheme("classic")
	SetColorMode(ColorAlways)
	var buf bytes.Buffer
	OK(&buf, "saved")
	assert.Equal(t, fgGreen+"✔ saved"+reset+"\n", buf.String())

	SetColorMode(ColorAuto)
	buf.Reset()
	Fail(&buf, "boom")
	assert.Equal(t, "✖ boom\n", buf.String())

	SetColorMode(ColorNever)
	assert.Equal(t, "x", C(fgRed, "x"))

	m, ok := ParseColorMode("always")
	assert.True(t, ok)
	assert.Equal(t, ColorAlways, m)
	_, ok = ParseColorMode("sometimes")
	assert.False(t, ok)
}

func TestPanelPadsToWidestLine(t *testing.T) {
	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "abcd"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "+------+", lines[0])
	assert.Equal(t, "| ab   |", lines[1])
	assert.Equal(t, "| abcd |", lines[2])
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghijk", 7))
}

func TestProjectLines(t *testing.T) {
	assert.Equal(t, []string{"no projects"}, ProjectLines(nil))

	d := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	p := model.NewProject("Home")
	td := p.AddTodo()
	td.Text = "Water plants"
	td.SetDueDate(&d)
	p.AddTodo().ToggleComplete()

	lines := ProjectLines([]model.Project{*p})
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " 1. Home")
	assert.Contains(t, lines[1], "[ ] m Water plants  Monday 19 Oct")
	assert.Contains(t, lines[2], "[x] m (empty)")
}

func TestBucketLines(t *testing.T) {
	todo := model.NewTodo()
	todo.Text = "Pay rent"
	r := due.Result{Tomorrow: []due.Item{{ProjectTitle: "Bills", Todo: todo}}}

	lines := BucketLines(r)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Today (0)")
	assert.Contains(t, joined, "Tomorrow (1)")
	assert.Contains(t, joined, "Pay rent  Bills")
	assert.Contains(t, joined, "Next week (0)")
}
