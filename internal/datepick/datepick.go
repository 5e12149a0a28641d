// Package datepick turns what a user types into a due date and the string
// shown for it. It plays the part of a calendar widget for terminal front ends.
package datepick

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

var (
	// ErrCleared means the user asked to remove the due date.
	ErrCleared = errors.New("due date cleared")
	// ErrUnrecognized is returned for input that names no date.
	ErrUnrecognized = errors.New("unrecognized date")
)

// Selection is a picked calendar date and its display form.
type Selection struct {
	Date    time.Time
	Display string
}

// Hint is shown next to date inputs.
const Hint = "today, tomorrow, +N, weekday or YYYY-MM-DD (none to clear)"

// Pick resolves input relative to now. Dates are midnight in now's location.
func Pick(input string, now time.Time) (Selection, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := midnight(now)

	var d time.Time
	switch {
	case s == "none" || s == "clear" || s == "-":
		return Selection{}, ErrCleared
	case s == "today":
		d = today
	case s == "tomorrow":
		d = today.AddDate(0, 0, 1)
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(strings.TrimSuffix(s[1:], "d"))
		if err != nil || n < 0 {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
		}
		d = today.AddDate(0, 0, n)
	default:
		if wd, ok := weekday(s); ok {
			ahead := (int(wd) - int(today.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			d = today.AddDate(0, 0, ahead)
			break
		}
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
		}
		d = t
	}
	return Select(d), nil
}

// Select builds the Selection for an already known date.
func Select(d time.Time) Selection {
	return Selection{Date: d, Display: d.Format(model.DueDisplayLayout)}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return 0, false
}
