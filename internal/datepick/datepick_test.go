package datepick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Saturday
var now = time.Date(2026, time.October, 17, 18, 45, 0, 0, time.UTC)

func TestPick(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		display string
	}{
		{"today", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), "Saturday 17 Oct"},
		{"Tomorrow", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), "Sunday 18 Oct"},
		{"+3", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), "Tuesday 20 Oct"},
		{"+10d", time.Date(2026, 10, 27, 0, 0, 0, 0, time.UTC), "Tuesday 27 Oct"},
		{"mon", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "Monday 19 Oct"},
		{"saturday", time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), "Saturday 24 Oct"},
		{"2026-12-31", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "Thursday 31 Dec"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := Pick(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(sel.Date), "got %s", sel.Date)
			assert.Equal(t, tt.display, sel.Display)
		})
	}
}

func TestPickClear(t *testing.T) {
	for _, in := range []string{"none", "clear", "-"} {
		_, err := Pick(in, now)
		assert.ErrorIs(t, err, ErrCleared, in)
	}
}

func TestPickRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "soon", "+x", "+-2", "2026-13-01", "mo"} {
		_, err := Pick(in, now)
		assert.ErrorIs(t, err, ErrUnrecognized, in)
	}
}

func TestPickKeepsLocation(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	sel, err := Pick("2026-10-20", now.In(loc))
	require.NoError(t, err)
	assert.Equal(t, loc, sel.Date.Location())
	assert.Equal(t, 0, sel.Date.Hour())
}
