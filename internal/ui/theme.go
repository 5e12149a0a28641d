package ui

import (
	"sort"
	"strings"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymUnchecked, SymFail                string
	PrioLow, PrioMedium, PrioHigh                 string

	// plain themes never emit escape codes
	plain bool
}

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•", SymFail: "✖",
		PrioLow: "↓", PrioMedium: "·", PrioHigh: "↑",
	},
	"neon": {
		Title: fgPink, Muted: fgGray, Accent: fgCyan,
		Success: fgGreen, Error: fgRed, Pending: fgGold,
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•", SymFail: "✖",
		PrioLow: "▁", PrioMedium: "▄", PrioHigh: "█",
	},
	"mono": {
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymUnchecked: "-", SymFail: "!",
		PrioLow: "l", PrioMedium: "m", PrioHigh: "H",
		plain: true,
	},
}

var current = themes["classic"]

// Themes lists the known theme names.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetTheme switches the active theme. Unknown names fall back to classic
// and report false.
func SetTheme(name string) bool {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		t = themes["classic"]
	}
	current = t
	return ok
}

// Expose what renderers need
func Current() Theme { return current }
