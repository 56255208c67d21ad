package ui

import "strings"

// Theme bundles palette, check boxes and panel borders.
// Renderers read it through Current.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Pending                                string
	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
}

var current = classic

var classic = Theme{
	Name:  "classic",
	Title: bold, Muted: fgGray, Accent: fgBlue,
	Success: fgGreen, Error: fgRed, Pending: fgYellow,
	BoxUnchecked: "☐", BoxChecked: "☑",
	CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
	H: "─", V: "│",
}

// SetTheme selects classic, neon or mono. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		current = Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		current = classic
	}
}

// Current returns the active theme.
func Current() Theme { return current }

// Box returns the check box glyph for checked.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}

// Mono reports whether the theme draws without color.
func (t Theme) Mono() bool { return t.Name == "mono" }
