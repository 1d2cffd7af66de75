package core

// Color is the foreground color of a screen cell. Games pick from this
// palette; the render layer decides how a color appears on the actual
// terminal.
type Color uint8

// The palette covers what the catalog draws: reds and greens for
// reaction signals and match states, bright variants for highlights,
// orange for food and slot symbols, gray for dimmed chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ansiCodes maps palette entries to ANSI 256-color codes. The named
// colors use the standard 16; orange and gray come from the extended
// cube so they read the same across common terminal themes.
var ansiCodes = [...]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the 256-color code for the color, or "" for
// ColorDefault and out-of-range values, which render unstyled.
func (c Color) ANSI() string {
	if int(c) < len(ansiCodes) {
		return ansiCodes[c]
	}
	return ""
}
