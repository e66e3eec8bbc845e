package lib

import "github.com/fatih/color"

var (
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Colorize wraps the text with the specified color, honoring NO_COLOR and non terminal outputs.
func Colorize(text string, c *color.Color) string {
	return c.Sprint(text)
}
