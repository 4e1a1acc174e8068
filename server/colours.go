package server

import "fmt"

// ANSI colours for the startup route table
const (
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiGray    = "\033[90m"
	ansiReset   = "\033[0m"
)

var methodColors = map[string]string{
	"GET":     ansiGreen,
	"POST":    ansiBlue,
	"PUT":     ansiCyan,
	"PATCH":   ansiMagenta,
	"DELETE":  ansiYellow,
	"OPTIONS": ansiGray,
}

// colouredMethod pads method to a fixed width so route paths line up
func colouredMethod(method string) string {
	color, ok := methodColors[method]
	if !ok {
		color = ansiGray
	}
	return color + fmt.Sprintf(" %-7s", method) + ansiReset
}
