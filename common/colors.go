package common

import (
	"github.com/fatih/color"
)

var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
)

// StatusColor returns the print func used for a machine status code.
func StatusColor(code string) func(a ...interface{}) string {
	switch code {
	case "OK":
		return Green
	case "Warning":
		return Yellow
	case "Failure":
		return Red
	default:
		return Blue
	}
}
