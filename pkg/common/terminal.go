package common

import (
	"github.com/olekukonko/ts"
)

const (
	defaultBarWidth = 64
	minBarWidth     = 20
)

// TerminalWidth returns the number of columns of the controlling
// terminal, or 0 when there is none
func TerminalWidth() int {
	size, err := ts.GetSize()
	if err != nil {
		return 0
	}
	return size.Col()
}

// BarWidth sizes a progress bar to half the terminal
func BarWidth() int {
	width := TerminalWidth() / 2
	if width <= 0 {
		return defaultBarWidth
	}
	if width < minBarWidth {
		return minBarWidth
	}
	return width
}
