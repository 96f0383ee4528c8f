// Package overlay draws a box on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws box over the middle of base. base is treated as width cells
// wide and height lines tall. The box is clipped to the base area.
func Center(base, box string, width, height int) string {
	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	x := max((width-boxW)/2, 0)
	y := max((height-boxH)/2, 0)
	return Place(base, box, x, y, width)
}

// Place draws box over base with its top-left corner at column x, line y.
// Base lines are padded to width so the box never shifts.
// This function is ANSI-aware and handles styled text correctly.
func Place(base, box string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	for i, boxLine := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}

		line := baseLines[row]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}

		boxW := ansi.StringWidth(boxLine)
		end := min(x+boxW, width)
		if end <= x {
			continue
		}

		result := ansi.Cut(line, 0, x) + ansi.Cut(boxLine, 0, end-x)
		if end < width {
			result += ansi.Cut(line, end, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
