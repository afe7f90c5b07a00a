package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-explorers/internal/level"
	"github.com/vovakirdan/shape-explorers/internal/shapes"
)

// Board cell geometry in terminal characters, borders included.
const (
	cellInnerW = 8
	cellInnerH = 3
	cellW      = cellInnerW + 2
	cellH      = cellInnerH + 2
)

// feedbackKind is the brief highlight shown on a tapped cell.
type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackCorrect
	feedbackWrong
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("237")).
			Width(cellInnerW).
			Height(cellInnerH)

	cursorColor  = lipgloss.Color("229")
	correctColor = lipgloss.Color("10")
	wrongColor   = lipgloss.Color("9")
)

// boardView is everything renderBoard needs to draw one frame.
type boardView struct {
	shapes     []level.Shape
	identified func(id string) bool
	cursor     level.Cell
	showCursor bool
	flash      level.Cell
	flashKind  feedbackKind
}

// renderBoard draws the GridRows x GridCols board. Each occupied cell shows
// the shape's number and glyph in its color; found shapes show a check mark.
func renderBoard(v boardView) string {
	grid := level.Grid(v.shapes)

	numbers := make(map[string]int, len(v.shapes))
	for i, sh := range v.shapes {
		numbers[sh.ID] = i + 1
	}

	rows := make([]string, level.GridRows)
	for r := range level.GridRows {
		cells := make([]string, level.GridCols)
		for c := range level.GridCols {
			cell := level.Cell{Row: r, Col: c}
			cells[c] = renderCell(v, cell, grid[r][c], numbers)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(v boardView, cell level.Cell, sh *level.Shape, numbers map[string]int) string {
	style := cellStyle
	switch {
	case v.flashKind == feedbackCorrect && v.flash == cell:
		style = style.BorderForeground(correctColor).Border(lipgloss.ThickBorder())
	case v.flashKind == feedbackWrong && v.flash == cell:
		style = style.BorderForeground(wrongColor).Border(lipgloss.ThickBorder())
	case v.showCursor && v.cursor == cell:
		style = style.BorderForeground(cursorColor).Border(lipgloss.ThickBorder())
	}

	if sh == nil {
		return style.Render("")
	}

	label := subtleStyle.Render(fmt.Sprintf("%d", numbers[sh.ID]))
	if v.identified != nil && v.identified(sh.ID) {
		body := successStyle.Render("   ✓")
		return style.Render(label + "\n" + body)
	}

	return style.Render(label + "\n" + glyphArt(sh.Type, sh.Color))
}

// glyphArt renders the multi-line art of a shape type in the given color.
func glyphArt(t shapes.Type, color shapes.Color) string {
	g, ok := shapes.GlyphFor(t)
	if !ok {
		return "?"
	}
	paint := lipgloss.NewStyle().Foreground(color.Terminal())
	lines := make([]string, len(g.Art))
	for i, line := range g.Art {
		lines[i] = paint.Render(line)
	}
	return strings.Join(lines, "\n")
}

// glyphSymbol renders the compact one-character symbol of a shape.
func glyphSymbol(t shapes.Type, color shapes.Color) string {
	g, ok := shapes.GlyphFor(t)
	if !ok {
		return "?"
	}
	return lipgloss.NewStyle().Foreground(color.Terminal()).Render(g.Symbol)
}

// boardLayout locates the board on screen for mouse hit-testing.
type boardLayout struct {
	top  int // Screen row of the board's first line
	left int // Screen column of the board's first character
}

// cellAt maps a screen coordinate to a board cell.
func (b boardLayout) cellAt(x, y int) (level.Cell, bool) {
	if x < b.left || y < b.top {
		return level.Cell{}, false
	}
	col := (x - b.left) / cellW
	row := (y - b.top) / cellH
	if row >= level.GridRows || col >= level.GridCols {
		return level.Cell{}, false
	}
	return level.Cell{Row: row, Col: col}, true
}

// progressBar renders a fixed-width bar for a fraction in [0, 1].
func progressBar(fraction float64, width int) string {
	fraction = max(0, min(1, fraction))
	filled := int(fraction*float64(width) + 0.5)
	return successStyle.Render(strings.Repeat("█", filled)) +
		subtleStyle.Render(strings.Repeat("░", width-filled))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
