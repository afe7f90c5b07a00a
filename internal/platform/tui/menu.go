package tui

import (
	"fmt"
	"strings"
)

// MenuChoice is what the player picked on the start screen.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceStart
	MenuChoiceScores
	MenuChoiceQuit
)

// menuItem is one selectable entry on the start screen.
type menuItem struct {
	Title  string
	Choice MenuChoice
}

// MenuModel is the start screen. It is embedded in GameModel rather than
// run as its own program.
type MenuModel struct {
	items     []menuItem
	cursor    int
	width     int
	highScore int
	hasScores bool
}

// NewMenuModel creates the start screen. Scores is only offered when
// storage is available.
func NewMenuModel(width int, hasScores bool) MenuModel {
	items := []menuItem{{Title: "Start Game", Choice: MenuChoiceStart}}
	if hasScores {
		items = append(items, menuItem{Title: "High Scores", Choice: MenuChoiceScores})
	}
	items = append(items, menuItem{Title: "Quit", Choice: MenuChoiceQuit})

	return MenuModel{
		items:     items,
		width:     width,
		hasScores: hasScores,
	}
}

// SetWidth updates the width used for centering.
func (m *MenuModel) SetWidth(w int) {
	m.width = w
}

// SetHighScore sets the best score shown under the title.
func (m *MenuModel) SetHighScore(score int) {
	m.highScore = score
}

// Handle applies a menu action and reports the resulting choice.
func (m *MenuModel) Handle(action MenuAction) MenuChoice {
	switch action {
	case MenuActionQuit:
		return MenuChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			return m.items[m.cursor].Choice
		}
	}

	return MenuChoiceNone
}

// View renders the start screen.
func (m MenuModel) View(difficulty string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S H A P E   E X P L O R E R S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Find the shape you hear!", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render("Starting difficulty: "+difficulty), m.width))
	b.WriteString("\n")
	if m.hasScores && m.highScore > 0 {
		b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("Best score: %d", m.highScore)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		line := item.Title
		if i == m.cursor {
			cursor = "> "
			line = promptStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(subtleStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}
