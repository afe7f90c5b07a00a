// Package shapes defines the fixed catalog of shape types and colors used on
// the game board, together with their terminal rendering descriptors.
package shapes

import "github.com/charmbracelet/lipgloss"

// Type is a kind of shape the player can be asked to find.
type Type string

const (
	Circle    Type = "circle"
	Square    Type = "square"
	Triangle  Type = "triangle"
	Star      Type = "star"
	Heart     Type = "heart"
	Rectangle Type = "rectangle"
)

// Types lists every shape type in catalog order.
var Types = []Type{Circle, Square, Triangle, Star, Heart, Rectangle}

// String returns the spoken name of the shape type.
func (t Type) String() string {
	return string(t)
}

// Color is a named fill color for a shape.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Purple Color = "purple"
	Orange Color = "orange"
)

// Colors lists every shape color in catalog order.
var Colors = []Color{Red, Blue, Green, Yellow, Purple, Orange}

// String returns the color name.
func (c Color) String() string {
	return string(c)
}

// Hex returns the resolved color value for c.
func (c Color) Hex() string {
	switch c {
	case Red:
		return "#ef4444"
	case Blue:
		return "#3b82f6"
	case Green:
		return "#22c55e"
	case Yellow:
		return "#eab308"
	case Purple:
		return "#a855f7"
	case Orange:
		return "#f97316"
	default:
		return "#ffffff"
	}
}

// Terminal returns the lipgloss color used to paint c.
func (c Color) Terminal() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
