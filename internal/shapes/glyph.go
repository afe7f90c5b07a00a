package shapes

// Glyph describes how a shape type is drawn inside a board cell.
type Glyph struct {
	Symbol string // Single-cell symbol used in compact views
	Art    []string // Rectangle art spans more columns than the others
}

// GlyphFor returns the rendering descriptor for t.
// Every entry in Types must have a case here (checked by TestEveryTypeHasGlyph).
func GlyphFor(t Type) (Glyph, bool) {
	switch t {
	case Circle:
		return Glyph{Symbol: "●", Art: []string{" ▄██▄ ", " ▀██▀ "}}, true
	case Square:
		return Glyph{Symbol: "■", Art: []string{" ████ ", " ████ "}}, true
	case Triangle:
		return Glyph{Symbol: "▲", Art: []string{"  ▄▄  ", " ▄██▄ "}}, true
	case Star:
		return Glyph{Symbol: "★", Art: []string{" ▀██▀ ", " ▄▀▀▄ "}}, true
	case Heart:
		return Glyph{Symbol: "♥", Art: []string{" █▄▄█ ", "  ▀▀  "}}, true
	case Rectangle:
		return Glyph{Symbol: "▬", Art: []string{"██████", "██████"}}, true
	}
	return Glyph{}, false
}
