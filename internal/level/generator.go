// Package level generates the shape layouts played in each level.
package level

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/shapes"
)

// Board geometry. Shapes are placed on a GridRows x GridCols grid of cells,
// each cell mapped to a percentage offset on the play area.
const (
	GridRows = 4
	GridCols = 5

	topBasePct  = 10
	topStepPct  = 22
	leftBasePct = 5
	leftStepPct = 18

	maxRotation = 20 // Degrees, applied in both directions
)

// Cell is a discrete board position.
type Cell struct {
	Row int
	Col int
}

// Position is the on-screen offset of a cell as percentages of the play area.
type Position struct {
	TopPct  float64
	LeftPct float64
}

// PositionOf maps a cell to its percentage offset.
func PositionOf(c Cell) Position {
	return Position{
		TopPct:  float64(topBasePct + c.Row*topStepPct),
		LeftPct: float64(leftBasePct + c.Col*leftStepPct),
	}
}

// Shape is one placed shape instance.
// IDs are unique within a generated level only.
type Shape struct {
	ID       string
	Type     shapes.Type
	Color    shapes.Color
	Hex      string
	Cell     Cell
	Position Position
	Rotation float64 // Degrees in [-20, 20]
}

// Generator produces level layouts from a difficulty table.
type Generator struct {
	table config.DifficultyTable
	rng   *rand.Rand
}

// NewGenerator creates a generator. The same seed and call sequence always
// yield the same layouts.
func NewGenerator(table config.DifficultyTable, seed int64) *Generator {
	if table == nil {
		table = config.DefaultTable()
	}
	return &Generator{
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Config returns the resolved parameters for a level.
func (g *Generator) Config(level int, difficulty config.DifficultyLevel) config.LevelConfig {
	return g.table.Resolve(level, difficulty)
}

// Generate builds the shapes for a level.
//
// A random subset of types and colors is drawn, then assigned round-robin so
// every available type and color appears before any repeats. Each shape gets
// its own grid cell.
func (g *Generator) Generate(level int, difficulty config.DifficultyLevel) []Shape {
	cfg := g.Config(level, difficulty)

	types := g.pickTypes(cfg.ShapeTypeCount)
	colors := g.pickColors(cfg.ShapeColorCount)

	used := make(map[Cell]bool, cfg.ShapeCount)
	result := make([]Shape, 0, cfg.ShapeCount)

	for i := 0; i < cfg.ShapeCount; i++ {
		typ := types[i%len(types)]
		color := colors[i%len(colors)]
		cell := g.freeCell(used)
		used[cell] = true

		result = append(result, Shape{
			ID:       fmt.Sprintf("%s-%d", typ, i),
			Type:     typ,
			Color:    color,
			Hex:      color.Hex(),
			Cell:     cell,
			Position: PositionOf(cell),
			Rotation: g.rng.Float64()*2*maxRotation - maxRotation,
		})
	}

	return result
}

// pickTypes returns the first n types of a random permutation of the catalog.
func (g *Generator) pickTypes(n int) []shapes.Type {
	perm := g.rng.Perm(len(shapes.Types))
	out := make([]shapes.Type, n)
	for i := range out {
		out[i] = shapes.Types[perm[i]]
	}
	return out
}

// pickColors returns the first n colors of a random permutation of the catalog.
func (g *Generator) pickColors(n int) []shapes.Color {
	perm := g.rng.Perm(len(shapes.Colors))
	out := make([]shapes.Color, n)
	for i := range out {
		out[i] = shapes.Colors[perm[i]]
	}
	return out
}

// freeCell samples cells uniformly until it finds one not yet used.
// Terminates because shape counts are capped well below the cell count.
func (g *Generator) freeCell(used map[Cell]bool) Cell {
	for {
		c := Cell{Row: g.rng.Intn(GridRows), Col: g.rng.Intn(GridCols)}
		if !used[c] {
			return c
		}
	}
}

// Grid arranges shapes by cell. Empty cells are nil.
func Grid(layout []Shape) [GridRows][GridCols]*Shape {
	var grid [GridRows][GridCols]*Shape
	for i := range layout {
		c := layout[i].Cell
		if c.Row >= 0 && c.Row < GridRows && c.Col >= 0 && c.Col < GridCols {
			grid[c.Row][c.Col] = &layout[i]
		}
	}
	return grid
}
