package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/level"
	"github.com/vovakirdan/shape-explorers/internal/shapes"
)

var (
	flagMaxLevel     int
	flagPreviewLevel int
	flagPreviewDiff  string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print level parameters per difficulty",
	Long: `Print the shape, type and color counts each difficulty resolves to,
level by level. Uses the same config as 'shapes play'.

Examples:
  shapes levels
  shapes levels --max-level 20 --config ./my-shapes.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a generated board",
	Long: `Generate one level and print its board and shape list.

Examples:
  shapes preview
  shapes preview --level 6 --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPreview,
}

func init() {
	levelsCmd.Flags().IntVar(&flagMaxLevel, "max-level", 10, "Last level to print")
	previewCmd.Flags().IntVar(&flagPreviewLevel, "level", 1, "Level number")
	previewCmd.Flags().StringVar(&flagPreviewDiff, "difficulty", "normal", "Difficulty tier")
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-6s", "Level")
	for _, d := range config.Levels() {
		fmt.Printf("  %-10s", d)
	}
	fmt.Println()

	for lvl := 1; lvl <= max(1, flagMaxLevel); lvl++ {
		fmt.Printf("%-6d", lvl)
		for _, d := range config.Levels() {
			lc := cfg.Difficulty.Resolve(lvl, d)
			fmt.Printf("  %-10s", fmt.Sprintf("%d/%d/%d", lc.ShapeCount, lc.ShapeTypeCount, lc.ShapeColorCount))
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("shapes/types/colors")
}

func runPreview(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	d, ok := config.ParseDifficulty(flagPreviewDiff)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagPreviewDiff)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := level.NewGenerator(cfg.Difficulty, seed)
	layout := gen.Generate(flagPreviewLevel, d)

	fmt.Printf("Level %d, %s (seed %d)\n\n", flagPreviewLevel, d, seed)
	fmt.Println(previewBoard(layout))
	fmt.Println()

	for i, sh := range layout {
		fmt.Printf("%d. %-7s %-7s %s  row %d col %d  top %2.0f%% left %2.0f%%  rot %+5.1f°\n",
			i+1, sh.Color, sh.Type, sh.Hex, sh.Cell.Row, sh.Cell.Col,
			sh.Position.TopPct, sh.Position.LeftPct, sh.Rotation)
	}
}

// previewBoard draws the grid with one colored symbol per occupied cell.
func previewBoard(layout []level.Shape) string {
	grid := level.Grid(layout)
	var b strings.Builder
	border := "+" + strings.Repeat("---+", level.GridCols)

	b.WriteString(border)
	for r := range level.GridRows {
		b.WriteString("\n|")
		for c := range level.GridCols {
			cell := "   "
			if sh := grid[r][c]; sh != nil {
				if g, ok := shapes.GlyphFor(sh.Type); ok {
					cell = " " + lipgloss.NewStyle().Foreground(sh.Color.Terminal()).Render(g.Symbol) + " "
				}
			}
			b.WriteString(cell + "|")
		}
		b.WriteString("\n" + border)
	}
	return b.String()
}
