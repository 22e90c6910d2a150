package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondelve/internal/telemetry"
)

const (
	// Default grid dimensions
	DefaultWidth  = 30
	DefaultHeight = 30

	// DefaultFloorFraction is the share of the grid carved into floor.
	DefaultFloorFraction = 0.6

	// padding keeps the carving cursor off the outer border.
	padding = 1
)

// Grid is one level's tile map plus the carve-ordered list of floor tiles.
type Grid struct {
	Width     int
	Height    int
	Tiles     [][]Tile
	FreeTiles []Point // Floor tiles in carve order
	rng       *rand.Rand
}

// NewGrid creates a grid filled with walls. A nil rng is seeded from the clock.
func NewGrid(width, height int, rng *rand.Rand) *Grid {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		rng:    rng,
	}
}

// Generate creates a grid and carves it with the random walk.
func Generate(ctx context.Context, width, height int, floorFraction float64, rng *rand.Rand) (*Grid, error) {
	if width < 3 || height < 3 {
		return nil, ErrInvalidDimensions
	}
	g := NewGrid(width, height, rng)
	if err := g.Carve(ctx, floorFraction); err != nil {
		return nil, err
	}
	return g, nil
}

// CarveTarget returns how many distinct tiles a carve with the given
// fraction converts to floor.
func CarveTarget(width, height int, floorFraction float64) (int, error) {
	if width < 3 || height < 3 {
		return 0, ErrInvalidDimensions
	}
	if floorFraction <= 0 || floorFraction >= 1 {
		return 0, ErrInvalidFloorFraction
	}
	target := int(math.Floor(float64(width*height) * floorFraction))
	if target < 1 {
		return 0, ErrInvalidFloorFraction
	}
	if target > (width-2*padding)*(height-2*padding) {
		return 0, ErrFloorFractionTooHigh
	}
	return target, nil
}

// Carve runs the drunk-agent walk from the grid center until exactly
// CarveTarget distinct tiles are floor. Each step converts the cursor's tile
// if it is still a wall, then rolls 1-4 to try to move left, right, up or
// down; a move that would enter the padding is skipped.
func (g *Grid) Carve(ctx context.Context, floorFraction float64) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "grid.carve")
	defer span.End()

	target, err := CarveTarget(g.Width, g.Height, floorFraction)
	if err != nil {
		span.RecordError(err)
		return err
	}

	startTime := time.Now()
	x, y := g.Center()
	remaining := target
	steps := 0

	for remaining > 0 {
		if g.Tiles[y][x] == TileWall {
			g.Tiles[y][x] = TileFloor
			g.FreeTiles = append(g.FreeTiles, Point{X: x, Y: y})
			remaining--
		}

		switch g.rng.Intn(4) + 1 {
		case 1:
			if x > padding {
				x--
			}
		case 2:
			if x < g.Width-1-padding {
				x++
			}
		case 3:
			if y > padding {
				y--
			}
		case 4:
			if y < g.Height-1-padding {
				y++
			}
		}
		steps++
	}

	span.SetAttributes(
		attribute.Int("grid.width", g.Width),
		attribute.Int("grid.height", g.Height),
		attribute.Int("grid.carve_target", target),
		attribute.Int("grid.carve_steps", steps),
		attribute.Int64("grid.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return nil
}

// Center returns the tile the carve starts from and the player spawns on.
func (g *Grid) Center() (int, int) {
	return g.Width / 2, g.Height / 2
}

// InBounds returns true if the position lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Tiles[y][x].IsPassable()
}

// IsSolid returns true for walls and anything off the grid.
func (g *Grid) IsSolid(x, y int) bool {
	return !g.IsPassable(x, y)
}

// GetTile returns the tile at the given position.
func (g *Grid) GetTile(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Count returns how many tiles of the given kind the grid holds.
func (g *Grid) Count(kind Tile) int {
	n := 0
	for y := range g.Tiles {
		for _, t := range g.Tiles[y] {
			if t == kind {
				n++
			}
		}
	}
	return n
}

// PassableCount returns the number of floor and spawn tiles.
func (g *Grid) PassableCount() int {
	return g.Width*g.Height - g.Count(TileWall)
}

// Validate checks that the grid holds exactly one player and one stair spawn.
func (g *Grid) Validate() error {
	if g.Count(TilePlayerSpawn) != 1 || g.Count(TileStairSpawn) != 1 {
		return ErrInvariantViolation
	}
	return nil
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.Width+1)*g.Height)
	for y := range g.Tiles {
		for _, t := range g.Tiles[y] {
			buf = append(buf, t.Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
