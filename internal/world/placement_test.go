package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func generated(t *testing.T, width, height int, seed int64) *Grid {
	t.Helper()
	g, err := Generate(context.Background(), width, height, DefaultFloorFraction, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return g
}

// openGrid returns a wall grid whose given tiles are floor, with FreeTiles in
// the given order.
func openGrid(width, height int, seed int64, free ...Point) *Grid {
	g := NewGrid(width, height, rand.New(rand.NewSource(seed)))
	for _, p := range free {
		g.Tiles[p.Y][p.X] = TileFloor
	}
	g.FreeTiles = free
	return g
}

func TestPlaceSpawnCounts(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := generated(t, 30, 30, seed)
		p, err := Place(context.Background(), g, 5)
		if err != nil {
			t.Fatalf("seed %d: Place() error = %v", seed, err)
		}

		if p.Player != (Point{X: 15, Y: 15}) {
			t.Errorf("seed %d: player at %v, want (15,15)", seed, p.Player)
		}
		if g.GetTile(15, 15) != TilePlayerSpawn {
			t.Errorf("seed %d: center tile = %q, want player spawn", seed, g.GetTile(15, 15))
		}
		if len(p.Enemies) != 5 {
			t.Errorf("seed %d: %d enemies, want 5", seed, len(p.Enemies))
		}
		if err := g.Validate(); err != nil {
			t.Errorf("seed %d: Validate() = %v", seed, err)
		}
		if g.Count(TileStairSpawn) != 1 || g.Count(TilePlayerSpawn) != 1 {
			t.Errorf("seed %d: want exactly one stair and one player spawn", seed)
		}
	}
}

func TestPlaceEnemyDistance(t *testing.T) {
	g := generated(t, 30, 30, 8)
	p, err := Place(context.Background(), g, 20)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	for i, e := range p.Enemies {
		dx, dy := abs(e.X-p.Player.X), abs(e.Y-p.Player.Y)
		if float64(dx) < 30*0.3 || float64(dy) < 30*0.3 {
			t.Errorf("enemy %d at %v is too close to the player (dx=%d, dy=%d)", i, e, dx, dy)
		}
		if !g.IsPassable(e.X, e.Y) {
			t.Errorf("enemy %d at %v is on a wall", i, e)
		}
	}
}

func TestPlaceAllowsSharedEnemyTiles(t *testing.T) {
	g := openGrid(10, 10, 1, Point{X: 5, Y: 5}, Point{X: 1, Y: 1})

	p, err := Place(context.Background(), g, 3)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	for _, e := range p.Enemies {
		if e != (Point{X: 1, Y: 1}) {
			t.Errorf("enemy at %v, want (1,1)", e)
		}
	}
	if len(p.Enemies) != 3 {
		t.Errorf("%d enemies, want 3 sharing one tile", len(p.Enemies))
	}
}

func TestPlaceStarvation(t *testing.T) {
	tests := []struct {
		name string
		grid *Grid
	}{
		{"only near tiles", openGrid(10, 10, 1, Point{X: 5, Y: 5}, Point{X: 6, Y: 5}, Point{X: 4, Y: 6})},
		{"center only", openGrid(10, 10, 1, Point{X: 5, Y: 5})},
	}

	for _, tt := range tests {
		_, err := Place(context.Background(), tt.grid, 5)
		if !errors.Is(err, ErrPlacementStarvation) {
			t.Errorf("%s: error = %v, want ErrPlacementStarvation", tt.name, err)
		}
		if !errors.Is(err, ErrGenerationExhausted) {
			t.Errorf("%s: starvation should be a generation-exhausted error", tt.name)
		}
	}
}

func TestPlaceRejectsWalledCenter(t *testing.T) {
	g := openGrid(10, 10, 1, Point{X: 1, Y: 1})
	_, err := Place(context.Background(), g, 1)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("error = %v, want ErrInvariantViolation", err)
	}
}

func TestPlaceStairAcceptsFarTile(t *testing.T) {
	g := openGrid(10, 10, 3, Point{X: 1, Y: 1}, Point{X: 8, Y: 9})

	stair, attempts, fallback := g.placeStair(Point{X: 0, Y: 0})
	if fallback {
		t.Fatal("placeStair() fell back with a qualifying tile available")
	}
	if stair != (Point{X: 8, Y: 9}) {
		t.Errorf("stair = %v, want (8,9)", stair)
	}
	if attempts < 1 || attempts > StairAttempts {
		t.Errorf("attempts = %d, want within [1,%d]", attempts, StairAttempts)
	}
}

func TestPlaceStairBestNeedsBothAxes(t *testing.T) {
	// Neither tile qualifies outright. Each is farther than the other on one
	// axis only, so whichever is drawn first is never replaced.
	free := []Point{{X: 9, Y: 6}, {X: 6, Y: 9}}
	const seed = 21
	g := openGrid(10, 10, seed, free...)

	replay := rand.New(rand.NewSource(seed))
	first := free[replay.Intn(len(free))]

	stair, attempts, fallback := g.placeStair(Point{X: 5, Y: 5})
	if fallback {
		t.Fatal("placeStair() fell back although both tiles are candidates")
	}
	if attempts != StairAttempts {
		t.Errorf("attempts = %d, want %d", attempts, StairAttempts)
	}
	if stair != first {
		t.Errorf("stair = %v, want first drawn candidate %v", stair, first)
	}
}

func TestPlaceStairFallsBackToOrigin(t *testing.T) {
	g := openGrid(10, 10, 1, Point{X: 5, Y: 5}, Point{X: 5, Y: 8})

	stair, _, fallback := g.placeStair(Point{X: 5, Y: 5})
	if !fallback {
		t.Error("placeStair() should report a fallback when no tile differs on both axes")
	}
	if stair != (Point{}) {
		t.Errorf("stair = %v, want origin", stair)
	}
}

func TestPlaceReproducible(t *testing.T) {
	g1 := generated(t, 30, 30, 77)
	g2 := generated(t, 30, 30, 77)

	p1, err1 := Place(context.Background(), g1, 10)
	p2, err2 := Place(context.Background(), g2, 10)
	if err1 != nil || err2 != nil {
		t.Fatalf("Place() errors = %v, %v", err1, err2)
	}

	if p1.Stair != p2.Stair {
		t.Errorf("stair mismatch: %v != %v", p1.Stair, p2.Stair)
	}
	for i := range p1.Enemies {
		if p1.Enemies[i] != p2.Enemies[i] {
			t.Errorf("enemy %d mismatch: %v != %v", i, p1.Enemies[i], p2.Enemies[i])
		}
	}
}

func TestValidate(t *testing.T) {
	g := openGrid(5, 5, 1, Point{X: 2, Y: 2})
	if err := g.Validate(); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("Validate() on unplaced grid = %v, want ErrInvariantViolation", err)
	}

	g.Tiles[2][2] = TilePlayerSpawn
	g.Tiles[1][1] = TileStairSpawn
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
