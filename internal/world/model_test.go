package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeondelve/internal/entity"
)

func populated(t *testing.T, seed int64, quota int) (*Model, *Grid, *Placement) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := Generate(context.Background(), 30, 30, DefaultFloorFraction, rng)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	p, err := Place(context.Background(), g, quota)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	m := NewModel(DefaultTileSize)
	m.Populate(g, p, rng)
	return m, g, p
}

func TestTileToWorld(t *testing.T) {
	m := NewModel(32)
	tests := []struct {
		col, row int
		x, y     int
	}{
		{0, 0, 0, 0},
		{1, 0, 32, 0},
		{15, 15, 480, 480},
		{3, 7, 96, 224},
	}
	for _, tt := range tests {
		x, y := m.TileToWorld(tt.col, tt.row)
		if x != tt.x || y != tt.y {
			t.Errorf("TileToWorld(%d,%d) = (%d,%d), want (%d,%d)", tt.col, tt.row, x, y, tt.x, tt.y)
		}
	}

	if NewModel(0).TileSize() != DefaultTileSize {
		t.Error("non-positive tile size should fall back to the default")
	}
}

func TestPopulateGroups(t *testing.T) {
	m, g, p := populated(t, 5, 5)

	walls := g.Count(TileWall)
	if got := m.Blocks.Size(); got != walls {
		t.Errorf("Blocks = %d, want %d", got, walls)
	}
	if got := m.Enemies.Size(); got != len(p.Enemies) {
		t.Errorf("Enemies = %d, want %d", got, len(p.Enemies))
	}
	if got := m.Interactables.Size(); got != 1 {
		t.Errorf("Interactables = %d, want 1", got)
	}
	if want := g.Width*g.Height + walls + len(p.Enemies) + 2; m.Len() != want {
		t.Errorf("Len() = %d, want %d", m.Len(), want)
	}

	player := m.Player()
	if player == nil {
		t.Fatal("Player() = nil after Populate")
	}
	if player.Rect != m.TileRect(15, 15) {
		t.Errorf("player rect = %+v, want tile (15,15)", player.Rect)
	}
	if m.Stair().Rect != m.TileRect(p.Stair.X, p.Stair.Y) {
		t.Errorf("stair rect = %+v, want tile %v", m.Stair().Rect, p.Stair)
	}

	// Ground comes first so it underlies everything else.
	if first := m.Get(1); first == nil || first.Kind != entity.KindGround {
		t.Errorf("first spawned entity = %+v, want ground", first)
	}
}

func TestIsSolidFollowsGrid(t *testing.T) {
	m, g, _ := populated(t, 6, 5)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if m.IsSolid(x, y) != (g.Tiles[y][x] == TileWall) {
				t.Fatalf("IsSolid(%d,%d) disagrees with grid tile %q", x, y, g.Tiles[y][x])
			}
		}
	}

	m.Clear()
	if !m.IsSolid(15, 15) {
		t.Error("with no level loaded every tile should be solid")
	}
}

func TestRemoveDropsFromGroups(t *testing.T) {
	m := NewModel(32)
	rng := rand.New(rand.NewSource(1))
	h := m.Spawn(entity.NewEnemy(m.TileRect(2, 2), rng))

	if !m.Enemies.Has(h) || !m.All.Has(h) {
		t.Fatal("spawned enemy missing from its groups")
	}

	m.Remove(h)
	if m.Enemies.Has(h) || m.All.Has(h) {
		t.Error("removed enemy still in a group")
	}
	if m.Get(h) != nil {
		t.Error("Get() should return nil for a removed handle")
	}

	// Removing twice is harmless.
	m.Remove(h)
}

func TestClearEmptiesCollections(t *testing.T) {
	m, _, _ := populated(t, 7, 10)
	m.ShiftWorld(4, 0, entity.NoHandle)

	m.Clear()

	sizes := map[string]int{
		"all":           m.All.Size(),
		"blocks":        m.Blocks.Size(),
		"enemies":       m.Enemies.Size(),
		"interactables": m.Interactables.Size(),
		"attacks":       m.Attacks.Size(),
	}
	for name, n := range sizes {
		if n != 0 {
			t.Errorf("%s group has %d members after Clear()", name, n)
		}
	}
	if m.Player() != nil || m.Stair() != nil || m.Grid() != nil {
		t.Error("Clear() should forget the player, stair and grid")
	}
	if x, y := m.Offset(); x != 0 || y != 0 {
		t.Errorf("Offset() = (%d,%d) after Clear(), want (0,0)", x, y)
	}
	if len(m.Handles()) != 0 {
		t.Error("Handles() should be empty after Clear()")
	}
}

func TestShiftWorld(t *testing.T) {
	m := NewModel(32)
	a := m.Spawn(entity.New(entity.KindBlock, m.TileRect(1, 1)))
	b := m.Spawn(entity.NewPlayer(m.TileRect(2, 2)))

	m.ShiftWorld(2, -1, b)

	if got := m.Get(a).Rect; got.X != 34 || got.Y != 31 {
		t.Errorf("block moved to (%d,%d), want (34,31)", got.X, got.Y)
	}
	if got := m.Get(b).Rect; got != m.TileRect(2, 2) {
		t.Errorf("excluded entity moved to %+v", got)
	}
	if x, y := m.Offset(); x != 2 || y != -1 {
		t.Errorf("Offset() = (%d,%d), want (2,-1)", x, y)
	}
}

func TestFirstHitUsesHandleOrder(t *testing.T) {
	m := NewModel(32)
	first := m.Spawn(entity.New(entity.KindBlock, entity.Rect{X: 32, Y: 0, W: 32, H: 32}))
	m.Spawn(entity.New(entity.KindBlock, entity.Rect{X: 32, Y: 16, W: 32, H: 32}))

	probe := entity.Rect{X: 40, Y: 8, W: 32, H: 32}
	if hit := m.FirstHit(m.Blocks, probe, entity.NoHandle); hit == nil || hit.Handle != first {
		t.Errorf("FirstHit() = %+v, want handle %d", hit, first)
	}
	if hits := m.Hits(m.Blocks, probe, entity.NoHandle); len(hits) != 2 {
		t.Errorf("Hits() returned %d entities, want 2", len(hits))
	}
	if hit := m.FirstHit(m.Blocks, entity.Rect{X: 500, Y: 500, W: 1, H: 1}, entity.NoHandle); hit != nil {
		t.Errorf("FirstHit() far away = %+v, want nil", hit)
	}
}
