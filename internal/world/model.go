package world

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeondelve/internal/entity"
)

// DefaultTileSize is the edge length of a tile in world pixels.
const DefaultTileSize = 32

// Model owns one level: its grid, every live entity, and the collision
// groups entities belong to. Group iteration always follows handle order so
// a tick is deterministic for a given seed.
type Model struct {
	tileSize int
	grid     *Grid
	entities []*entity.Entity // Index is handle-1; removed entities are nil

	All           mapset.Set[entity.Handle]
	Blocks        mapset.Set[entity.Handle]
	Enemies       mapset.Set[entity.Handle] // Live enemies only
	Interactables mapset.Set[entity.Handle]
	Attacks       mapset.Set[entity.Handle]

	player  entity.Handle
	stair   entity.Handle
	offsetX int // Accumulated world shift
	offsetY int
}

// NewModel creates an empty model. A non-positive tile size uses the default.
func NewModel(tileSize int) *Model {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	m := &Model{tileSize: tileSize}
	m.resetGroups()
	return m
}

func (m *Model) resetGroups() {
	m.All = mapset.New[entity.Handle]()
	m.Blocks = mapset.New[entity.Handle]()
	m.Enemies = mapset.New[entity.Handle]()
	m.Interactables = mapset.New[entity.Handle]()
	m.Attacks = mapset.New[entity.Handle]()
}

// TileSize returns the tile edge length in pixels.
func (m *Model) TileSize() int {
	return m.tileSize
}

// TileToWorld converts a tile coordinate to its top-left world pixel.
func (m *Model) TileToWorld(col, row int) (x, y int) {
	return col * m.tileSize, row * m.tileSize
}

// TileRect returns the world rectangle covering a tile.
func (m *Model) TileRect(col, row int) entity.Rect {
	x, y := m.TileToWorld(col, row)
	return entity.Rect{X: x, Y: y, W: m.tileSize, H: m.tileSize}
}

// Grid returns the current level's grid, or nil between levels.
func (m *Model) Grid() *Grid {
	return m.grid
}

// IsSolid reports whether a tile blocks movement. It reads the current grid
// on every call; with no level loaded everything is solid.
func (m *Model) IsSolid(col, row int) bool {
	if m.grid == nil {
		return true
	}
	return m.grid.IsSolid(col, row)
}

// Spawn stores an entity, assigns its handle, and adds it to the groups its
// kind belongs to.
func (m *Model) Spawn(e *entity.Entity) entity.Handle {
	m.entities = append(m.entities, e)
	h := entity.Handle(len(m.entities))
	e.Handle = h

	m.All.Put(h)
	switch e.Kind {
	case entity.KindBlock:
		m.Blocks.Put(h)
	case entity.KindEnemy:
		m.Enemies.Put(h)
	case entity.KindStair:
		m.Interactables.Put(h)
		m.stair = h
	case entity.KindAttack:
		m.Attacks.Put(h)
	case entity.KindPlayer:
		m.player = h
	}
	return h
}

// Get returns the entity for a handle, or nil if it was removed.
func (m *Model) Get(h entity.Handle) *entity.Entity {
	if h == entity.NoHandle || int(h) > len(m.entities) {
		return nil
	}
	return m.entities[h-1]
}

// Remove destroys an entity and drops it from every group.
func (m *Model) Remove(h entity.Handle) {
	e := m.Get(h)
	if e == nil {
		return
	}
	m.entities[h-1] = nil
	m.All.Remove(h)
	m.Blocks.Remove(h)
	m.Enemies.Remove(h)
	m.Interactables.Remove(h)
	m.Attacks.Remove(h)
	if m.player == h {
		m.player = entity.NoHandle
	}
	if m.stair == h {
		m.stair = entity.NoHandle
	}
}

// Player returns the player entity, or nil.
func (m *Model) Player() *entity.Entity {
	return m.Get(m.player)
}

// Stair returns the stair entity, or nil.
func (m *Model) Stair() *entity.Entity {
	return m.Get(m.stair)
}

// Handles returns the live handles in creation order. The slice is a copy,
// so callers may spawn or remove entities while ranging over it.
func (m *Model) Handles() []entity.Handle {
	out := make([]entity.Handle, 0, m.All.Size())
	for i, e := range m.entities {
		if e != nil {
			out = append(out, entity.Handle(i+1))
		}
	}
	return out
}

// Each calls fn for every member of group in handle order.
func (m *Model) Each(group mapset.Set[entity.Handle], fn func(e *entity.Entity)) {
	for i, e := range m.entities {
		if e != nil && group.Has(entity.Handle(i+1)) {
			fn(e)
		}
	}
}

// Hits returns the members of group whose rectangles intersect r, in handle
// order. The entity skip is never included.
func (m *Model) Hits(group mapset.Set[entity.Handle], r entity.Rect, skip entity.Handle) []*entity.Entity {
	var hits []*entity.Entity
	m.Each(group, func(e *entity.Entity) {
		if e.Handle != skip && e.Rect.Intersects(r) {
			hits = append(hits, e)
		}
	})
	return hits
}

// FirstHit returns the first member of group intersecting r, or nil.
func (m *Model) FirstHit(group mapset.Set[entity.Handle], r entity.Rect, skip entity.Handle) *entity.Entity {
	for i, e := range m.entities {
		h := entity.Handle(i + 1)
		if e != nil && h != skip && group.Has(h) && e.Rect.Intersects(r) {
			return e
		}
	}
	return nil
}

// ShiftWorld moves every entity except exclude by (dx, dy). It stands in for
// a camera: when an entity is blocked, the world slides instead.
func (m *Model) ShiftWorld(dx, dy int, exclude entity.Handle) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, e := range m.entities {
		if e != nil && e.Handle != exclude {
			e.Rect = e.Rect.Translate(dx, dy)
		}
	}
	m.offsetX += dx
	m.offsetY += dy
}

// Offset returns the accumulated world shift since the level was populated.
func (m *Model) Offset() (int, int) {
	return m.offsetX, m.offsetY
}

// Len returns the number of live entities.
func (m *Model) Len() int {
	return m.All.Size()
}

// Clear destroys every entity and forgets the grid.
func (m *Model) Clear() {
	m.entities = nil
	m.grid = nil
	m.player = entity.NoHandle
	m.stair = entity.NoHandle
	m.offsetX, m.offsetY = 0, 0
	m.resetGroups()
}

// Populate instantiates a placed grid. Ground goes down first under every
// tile, then wall blocks, enemies, the player and the stair, so every
// collision group is filled before the first tick.
func (m *Model) Populate(g *Grid, p *Placement, rng *rand.Rand) {
	m.grid = g

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			m.Spawn(entity.New(entity.KindGround, m.TileRect(x, y)))
		}
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == TileWall {
				m.Spawn(entity.New(entity.KindBlock, m.TileRect(x, y)))
			}
		}
	}

	for _, e := range p.Enemies {
		m.Spawn(entity.NewEnemy(m.TileRect(e.X, e.Y), rng))
	}

	m.Spawn(entity.NewPlayer(m.TileRect(p.Player.X, p.Player.Y)))
	m.Spawn(entity.New(entity.KindStair, m.TileRect(p.Stair.X, p.Stair.Y)))
}
