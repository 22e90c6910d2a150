// Package world provides dungeon generation, entity placement, and the
// model that owns a level's entities.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a carved floor tile.
	TileFloor Tile = '.'
	// TilePlayerSpawn marks where the player starts.
	TilePlayerSpawn Tile = '@'
	// TileEnemySpawn marks an enemy start position.
	TileEnemySpawn Tile = 'e'
	// TileStairSpawn marks the stair down.
	TileStairSpawn Tile = '>'
)

// IsPassable returns true if the tile can be walked on.
// Spawn markers sit on carved floor and are passable.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Point is a tile coordinate: X is the column, Y the row.
type Point struct {
	X, Y int
}
