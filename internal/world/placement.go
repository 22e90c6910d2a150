package world

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondelve/internal/logger"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
)

const (
	// Enemies must be at least this share of the grid away from the player
	// on both axes.
	enemyDistanceRatio = 0.3

	// A stair this far away on both axes is accepted immediately.
	stairDistanceRatio = 0.7

	// StairAttempts is how many free tiles are tried for the stair.
	StairAttempts = 30

	// maxEnemyDraws caps random draws for the whole enemy quota.
	maxEnemyDraws = 100_000
)

// Placement is where a level's player, enemies and stair start.
type Placement struct {
	Player  Point
	Enemies []Point // One per enemy; two enemies may share a tile
	Stair   Point

	// StairFallback is set when no attempted tile ever qualified and the
	// stair was put at the origin.
	StairFallback bool
}

// Place chooses spawn tiles on a carved grid and marks them on it.
//
// The player always starts at the grid center. Enemies are drawn from the
// free tiles until the quota is met, accepting only tiles far enough from
// the player; enemies are not checked against each other. The stair gets
// StairAttempts draws to find a far-corner tile, remembering the best
// candidate seen in case none qualifies.
func Place(ctx context.Context, g *Grid, enemyQuota int) (*Placement, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "grid.place")
	defer span.End()

	if enemyQuota < 0 {
		return nil, fmt.Errorf("negative enemy quota %d", enemyQuota)
	}

	px, py := g.Center()
	if !g.IsPassable(px, py) {
		span.RecordError(ErrInvariantViolation)
		return nil, fmt.Errorf("%w: center (%d,%d) is not floor", ErrInvariantViolation, px, py)
	}

	p := &Placement{Player: Point{X: px, Y: py}}
	g.Tiles[py][px] = TilePlayerSpawn

	enemies, draws, err := g.placeEnemies(p.Player, enemyQuota)
	if err != nil {
		span.RecordError(err)
		logger.Log.WithFields(logrus.Fields{
			"quota":      enemyQuota,
			"free_tiles": len(g.FreeTiles),
			"draws":      draws,
		}).Warn("enemy placement starved")
		return nil, err
	}
	p.Enemies = enemies
	for _, e := range enemies {
		g.Tiles[e.Y][e.X] = TileEnemySpawn
	}

	stair, attempts, fallback := g.placeStair(p.Player)
	p.Stair = stair
	p.StairFallback = fallback
	g.Tiles[stair.Y][stair.X] = TileStairSpawn

	if fallback {
		logger.Log.WithFields(logrus.Fields{
			"width":      g.Width,
			"height":     g.Height,
			"free_tiles": len(g.FreeTiles),
		}).Warn("degenerate level: no stair candidate, using origin")
	}

	span.SetAttributes(
		attribute.Int("placement.enemy_quota", enemyQuota),
		attribute.Int("placement.enemy_draws", draws),
		attribute.Int("placement.stair_attempts", attempts),
		attribute.Bool("placement.stair_fallback", fallback),
		attribute.Int("placement.stair_x", stair.X),
		attribute.Int("placement.stair_y", stair.Y),
	)
	return p, nil
}

// placeEnemies draws free tiles until quota of them are far enough from the
// player. It fails fast when no free tile can ever qualify.
func (g *Grid) placeEnemies(player Point, quota int) ([]Point, int, error) {
	if quota == 0 {
		return nil, 0, nil
	}

	eligible := 0
	for _, t := range g.FreeTiles {
		if g.farFrom(t, player, enemyDistanceRatio) {
			eligible++
		}
	}
	if eligible == 0 {
		return nil, 0, fmt.Errorf("%w: none of %d free tiles is far enough from the player",
			ErrPlacementStarvation, len(g.FreeTiles))
	}

	enemies := make([]Point, 0, quota)
	draws := 0
	for len(enemies) < quota {
		if draws >= maxEnemyDraws {
			return nil, draws, fmt.Errorf("%w: placed %d of %d enemies in %d draws",
				ErrPlacementStarvation, len(enemies), quota, draws)
		}
		draws++

		t := g.FreeTiles[g.rng.Intn(len(g.FreeTiles))]
		if g.farFrom(t, player, enemyDistanceRatio) {
			enemies = append(enemies, t)
		}
	}
	return enemies, draws, nil
}

// placeStair tries StairAttempts free tiles for a far-corner stair. A miss
// replaces the remembered candidate only when it is farther on both axes at
// once. With no candidate at all the stair falls back to the origin.
func (g *Grid) placeStair(player Point) (stair Point, attempts int, fallback bool) {
	var best Point
	bestDX, bestDY := 0, 0
	haveBest := false

	for attempts < StairAttempts && len(g.FreeTiles) > 0 {
		attempts++
		t := g.FreeTiles[g.rng.Intn(len(g.FreeTiles))]
		if g.farFrom(t, player, stairDistanceRatio) {
			return t, attempts, false
		}

		dx, dy := abs(t.X-player.X), abs(t.Y-player.Y)
		if dy > bestDY && dx > bestDX {
			best = t
			bestDX, bestDY = dx, dy
			haveBest = true
		}
	}

	return best, attempts, !haveBest
}

// farFrom returns true if t is at least ratio of the grid size away from
// origin on both axes.
func (g *Grid) farFrom(t, origin Point, ratio float64) bool {
	return float64(abs(t.Y-origin.Y)) >= float64(g.Height)*ratio &&
		float64(abs(t.X-origin.X)) >= float64(g.Width)*ratio
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
