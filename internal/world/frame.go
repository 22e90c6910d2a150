package world

import (
	"sort"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamedata"
)

// Animation state tags handed to the renderer.
const (
	AnimIdle      = "idle"
	AnimWalking   = "walking"
	AnimDying     = "dying"
	AnimAttacking = "attacking"
)

// Sprite is the render-facing view of one entity.
type Sprite struct {
	Handle entity.Handle
	Kind   entity.Kind
	Layer  entity.Layer
	Rect   entity.Rect
	Facing entity.Facing
	Anim   string
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Level       int
	Phase       string
	GameOver    bool
	Theme       *gamedata.ThemeDef
	Grid        *Grid
	TileSize    int
	Sprites     []Sprite // Sorted by layer, then creation order
	Focus       entity.Rect
	EnemiesLeft int
	Message     string
}

// Sprites returns a sprite for every live entity, lowest layer first.
func (m *Model) Sprites() []Sprite {
	out := make([]Sprite, 0, m.Len())
	m.Each(m.All, func(e *entity.Entity) {
		out = append(out, Sprite{
			Handle: e.Handle,
			Kind:   e.Kind,
			Layer:  e.Layer,
			Rect:   e.Rect,
			Facing: e.Facing,
			Anim:   animOf(e),
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

func animOf(e *entity.Entity) string {
	switch {
	case e.IsDying():
		return AnimDying
	case e.Kind == entity.KindAttack:
		return AnimAttacking
	case e.Moving:
		return AnimWalking
	default:
		return AnimIdle
	}
}
