// Package physics resolves entity movement against the level's wall blocks.
package physics

import (
	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// Axis is a movement axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Result reports which axes were blocked during a move.
type Result struct {
	BlockedX bool
	BlockedY bool
}

// Blocked returns true if either axis was blocked.
func (r Result) Blocked() bool {
	return r.BlockedX || r.BlockedY
}

// Resolver moves entities one axis at a time and snaps them out of blocks.
//
// When compensation is on, every blocked move also slides the whole world,
// mover included, by the mover's speed in the direction it was heading. The
// slide stands in for a scrolling camera; turn it off once the renderer owns
// a real view offset.
type Resolver struct {
	model      *world.Model
	compensate bool
}

// New creates a resolver over a model.
func New(model *world.Model, compensate bool) *Resolver {
	return &Resolver{model: model, compensate: compensate}
}

// Compensates reports whether blocked moves shift the world.
func (r *Resolver) Compensates() bool {
	return r.compensate
}

// Move applies the entity's pending velocity, X fully before Y, resolving
// each axis against the blocks group. Resolving X first lets an entity slide
// along a wall without cutting through corners.
func (r *Resolver) Move(e *entity.Entity, speed int) Result {
	var res Result
	if e.DX != 0 {
		e.Rect.X += e.DX
		res.BlockedX = r.resolve(e, AxisX, e.DX, speed)
	}
	if e.DY != 0 {
		e.Rect.Y += e.DY
		res.BlockedY = r.resolve(e, AxisY, e.DY, speed)
	}
	return res
}

// resolve snaps e out of any blocks it overlaps after moving delta along
// axis. Moving forward, its leading edge is put against the nearest block's
// near side; moving back, against the nearest block's far side.
func (r *Resolver) resolve(e *entity.Entity, axis Axis, delta, speed int) bool {
	hits := r.model.Hits(r.model.Blocks, e.Rect, e.Handle)
	if len(hits) == 0 {
		return false
	}

	switch axis {
	case AxisX:
		if delta > 0 {
			edge := hits[0].Rect.Left()
			for _, h := range hits[1:] {
				edge = min(edge, h.Rect.Left())
			}
			e.Rect.X = edge - e.Rect.W
		} else {
			edge := hits[0].Rect.Right()
			for _, h := range hits[1:] {
				edge = max(edge, h.Rect.Right())
			}
			e.Rect.X = edge
		}
	case AxisY:
		if delta > 0 {
			edge := hits[0].Rect.Top()
			for _, h := range hits[1:] {
				edge = min(edge, h.Rect.Top())
			}
			e.Rect.Y = edge - e.Rect.H
		} else {
			edge := hits[0].Rect.Bottom()
			for _, h := range hits[1:] {
				edge = max(edge, h.Rect.Bottom())
			}
			e.Rect.Y = edge
		}
	}

	if r.compensate {
		r.shiftWorld(axis, sign(delta)*speed)
	}
	return true
}

// shiftWorld slides every entity along axis by amount.
func (r *Resolver) shiftWorld(axis Axis, amount int) {
	if axis == AxisX {
		r.model.ShiftWorld(amount, 0, entity.NoHandle)
	} else {
		r.model.ShiftWorld(0, amount, entity.NoHandle)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
