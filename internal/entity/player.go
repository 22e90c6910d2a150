package entity

// PlayerState is the player-specific payload.
type PlayerState struct {
	// InRange is the interactable currently overlapping the player, or NoHandle.
	// It is re-derived every tick.
	InRange Handle
}

// NewPlayer creates the player entity at rect, facing down.
func NewPlayer(rect Rect) *Entity {
	e := New(KindPlayer, rect)
	e.Player = &PlayerState{}
	return e
}

// Steer sets the pending velocity from the held movement keys.
// Later keys win the facing, in the order left, right, up, down.
func (e *Entity) Steer(up, down, left, right bool, speed int) {
	if left {
		e.DX -= speed
		e.Facing = FacingLeft
	}
	if right {
		e.DX += speed
		e.Facing = FacingRight
	}
	if up {
		e.DY -= speed
		e.Facing = FacingUp
	}
	if down {
		e.DY += speed
		e.Facing = FacingDown
	}
}
