package entity

import "math/rand"

const (
	// MinTravel and MaxTravel bound the random wander budget drawn at spawn.
	MinTravel = 7
	MaxTravel = 30

	// DeathTicks is the length of the death sequence in ticks.
	DeathTicks = 80
)

// EnemyState is the enemy-specific payload.
type EnemyState struct {
	MaxTravel    int  // Ticks of travel before choosing a new direction
	MovementLoop int  // Signed travel counter for the current direction
	Died         bool // Set once by an attack; terminal
	DeathTick    int  // Ticks spent dying
}

// NewEnemy creates an enemy at rect with a random travel budget and an
// initial facing of up or down.
func NewEnemy(rect Rect, rng *rand.Rand) *Entity {
	e := New(KindEnemy, rect)
	e.Enemy = &EnemyState{
		MaxTravel: MinTravel + rng.Intn(MaxTravel-MinTravel+1),
	}
	if rng.Intn(2) == 0 {
		e.Facing = FacingUp
	} else {
		e.Facing = FacingDown
	}
	return e
}

// Wander sets the enemy's velocity for this tick and advances its travel
// counter. Once the counter's magnitude reaches MaxTravel the enemy turns to
// one of the other three directions and the counter restarts.
func (e *Entity) Wander(speed int, rng *rand.Rand) {
	s := e.Enemy
	if s == nil || s.Died {
		return
	}

	dx, dy := e.Facing.Delta()
	e.DX += dx * speed
	e.DY += dy * speed

	s.MovementLoop += e.Facing.Sign()
	if abs(s.MovementLoop) >= s.MaxTravel {
		others := e.Facing.Others()
		e.Facing = others[rng.Intn(len(others))]
		// Each new direction gets the full travel budget.
		s.MovementLoop = 0
	}
}

// Kill starts the death sequence. It returns false if the enemy was
// already dying.
func (e *Entity) Kill() bool {
	if e.Enemy == nil || e.Enemy.Died {
		return false
	}
	e.Enemy.Died = true
	e.ClearVelocity()
	return true
}

// AdvanceDeath steps the death sequence and reports whether it has finished.
func (e *Entity) AdvanceDeath() bool {
	if e.Enemy == nil || !e.Enemy.Died {
		return false
	}
	e.Enemy.DeathTick++
	return e.Enemy.DeathTick >= DeathTicks
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
