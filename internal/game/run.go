package game

import "github.com/google/uuid"

// RunState is the progress of one run, from a new game until game over.
type RunState struct {
	ID             uuid.UUID
	Level          int // Starts at 0 and goes up by one per descent
	Difficulty     Difficulty
	EnemyQuota     int     // Enemies per level, fixed for the run
	AttackCooldown float64 // Attack is ready at or below zero
	Kills          int
	Phase          Phase
}

func newRunState(d Difficulty) *RunState {
	return &RunState{
		ID:         uuid.New(),
		Difficulty: d,
		EnemyQuota: d.Quota(),
		Phase:      PhasePlaying,
	}
}

// AttackReady reports whether the cooldown has run out.
func (r *RunState) AttackReady() bool {
	return r.AttackCooldown <= 0
}
