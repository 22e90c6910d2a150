// Package game runs a dungeon crawl: level transitions, the per-tick update,
// and the terminal game loop.
package game

// Phase is where the current run stands.
type Phase int

const (
	// PhasePlaying is normal play on a level.
	PhasePlaying Phase = iota
	// PhaseDescending is set while the next level is being built.
	PhaseDescending
	// PhaseGameOver is set once the player has died.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseDescending:
		return "descending"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}
