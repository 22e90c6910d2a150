package game

// EventKind identifies something collaborators may react to.
type EventKind int

const (
	EventEnemyDied EventKind = iota
	EventSwordSwing
	EventLevelCleared // Old level torn down, new one not yet built
	EventLevelDescended
	EventThemeChanged
	EventDescendRejected
	EventPlayerDied
)

func (k EventKind) String() string {
	switch k {
	case EventEnemyDied:
		return "enemy_died"
	case EventSwordSwing:
		return "sword_swing"
	case EventLevelCleared:
		return "level_cleared"
	case EventLevelDescended:
		return "level_descended"
	case EventThemeChanged:
		return "theme_changed"
	case EventDescendRejected:
		return "descend_rejected"
	case EventPlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// Event is emitted synchronously from inside a tick.
type Event struct {
	Kind    EventKind
	Level   int
	Message string
}

// Listener receives engine events. Implementations must not call back into
// the engine.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}
