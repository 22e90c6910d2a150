package game

import "github.com/gdamore/tcell/v2"

// Input is what the player asked for during one tick.
type Input struct {
	Up, Down, Left, Right bool
	Attack                bool
	Interact              bool
}

// holdTicks is how long a movement key counts as held after its last key
// event. Terminals report repeats, not releases.
const holdTicks = 8

// keyState turns tcell key events into per-tick Input.
type keyState struct {
	up, down, left, right int // Remaining held ticks
	attack, interact      bool
}

// press records one key event. It returns false for keys it does not handle.
func (k *keyState) press(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		k.up = holdTicks
	case tcell.KeyDown:
		k.down = holdTicks
	case tcell.KeyLeft:
		k.left = holdTicks
	case tcell.KeyRight:
		k.right = holdTicks
	case tcell.KeyEnter:
		k.interact = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.up = holdTicks
		case 's', 'S':
			k.down = holdTicks
		case 'a', 'A':
			k.left = holdTicks
		case 'd', 'D':
			k.right = holdTicks
		case ' ':
			k.attack = true
		case 'e', 'E':
			k.interact = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// next drains one tick of input. Discrete actions fire once.
func (k *keyState) next() Input {
	in := Input{
		Up:       k.up > 0,
		Down:     k.down > 0,
		Left:     k.left > 0,
		Right:    k.right > 0,
		Attack:   k.attack,
		Interact: k.interact,
	}
	k.up = max(k.up-1, 0)
	k.down = max(k.down-1, 0)
	k.left = max(k.left-1, 0)
	k.right = max(k.right-1, 0)
	k.attack = false
	k.interact = false
	return in
}

func (k *keyState) reset() {
	*k = keyState{}
}
