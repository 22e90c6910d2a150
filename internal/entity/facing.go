package entity

// Facing is the direction an entity looks or travels in.
type Facing int

const (
	FacingUp Facing = iota
	FacingDown
	FacingLeft
	FacingRight
)

// String returns the facing name.
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit step for the facing in screen coordinates.
func (f Facing) Delta() (dx, dy int) {
	switch f {
	case FacingUp:
		return 0, -1
	case FacingDown:
		return 0, 1
	case FacingLeft:
		return -1, 0
	case FacingRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Sign returns -1 for up and left, +1 for down and right.
func (f Facing) Sign() int {
	if f == FacingUp || f == FacingLeft {
		return -1
	}
	return 1
}

// Others returns the three facings other than f, in a fixed order.
func (f Facing) Others() [3]Facing {
	var out [3]Facing
	i := 0
	for _, c := range [...]Facing{FacingUp, FacingDown, FacingLeft, FacingRight} {
		if c != f && i < len(out) {
			out[i] = c
			i++
		}
	}
	return out
}
