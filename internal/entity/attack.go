package entity

// AttackTicks is how long an attack lives, hit or miss.
const AttackTicks = 35

// AttackState is the attack-specific payload.
type AttackState struct {
	Tick int  // Ticks alive
	Hit  bool // True once the attack has struck an enemy
}

// NewAttack creates an attack at rect swinging in the given direction.
func NewAttack(rect Rect, facing Facing) *Entity {
	e := New(KindAttack, rect)
	e.Facing = facing
	e.Attack = &AttackState{}
	return e
}

// AdvanceAttack steps the attack and reports whether it has expired.
func (e *Entity) AdvanceAttack() bool {
	if e.Attack == nil {
		return true
	}
	e.Attack.Tick++
	return e.Attack.Tick >= AttackTicks
}
