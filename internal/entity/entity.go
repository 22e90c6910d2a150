// Package entity provides the live actors of a level: the player, enemies,
// wall blocks, the stair, and transient attacks.
package entity

// Handle identifies an entity within one level's arena.
// Handles are never reused until the arena is cleared.
type Handle uint32

// NoHandle is the zero handle; no entity ever has it.
const NoHandle Handle = 0

// Kind is the variant tag of an entity.
type Kind int

const (
	KindGround Kind = iota
	KindBlock
	KindPlayer
	KindEnemy
	KindStair
	KindAttack
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindBlock:
		return "block"
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindStair:
		return "stair"
	case KindAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Layer determines draw order. Higher layers are drawn on top.
type Layer int

const (
	LayerGround Layer = 1
	LayerBlock  Layer = 2
	LayerEnemy  Layer = 3
	LayerPlayer Layer = 4
)

// LayerOf returns the layer an entity of the given kind is created on.
func LayerOf(k Kind) Layer {
	switch k {
	case KindBlock:
		return LayerBlock
	case KindEnemy:
		return LayerEnemy
	case KindPlayer, KindAttack:
		return LayerPlayer
	default:
		return LayerGround
	}
}

// Entity is a live actor. Common fields apply to every kind; exactly one of
// the payload pointers is set for players, enemies and attacks.
type Entity struct {
	Handle Handle
	Kind   Kind
	Layer  Layer
	Rect   Rect   // World position and size in pixels
	Facing Facing // Meaningful for players, enemies and attacks
	DX, DY int    // Pending per-axis velocity for this tick
	Moving bool   // Whether the last tick requested any movement

	Player *PlayerState
	Enemy  *EnemyState
	Attack *AttackState
}

// New creates an entity of the given kind covering rect.
// The handle is assigned by the arena that stores it.
func New(kind Kind, rect Rect) *Entity {
	return &Entity{
		Kind:   kind,
		Layer:  LayerOf(kind),
		Rect:   rect,
		Facing: FacingDown,
	}
}

// ClearVelocity zeroes the pending velocity.
func (e *Entity) ClearVelocity() {
	e.DX = 0
	e.DY = 0
}

// IsDying returns true for enemies playing their death sequence.
func (e *Entity) IsDying() bool {
	return e.Enemy != nil && e.Enemy.Died
}
