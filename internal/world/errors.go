package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned for grids too small to carve.
	ErrInvalidDimensions = errors.New("grid must be at least 3x3")

	// ErrInvalidFloorFraction is returned when the floor fraction would
	// carve nothing or the whole grid.
	ErrInvalidFloorFraction = errors.New("floor fraction must be in (0, 1) and carve at least one tile")

	// ErrFloorFractionTooHigh is returned when the carve target exceeds the
	// interior the cursor can reach, which would never terminate.
	ErrFloorFractionTooHigh = errors.New("floor fraction exceeds carvable interior")

	// ErrGenerationExhausted is the class of recoverable generation failures.
	// Callers regenerate the level when errors.Is(err, ErrGenerationExhausted).
	ErrGenerationExhausted = errors.New("level generation exhausted")

	// ErrPlacementStarvation is returned when enemies cannot be placed under
	// the distance rule.
	ErrPlacementStarvation = fmt.Errorf("%w: enemy placement starved", ErrGenerationExhausted)

	// ErrInvariantViolation is returned when a grid does not hold exactly one
	// player spawn and one stair spawn.
	ErrInvariantViolation = fmt.Errorf("%w: spawn invariant violated", ErrGenerationExhausted)
)
