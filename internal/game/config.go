package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/dungeondelve/internal/world"
)

// Default tuning values.
const (
	DefaultPlayerSpeed    = 2
	DefaultEnemySpeed     = 1
	DefaultTickRate       = 60
	DefaultAttackCooldown = 10.0
	DefaultCooldownStep   = 0.2
)

var (
	// ErrInvalidDifficulty is wrapped by ParseDifficulty for unknown names.
	ErrInvalidDifficulty = errors.New("unknown difficulty")

	// ErrInvalidConfig is wrapped by Validate for out-of-range values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError reports which setting was rejected.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Difficulty selects how many enemies each level gets.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyHard       Difficulty = "hard"
	DifficultyImpossible Difficulty = "impossible"
)

// ParseDifficulty maps a name to a Difficulty, ignoring case and spaces.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyHard, DifficultyImpossible:
		return d, nil
	}
	return "", &ConfigError{Key: "difficulty", Value: s, Err: ErrInvalidDifficulty}
}

// Quota returns the enemy count per level, or 0 for an unknown difficulty.
func (d Difficulty) Quota() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 10
	case DifficultyImpossible:
		return 20
	default:
		return 0
	}
}

func (d Difficulty) String() string {
	return string(d)
}

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	MapWidth      int     // Grid columns
	MapHeight     int     // Grid rows
	TileSize      int     // Tile edge in world pixels
	FloorFraction float64 // Share of the grid carved into floor

	PlayerSpeed int // Pixels per tick
	EnemySpeed  int // Pixels per tick

	Difficulty Difficulty
	TickRate   int // Ticks per second

	AttackCooldown float64 // Cooldown restored after each swing
	CooldownStep   float64 // Cooldown drained per tick

	// WorldCompensation shifts the whole world against a blocked move.
	WorldCompensation bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MapWidth:          world.DefaultWidth,
		MapHeight:         world.DefaultHeight,
		TileSize:          world.DefaultTileSize,
		FloorFraction:     world.DefaultFloorFraction,
		PlayerSpeed:       DefaultPlayerSpeed,
		EnemySpeed:        DefaultEnemySpeed,
		Difficulty:        DifficultyEasy,
		TickRate:          DefaultTickRate,
		AttackCooldown:    DefaultAttackCooldown,
		CooldownStep:      DefaultCooldownStep,
		WorldCompensation: true,
	}
}

// LoadConfig builds a Config from DUNGEON_* environment variables on top of
// the defaults, then validates it.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"DUNGEON_MAP_WIDTH", &cfg.MapWidth},
		{"DUNGEON_MAP_HEIGHT", &cfg.MapHeight},
		{"DUNGEON_TILE_SIZE", &cfg.TileSize},
		{"DUNGEON_PLAYER_SPEED", &cfg.PlayerSpeed},
		{"DUNGEON_ENEMY_SPEED", &cfg.EnemySpeed},
		{"DUNGEON_FPS", &cfg.TickRate},
	}
	for _, f := range ints {
		v, ok := os.LookupEnv(f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, &ConfigError{Key: f.key, Value: v, Err: err}
		}
		*f.dst = n
	}

	if v, ok := os.LookupEnv("DUNGEON_SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return cfg, &ConfigError{Key: "DUNGEON_SEED", Value: v, Err: err}
		}
		cfg.Seed = n
	}
	if v, ok := os.LookupEnv("DUNGEON_FLOOR_FRACTION"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return cfg, &ConfigError{Key: "DUNGEON_FLOOR_FRACTION", Value: v, Err: err}
		}
		cfg.FloorFraction = f
	}
	if v, ok := os.LookupEnv("DUNGEON_WORLD_COMPENSATION"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, &ConfigError{Key: "DUNGEON_WORLD_COMPENSATION", Value: v, Err: err}
		}
		cfg.WorldCompensation = b
	}
	if v, ok := os.LookupEnv("DUNGEON_DIFFICULTY"); ok {
		d, err := ParseDifficulty(v)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = d
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration can build and run a level.
func (c Config) Validate() error {
	if c.Difficulty.Quota() == 0 {
		return &ConfigError{Key: "difficulty", Value: string(c.Difficulty), Err: ErrInvalidDifficulty}
	}
	if _, err := world.CarveTarget(c.MapWidth, c.MapHeight, c.FloorFraction); err != nil {
		return &ConfigError{
			Key:   "map",
			Value: fmt.Sprintf("%dx%d@%g", c.MapWidth, c.MapHeight, c.FloorFraction),
			Err:   err,
		}
	}
	if c.TileSize <= 0 {
		return invalid("tile_size", c.TileSize, "must be positive")
	}
	// A mover may not cross a whole tile in one tick or it could tunnel.
	if c.PlayerSpeed <= 0 || c.PlayerSpeed > c.TileSize {
		return invalid("player_speed", c.PlayerSpeed, "must be in [1, tile size]")
	}
	if c.EnemySpeed <= 0 || c.EnemySpeed > c.TileSize {
		return invalid("enemy_speed", c.EnemySpeed, "must be in [1, tile size]")
	}
	if c.TickRate <= 0 {
		return invalid("fps", c.TickRate, "must be positive")
	}
	if c.CooldownStep <= 0 || c.AttackCooldown < 0 {
		return invalid("attack_cooldown", c.AttackCooldown, "needs a positive step and non-negative cooldown")
	}
	return nil
}

func invalid(key string, value any, reason string) error {
	return &ConfigError{
		Key:   key,
		Value: fmt.Sprint(value),
		Err:   fmt.Errorf("%w: %s", ErrInvalidConfig, reason),
	}
}
