package game

import (
	"errors"
	"testing"

	"github.com/samdwyer/dungeondelve/internal/world"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in        string
		want      Difficulty
		wantQuota int
		wantErr   bool
	}{
		{"easy", DifficultyEasy, 5, false},
		{"hard", DifficultyHard, 10, false},
		{"impossible", DifficultyImpossible, 20, false},
		{"  Hard ", DifficultyHard, 10, false},
		{"nightmare", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDifficulty) {
					t.Fatalf("ParseDifficulty(%q) error = %v, want ErrInvalidDifficulty", tt.in, err)
				}
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) || cfgErr.Value != tt.in {
					t.Errorf("error %v is not a *ConfigError for %q", err, tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDifficulty(%q) error = %v", tt.in, err)
			}
			if got != tt.want || got.Quota() != tt.wantQuota {
				t.Errorf("ParseDifficulty(%q) = %s (quota %d), want %s (quota %d)",
					tt.in, got, got.Quota(), tt.want, tt.wantQuota)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
	if cfg.MapWidth != 30 || cfg.TileSize != 32 || cfg.PlayerSpeed != 2 || cfg.EnemySpeed != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DUNGEON_SEED", "42")
	t.Setenv("DUNGEON_MAP_WIDTH", "40")
	t.Setenv("DUNGEON_MAP_HEIGHT", "20")
	t.Setenv("DUNGEON_FLOOR_FRACTION", "0.5")
	t.Setenv("DUNGEON_DIFFICULTY", "impossible")
	t.Setenv("DUNGEON_WORLD_COMPENSATION", "false")
	t.Setenv("DUNGEON_FPS", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Seed != 42 || cfg.MapWidth != 40 || cfg.MapHeight != 20 {
		t.Errorf("seed/size = %d %dx%d, want 42 40x20", cfg.Seed, cfg.MapWidth, cfg.MapHeight)
	}
	if cfg.FloorFraction != 0.5 || cfg.TickRate != 30 {
		t.Errorf("fraction/fps = %g/%d, want 0.5/30", cfg.FloorFraction, cfg.TickRate)
	}
	if cfg.Difficulty != DifficultyImpossible || cfg.WorldCompensation {
		t.Errorf("difficulty/compensation = %s/%v", cfg.Difficulty, cfg.WorldCompensation)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key, value string
		target     error
	}{
		{"DUNGEON_DIFFICULTY", "legendary", ErrInvalidDifficulty},
		{"DUNGEON_FLOOR_FRACTION", "0.99", world.ErrFloorFractionTooHigh},
		{"DUNGEON_MAP_WIDTH", "2", world.ErrInvalidDimensions},
		{"DUNGEON_PLAYER_SPEED", "64", ErrInvalidConfig},
		{"DUNGEON_FPS", "0", ErrInvalidConfig},
		{"DUNGEON_SEED", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("LoadConfig() with %s=%s succeeded", tt.key, tt.value)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error %v is not a *ConfigError", err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
		})
	}
}
