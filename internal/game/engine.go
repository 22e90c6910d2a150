package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamedata"
	"github.com/samdwyer/dungeondelve/internal/logger"
	"github.com/samdwyer/dungeondelve/internal/physics"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
	"github.com/samdwyer/dungeondelve/internal/world"
)

// maxLevelAttempts bounds regeneration when a level cannot be placed.
const maxLevelAttempts = 10

// Messages shown when a descent is refused.
const (
	msgNoStair       = "There is nothing here to use."
	msgEnemiesRemain = "Defeat every enemy before descending."
)

// Frame is the render snapshot of one tick.
type Frame = world.Frame

// Engine owns a run and steps it one tick at a time. It does no I/O.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	run       *RunState
	model     *world.Model
	resolver  *physics.Resolver
	themes    *gamedata.ThemeRegistry
	listeners []Listener
	message   string // Last player-facing notice
}

// Option customizes an Engine.
type Option func(*Engine)

// WithListener subscribes l to engine events.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, l)
	}
}

// WithThemes replaces the embedded level-design themes.
func WithThemes(r *gamedata.ThemeRegistry) Option {
	return func(e *Engine) {
		e.themes = r
	}
}

// NewEngine validates cfg and prepares an engine. Call NewGame before Tick.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	model := world.NewModel(cfg.TileSize)
	e := &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		model:    model,
		resolver: physics.New(model, cfg.WorldCompensation),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.themes == nil {
		themes, err := gamedata.LoadThemeRegistry()
		if err != nil {
			return nil, fmt.Errorf("load themes: %w", err)
		}
		e.themes = themes
	}
	return e, nil
}

// NewGame starts a fresh run at level 0.
func (e *Engine) NewGame(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.new")
	defer span.End()

	e.model.Clear()
	e.run = newRunState(e.cfg.Difficulty)
	e.message = ""

	span.SetAttributes(
		attribute.String("run.id", e.run.ID.String()),
		attribute.String("run.difficulty", e.run.Difficulty.String()),
		attribute.Int("run.enemy_quota", e.run.EnemyQuota),
	)

	if err := e.buildLevel(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"run":        e.run.ID.String(),
		"difficulty": e.run.Difficulty,
	}).Info("new game")
	return nil
}

// buildLevel generates, places and populates the current level. Placement
// failures regenerate the grid; anything else is returned as is.
func (e *Engine) buildLevel(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "level.build")
	defer span.End()

	level := e.run.Level
	span.SetAttributes(attribute.Int("level", level))

	var lastErr error
	for attempt := 1; attempt <= maxLevelAttempts; attempt++ {
		grid, err := world.Generate(ctx, e.cfg.MapWidth, e.cfg.MapHeight, e.cfg.FloorFraction, e.rng)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("generate level %d: %w", level, err)
		}

		placement, err := world.Place(ctx, grid, e.run.EnemyQuota)
		if err == nil {
			err = grid.Validate()
		}
		if err == nil {
			e.model.Populate(grid, placement, e.rng)
			span.SetAttributes(
				attribute.Int("level.attempts", attempt),
				attribute.Int("level.entities", e.model.Len()),
				attribute.Bool("level.stair_fallback", placement.StairFallback),
			)
			logger.Log.WithFields(logrus.Fields{
				"level":   level,
				"enemies": len(placement.Enemies),
				"attempt": attempt,
			}).Debug("level built")
			return nil
		}
		if !errors.Is(err, world.ErrGenerationExhausted) {
			span.RecordError(err)
			return fmt.Errorf("place level %d: %w", level, err)
		}

		lastErr = err
		logger.Log.WithFields(logrus.Fields{
			"level":   level,
			"attempt": attempt,
		}).WithError(err).Warn("regenerating level")
	}

	span.RecordError(lastErr)
	return fmt.Errorf("build level %d after %d attempts: %w", level, maxLevelAttempts, lastErr)
}

// AllEnemiesKilled reports whether no live enemy remains. Dying enemies have
// already left the group.
func (e *Engine) AllEnemiesKilled() bool {
	return e.model.Enemies.Size() == 0
}

// Interact tries to use the stair under the player. It reports whether the
// run moved to the next level; a refused descent changes nothing but the
// notice shown to the player.
func (e *Engine) Interact(ctx context.Context) (bool, error) {
	if e.run == nil || e.run.Phase != PhasePlaying {
		return false, nil
	}

	player := e.model.Player()
	stair := e.model.Stair()
	if player == nil || stair == nil || player.Player.InRange != stair.Handle {
		e.reject(msgNoStair)
		return false, nil
	}
	if !e.AllEnemiesKilled() {
		e.reject(msgEnemiesRemain)
		return false, nil
	}

	return true, e.descend(ctx)
}

func (e *Engine) reject(msg string) {
	e.message = msg
	e.emit(EventDescendRejected, msg)
}

// descend tears the level down and builds the next one with the same quota.
// If the new level cannot be built the run ends in PhaseGameOver with an
// empty model; only NewGame recovers from that.
func (e *Engine) descend(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "level.descend")
	defer span.End()

	prev := e.themes.ForLevel(e.run.Level)

	e.run.Phase = PhaseDescending
	e.run.Level++
	e.model.Clear()
	e.emit(EventLevelCleared, "")

	span.SetAttributes(
		attribute.String("run.id", e.run.ID.String()),
		attribute.Int("level", e.run.Level),
	)

	if err := e.buildLevel(ctx); err != nil {
		span.RecordError(err)
		e.run.Phase = PhaseGameOver
		e.message = "The way down has collapsed."
		logger.Log.WithField("level", e.run.Level).WithError(err).Error("descent failed")
		return err
	}

	e.run.Phase = PhasePlaying
	e.message = fmt.Sprintf("You descend to level %d.", e.run.Level)
	e.emit(EventLevelDescended, e.message)

	if next := e.themes.ForLevel(e.run.Level); next != nil && (prev == nil || next.ID != prev.ID) {
		span.SetAttributes(attribute.String("level.theme", next.ID))
		e.emit(EventThemeChanged, next.ID)
	}

	logger.Log.WithField("level", e.run.Level).Info("descended")
	return nil
}

func (e *Engine) emit(kind EventKind, msg string) {
	level := 0
	if e.run != nil {
		level = e.run.Level
	}
	ev := Event{Kind: kind, Level: level, Message: msg}
	for _, l := range e.listeners {
		l.OnEvent(ev)
	}
}

// Run returns the current run, or nil before NewGame.
func (e *Engine) Run() *RunState {
	return e.run
}

// Model returns the live world model.
func (e *Engine) Model() *world.Model {
	return e.model
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot captures what the renderer needs for the current tick.
func (e *Engine) Snapshot() Frame {
	f := Frame{
		Grid:        e.model.Grid(),
		TileSize:    e.model.TileSize(),
		Sprites:     e.model.Sprites(),
		EnemiesLeft: e.model.Enemies.Size(),
		Message:     e.message,
	}
	if e.run != nil {
		f.Level = e.run.Level
		f.Phase = e.run.Phase.String()
		f.GameOver = e.run.Phase == PhaseGameOver
		f.Theme = e.themes.ForLevel(e.run.Level)
	}
	if p := e.model.Player(); p != nil {
		f.Focus = p.Rect
	}
	return f
}

// tileStep returns the offset of the tile next to an entity in its facing.
func (e *Engine) tileStep(f entity.Facing) (int, int) {
	dx, dy := f.Delta()
	return dx * e.model.TileSize(), dy * e.model.TileSize()
}
