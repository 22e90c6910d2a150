package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondelve/internal/logger"
	"github.com/samdwyer/dungeondelve/internal/telemetry"
	"github.com/samdwyer/dungeondelve/internal/ui"
)

// Game drives an Engine from the terminal: it feeds key events in and
// renders a frame every tick.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *Engine
	keys     keyState
	running  bool
}

// New creates a new game instance on a fresh terminal screen.
func New(cfg Config, opts ...Option) (*Game, error) {
	engine, err := NewEngine(cfg, opts...)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		engine:   engine,
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.start(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go g.pollEvents(events)

	ticker := time.NewTicker(time.Second / time.Duration(g.engine.Config().TickRate))
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false

		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			if err := g.handleEvent(ctx, ev); err != nil {
				return err
			}

		case <-ticker.C:
			if err := g.engine.Tick(ctx, g.keys.next()); err != nil {
				return err
			}
			g.renderer.Render(g.engine.Snapshot())
		}
	}
	return nil
}

func (g *Game) start(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	g.keys.reset()
	if err := g.engine.NewGame(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.String("run.id", g.engine.Run().ID.String()),
		attribute.Int("level.entities", g.engine.Model().Len()),
	)
	g.renderer.Render(g.engine.Snapshot())
	return nil
}

// pollEvents forwards terminal events until the screen is finalized.
func (g *Game) pollEvents(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		out <- ev
	}
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return nil
	}

	if g.engine.Run().Phase == PhaseGameOver {
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'r', 'R':
				logger.Log.Info("restarting run")
				return g.start(ctx)
			case 'q', 'Q':
				g.running = false
			}
		}
		return nil
	}

	if !g.keys.press(ev) && ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
		g.running = false
	}
	return nil
}
