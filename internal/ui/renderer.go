package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeondelve/internal/entity"
	"github.com/samdwyer/dungeondelve/internal/gamedata"
	"github.com/samdwyer/dungeondelve/internal/world"
)

const gameOverText = "GAME OVER  r: restart  q: quit"

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame. The map scrolls so the player stays centered;
// one terminal cell is one tile.
func (r *Renderer) Render(f world.Frame) {
	r.screen.Clear()
	width, height := r.screen.Size()

	if f.TileSize > 0 {
		cam := newCamera(f.Focus, f.TileSize, width, height)
		for _, s := range f.Sprites {
			x, y := cam.project(s.Rect)
			if x < 0 || y < 1 || x >= width || y >= height-1 {
				continue
			}
			ch, style := spriteLook(s, f.Theme)
			r.screen.SetContent(x, y, ch, style)
		}
	}

	r.drawHUD(f, width, height)
	if f.GameOver {
		r.drawCentered(gameOverText, height/2, width,
			tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	r.screen.Show()
}

func (r *Renderer) drawHUD(f world.Frame, width, height int) {
	name := ""
	if f.Theme != nil {
		name = f.Theme.Name
	}
	status := fmt.Sprintf("Level %d  Enemies %d  %s", f.Level, f.EnemiesLeft, name)
	hud := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	r.drawText(0, 0, width, status, hud)
	r.RenderMessage(f.Message, height-1)
}

// RenderMessage displays a message at the given row, truncated to the
// screen width.
func (r *Renderer) RenderMessage(msg string, y int) {
	width, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.drawText(0, y, width, msg, style)
}

func (r *Renderer) drawCentered(msg string, y, width int, style tcell.Style) {
	x := (width - runewidth.StringWidth(msg)) / 2
	r.drawText(max(x, 0), y, width, msg, style)
}

// drawText writes msg from column x, advancing by each rune's display width
// and clipping at limit.
func (r *Renderer) drawText(x, y, limit int, msg string, style tcell.Style) {
	msg = runewidth.Truncate(msg, limit-x, "")
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
}

// camera maps world rectangles to screen cells around a focus rectangle.
type camera struct {
	tileSize         int
	originX, originY int // Screen cell of tile column/row 0 relative to focus
}

func newCamera(focus entity.Rect, tileSize, width, height int) camera {
	fx, fy := cellOf(focus, tileSize)
	return camera{
		tileSize: tileSize,
		originX:  width/2 - fx,
		originY:  height/2 - fy,
	}
}

func (c camera) project(r entity.Rect) (int, int) {
	x, y := cellOf(r, c.tileSize)
	return x + c.originX, y + c.originY
}

// cellOf returns the tile cell containing the center of r.
func cellOf(r entity.Rect, tileSize int) (int, int) {
	return floorDiv(r.X+r.W/2, tileSize), floorDiv(r.Y+r.H/2, tileSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// spriteLook returns the glyph and style for a sprite under a theme.
func spriteLook(s world.Sprite, theme *gamedata.ThemeDef) (rune, tcell.Style) {
	switch s.Kind {
	case entity.KindGround:
		if theme == nil {
			return '.', tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		}
		return theme.FloorRune(), tcell.StyleDefault.Foreground(theme.FloorTCellColor())
	case entity.KindBlock:
		if theme == nil {
			return '#', tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
		return theme.WallRune(), tcell.StyleDefault.Foreground(theme.WallTCellColor())
	case entity.KindStair:
		return '>', tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	case entity.KindEnemy:
		if s.Anim == world.AnimDying {
			return 'x', tcell.StyleDefault.Foreground(tcell.ColorMaroon)
		}
		return 'e', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case entity.KindPlayer:
		return '@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case entity.KindAttack:
		switch s.Facing {
		case entity.FacingLeft, entity.FacingRight:
			return '-', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
		default:
			return '|', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
		}
	default:
		return '?', tcell.StyleDefault
	}
}
