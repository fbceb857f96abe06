package dodger

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dodger/internal/core"
)

// Visual characters for rendering
const (
	PlatformChar   = '▀'
	PlatformFill   = '░'
	VerticalChar   = '▼'
	HorizontalChar = '◄'
	HealthFull     = '█'
	HealthEmpty    = '·'
)

// healthBarWidth is the HP bar length in cells at 100%.
const healthBarWidth = 20

// sprites holds the player glyphs per action. Each frame is three rows of
// three cells; an action with more animation frames than sprites cycles.
var sprites = [actionCount][][3]string{
	ActionIdle: {
		{" o ", "/|\\", "/ \\"},
		{" o ", "\\|/", "/ \\"},
	},
	ActionLeft: {
		{"o  ", "<|\\", "/ \\"},
		{"o  ", "<|\\", " |\\"},
		{"o  ", "<|\\", "/| "},
	},
	ActionRight: {
		{"  o", "/|>", "/ \\"},
		{"  o", "/|>", "/| "},
		{"  o", "/|>", " |\\"},
	},
	ActionJump: {
		{"\\o/", " | ", "/ \\"},
		{"\\o/", " | ", " ^ "},
		{" o ", "/|\\", " ^ "},
	},
	ActionDock: {
		{"   ", " o ", "/-\\"},
		{"   ", " o ", "\\-/"},
	},
}

// Render draws the current snapshot into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	snap := g.session.Snapshot()
	g.renderPlatform(dst, snap.Platform)
	g.renderProjectiles(dst, snap.Projectiles)
	g.renderPlayer(dst, snap.Player)
	g.renderHUD(dst, snap)

	if snap.GameOver {
		g.renderGameOver(dst, snap)
	}
}

// cell converts a pixel position to the terminal cell containing it.
func (g *Game) cell(top, left float64) (x, y int) {
	x = int(math.Floor(left / float64(g.cfg.Render.CellWidth)))
	y = int(math.Floor(top / float64(g.cfg.Render.CellHeight)))
	return x, y
}

// cellRect converts a pixel rectangle to the cells it covers, at least one.
func (g *Game) cellRect(top, left, width, height float64) core.Rect {
	x0, y0 := g.cell(top, left)
	x1, y1 := g.cell(top+height, left+width)
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// renderPlatform draws the platform surface and the column under it.
func (g *Game) renderPlatform(dst *core.Screen, p PlatformView) {
	x0, y := g.cell(p.Top, p.Left)
	x1, _ := g.cell(p.Top, p.Right+g.cfg.Player.Width)
	width := x1 - x0

	dst.DrawHLine(x0, y, width, PlatformChar, core.ColorGreen)
	for row := y + 1; row < dst.Height(); row++ {
		dst.DrawHLine(x0, row, width, PlatformFill, core.ColorGray)
	}
}

// renderProjectiles fills each projectile's cells with its kind's glyph.
func (g *Game) renderProjectiles(dst *core.Screen, projectiles []ProjectileView) {
	for _, p := range projectiles {
		ch, color := VerticalChar, core.ColorOrange
		if p.Kind == KindHorizontal {
			ch, color = HorizontalChar, core.ColorBrightMagenta
		}
		r := g.cellRect(p.Position.Top, p.Position.Left, p.Size, p.Size)
		dst.DrawRectColor(r, ch, color)
	}
}

// renderPlayer draws the sprite for the player's action and frame,
// centered horizontally in the hitbox and standing on its bottom edge.
func (g *Game) renderPlayer(dst *core.Screen, p PlayerView) {
	frames := sprites[p.Action]
	sprite := frames[(p.Frame-1+len(frames))%len(frames)]

	color := core.ColorBrightCyan
	switch {
	case p.Fallen:
		color = core.ColorRed
	case p.Falling:
		color = core.ColorYellow
	}

	box := g.cellRect(p.Position.Top, p.Position.Left, p.Width, p.Height)
	x := box.X + (box.W-3)/2
	y := box.Bottom() - len(sprite)
	for i, row := range sprite {
		for j, r := range row {
			if r != ' ' {
				dst.SetColor(x+j, y+i, r, color)
			}
		}
	}
}

// renderHUD draws the health bar and elapsed time on the top row.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	filled := core.Clamp(snap.HealthPercent*healthBarWidth/100, 0, healthBarWidth)

	color := core.ColorGreen
	switch {
	case snap.HealthPercent <= 20:
		color = core.ColorRed
	case snap.HealthPercent <= 50:
		color = core.ColorYellow
	}

	dst.DrawText(1, 0, "HP ")
	dst.DrawHLine(4, 0, filled, HealthFull, color)
	dst.DrawHLine(4+filled, 0, healthBarWidth-filled, HealthEmpty, core.ColorGray)
	dst.DrawText(5+healthBarWidth, 0, fmt.Sprintf("%3d%%", snap.HealthPercent))

	clock := fmt.Sprintf("%.1fs", float64(snap.ElapsedMS)/1000)
	dst.DrawText(dst.Width()-len(clock)-1, 0, clock)
}

// renderGameOver draws the game over box in the middle of the screen.
func (g *Game) renderGameOver(dst *core.Screen, snap Snapshot) {
	lines := []string{
		"Game Over!",
		"",
		snap.EndCause,
		"",
		"R restart  Q quit",
	}

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		if l == "" {
			continue
		}
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightRed
		}
		dst.DrawTextCentered(boxY+1+i, l, color)
	}
}
