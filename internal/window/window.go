// Package window hosts a game in a desktop window using ebiten.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowLeft:   input.KeyArrowLeft,
	ebiten.KeyArrowRight:  input.KeyArrowRight,
	ebiten.KeyArrowUp:     input.KeyArrowUp,
	ebiten.KeyArrowDown:   input.KeyArrowDown,
	ebiten.KeyA:           input.KeyA,
	ebiten.KeyD:           input.KeyD,
	ebiten.KeyW:           input.KeyW,
	ebiten.KeyS:           input.KeyS,
	ebiten.KeyEnter:       input.KeyEnter,
	ebiten.KeyNumpadEnter: input.KeyEnter,
	ebiten.KeyQ:           input.KeyQ,
}

// Window implements ebiten.Game: every Update is one game tick.
type Window struct {
	game  *loop.Game
	frame loop.Frame
	face  font.Face

	keys   []ebiten.Key
	events []input.Event

	fillImg *ebiten.Image // 1x1 white source for DrawTriangles
	fillVs  []ebiten.Vertex
	fillIs  []uint16
}

// New wraps game for ebiten.RunGame.
func New(game *loop.Game) *Window {
	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	w := &Window{
		game:    game,
		face:    basicfont.Face7x13,
		fillImg: fillImg,
		fillVs:  make([]ebiten.Vertex, 0, 64),
		fillIs:  make([]uint16, 0, 96),
	}
	w.frame = game.Tick(nil)
	return w
}

// Update translates key edges since the last frame and ticks the game.
// Q ends the program.
func (w *Window) Update() error {
	w.events = w.events[:0]

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if ik, ok := keyMap[k]; ok {
			if ik == input.KeyQ {
				return ebiten.Termination
			}
			w.events = append(w.events, input.Press(ik))
		}
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if ik, ok := keyMap[k]; ok {
			w.events = append(w.events, input.Release(ik))
		}
	}

	w.frame = w.game.Tick(w.events)
	return nil
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return int(w.frame.Width), int(w.frame.Height)
}

// Draw renders the last frame.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	f := w.frame

	for _, s := range f.Stars {
		vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.Size), float32(s.Size), nrgba(draw.White, s.Opacity), false)
	}

	lineColor := nrgba(draw.LineColor, draw.LineAlpha)
	for _, l := range f.Lines {
		vector.StrokeLine(screen, float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2), 1.5, lineColor, true)
	}

	for i, p := range f.Trail {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size*p.Alpha), nrgba(draw.ExhaustColor(i), p.Alpha), true)
	}

	for _, p := range f.Projectiles {
		for _, s := range p.Trail {
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), nrgba(p.Color, s.Alpha), true)
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), nrgba(p.Color, 1), true)
		if p.CoreRadius > 0 {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.CoreRadius), color.White, true)
		}
	}

	pl := f.Player
	for _, part := range draw.Ship(pl.X, pl.Y, pl.Width, pl.Height) {
		w.fillPolygon(screen, part.Points, part.Color, part.Alpha)
	}

	w.drawHUD(screen, f)
	if f.GameOver {
		w.drawGameOver(screen, f)
	}
}

// fillPolygon fills a closed polygon with a vector path.
func (w *Window) fillPolygon(dst *ebiten.Image, points []draw.Point, c colorful.Color, alpha float64) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	w.fillVs, w.fillIs = path.AppendVerticesAndIndicesForFilling(w.fillVs[:0], w.fillIs[:0])
	for i := range w.fillVs {
		w.fillVs[i].ColorR = float32(c.R)
		w.fillVs[i].ColorG = float32(c.G)
		w.fillVs[i].ColorB = float32(c.B)
		w.fillVs[i].ColorA = float32(alpha)
	}
	dst.DrawTriangles(w.fillVs, w.fillIs, w.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (w *Window) drawHUD(screen *ebiten.Image, f loop.Frame) {
	hud := nrgba(draw.MustHex("#ccddff"), 1)
	text.Draw(screen, fmt.Sprintf("Score: %d", f.Score), w.face, 10, 20, hud)

	stats := fmt.Sprintf("High Score: %d   Games Played: %d", f.Stats.HighScore, f.Stats.GamesPlayed)
	b := text.BoundString(w.face, stats)
	text.Draw(screen, stats, w.face, int(f.Width)-b.Dx()-10, 20, hud)
}

func (w *Window) drawGameOver(screen *ebiten.Image, f loop.Frame) {
	vector.DrawFilledRect(screen, 0, 0, float32(f.Width), float32(f.Height), color.NRGBA{A: 191}, false)

	cx, cy := f.Width/2, f.Height/2
	w.drawCentered(screen, "GAME OVER", cx, cy-20, 4, nrgba(draw.GameOverColor, 1))
	w.drawCentered(screen, fmt.Sprintf("Final Score: %d", f.Score), cx, cy+35, 2, color.White)
	w.drawCentered(screen, "Press Enter to Restart", cx, cy+80, 2, color.White)
}

// drawCentered draws s scaled by scale with its baseline centred on (cx, baseline).
func (w *Window) drawCentered(dst *ebiten.Image, s string, cx, baseline, scale float64, clr color.Color) {
	b := text.BoundString(w.face, s)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-float64(b.Dx())*scale/2, baseline)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(dst, s, w.face, op)
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(min(max(alpha, 0), 1) * 255)}
}
