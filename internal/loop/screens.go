package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/config"
)

// overlay is the full-screen message drawn over the scene, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayInactive
	overlayShutdown
)

// styles are the lipgloss styles for text drawn over the canvas.
type styles struct {
	hud   lipgloss.Style
	title lipgloss.Style
	text  lipgloss.Style
	hint  lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return styles{
		hud:   r.NewStyle().Foreground(lipgloss.Color("#ccddff")),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000")),
		text:  r.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		hint:  r.NewStyle().Faint(true).Foreground(lipgloss.Color("#ffffff")),
	}
}

func (c *Client) currentOverlay() overlay {
	switch {
	case !c.shutdownAt.IsZero():
		return overlayShutdown
	case c.inactive:
		return overlayInactive
	default:
		return overlayNone
	}
}

// drawFrame renders f. A game over frame is drawn once and then left on
// screen until the game restarts, the terminal resizes or an overlay changes.
func (c *Client) drawFrame(f Frame, resized bool) error {
	ov := c.currentOverlay()
	if f.GameOver && c.drawnGameOver && !resized && ov == overlayNone && c.drawnOverlay == overlayNone {
		return nil
	}
	c.drawnGameOver = f.GameOver
	c.drawnOverlay = ov

	cw := c.chunkWriter
	draw.ClearScreen(cw)
	if err := c.canvas.RenderBorder(cw); err != nil {
		return err
	}

	fade := 1.0
	if f.GameOver || ov != overlayNone {
		fade = config.GameOverFade
	}
	c.canvas.Clear()
	renderScene(c.canvas, f, fade)
	if err := c.canvas.Render(cw); err != nil {
		return err
	}

	c.drawUI(f, ov)
	return cw.Flush()
}

// renderScene rasterises a frame back to front: stars, streaks, exhaust,
// projectiles, craft. fade scales every colour's brightness.
func renderScene(canvas *draw.Canvas, f Frame, fade float64) {
	for _, s := range f.Stars {
		canvas.FillRect(s.X, s.Y, s.Size, s.Size, draw.Dim(draw.White, s.Opacity*fade))
	}

	lineColor := draw.Dim(draw.LineColor, draw.LineAlpha*fade)
	for _, l := range f.Lines {
		canvas.DrawLine(draw.Point{X: l.X1, Y: l.Y1}, draw.Point{X: l.X2, Y: l.Y2}, lineColor)
	}

	for i, p := range f.Trail {
		canvas.FillCircle(p.X, p.Y, p.Size*p.Alpha, draw.Dim(draw.ExhaustColor(i), p.Alpha*fade))
	}

	for _, p := range f.Projectiles {
		for _, s := range p.Trail {
			canvas.FillCircle(s.X, s.Y, s.Radius, draw.Dim(p.Color, s.Alpha*fade))
		}
		canvas.FillCircle(p.X, p.Y, p.Radius, draw.Dim(p.Color, fade))
		if p.CoreRadius > 0 {
			canvas.FillCircle(p.X, p.Y, p.CoreRadius, draw.Dim(draw.White, fade))
		}
	}

	pl := f.Player
	for _, part := range draw.Ship(pl.X, pl.Y, pl.Width, pl.Height) {
		canvas.DrawPolygon(part.Points, draw.Dim(part.Color, part.Alpha*fade), true)
	}
}

// drawUI writes the text layer on top of the rendered canvas.
func (c *Client) drawUI(f Frame, ov overlay) {
	cols := c.canvas.TerminalWidth()
	rows := c.canvas.TerminalHeight()
	centerY := rows / 2

	switch ov {
	case overlayShutdown:
		c.drawShutdownScreen(cols, centerY)
		return
	case overlayInactive:
		c.drawInactivityScreen(cols, centerY)
		return
	}

	c.drawHUD(f, cols, rows)
	if f.GameOver {
		c.drawGameOverScreen(f, cols, centerY)
	}
}

// writeCentered writes styled text centred on row.
func (c *Client) writeCentered(cols, row int, style lipgloss.Style, text string) {
	c.chunkWriter.WriteCentered(cols, row, style.Render(text), lipgloss.Width(text))
}

// drawHUD draws score and session stats along the top, controls along the bottom.
func (c *Client) drawHUD(f Frame, cols, rows int) {
	cw := c.chunkWriter
	cw.WriteAt(2, 1, c.styles.hud.Render(fmt.Sprintf("Score: %d", f.Score)))

	stats := fmt.Sprintf("High Score: %d  Games Played: %d", f.Stats.HighScore, f.Stats.GamesPlayed)
	cw.WriteAt(max(cols-lipgloss.Width(stats), 1), 1, c.styles.hud.Render(stats))

	if !f.GameOver {
		cw.WriteAt(2, rows, c.styles.hint.Render("Arrows/WASD to move, Q to quit"))
	}
}

func (c *Client) drawGameOverScreen(f Frame, cols, centerY int) {
	c.writeCentered(cols, centerY-2, c.styles.title, "GAME OVER")
	c.writeCentered(cols, centerY, c.styles.text, fmt.Sprintf("Final Score: %d", f.Score))
	c.writeCentered(cols, centerY+2, c.styles.text, "Press Enter to Restart")
}

func (c *Client) drawInactivityScreen(cols, centerY int) {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.writeCentered(cols, centerY-2, c.styles.title, "INACTIVITY WARNING")
	c.writeCentered(cols, centerY, c.styles.text,
		fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0)))
	c.writeCentered(cols, centerY+2, c.styles.hint, "Move to stay connected")
}

func (c *Client) drawShutdownScreen(cols, centerY int) {
	remaining := int(time.Until(c.shutdownAt).Seconds()) + 1
	c.writeCentered(cols, centerY-3, c.styles.title, "SERVER SHUTTING DOWN")
	c.writeCentered(cols, centerY-1, c.styles.text, "The server is restarting for maintenance.")
	c.writeCentered(cols, centerY, c.styles.text, "Please reconnect in a moment.")
	c.writeCentered(cols, centerY+2, c.styles.text, fmt.Sprintf("Disconnecting in %d seconds...", max(remaining, 0)))
	c.writeCentered(cols, centerY+4, c.styles.hint, "Press Q to disconnect now")
}
