package loop

import (
	"context"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/config"
)

// Client runs a Game on a terminal: it reads keys, ticks at a fixed rate and
// renders frames. One Client serves one terminal.
type Client struct {
	game         *Game
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates a whole frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	styles       styles

	running            bool
	lastInput          time.Time
	disconnectInactive bool
	inactive           bool
	shutdownNotice     bool
	shutdownAt         time.Time // Zero until the context is cancelled

	// Game over is drawn once; these detect when it must be drawn again.
	drawnGameOver bool
	drawnOverlay  overlay
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile // Colour encoding; zero value is true colour
	HoldDuration time.Duration   // Key release synthesis; zero uses the default

	// DisconnectInactive ends the session after a period without input.
	DisconnectInactive bool
	// ShutdownNotice shows the server shutdown screen for a while after ctx is
	// cancelled. Without it the client exits at once.
	ShutdownNotice bool
}

// NewClient prepares a client for game reading keys from r and drawing to w.
func NewClient(game *Game, r io.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, game.settings.Width, game.settings.Height)
	canvas.SetProfile(opts.Profile)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:               game,
		canvas:             canvas,
		chunkWriter:        draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:             w,
		inputStream:        input.StartStream(r, opts.HoldDuration),
		termSizeFunc:       termSizeFunc,
		styles:             newStyles(w, opts.Profile),
		running:            true,
		lastInput:          time.Now(),
		disconnectInactive: opts.DisconnectInactive,
		shutdownNotice:     opts.ShutdownNotice,
	}
}

// Run drives the game until the player quits, the input ends, or ctx is
// cancelled. With ShutdownNotice set, cancellation first shows the notice.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.running {
		frameStart := time.Now()

		if c.shutdownAt.IsZero() && ctx.Err() != nil {
			if !c.shutdownNotice {
				break
			}
			c.shutdownAt = frameStart.Add(time.Duration(config.ShutdownDisplaySeconds * float64(time.Second)))
		}
		if !c.shutdownAt.IsZero() && frameStart.After(c.shutdownAt) {
			break
		}

		events := c.processInput(frameStart)
		resized := c.updateScreen()

		frame := c.game.Tick(events)

		if err := c.drawFrame(frame, resized); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput drains pending keys, handles quit and inactivity, and returns
// the events for the game.
func (c *Client) processInput(now time.Time) []input.Event {
	events := c.inputStream.Poll(now)
	if c.inputStream.Closed() {
		c.running = false
	}

	kept := events[:0]
	for _, e := range events {
		if e.Pressed {
			c.lastInput = now
		}
		if e.Key == input.KeyQ {
			if e.Pressed {
				c.running = false
			}
			continue
		}
		kept = append(kept, e)
	}

	if c.disconnectInactive {
		idle := now.Sub(c.lastInput).Seconds()
		c.inactive = idle > config.InactivityWarnUser
		if idle > config.InactivityDisconnectUser {
			c.running = false
		}
	}
	return kept
}

// updateScreen follows terminal resizes, clamping to the max render resolution.
// Returns true when the render area changed.
func (c *Client) updateScreen() bool {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return false
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	changed := renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow()

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	return changed
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
