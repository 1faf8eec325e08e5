package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block
// characters. It scales from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2
	pixels         []colorful.Color
	lit            []bool // [y * termWidth + x] - true if pixel is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	profile  termenv.Profile
	seqCache map[colorKey]string

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

type colorKey struct {
	c  colorful.Color
	bg bool
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions. Colours default to true colour.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		profile:       termenv.TrueColor,
		seqCache:      make(map[colorKey]string),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// SetProfile selects how colours are encoded. termenv.Ascii draws monochrome.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p != c.profile {
		c.profile = p
		clear(c.seqCache)
	}
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.lit = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.lit)
}

func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.lit[i] = true
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y float64, col colorful.Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// DrawLine draws a line using Bresenham's algorithm. Coordinates are logical.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline, filling the interior when filled is true.
func (c *Canvas) DrawPolygon(points []Point, col colorful.Color, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point, col colorful.Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle fills a circle of logical radius r. The circle always covers at
// least the pixel under its centre so distant objects stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	c.Set(cx, cy, col)
	if rx < 0.5 && ry < 0.5 {
		return
	}

	x0 := int(math.Floor(pcx - rx))
	x1 := int(math.Ceil(pcx + rx))
	y0 := int(math.Floor(pcy - ry))
	y1 := int(math.Ceil(pcy + ry))
	for y := y0; y <= y1; y++ {
		ny := (float64(y) - pcy) / ry
		for x := x0; x <= x1; x++ {
			nx := (float64(x) - pcx) / rx
			if nx*nx+ny*ny <= 1 {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// sequence returns the SGR parameters for col, or "" when the profile has no colour.
func (c *Canvas) sequence(col colorful.Color, bg bool) string {
	key := colorKey{col, bg}
	if s, ok := c.seqCache[key]; ok {
		return s
	}
	s := c.profile.Color(col.Clamped().Hex()).Sequence(bg)
	c.seqCache[key] = s
	return s
}

// style builds the SGR escape for a cell, "" when the profile has no colour.
func (c *Canvas) style(fg colorful.Color, bg *colorful.Color) string {
	fgSeq := c.sequence(fg, false)
	if fgSeq == "" {
		return ""
	}
	bgSeq := "49"
	if bg != nil {
		bgSeq = c.sequence(*bg, true)
	}
	return termenv.CSI + fgSeq + ";" + bgSeq + "m"
}

// Render outputs the lit cells of the canvas to w. Unlit cells are skipped,
// so the caller clears the screen between frames.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	last := ""
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.lit[topOffset+col]
			bottom := c.lit[bottomOffset+col]
			if !top && !bottom {
				continue
			}

			var ch rune
			var st string
			switch {
			case top && bottom:
				tc, bc := c.pixels[topOffset+col], c.pixels[bottomOffset+col]
				if tc == bc {
					ch, st = BlockFull, c.style(tc, nil)
				} else {
					ch, st = BlockUpperHalf, c.style(tc, &bc)
				}
			case top:
				ch, st = BlockUpperHalf, c.style(c.pixels[topOffset+col], nil)
			default:
				ch, st = BlockLowerHalf, c.style(c.pixels[bottomOffset+col], nil)
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if st != last {
				c.renderBuf.WriteString(st)
				last = st
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if last != "" {
		c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}

	return writeChunked(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	bar := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, bar)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, bar)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	return writeChunked(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
