package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var red = colorful.Color{R: 1}

func render(t *testing.T, c *Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderEmptyCanvas(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	if got := render(t, c); got != "" {
		t.Fatalf("empty canvas rendered %q, want nothing", got)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	tests := []struct {
		name   string
		pixels []struct {
			y   float64
			col colorful.Color
		}
		wantRune rune
		wantSeq  []string
	}{
		{
			name: "top only",
			pixels: []struct {
				y   float64
				col colorful.Color
			}{{0, red}},
			wantRune: BlockUpperHalf,
			wantSeq:  []string{"38;2;255;0;0;49m"},
		},
		{
			name: "bottom only",
			pixels: []struct {
				y   float64
				col colorful.Color
			}{{1, red}},
			wantRune: BlockLowerHalf,
			wantSeq:  []string{"38;2;255;0;0;49m"},
		},
		{
			name: "same colour both halves",
			pixels: []struct {
				y   float64
				col colorful.Color
			}{{0, red}, {1, red}},
			wantRune: BlockFull,
		},
		{
			name: "two colours",
			pixels: []struct {
				y   float64
				col colorful.Color
			}{{0, red}, {1, White}},
			wantRune: BlockUpperHalf,
			wantSeq:  []string{"38;2;255;0;0", "48;2;255;255;255"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewScaledCanvas(4, 2, 4, 4)
			for _, p := range tt.pixels {
				c.Set(0, p.y, p.col)
			}
			got := render(t, c)
			if !strings.Contains(got, "\033[1;1H") {
				t.Errorf("output %q does not position at the first cell", got)
			}
			if !strings.ContainsRune(got, tt.wantRune) {
				t.Errorf("output %q missing %q", got, tt.wantRune)
			}
			for _, seq := range tt.wantSeq {
				if !strings.Contains(got, seq) {
					t.Errorf("output %q missing colour %q", got, seq)
				}
			}
			if !strings.HasSuffix(got, "\033[0m") {
				t.Errorf("output %q does not reset attributes", got)
			}
		})
	}
}

func TestRenderAsciiHasNoColour(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetProfile(termenv.Ascii)
	c.Set(1, 1, red)
	got := render(t, c)
	if strings.Contains(got, "38;") || strings.Contains(got, "\033[0m") {
		t.Fatalf("ascii output %q contains colour codes", got)
	}
	if !strings.ContainsRune(got, BlockLowerHalf) {
		t.Fatalf("ascii output %q missing pixel", got)
	}
}

func TestScalingAndOffset(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(5, 2)
	c.Set(400, 300, White)
	got := render(t, c)
	// pixel (40, 30) -> terminal row 15 (0-based), top half
	if want := "\033[18;46H"; !strings.Contains(got, want) {
		t.Fatalf("output %q missing cursor move %q", got, want)
	}
}

func TestFillCircleAlwaysVisible(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.FillCircle(100, 100, 0.3, White)
	n := 0
	for _, on := range c.lit {
		if on {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("tiny circle lit %d pixels, want 1", n)
	}

	c.Clear()
	c.FillCircle(400, 300, 50, White)
	for _, on := range c.lit {
		if on {
			n++
		}
	}
	if n < 20 {
		t.Fatalf("large circle lit only %d pixels", n)
	}
}

func TestDrawPolygonClipsOffscreen(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	// Partly off the top-left corner; must not panic or wrap around
	c.DrawPolygon([]Point{{-10, -10}, {5, -10}, {5, 5}, {-10, 5}}, red, true)
	if !c.lit[0] {
		t.Fatal("visible corner of polygon not drawn")
	}
	if c.lit[len(c.lit)-1] {
		t.Fatal("polygon leaked into the far corner")
	}
}

func TestDim(t *testing.T) {
	tests := []struct {
		alpha float64
		want  colorful.Color
	}{
		{1, White},
		{1.5, White},
		{0, colorful.Color{}},
		{-1, colorful.Color{}},
		{0.5, colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	}
	for _, tt := range tests {
		got := Dim(White, tt.alpha)
		if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
			t.Errorf("Dim(white, %v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestShipCoversBoundingBox(t *testing.T) {
	parts := Ship(100, 200, 90, 110)
	if len(parts) != len(shipParts) {
		t.Fatalf("parts = %d, want %d", len(parts), len(shipParts))
	}
	// Hull is the fourth part: its top edge sits 20% down the box
	hull := parts[3].Points
	if math.Abs(hull[0].X-82) > 1e-9 || math.Abs(hull[0].Y-167) > 1e-9 {
		t.Fatalf("hull starts at %+v", hull[0])
	}
}

func TestChunkWriterOffsetAndChunks(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	cw.WriteAt(2, 4, "hi")
	long := strings.Repeat("x", maxChunkSize*3)
	cw.WriteAt(1, 1, long)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "\033[5;5Hhi") {
		t.Fatalf("output starts %q, want offset cursor move", got[:12])
	}
	if !strings.HasSuffix(got, long) {
		t.Fatal("long payload truncated")
	}
	out.Reset()
	if err := cw.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("buffer not reset after Flush: %d bytes rewritten", out.Len())
	}
}
