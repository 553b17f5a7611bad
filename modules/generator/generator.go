// Procedural decorative image
package generator

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/gogpu/gg"
)

const (
	DefaultWidth   = 512 // Default surface width
	DefaultHeight  = 512 // Default surface height
	DefaultCircles = 120 // Translucent circles drawn over gradient
	DefaultStrokes = 26  // Bezier strokes drawn last
)

type Option func(*Generator)

// Fixed seed to source, same seed draw same image
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.source = rand.New(rand.NewSource(seed)) }
}

// Surface size
func WithSize(width, height int) Option {
	return func(g *Generator) { g.width, g.height = width, height }
}

// Generator draw randomized composition with fixed structure:
// background fill, linear gradient, translucent circles and bezier strokes.
//
// Generator is not safe for concurrent use.
type Generator struct {
	width, height int
	source        *rand.Rand
}

func New(opts ...Option) *Generator {
	g := &Generator{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(g)
	}
	if g.source == nil {
		g.source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

func (g *Generator) Width() int  { return g.width }
func (g *Generator) Height() int { return g.height }

// random float in [min, max)
func (g *Generator) rand(min, max float64) float64 { return min + g.source.Float64()*(max-min) }

// hsla with saturation and lightness in percent, same as css
func hsla(h, s, l, a float64) gg.RGBA {
	color := gg.HSL(h, s/100, l/100)
	color.A = a
	return color
}

// Draw new image
func (g *Generator) Draw() (image.Image, error) {
	if g.width <= 0 || g.height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", g.width, g.height)
	}

	dc := gg.NewContext(g.width, g.height)
	defer dc.Close()

	W, H := float64(g.width), float64(g.height)
	dc.Clear()

	// Background
	dc.SetFillBrush(gg.Solid(hsla(g.rand(0, 360), 30, 12, 1)))
	dc.DrawRectangle(0, 0, W, H)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("cannot fill background: %w", err)
	}

	// Gradient
	gradient := gg.NewLinearGradientBrush(g.rand(0, W), g.rand(0, H), g.rand(0, W), g.rand(0, H)).
		AddColorStop(0, hsla(g.rand(0, 360), 90, 65, 0.9)).
		AddColorStop(1, hsla(g.rand(0, 360), 90, 55, 0.25))
	dc.SetFillBrush(gradient)
	dc.DrawRectangle(0, 0, W, H)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("cannot fill gradient: %w", err)
	}

	// Blobs
	for i := range DefaultCircles {
		dc.DrawCircle(g.rand(0, W), g.rand(0, H), g.rand(6, 80))
		dc.SetFillBrush(gg.Solid(hsla(g.rand(0, 360), g.rand(50, 100), g.rand(30, 75), g.rand(0.05, 0.25))))
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("cannot fill circle %d: %w", i, err)
		}
	}

	// Lines, width is same to all strokes
	dc.SetLineWidth(g.rand(1, 4))
	for i := range DefaultStrokes {
		dc.MoveTo(g.rand(0, W), g.rand(0, H))
		dc.CubicTo(
			g.rand(0, W), g.rand(0, H),
			g.rand(0, W), g.rand(0, H),
			g.rand(0, W), g.rand(0, H),
		)
		dc.SetStrokeBrush(gg.Solid(hsla(g.rand(0, 360), 90, 70, g.rand(0.08, 0.35))))
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("cannot stroke line %d: %w", i, err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("cannot flush surface: %w", err)
	}
	return dc.Image(), nil
}
