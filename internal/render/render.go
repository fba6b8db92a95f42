// Package render draws the overlay through a small set of primitives that
// every backend (ebiten window, software framebuffer) provides.
package render

import (
	"context"
	"image/color"

	"github.com/genricoloni/tuner/internal/domain"
)

// Canvas is an abstraction the backends provide to draw primitives
// without exposing their graphics details.
// Text coordinates use a top-left anchor.
type Canvas interface {
	Fill(c color.Color)
	FillRect(x, y, w, h float32, c color.Color)
	StrokeRect(x, y, w, h, width float32, c color.Color)
	VerticalGradient(x, y, w, h float32, top, bottom color.Color)
	Line(x0, y0, x1, y1, width float32, c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
	Text(s string, x, y float32, size float64, c color.Color)
	Texture(t domain.Texture, x, y, w, h float32)
}

// Driver advances the overlay once per frame.
// Update runs the non-drawing steps, Draw renders and then applies input.
type Driver interface {
	Update(now float64, p domain.Pointer)
	Draw(c Canvas)
}

// Backend owns the render goroutine and the textures created on it
type Backend interface {
	domain.Graphics
	// Run blocks, driving d at the target frame rate until the window is
	// closed or ctx is cancelled.
	Run(ctx context.Context, d Driver) error
}
