package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/monitor"
	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"
)

const (
	// TargetFPS is the frame rate of every backend
	TargetFPS = 60

	framebufferDevice = "/dev/fb0"
)

// FramebufferBackend draws the overlay into the Linux framebuffer.
// There is no pointer input, so the theme toggle is unavailable.
type FramebufferBackend struct {
	SoftwareGraphics
	logger *zap.Logger
	cfg    domain.Config
	device string
}

// NewFramebufferBackend creates a backend writing to /dev/fb0
func NewFramebufferBackend(logger *zap.Logger, cfg domain.Config) *FramebufferBackend {
	return &FramebufferBackend{
		logger: logger,
		cfg:    cfg,
		device: framebufferDevice,
	}
}

// Run renders frames until ctx is cancelled
func (b *FramebufferBackend) Run(ctx context.Context, d Driver) error {
	dev, err := fb.Open(b.device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", b.device, err)
	}
	defer dev.Close()

	bounds := dev.Bounds()
	b.logger.Info("Framebuffer open",
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	w, h := b.cfg.WindowSize()
	canvas, err := NewSoftwareCanvas(w, h)
	if err != nil {
		return err
	}

	res := domain.ScreenResolution{Width: bounds.Dx(), Height: bounds.Dy()}
	x, y, _ := monitor.WindowOrigin(res, b.cfg.Position(), w, h)
	origin := bounds.Min.Add(image.Pt(x, y))

	ticker := time.NewTicker(time.Second / TargetFPS)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Framebuffer loop stopped")
			return nil
		case <-ticker.C:
			d.Update(time.Since(start).Seconds(), domain.Pointer{})
			d.Draw(canvas)
			blit(dev, canvas.Image(), origin)
		}
	}
}

// blit copies the canvas to the device at origin, clipped to the screen
func blit(dev *fb.Device, src *image.RGBA, origin image.Point) {
	dst := dev.Bounds()
	sb := src.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		dy := origin.Y + y
		if dy >= dst.Max.Y {
			return
		}
		for x := 0; x < sb.Dx(); x++ {
			dx := origin.X + x
			if dx >= dst.Max.X {
				break
			}
			p := src.RGBAAt(sb.Min.X+x, sb.Min.Y+y)
			dev.Set(dx, dy, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
}
