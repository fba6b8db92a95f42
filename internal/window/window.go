// Package window runs the overlay in a desktop window using ebiten.
package window

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/monitor"
	"github.com/genricoloni/tuner/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

const windowTitle = "Tuner"

// Backend is the ebiten window implementation of render.Backend
type Backend struct {
	logger *zap.Logger
	cfg    domain.Config
	screen *domain.ScreenResolution
}

// NewBackend creates the window backend. The window is opened by Run.
func NewBackend(logger *zap.Logger, cfg domain.Config, screen *domain.ScreenResolution) *Backend {
	return &Backend{
		logger: logger,
		cfg:    cfg,
		screen: screen,
	}
}

// NewTexture uploads img to the GPU. Only call it from the game loop.
func (b *Backend) NewTexture(img image.Image) (domain.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", domain.ErrResourceConstruction)
	}
	return &texture{img: ebiten.NewImageFromImage(img)}, nil
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
// It must be called from the main goroutine.
func (b *Backend) Run(ctx context.Context, d render.Driver) error {
	w, h := b.cfg.WindowSize()

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(render.TargetFPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if x, y, ok := monitor.WindowOrigin(*b.screen, b.cfg.Position(), w, h); ok {
		ebiten.SetWindowPosition(x, y)
	}
	b.setIcon()

	g := &game{
		ctx:    ctx,
		driver: d,
		canvas: newCanvas(source),
		width:  w,
		height: h,
		start:  time.Now(),
	}

	b.logger.Info("Opening window", zap.Int("width", w), zap.Int("height", h))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window loop: %w", err)
	}
	b.logger.Info("Window closed")
	return nil
}

func (b *Backend) setIcon() {
	path := b.cfg.IconPath()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		b.logger.Debug("No window icon", zap.String("path", path))
		return
	}
	icon, err := imaging.Open(path)
	if err != nil {
		b.logger.Warn("Failed to load window icon", zap.String("path", path), zap.Error(err))
		return
	}
	ebiten.SetWindowIcon([]image.Image{icon})
}

// game adapts the driver to ebiten's Update/Draw split
type game struct {
	ctx           context.Context
	driver        render.Driver
	canvas        *canvas
	width, height int
	start         time.Time
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	g.driver.Update(time.Since(g.start).Seconds(), domain.Pointer{
		X:    x,
		Y:    y,
		Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.dst = screen
	g.driver.Draw(g.canvas)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// texture wraps a GPU image
type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	return t.img.Bounds().Dx(), t.img.Bounds().Dy()
}

func (t *texture) Release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}
