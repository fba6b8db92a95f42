package processor

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/tuner/internal/config"
	"github.com/genricoloni/tuner/internal/domain"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// CoverSize is the edge length of the rendered album cover
	CoverSize          = 160
	defaultBlurRadius  = 15.0
	backdropBrightness = -35.0 // Keep text readable over the blurred cover
)

// ProcessorConfig holds configuration for image processing
type ProcessorConfig struct {
	CoverSize  int
	BlurRadius float64
	Backdrop   bool
}

// ArtworkProcessor decodes downloaded covers and prepares them for texture upload
type ArtworkProcessor struct {
	logger *zap.Logger
	appCfg domain.Config
	config ProcessorConfig
}

// NewArtworkProcessor creates a processor sized for the configured window
func NewArtworkProcessor(logger *zap.Logger, appCfg domain.Config) *ArtworkProcessor {
	return &ArtworkProcessor{
		logger: logger,
		appCfg: appCfg,
		config: ProcessorConfig{
			CoverSize:  CoverSize,
			BlurRadius: defaultBlurRadius,
			Backdrop:   appCfg.Background() == config.BackgroundBlur,
		},
	}
}

// Load decodes the image at path and returns a square cover plus, when the
// blur background is enabled, a blurred backdrop covering the whole window.
func (p *ArtworkProcessor) Load(path string) (domain.Artwork, error) {
	// 1. Decode image from disk
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: failed to decode image: %w", domain.ErrResourceConstruction, err)
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return domain.Artwork{}, fmt.Errorf("%w: invalid image dimensions: %dx%d",
			domain.ErrResourceConstruction, bounds.Dx(), bounds.Dy())
	}

	// 2. Square cover, cropped around the center
	size := p.config.CoverSize
	art := domain.Artwork{
		Cover: imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos),
	}

	// 3. Optional blurred backdrop
	if p.config.Backdrop {
		art.Backdrop = p.backdrop(img)
	}

	p.logger.Debug("Artwork processed",
		zap.String("path", path),
		zap.Int("srcWidth", bounds.Dx()),
		zap.Int("srcHeight", bounds.Dy()),
		zap.Bool("backdrop", art.Backdrop != nil))

	return art, nil
}

// backdrop fills the window with a blurred, darkened copy of the cover
func (p *ArtworkProcessor) backdrop(img image.Image) image.Image {
	w, h := p.appCfg.WindowSize()
	p.logger.Debug("Creating blurred backdrop", zap.Int("w", w), zap.Int("h", h))

	background := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	background = imaging.Blur(background, p.config.BlurRadius)
	return imaging.AdjustBrightness(background, backdropBrightness)
}
