package monitor

import (
	"github.com/genricoloni/tuner/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// screenMargin keeps a corner-anchored overlay off the very edge of the display
const screenMargin = 24

// NewScreenResolution detects the primary display size at startup.
// Headless sessions fall back to 1920x1080 so window placement still works.
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	if screenshot.NumActiveDisplays() <= 0 {
		logger.Warn("No active displays detected, assuming 1920x1080")
		return &domain.ScreenResolution{Width: 1920, Height: 1080}
	}

	bounds := screenshot.GetDisplayBounds(0)
	res := &domain.ScreenResolution{Width: bounds.Dx(), Height: bounds.Dy()}

	logger.Debug("Primary display detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))

	return res
}

// WindowOrigin returns the top-left position of a width x height window
// anchored to corner of the display. ok is false when no corner is requested.
func WindowOrigin(res domain.ScreenResolution, corner string, width, height int) (x, y int, ok bool) {
	left := screenMargin
	top := screenMargin
	right := max(res.Width-width-screenMargin, 0)
	bottom := max(res.Height-height-screenMargin, 0)

	switch corner {
	case "top-left":
		return left, top, true
	case "top-right":
		return right, top, true
	case "bottom-left":
		return left, bottom, true
	case "bottom-right":
		return right, bottom, true
	default:
		return 0, 0, false
	}
}
