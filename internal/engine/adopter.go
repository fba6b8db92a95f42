package engine

import (
	"errors"
	"os"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/mailbox"
	"go.uber.org/zap"
)

// Adopter turns downloaded files into textures owned by the render loop.
// At most one cover (and one backdrop) is live at a time.
type Adopter struct {
	logger    *zap.Logger
	box       *mailbox.Mailbox[domain.PendingAsset]
	processor domain.Processor
	graphics  domain.Graphics
	art       domain.Texture
	backdrop  domain.Texture
}

// NewAdopter creates an adopter reading from box
func NewAdopter(
	logger *zap.Logger,
	box *mailbox.Mailbox[domain.PendingAsset],
	proc domain.Processor,
	graphics domain.Graphics,
) *Adopter {
	return &Adopter{
		logger:    logger,
		box:       box,
		processor: proc,
		graphics:  graphics,
	}
}

// Adopt drains the mailbox once. Results whose generation is not current are
// discarded. The temp file is removed whatever the outcome.
// It returns true when the live textures changed.
func (a *Adopter) Adopt(current uint64) bool {
	asset, ok := a.box.Take()
	if !ok {
		return false
	}
	defer a.remove(asset.Path)

	if asset.Generation != current {
		a.logger.Debug("Discarding stale album art",
			zap.String("url", asset.Reference),
			zap.Uint64("generation", asset.Generation),
			zap.Uint64("current", current))
		return false
	}

	a.release()

	artwork, err := a.processor.Load(asset.Path)
	if err != nil {
		a.logger.Warn("Failed to load album art", zap.String("url", asset.Reference), zap.Error(err))
		return true
	}

	art, err := a.graphics.NewTexture(artwork.Cover)
	if err != nil {
		a.logger.Warn("Failed to create album art texture", zap.Error(err))
		return true
	}
	a.art = art

	if artwork.Backdrop != nil {
		if a.backdrop, err = a.graphics.NewTexture(artwork.Backdrop); err != nil {
			a.logger.Warn("Failed to create backdrop texture", zap.Error(err))
		}
	}

	a.logger.Info("Album art adopted", zap.String("url", asset.Reference))
	return true
}

// Art returns the live cover texture, nil when the placeholder should be drawn
func (a *Adopter) Art() domain.Texture {
	return a.art
}

// Backdrop returns the live blurred background, if any
func (a *Adopter) Backdrop() domain.Texture {
	return a.backdrop
}

// Close drops whatever is left in the mailbox and releases live textures
func (a *Adopter) Close() error {
	var err error
	if asset, ok := a.box.Take(); ok {
		err = removeFile(asset.Path)
	}
	a.release()
	return err
}

func (a *Adopter) release() {
	if a.art != nil {
		a.art.Release()
		a.art = nil
	}
	if a.backdrop != nil {
		a.backdrop.Release()
		a.backdrop = nil
	}
}

func (a *Adopter) remove(path string) {
	if err := removeFile(path); err != nil {
		a.logger.Warn("Failed to delete temp file", zap.String("path", path), zap.Error(err))
	}
}

func removeFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
