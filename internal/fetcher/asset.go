package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/mailbox"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const tempFilePrefix = "tuner_album_"

// AssetFetcher downloads artwork in fire-and-forget goroutines and hands the
// resulting temp file to the render loop through the mailbox.
// A newer fetch never cancels an older one, but a fetch that finishes after a
// newer one was spawned leaves the mailbox alone and deletes its own file.
// Every file displaced from the mailbox is deleted.
type AssetFetcher struct {
	logger  *zap.Logger
	fetcher domain.Fetcher
	box     *mailbox.Mailbox[domain.PendingAsset]
	dir     string
	wg      sync.WaitGroup

	mu     sync.Mutex // serializes publishes against Spawn
	newest uint64     // highest generation spawned so far
}

// NewAssetFetcher creates a fetcher writing into the system temp directory
func NewAssetFetcher(logger *zap.Logger, fetcher domain.Fetcher, box *mailbox.Mailbox[domain.PendingAsset]) *AssetFetcher {
	return &AssetFetcher{
		logger:  logger,
		fetcher: fetcher,
		box:     box,
		dir:     os.TempDir(),
	}
}

// Spawn starts a background fetch of ref and returns immediately.
// generation is echoed back in the published asset.
func (a *AssetFetcher) Spawn(ref string, generation uint64) {
	a.mu.Lock()
	a.newest = max(a.newest, generation)
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.run(context.Background(), ref, generation)
	}()
}

// run performs one fetch and always leaves the mailbox in a defined state
func (a *AssetFetcher) run(ctx context.Context, ref string, generation uint64) {
	path, err := a.download(ctx, ref)
	if err != nil {
		a.logger.Warn("Failed to download album art",
			zap.String("url", ref),
			zap.Uint64("generation", generation),
			zap.Error(err))
	} else {
		a.logger.Debug("Album art downloaded",
			zap.String("url", ref),
			zap.String("path", path),
			zap.Uint64("generation", generation))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if generation < a.newest {
		a.logger.Debug("Newer album art requested, dropping result",
			zap.String("url", ref),
			zap.Uint64("generation", generation),
			zap.Uint64("newest", a.newest))
		a.discard(path)
		return
	}

	var (
		prev     domain.PendingAsset
		replaced bool
	)
	if err != nil {
		prev, replaced = a.box.SwapNone()
	} else {
		prev, replaced = a.box.Swap(domain.PendingAsset{
			Path:       path,
			Reference:  ref,
			Generation: generation,
		})
	}
	if replaced {
		a.discard(prev.Path)
	}
}

// discard deletes a temp file that will never be adopted
func (a *AssetFetcher) discard(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.logger.Warn("Failed to delete unadopted album art", zap.String("path", path), zap.Error(err))
	}
}

// download fetches ref and writes it to a uniquely named temp file
func (a *AssetFetcher) download(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty art reference", domain.ErrFetchFailed)
	}

	// 1. Fetch bytes
	data, err := a.fetcher.Fetch(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	// 2. Write them under a name no concurrent fetch can collide with
	path := filepath.Join(a.dir, tempFilePrefix+uuid.NewString()+extensionFor(data))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		// Do not leave a partial file behind
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = multierr.Append(err, rmErr)
		}
		return "", fmt.Errorf("%w: write temp file: %w", domain.ErrFetchFailed, err)
	}

	return path, nil
}

// Wait blocks until all in-flight fetches have published or ctx is done
func (a *AssetFetcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// extensionFor picks a conventional image extension from the sniffed content type
func extensionFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
