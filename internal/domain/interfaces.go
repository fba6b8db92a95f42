package domain

import (
	"context"
	"image"
	"time"
)

// Source defines the interface for querying the currently playing media.
// Implementations talk to playerctl or directly to MPRIS over D-Bus.
type Source interface {
	// NowPlaying queries the provider once.
	// It returns an error wrapping ErrProviderUnavailable when nothing usable is reported.
	NowPlaying(ctx context.Context) (NowPlayingInfo, error)
}

// Fetcher defines the interface for retrieving album artwork
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Processor defines the interface for turning a downloaded file into artwork
type Processor interface {
	// Load decodes the image at path and prepares the cover (and optional backdrop)
	Load(path string) (Artwork, error)
}

// Executor defines the interface for executing system commands
type Executor interface {
	// Output runs the named binary and returns its trimmed standard output
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Texture is a renderable image handle owned by the render loop
type Texture interface {
	// Size returns the texture dimensions in pixels
	Size() (width int, height int)
	// Release frees the underlying graphics resource
	Release()
}

// Graphics constructs textures for the active rendering backend.
// It must only be called from the render goroutine.
type Graphics interface {
	NewTexture(img image.Image) (Texture, error)
}

// Config defines the interface for application configuration
type Config interface {
	// DarkMode returns the initial theme
	DarkMode() bool
	// WindowSize returns the window dimensions
	WindowSize() (width int, height int)
	// UpdateInterval returns the poll interval; it may change while running
	UpdateInterval() time.Duration
	// Player returns the player name to observe
	Player() string
	// SourceKind returns "playerctl" or "mpris"
	SourceKind() string
	// Backend returns "window" or "framebuffer"
	Backend() string
	// Position returns the preferred window corner, empty for none
	Position() string
	// Background returns "gradient" or "blur"
	Background() string
	// FetchTimeout bounds a single artwork download
	FetchTimeout() time.Duration
	// IconPath returns the window icon path
	IconPath() string
}
