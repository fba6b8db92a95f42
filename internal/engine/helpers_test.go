package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/tuner/internal/domain"
)

// scriptedSource returns its responses in order, repeating the last one
type scriptedSource struct {
	responses []sourceResponse
	calls     int
}

type sourceResponse struct {
	info domain.NowPlayingInfo
	err  error
}

func (s *scriptedSource) NowPlaying(ctx context.Context) (domain.NowPlayingInfo, error) {
	r := s.responses[min(s.calls, len(s.responses)-1)]
	s.calls++
	return r.info, r.err
}

type spawnCall struct {
	ref        string
	generation uint64
}

// recordingSpawner captures spawns without doing any I/O
type recordingSpawner struct {
	mu    sync.Mutex
	calls []spawnCall
}

func (r *recordingSpawner) Spawn(ref string, generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, spawnCall{ref: ref, generation: generation})
}

func (r *recordingSpawner) Wait(ctx context.Context) error {
	return nil
}

type stubProcessor struct {
	err      error
	backdrop bool
}

func (s *stubProcessor) Load(path string) (domain.Artwork, error) {
	if s.err != nil {
		return domain.Artwork{}, s.err
	}
	if _, err := os.Stat(path); err != nil {
		return domain.Artwork{}, err
	}
	art := domain.Artwork{Cover: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	if s.backdrop {
		art.Backdrop = image.NewRGBA(image.Rect(0, 0, 8, 4))
	}
	return art, nil
}

type fakeTexture struct {
	w, h     int
	released int
}

func (f *fakeTexture) Size() (int, int) { return f.w, f.h }
func (f *fakeTexture) Release()         { f.released++ }

type fakeGraphics struct {
	created []*fakeTexture
	err     error
}

func (g *fakeGraphics) NewTexture(img image.Image) (domain.Texture, error) {
	if g.err != nil {
		return nil, g.err
	}
	b := img.Bounds()
	t := &fakeTexture{w: b.Dx(), h: b.Dy()}
	g.created = append(g.created, t)
	return t, nil
}

// stubConfig satisfies domain.Config with fixed values
type stubConfig struct {
	dark     bool
	interval time.Duration
}

func (c stubConfig) DarkMode() bool                { return c.dark }
func (c stubConfig) WindowSize() (int, int)        { return 600, 200 }
func (c stubConfig) UpdateInterval() time.Duration { return c.interval }
func (c stubConfig) Player() string                { return "spotify" }
func (c stubConfig) SourceKind() string            { return "playerctl" }
func (c stubConfig) Backend() string               { return "window" }
func (c stubConfig) Position() string              { return "" }
func (c stubConfig) Background() string            { return "gradient" }
func (c stubConfig) FetchTimeout() time.Duration   { return 10 * time.Second }
func (c stubConfig) IconPath() string              { return "" }

// textCanvas records text draws and ignores everything else
type textCanvas struct {
	texts    []string
	textures []domain.Texture
}

func (c *textCanvas) Fill(color.Color)                                      {}
func (c *textCanvas) FillRect(x, y, w, h float32, col color.Color)          {}
func (c *textCanvas) StrokeRect(x, y, w, h, width float32, col color.Color) {}
func (c *textCanvas) VerticalGradient(x, y, w, h float32, t, b color.Color) {}
func (c *textCanvas) Line(x0, y0, x1, y1, width float32, col color.Color)   {}
func (c *textCanvas) FillCircle(cx, cy, r float32, col color.Color)         {}
func (c *textCanvas) Text(s string, x, y float32, size float64, col color.Color) {
	c.texts = append(c.texts, s)
}
func (c *textCanvas) Texture(t domain.Texture, x, y, w, h float32) {
	c.textures = append(c.textures, t)
}

var errBoom = errors.New("boom")

// writeAsset creates a temp file standing in for a finished download
func writeAsset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuner_album_test.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return path
}

func assertGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %s to be deleted, stat err = %v", path, err)
	}
}
