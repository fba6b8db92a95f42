package engine

import (
	"context"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/mailbox"
	"github.com/genricoloni/tuner/internal/render"
	"github.com/genricoloni/tuner/internal/theme"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Spawner starts background artwork downloads that report through the mailbox
type Spawner interface {
	Spawn(ref string, generation uint64)
	Wait(ctx context.Context) error
}

// Driver advances the overlay once per frame. All of its state is owned by
// the render goroutine; the mailbox is the only thing shared with fetches.
type Driver struct {
	logger  *zap.Logger
	poller  *Poller
	spawner Spawner
	adopter *Adopter
	theme   *theme.State

	cache      Cache
	generation uint64 // bumped on every spawned fetch

	width, height int
	now           float64
	pointer       domain.Pointer
	wasDown       bool
	pressed       bool // press edge on the toggle, applied after drawing
}

// NewDriver wires the per-frame pipeline
func NewDriver(
	logger *zap.Logger,
	cfg domain.Config,
	source domain.Source,
	spawner Spawner,
	box *mailbox.Mailbox[domain.PendingAsset],
	proc domain.Processor,
	graphics domain.Graphics,
) *Driver {
	w, h := cfg.WindowSize()
	return &Driver{
		logger:  logger,
		poller:  NewPoller(logger, source, cfg.UpdateInterval),
		spawner: spawner,
		adopter: NewAdopter(logger, box, proc, graphics),
		theme:   theme.NewState(cfg.DarkMode()),
		width:   w,
		height:  h,
	}
}

// Update runs everything that precedes drawing: adoption, polling, change
// detection, fetch dispatch and input sampling. now is seconds since start.
func (d *Driver) Update(now float64, p domain.Pointer) {
	d.now = now

	// 1. Adopt whatever the last finished fetch left behind
	d.adopter.Adopt(d.generation)

	// 2. Poll when the interval has elapsed
	if d.poller.Due(now) {
		info := d.poller.Poll(now)
		decision := Detect(info, d.cache)

		// 3. Text
		if decision.TextChanged {
			d.cache.Artist = info.Artist
			d.cache.Title = info.Title
			d.logger.Info("Now playing",
				zap.String("title", info.Title),
				zap.String("artist", info.Artist))
		}

		// 4. Art
		if decision.ArtShouldRefetch {
			d.cache.ArtReference = info.ArtReference
			d.generation++
			d.spawner.Spawn(info.ArtReference, d.generation)
		}
	}

	if p.Down && !d.wasDown && render.InButton(d.width, d.height, p) {
		d.pressed = true
	}
	d.wasDown = p.Down
	d.pointer = p
}

// Draw renders the overlay and then applies a pending theme toggle
func (d *Driver) Draw(c render.Canvas) {
	render.DrawOverlay(c, render.Frame{
		Width:    d.width,
		Height:   d.height,
		Title:    d.cache.Title,
		Artist:   d.cache.Artist,
		Art:      d.adopter.Art(),
		Backdrop: d.adopter.Backdrop(),
		Palette:  d.theme.Palette(),
		Dark:     d.theme.IsDark(),
		Hover:    render.InButton(d.width, d.height, d.pointer),
		Time:     d.now,
	})

	if d.pressed {
		d.pressed = false
		d.theme.Toggle()
		d.logger.Debug("Theme toggled", zap.Bool("dark", d.theme.IsDark()))
	}
}

// Frame runs a whole frame in order
func (d *Driver) Frame(now float64, p domain.Pointer, c render.Canvas) {
	d.Update(now, p)
	d.Draw(c)
}

// Cache returns a copy of the current track state
func (d *Driver) Cache() Cache {
	return d.cache
}

// Theme exposes the theme flag
func (d *Driver) Theme() *theme.State {
	return d.theme
}

// Stop waits for in-flight fetches, then removes any leftover temp file and
// releases textures. It must run after the render loop has returned.
func (d *Driver) Stop(ctx context.Context) error {
	d.logger.Info("Driver stopping...")

	var err error
	if waitErr := d.spawner.Wait(ctx); waitErr != nil {
		d.logger.Warn("Album art downloads still running at shutdown", zap.Error(waitErr))
		err = multierr.Append(err, waitErr)
	}
	return multierr.Append(err, d.adopter.Close())
}
