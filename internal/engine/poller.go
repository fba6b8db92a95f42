package engine

import (
	"context"
	"time"

	"github.com/genricoloni/tuner/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	// pollTimeout bounds one provider query so a hung provider cannot freeze a frame
	pollTimeout = 3 * time.Second
	// failureLogInterval limits provider failure warnings
	failureLogInterval = 30 * time.Second
)

// Poller queries the now-playing source at most once per update interval.
// It is only used from the render goroutine.
type Poller struct {
	logger   *zap.Logger
	source   domain.Source
	interval func() time.Duration
	lastPoll float64
	lastWarn time.Time
}

// NewPoller creates a poller. interval is read on every frame so a hot-reloaded
// value takes effect immediately.
func NewPoller(logger *zap.Logger, source domain.Source, interval func() time.Duration) *Poller {
	return &Poller{
		logger:   logger,
		source:   source,
		interval: interval,
	}
}

// Due reports whether strictly more than the interval has passed since the last poll.
// now is seconds since the loop started.
func (p *Poller) Due(now float64) bool {
	return now-p.lastPoll > p.interval().Seconds()
}

// Poll queries the source once and resets the throttle, even on failure.
// Failures yield placeholder values. Text comes back NFC-normalized.
func (p *Poller) Poll(now float64) domain.NowPlayingInfo {
	p.lastPoll = now

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	info, err := p.source.NowPlaying(ctx)
	if err != nil {
		p.logFailure(err)
		return domain.PlaceholderInfo()
	}

	info.Artist = norm.NFC.String(info.Artist)
	info.Title = norm.NFC.String(info.Title)
	return info
}

// logFailure warns about provider errors, but rate-limited since an idle
// player fails on every poll
func (p *Poller) logFailure(err error) {
	t := time.Now()
	if t.Sub(p.lastWarn) < failureLogInterval {
		p.logger.Debug("Now-playing query failed", zap.Error(err))
		return
	}
	p.lastWarn = t
	p.logger.Warn("Now-playing query failed, showing placeholders", zap.Error(err))
}
