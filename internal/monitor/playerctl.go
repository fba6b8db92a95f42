package monitor

import (
	"context"
	"fmt"

	"github.com/genricoloni/tuner/internal/domain"
	"go.uber.org/zap"
)

const playerctlBinary = "playerctl"

// PlayerctlSource queries now-playing metadata by shelling out to playerctl.
// Artist, title and art URL are three independent queries; each one that
// fails falls back to its own placeholder.
type PlayerctlSource struct {
	logger   *zap.Logger
	executor domain.Executor
	player   string
}

// NewPlayerctlSource creates a playerctl-backed source for the given player
func NewPlayerctlSource(logger *zap.Logger, executor domain.Executor, player string) *PlayerctlSource {
	return &PlayerctlSource{
		logger:   logger,
		executor: executor,
		player:   player,
	}
}

// NowPlaying runs the three playerctl queries
func (p *PlayerctlSource) NowPlaying(ctx context.Context) (domain.NowPlayingInfo, error) {
	info := domain.PlaceholderInfo()
	failures := 0

	if artist, err := p.query(ctx, "metadata", "--format", "{{ artist }}"); err == nil {
		info.Artist = artist
	} else {
		failures++
		p.logger.Debug("Artist query failed", zap.Error(err))
	}

	if title, err := p.query(ctx, "metadata", "--format", "{{ title }}"); err == nil {
		info.Title = title
	} else {
		failures++
		p.logger.Debug("Title query failed", zap.Error(err))
	}

	if art, err := p.query(ctx, "metadata", "mpris:artUrl"); err == nil {
		info.ArtReference = art
	} else {
		failures++
		p.logger.Debug("Art URL query failed", zap.Error(err))
	}

	if failures == 3 {
		return info, fmt.Errorf("%w: playerctl returned nothing for %q",
			domain.ErrProviderUnavailable, p.player)
	}
	return info, nil
}

func (p *PlayerctlSource) query(ctx context.Context, args ...string) (string, error) {
	if p.player != "" {
		args = append([]string{"-p", p.player}, args...)
	}
	return p.executor.Output(ctx, playerctlBinary, args...)
}
