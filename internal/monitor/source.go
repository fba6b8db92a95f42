package monitor

import (
	"github.com/genricoloni/tuner/internal/config"
	"github.com/genricoloni/tuner/internal/domain"
	"go.uber.org/zap"
)

// NewSource returns the now-playing source selected in the configuration
func NewSource(logger *zap.Logger, cfg domain.Config, executor domain.Executor) domain.Source {
	switch cfg.SourceKind() {
	case config.SourceMpris:
		logger.Info("Using MPRIS source", zap.String("player", cfg.Player()))
		return NewMprisSource(logger, cfg.Player())
	default:
		logger.Info("Using playerctl source", zap.String("player", cfg.Player()))
		return NewPlayerctlSource(logger, executor, cfg.Player())
	}
}
