//go:build !linux
// +build !linux

package executor

import (
	"context"
	"fmt"

	"github.com/genricoloni/tuner/internal/domain"
	"go.uber.org/zap"
)

// StubExecutor is a placeholder for platforms without playerctl (macOS, Windows, BSD)
type StubExecutor struct {
	logger *zap.Logger
}

// NewExecutor creates a stub executor for unsupported platforms
func NewExecutor(logger *zap.Logger) *StubExecutor {
	logger.Warn("Command-based providers are not supported on this platform")
	return &StubExecutor{logger: logger}
}

// Output always fails so the poller falls back to placeholders
func (e *StubExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	return "", fmt.Errorf("%w: running %s is not supported on this platform", domain.ErrProviderUnavailable, name)
}
