//go:build linux
// +build linux

package executor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// defaultCommandTimeout bounds a single provider query so polling stays short
const defaultCommandTimeout = time.Second

// LinuxExecutor runs provider commands on Linux systems
type LinuxExecutor struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewExecutor creates a new platform-specific command executor (Linux implementation)
func NewExecutor(logger *zap.Logger) *LinuxExecutor {
	for _, binary := range []string{"playerctl"} {
		if commandExists(binary) {
			logger.Info("Provider command detected", zap.String("binary", binary))
		} else {
			logger.Warn("Provider command not found in PATH, placeholders will be shown",
				zap.String("binary", binary))
		}
	}

	return &LinuxExecutor{
		logger:  logger,
		timeout: defaultCommandTimeout,
	}
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Output runs the command with a bounded timeout and returns its trimmed stdout.
// A non-zero exit status is reported as an error.
func (e *LinuxExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Debug("Running command",
		zap.String("command", name),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w (stderr: %s)",
			name, err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(string(out)), nil
}
