package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

const (
	defaultConfigPath     = "~/.config/tuner/config.toml"
	defaultIconPath       = "~/.config/tuner/icon.png"
	defaultDarkMode       = true
	defaultWindowWidth    = 600
	defaultWindowHeight   = 200
	defaultUpdateInterval = 2 * time.Second
	defaultFetchTimeout   = 10 * time.Second
	defaultPlayer         = "spotify"
	defaultSource         = SourcePlayerctl
	defaultBackend        = BackendWindow
	defaultBackground     = BackgroundGradient
)

const (
	SourcePlayerctl = "playerctl"
	SourceMpris     = "mpris"

	BackendWindow      = "window"
	BackendFramebuffer = "framebuffer"

	BackgroundGradient = "gradient"
	BackgroundBlur     = "blur"
)

var validPositions = map[string]bool{
	"":             true,
	"top-left":     true,
	"top-right":    true,
	"bottom-left":  true,
	"bottom-right": true,
}

// Path is the configuration file location requested on the command line.
// Empty means TUNER_CONFIG or the default location.
type Path string

// fileConfig mirrors the TOML document. Pointers and any distinguish missing keys from zero values.
type fileConfig struct {
	DarkMode       *bool  `toml:"dark_mode"`
	WindowWidth    *int   `toml:"window_width"`
	WindowHeight   *int   `toml:"window_height"`
	UpdateInterval any    `toml:"update_interval"`
	Player         string `toml:"player"`
	Source         string `toml:"source"`
	Backend        string `toml:"backend"`
	Position       string `toml:"position"`
	Background     string `toml:"background"`
	FetchTimeout   any    `toml:"fetch_timeout"`
	Icon           string `toml:"icon"`
}

// AppConfig holds application configuration
type AppConfig struct {
	logger       *zap.Logger
	path         string
	darkMode     bool
	windowWidth  int
	windowHeight int
	interval     atomic.Int64
	player       string
	source       string
	backend      string
	position     string
	background   string
	fetchTimeout time.Duration
	iconPath     string
}

// NewAppConfig loads the configuration file, falling back to defaults for
// anything missing or invalid. It never fails: a broken file is logged and ignored.
func NewAppConfig(logger *zap.Logger, path Path) *AppConfig {
	// .env is optional
	_ = godotenv.Load()

	requested := strings.TrimSpace(string(path))
	if requested == "" {
		requested = os.Getenv("TUNER_CONFIG")
	}
	if requested == "" {
		requested = defaultConfigPath
	}

	cfg := defaults(logger)
	cfg.path = mustExpand(requested)

	raw, err := readFile(cfg.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("Config file not found, using defaults", zap.String("path", cfg.path))
	case err != nil:
		logger.Warn("Invalid configuration, using defaults",
			zap.String("path", cfg.path),
			zap.Error(err))
	default:
		cfg.apply(raw)
	}

	if player := os.Getenv("TUNER_PLAYER"); player != "" {
		cfg.player = player
	}

	logger.Info("Configuration loaded",
		zap.String("path", cfg.path),
		zap.Bool("darkMode", cfg.darkMode),
		zap.Int("width", cfg.windowWidth),
		zap.Int("height", cfg.windowHeight),
		zap.Duration("updateInterval", cfg.UpdateInterval()),
		zap.String("source", cfg.source),
		zap.String("player", cfg.player),
		zap.String("backend", cfg.backend))

	return cfg
}

func defaults(logger *zap.Logger) *AppConfig {
	cfg := &AppConfig{
		logger:       logger,
		darkMode:     defaultDarkMode,
		windowWidth:  defaultWindowWidth,
		windowHeight: defaultWindowHeight,
		player:       defaultPlayer,
		source:       defaultSource,
		backend:      defaultBackend,
		background:   defaultBackground,
		fetchTimeout: defaultFetchTimeout,
		iconPath:     mustExpand(defaultIconPath),
	}
	cfg.interval.Store(int64(defaultUpdateInterval))
	return cfg
}

// readFile parses the TOML document at path
func readFile(path string) (fileConfig, error) {
	var raw fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return raw, err
	}

	if err := toml.Unmarshal(data, &raw); err != nil {
		return fileConfig{}, fmt.Errorf("%w: %v", domain.ErrConfigParse, err)
	}
	return raw, nil
}

// apply copies every valid value from the file; invalid values keep their defaults
func (c *AppConfig) apply(raw fileConfig) {
	if raw.DarkMode != nil {
		c.darkMode = *raw.DarkMode
	}
	if raw.WindowWidth != nil && *raw.WindowWidth > 0 {
		c.windowWidth = *raw.WindowWidth
	}
	if raw.WindowHeight != nil && *raw.WindowHeight > 0 {
		c.windowHeight = *raw.WindowHeight
	}
	if d, ok := seconds(raw.UpdateInterval); ok {
		c.interval.Store(int64(d))
	}
	if d, ok := seconds(raw.FetchTimeout); ok {
		c.fetchTimeout = d
	}
	if p := strings.TrimSpace(raw.Player); p != "" {
		c.player = p
	}

	switch s := strings.ToLower(strings.TrimSpace(raw.Source)); s {
	case SourcePlayerctl, SourceMpris:
		c.source = s
	case "":
	default:
		c.logger.Warn("Unknown source, using default", zap.String("source", s))
	}

	switch b := strings.ToLower(strings.TrimSpace(raw.Backend)); b {
	case BackendWindow, BackendFramebuffer:
		c.backend = b
	case "":
	default:
		c.logger.Warn("Unknown backend, using default", zap.String("backend", b))
	}

	switch bg := strings.ToLower(strings.TrimSpace(raw.Background)); bg {
	case BackgroundGradient, BackgroundBlur:
		c.background = bg
	case "":
	default:
		c.logger.Warn("Unknown background, using default", zap.String("background", bg))
	}

	pos := strings.ToLower(strings.TrimSpace(raw.Position))
	if validPositions[pos] {
		c.position = pos
	} else {
		c.logger.Warn("Unknown window position, ignoring", zap.String("position", pos))
	}

	if icon := strings.TrimSpace(raw.Icon); icon != "" {
		c.iconPath = mustExpand(icon)
	}
}

// seconds converts a positive TOML number of seconds (integer or float) into a duration
func seconds(v any) (time.Duration, bool) {
	var s float64
	switch n := v.(type) {
	case int64:
		s = float64(n)
	case float64:
		s = n
	default:
		return 0, false
	}
	if s <= 0 {
		return 0, false
	}
	return time.Duration(s * float64(time.Second)), true
}

// FilePath returns the resolved configuration file path
func (c *AppConfig) FilePath() string { return c.path }

// DarkMode returns the initial theme
func (c *AppConfig) DarkMode() bool { return c.darkMode }

// WindowSize returns the window dimensions
func (c *AppConfig) WindowSize() (int, int) { return c.windowWidth, c.windowHeight }

// UpdateInterval returns the current poll interval. Safe for concurrent use.
func (c *AppConfig) UpdateInterval() time.Duration { return time.Duration(c.interval.Load()) }

// SetUpdateInterval replaces the poll interval; non-positive values are ignored
func (c *AppConfig) SetUpdateInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.interval.Store(int64(d))
}

func (c *AppConfig) Player() string              { return c.player }
func (c *AppConfig) SourceKind() string          { return c.source }
func (c *AppConfig) Backend() string             { return c.backend }
func (c *AppConfig) Position() string            { return c.position }
func (c *AppConfig) Background() string          { return c.background }
func (c *AppConfig) FetchTimeout() time.Duration { return c.fetchTimeout }
func (c *AppConfig) IconPath() string            { return c.iconPath }

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	trimmed = os.ExpandEnv(trimmed)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
