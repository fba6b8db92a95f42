package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	metadataProp    = "org.mpris.MediaPlayer2.Player.Metadata"
)

// MprisSource reads now-playing metadata directly from an MPRIS player over D-Bus
type MprisSource struct {
	logger *zap.Logger
	player string
	dial   func() (DBusClient, error)
	mu     sync.Mutex
	conn   DBusClient // Interface for testability
}

// NewMprisSource creates a source observing the player with the given name
// (the suffix after org.mpris.MediaPlayer2.). An empty name picks the first player found.
func NewMprisSource(logger *zap.Logger, player string) *MprisSource {
	return &MprisSource{
		logger: logger,
		player: player,
		dial:   NewStdDBusClient,
	}
}

// NowPlaying queries the player once. The connection is opened lazily and
// reopened after bus errors.
func (m *MprisSource) NowPlaying(ctx context.Context) (domain.NowPlayingInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.NowPlayingInfo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		conn, err := m.dial()
		if err != nil {
			return domain.NowPlayingInfo{}, fmt.Errorf("%w: session bus connection failed: %w",
				domain.ErrProviderUnavailable, err)
		}
		m.conn = conn
	}

	name, err := m.findPlayer()
	if err != nil {
		return domain.NowPlayingInfo{}, err
	}

	variant, err := m.conn.GetProperty(name, mprisObjectPath, metadataProp)
	if err != nil {
		return domain.NowPlayingInfo{}, fmt.Errorf("%w: failed to get metadata: %w",
			domain.ErrProviderUnavailable, err)
	}

	// SAFE CAST: Some players may return nil or unexpected types if not playing anything
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return domain.NowPlayingInfo{}, fmt.Errorf("%w: metadata is %T, not a map",
			domain.ErrProviderUnavailable, variant.Value())
	}

	return m.parseMetadata(metadata), nil
}

// findPlayer returns the bus name of the observed player
func (m *MprisSource) findPlayer() (string, error) {
	names, err := m.conn.ListNames()
	if err != nil {
		m.resetConn()
		return "", fmt.Errorf("%w: failed to list bus names: %w", domain.ErrProviderUnavailable, err)
	}

	want := mprisPrefix + m.player
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		// Players with several instances append ".instanceNNN"
		if m.player == "" || name == want || strings.HasPrefix(name, want+".") {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: no MPRIS player %q on the bus", domain.ErrProviderUnavailable, m.player)
}

// parseMetadata converts MPRIS metadata to the domain model.
// Missing or empty fields keep their placeholders; an idle player reports an empty map.
func (m *MprisSource) parseMetadata(metadata map[string]dbus.Variant) domain.NowPlayingInfo {
	info := domain.PlaceholderInfo()

	// Extract title
	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok && strings.TrimSpace(title) != "" {
			info.Title = title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		var artist string
		switch artists := artistVar.Value().(type) {
		case []string:
			artist = strings.Join(artists, ", ")
		case string:
			artist = artists
		default:
			// Some non-compliant players may use unexpected types
			m.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
		if strings.TrimSpace(artist) != "" {
			info.Artist = artist
		}
	}

	// Extract art URL
	if artVar, ok := metadata["mpris:artUrl"]; ok {
		if artURL, ok := artVar.Value().(string); ok {
			info.ArtReference = strings.TrimSpace(artURL)
		}
	}

	return info
}

func (m *MprisSource) resetConn() {
	if m.conn == nil {
		return
	}
	if err := m.conn.Close(); err != nil {
		m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
	m.conn = nil
}

// Close releases the D-Bus connection
func (m *MprisSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}
