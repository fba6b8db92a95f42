package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/monitor/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// TestMprisSource_NowPlaying covers the metadata query:
// 1. Success (Happy Path)
// 2. DBus Errors (Connection fail)
// 3. Invalid Data types (Robustness)
func TestMprisSource_NowPlaying(t *testing.T) {
	spotify := "org.mpris.MediaPlayer2.spotify"

	tests := []struct {
		name        string
		player      string
		setupMock   func(*mocks.MockDBusClient)
		expectError bool
		expected    domain.NowPlayingInfo
	}{
		{
			name:   "Success - Valid Metadata",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{"org.freedesktop.DBus", spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Idioteque"),
						"xesam:artist": dbus.MakeVariant([]string{"Radiohead"}),
						"mpris:artUrl": dbus.MakeVariant("http://x/img.jpg"),
					}), nil)
			},
			expected: domain.NowPlayingInfo{Artist: "Radiohead", Title: "Idioteque", ArtReference: "http://x/img.jpg"},
		},
		{
			name:   "Success - Multiple Artists Joined",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Under Pressure"),
						"xesam:artist": dbus.MakeVariant([]string{"Queen", "David Bowie"}),
					}), nil)
			},
			expected: domain.NowPlayingInfo{Artist: "Queen, David Bowie", Title: "Under Pressure"},
		},
		{
			name:   "Success - Instance Suffix And Artist As String",
			player: "vlc",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{"org.mpris.MediaPlayer2.vlc.instance42"}, nil)
				m.EXPECT().GetProperty("org.mpris.MediaPlayer2.vlc.instance42", mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Video B"),
						"xesam:artist": dbus.MakeVariant("Single Artist"),
					}), nil)
			},
			expected: domain.NowPlayingInfo{Artist: "Single Artist", Title: "Video B"},
		},
		{
			name:   "Idle - Empty Metadata",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{}), nil)
			},
			expected: domain.PlaceholderInfo(),
		},
		{
			name:   "Partial - Empty Artist List Keeps Placeholder",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Track 01"),
						"xesam:artist": dbus.MakeVariant([]string{}),
					}), nil)
			},
			expected: domain.NowPlayingInfo{Artist: domain.UnknownArtist, Title: "Track 01"},
		},
		{
			name:   "Error - Player Not On Bus",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{"org.mpris.MediaPlayer2.vlc"}, nil)
			},
			expectError: true,
		},
		{
			name:   "Error - ListNames Fails Drops Connection",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return(nil, fmt.Errorf("bus error"))
				m.EXPECT().Close().Return(nil)
			},
			expectError: true,
		},
		{
			name:   "DBus Error - GetProperty Fails",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(""), fmt.Errorf("connection timeout"))
			},
			expectError: true,
		},
		{
			name:   "Invalid Data - Metadata is Int not Map",
			player: "spotify",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{spotify}, nil)
				m.EXPECT().GetProperty(spotify, mprisObjectPath, metadataProp).
					Return(dbus.MakeVariant(12345), nil) // Wrong type
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			src := NewMprisSource(zap.NewNop(), tt.player)
			src.dial = func() (DBusClient, error) { return mockClient, nil }

			info, err := src.NowPlaying(context.Background())

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, domain.ErrProviderUnavailable) {
					t.Errorf("Expected ErrProviderUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if info != tt.expected {
				t.Errorf("Info mismatch: want %+v, got %+v", tt.expected, info)
			}
		})
	}
}

func TestMprisSource_DialFailure(t *testing.T) {
	src := NewMprisSource(zap.NewNop(), "spotify")
	src.dial = func() (DBusClient, error) { return nil, fmt.Errorf("no session bus") }

	_, err := src.NowPlaying(context.Background())
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMprisSource_ReusesConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDBusClient(ctrl)
	mockClient.EXPECT().ListNames().Return([]string{"org.mpris.MediaPlayer2.spotify"}, nil).Times(2)
	mockClient.EXPECT().GetProperty(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dbus.MakeVariant(map[string]dbus.Variant{}), nil).Times(2)
	mockClient.EXPECT().Close().Return(nil)

	dials := 0
	src := NewMprisSource(zap.NewNop(), "spotify")
	src.dial = func() (DBusClient, error) {
		dials++
		return mockClient, nil
	}

	for i := 0; i < 2; i++ {
		if _, err := src.NowPlaying(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if dials != 1 {
		t.Errorf("Expected one dial, got %d", dials)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestMprisSource_CancelledContext(t *testing.T) {
	src := NewMprisSource(zap.NewNop(), "spotify")
	src.dial = func() (DBusClient, error) {
		t.Fatal("dial must not be called with a cancelled context")
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.NowPlaying(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
