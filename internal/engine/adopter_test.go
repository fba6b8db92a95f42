package engine

import (
	"testing"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/mailbox"
	"go.uber.org/zap"
)

func newTestAdopter(proc domain.Processor, g domain.Graphics) (*Adopter, *mailbox.Mailbox[domain.PendingAsset]) {
	box := mailbox.New[domain.PendingAsset]()
	return NewAdopter(zap.NewNop(), box, proc, g), box
}

func TestAdopter_Adopt(t *testing.T) {
	tests := []struct {
		name           string
		processor      *stubProcessor
		graphicsErr    error
		generation     uint64
		expectArt      bool
		expectBackdrop bool
		expectReleased bool
	}{
		{
			name:           "Success - Replaces Previous",
			processor:      &stubProcessor{},
			generation:     3,
			expectArt:      true,
			expectReleased: true,
		},
		{
			name:           "Success - With Backdrop",
			processor:      &stubProcessor{backdrop: true},
			generation:     3,
			expectArt:      true,
			expectBackdrop: true,
			expectReleased: true,
		},
		{
			name:           "Error - Decode Failure Leaves Placeholder",
			processor:      &stubProcessor{err: domain.ErrResourceConstruction},
			generation:     3,
			expectReleased: true,
		},
		{
			name:           "Error - Texture Failure Leaves Placeholder",
			processor:      &stubProcessor{},
			graphicsErr:    errBoom,
			generation:     3,
			expectReleased: true,
		},
		{
			name:       "Stale - Older Generation Discarded",
			processor:  &stubProcessor{},
			generation: 2,
			expectArt:  true, // previous texture stays live
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGraphics{}
			a, box := newTestAdopter(tt.processor, g)

			previous := &fakeTexture{w: 1, h: 1}
			a.art = previous

			g.err = tt.graphicsErr
			path := writeAsset(t)
			box.Publish(domain.PendingAsset{Path: path, Reference: "http://x/img.jpg", Generation: tt.generation})

			a.Adopt(3)

			assertGone(t, path)

			if (a.Art() != nil) != tt.expectArt {
				t.Errorf("art present = %v, want %v", a.Art() != nil, tt.expectArt)
			}
			if (a.Backdrop() != nil) != tt.expectBackdrop {
				t.Errorf("backdrop present = %v, want %v", a.Backdrop() != nil, tt.expectBackdrop)
			}
			if released := previous.released == 1; released != tt.expectReleased {
				t.Errorf("previous released = %v, want %v", released, tt.expectReleased)
			}
			if tt.expectArt && !tt.expectReleased && a.Art() != previous {
				t.Error("stale result must not replace the live texture")
			}
		})
	}
}

func TestAdopter_EmptyMailboxIsNoop(t *testing.T) {
	g := &fakeGraphics{}
	a, _ := newTestAdopter(&stubProcessor{}, g)
	live := &fakeTexture{w: 1, h: 1}
	a.art = live

	for range 3 {
		if a.Adopt(0) {
			t.Fatal("empty mailbox reported a change")
		}
	}

	if a.Art() != live || live.released != 0 || len(g.created) != 0 {
		t.Error("adopting from an empty mailbox changed the live texture")
	}
}

func TestAdopter_NoValueKeepsTexture(t *testing.T) {
	a, box := newTestAdopter(&stubProcessor{}, &fakeGraphics{})
	live := &fakeTexture{w: 1, h: 1}
	a.art = live

	box.PublishNone()
	a.Adopt(0)

	if a.Art() != live || live.released != 0 {
		t.Error("a failed fetch must not touch the live texture")
	}
}

func TestAdopter_Close(t *testing.T) {
	a, box := newTestAdopter(&stubProcessor{}, &fakeGraphics{})
	art := &fakeTexture{}
	backdrop := &fakeTexture{}
	a.art, a.backdrop = art, backdrop

	path := writeAsset(t)
	box.Publish(domain.PendingAsset{Path: path, Generation: 1})

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	assertGone(t, path)
	if art.released != 1 || backdrop.released != 1 {
		t.Error("expected both textures released")
	}
	if a.Art() != nil || a.Backdrop() != nil {
		t.Error("expected no live textures after Close")
	}
}
