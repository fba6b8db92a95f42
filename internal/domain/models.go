package domain

import "image"

const (
	// UnknownArtist is shown when the provider cannot report an artist
	UnknownArtist = "Unknown"
	// NoMediaTitle is shown when nothing is playing or the provider is unavailable
	NoMediaTitle = "No media playing"
)

// NowPlayingInfo contains information about the currently playing media
type NowPlayingInfo struct {
	// Artist name
	Artist string
	// Title of the currently playing track
	Title string
	// ArtReference is the URL or local path to the album artwork.
	// Empty means the track advertises no art.
	ArtReference string
}

// PlaceholderInfo returns the values shown when the provider is unavailable
func PlaceholderInfo() NowPlayingInfo {
	return NowPlayingInfo{
		Artist: UnknownArtist,
		Title:  NoMediaTitle,
	}
}

// PendingAsset is a downloaded artwork file waiting to be adopted by the render loop
type PendingAsset struct {
	// Path of the temporary file holding the raw image bytes
	Path string
	// Reference is the art reference the file was fetched from
	Reference string
	// Generation identifies the fetch request that produced this asset
	Generation uint64
}

// Artwork is a decoded cover ready to be turned into textures
type Artwork struct {
	// Cover is the square album cover
	Cover image.Image
	// Backdrop is an optional blurred background, nil unless the blur background is enabled
	Backdrop image.Image
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}

// Pointer is the pointer state sampled once per frame
type Pointer struct {
	X    int
	Y    int
	Down bool
}
