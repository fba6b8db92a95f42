package engine

import "github.com/genricoloni/tuner/internal/domain"

// Cache is the render loop's view of the current track.
// ArtReference tracks the last art requested, which may lag behind the text.
type Cache struct {
	Artist       string
	Title        string
	ArtReference string
}

// Decision tells the driver what to do with a fresh poll result
type Decision struct {
	TextChanged      bool
	ArtShouldRefetch bool
}

// Detect compares a poll result with the cache.
// Art is compared by reference only so an unchanged track never refetches,
// and an empty reference never triggers a download.
func Detect(info domain.NowPlayingInfo, cache Cache) Decision {
	return Decision{
		TextChanged:      info.Artist != cache.Artist || info.Title != cache.Title,
		ArtShouldRefetch: info.ArtReference != "" && info.ArtReference != cache.ArtReference,
	}
}
