package domain

import "errors"

var (
	// ErrProviderUnavailable means the now-playing query failed or returned nothing usable
	ErrProviderUnavailable = errors.New("now-playing provider unavailable")
	// ErrFetchFailed means artwork could not be downloaded or stored
	ErrFetchFailed = errors.New("artwork fetch failed")
	// ErrResourceConstruction means downloaded bytes could not become a texture
	ErrResourceConstruction = errors.New("artwork resource construction failed")
	// ErrConfigParse means the configuration file is malformed
	ErrConfigParse = errors.New("configuration parse failed")
)
