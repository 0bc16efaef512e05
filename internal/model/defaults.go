package model

import "time"

// Shared defaults used by the config loader and the TUI.
const (
	DefaultGracePeriod = 200 * time.Millisecond
	DefaultSkin        = "default"

	// Card geometry in terminal cells.
	DefaultCardWidth   = 34
	DefaultCardHeight  = 16
	DefaultCardOffset  = 2
	DefaultCardPadding = 1

	DefaultArtCacheSize       = 128
	DefaultPreloadConcurrency = 4
)
