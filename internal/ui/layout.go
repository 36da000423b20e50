package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the type and
	// description columns are hidden.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width for the wide column set.
	LayoutWideWidth = 140
)

// Log overlay limits.
const (
	// LogOverlayLines is the number of warning lines read from the log file.
	LogOverlayLines = 200
)

// Timing constants.
const (
	// DefaultUIInterval is the default interval for re-reading the store.
	DefaultUIInterval = time.Second

	// NoticeDuration is how long transient notices stay in the command bar.
	NoticeDuration = 3 * time.Second
)
