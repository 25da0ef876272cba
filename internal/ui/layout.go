package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the effect column.
	LayoutWideWidth = 110
)

// Chrome heights.
const (
	headerHeight  = 1
	commandHeight = 1
	footerHeight  = 1
)

// Timing constants.
const (
	// ToastDuration is how long a notification stays on screen.
	ToastDuration = 3 * time.Second

	// DefaultPageSize is the list page size when none is configured.
	DefaultPageSize = 10
)
