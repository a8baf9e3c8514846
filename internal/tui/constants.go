package tui

// Layout constants
const (
	defaultWidth  = 80 // used until the first WindowSizeMsg
	defaultHeight = 24

	ViewportPaddingHorizontal = 4 // border + padding, left and right
	MinimalBorderMargin       = 2 // width consumed by the frame border

	// chromeLines is tabs (1) + frame border (2) + help (1) + status (1)
	chromeLines = 5

	minContentWidth = 20
	minBodyHeight   = 3
	previewHeight   = 8

	// historyFixedLines is the query line plus the preview separator
	historyFixedLines = 2
)
