// Package ui holds layout constants and helpers shared by the panels.
package ui

const (
	// BorderWidth is the horizontal space taken by a rounded panel border.
	BorderWidth = 2
	// BorderHeight is the vertical space taken by a rounded panel border.
	BorderHeight = 2

	// HeaderHeight is the title row of a list panel.
	HeaderHeight = 1

	// PanelOverhead is every line of a list panel that is not a row.
	PanelOverhead = BorderHeight + HeaderHeight

	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin = 1

	// MinFullPlayerWidth is the narrowest inner width the full player
	// renders at; below it the mini player is used.
	MinFullPlayerWidth = 40
)
