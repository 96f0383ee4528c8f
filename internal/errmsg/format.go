// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Preference writes
	OpSaveVolume    Op = "save volume"
	OpSaveShuffle   Op = "save shuffle setting"
	OpSaveRepeat    Op = "save repeat setting"
	OpSaveTheme     Op = "save theme"
	OpPrefsLoad     Op = "load preferences"
	OpPrefsReset    Op = "reset preferences"
	OpFavoriteSave  Op = "update favorites"
	OpRecentsSave   Op = "update recently played"
	OpTrackActivate Op = "play track"

	// Catalog
	OpCatalogLoad  Op = "load catalog"
	OpCatalogProbe Op = "read track durations"

	// Voice search
	OpVoiceSearch Op = "run voice search"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
