// Package keymap defines key bindings and resolves keys to actions.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionHelp      Action = "help"
	ActionSearch    Action = "search"
	ActionVoice     Action = "voice_search"
	ActionTheme     Action = "toggle_theme"
	ActionFocusNext Action = "focus_next"

	// Playback actions
	ActionTogglePlay  Action = "toggle_play"
	ActionNext        Action = "next"
	ActionPrevious    Action = "previous"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionMute        Action = "mute"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionShuffle     Action = "toggle_shuffle"
	ActionRepeat      Action = "toggle_repeat"
	ActionFavorite    Action = "toggle_favorite"

	// List actions
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionTop      Action = "top"
	ActionBottom   Action = "bottom"
	ActionActivate Action = "activate"

	// Search input
	ActionBlurSearch Action = "blur_search"
)
