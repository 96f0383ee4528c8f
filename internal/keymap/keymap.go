package keymap

// Contexts group bindings. Global and list bindings are suppressed while
// the search input has focus; only search bindings apply then.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextList     = "list"
	ContextSearch   = "search"
)

// Binding maps keys to an action. Keys use tea.KeyMsg.String() names.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionSearch, []string{"/"}, "Search", ContextGlobal},
	{ActionVoice, []string{"v"}, "Voice search", ContextGlobal},
	{ActionTheme, []string{"t"}, "Toggle theme", ContextGlobal},
	{ActionFocusNext, []string{"tab"}, "Switch list", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	// Playback
	{ActionTogglePlay, []string{" "}, "Play/pause", ContextPlayback},
	{ActionNext, []string{"right"}, "Next track", ContextPlayback},
	{ActionPrevious, []string{"left"}, "Previous track", ContextPlayback},
	{ActionSeekForward, []string{"shift+right"}, "Seek +5s", ContextPlayback},
	{ActionSeekBack, []string{"shift+left"}, "Seek -5s", ContextPlayback},
	{ActionMute, []string{"m"}, "Mute", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume +5%", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume -5%", ContextPlayback},
	{ActionShuffle, []string{"s"}, "Toggle shuffle", ContextPlayback},
	{ActionRepeat, []string{"r"}, "Toggle repeat", ContextPlayback},
	{ActionFavorite, []string{"l"}, "Favorite current track", ContextPlayback},

	// Lists
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextList},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextList},
	{ActionTop, []string{"g", "home"}, "First item", ContextList},
	{ActionBottom, []string{"G", "end"}, "Last item", ContextList},
	{ActionActivate, []string{"enter"}, "Play track", ContextList},

	// Search input
	{ActionBlurSearch, []string{"esc", "enter"}, "Leave search", ContextSearch},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}
