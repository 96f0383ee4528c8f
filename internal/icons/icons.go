// Package icons selects the glyph set used by the player surfaces.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Previous   string
	Next       string
	Shuffle    string
	Repeat     string
	Favorite   string
	NotFavored string
	Volume     string
	VolumeMute string
	Search     string
	Mic        string
}

var (
	nerdIcons = Icons{
		Play:       "", // nf-fa-play
		Pause:      "", // nf-fa-pause
		Previous:   "", // nf-fa-step_backward
		Next:       "", // nf-fa-step_forward
		Shuffle:    "󰒟",      // nf-md-shuffle
		Repeat:     "󰑘",      // nf-md-repeat_once
		Favorite:   "󰣐",      // nf-md-heart
		NotFavored: "󰣑",      // nf-md-heart_outline
		Volume:     "󰕾",      // nf-md-volume_high
		VolumeMute: "󰝟",      // nf-md-volume_off
		Search:     "", // nf-fa-search
		Mic:        "", // nf-fa-microphone
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Previous:   "⏮",
		Next:       "⏭",
		Shuffle:    "🔀",
		Repeat:     "🔂",
		Favorite:   "♥",
		NotFavored: "♡",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Search:     "🔍",
		Mic:        "🎤",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Previous:   "|<",
		Next:       ">|",
		Shuffle:    "[S]",
		Repeat:     "[1]",
		Favorite:   "*",
		NotFavored: "-",
		Volume:     "vol",
		VolumeMute: "mute",
		Search:     "/",
		Mic:        "mic",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value. Unknown values select
// the unicode set.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Status returns the play or pause glyph for the transport.
func Status(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}

// Heart returns the favorite indicator.
func Heart(favorite bool) string {
	if favorite {
		return current.Favorite
	}
	return current.NotFavored
}

// Speaker returns the volume or mute glyph.
func Speaker(muted bool) string {
	if muted {
		return current.VolumeMute
	}
	return current.Volume
}
