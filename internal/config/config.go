package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "tunedeck"

	defaultDebounceMs = 120
	defaultLogLevel   = "info"
)

type Config struct {
	CatalogFile   string        `koanf:"catalog_file"` // .yaml, .yml, .m3u or .m3u8
	Tracks        []TrackConfig `koanf:"tracks"`       // inline catalog, used when catalog_file is empty
	Autoplay      bool          `koanf:"autoplay"`     // try to start track 0 on launch
	Notifications bool          `koanf:"notifications"`
	LogLevel      string        `koanf:"log_level"` // "debug", "info", "warn", "error"
	LogFile       string        `koanf:"log_file"`  // empty means $XDG_STATE_HOME/tunedeck/tunedeck.log
	DBPath        string        `koanf:"db_path"`   // empty means $XDG_DATA_HOME/tunedeck/tunedeck.db
	Icons         string        `koanf:"icons"`     // "nerd", "unicode" (default), or "none"

	Search SearchConfig `koanf:"search"`

	// Voice search (disabled unless a command is configured)
	Speech SpeechConfig `koanf:"speech"`
}

// TrackConfig is one catalog entry as written in config.toml.
type TrackConfig struct {
	ID     string `koanf:"id"`
	Title  string `koanf:"title"`
	Artist string `koanf:"artist"`
	File   string `koanf:"file"`
	Image  string `koanf:"image"`
}

// SearchConfig holds search input settings.
type SearchConfig struct {
	DebounceMs int `koanf:"debounce_ms"`
}

// SpeechConfig holds the external speech-to-text command.
type SpeechConfig struct {
	Command []string `koanf:"command"` // e.g. ["whisper-listen", "--once"]; transcript read from stdout
}

// Load reads the layered config files. An explicit path, when given, is
// loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		LogLevel: defaultLogLevel,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.CatalogFile = expandPath(cfg.CatalogFile)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.DBPath = expandPath(cfg.DBPath)

	for i := range cfg.Tracks {
		cfg.Tracks[i].File = expandPath(cfg.Tracks[i].File)
		cfg.Tracks[i].Image = expandPath(cfg.Tracks[i].Image)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SearchDebounce returns the search debounce interval with defaults applied.
func (c *Config) SearchDebounce() time.Duration {
	ms := c.Search.DebounceMs
	if ms <= 0 || ms > 2000 {
		ms = defaultDebounceMs
	}
	return time.Duration(ms) * time.Millisecond
}

// HasSpeechCommand returns true if voice search is configured.
func (c *Config) HasSpeechCommand() bool {
	return len(c.Speech.Command) > 0 && c.Speech.Command[0] != ""
}
