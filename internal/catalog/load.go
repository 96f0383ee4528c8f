package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ushis/m3u"
	"gopkg.in/yaml.v3"

	"github.com/llehouerou/tunedeck/internal/config"
)

// fileEntry is one track in a YAML catalog file.
type fileEntry struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
	File   string `yaml:"file"`
	Image  string `yaml:"image"`
}

type fileCatalog struct {
	Tracks []fileEntry `yaml:"tracks"`
}

// Load builds the session catalog from the configuration: the catalog file
// when one is set, otherwise the inline [[tracks]] entries. Missing titles
// and artists are read from the audio tags.
func Load(cfg *config.Config) (*Catalog, error) {
	var (
		tracks []Track
		err    error
	)

	if cfg.CatalogFile != "" {
		tracks, err = LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
	} else {
		tracks = FromConfig(cfg.Tracks)
	}

	return New(Enrich(tracks))
}

// FromConfig converts inline config entries to tracks.
func FromConfig(entries []config.TrackConfig) []Track {
	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		tracks = append(tracks, Track{
			ID:       e.ID,
			Title:    e.Title,
			Artist:   e.Artist,
			MediaRef: e.File,
			ImageRef: e.Image,
		})
	}
	return tracks
}

// LoadFile reads a YAML or M3U catalog. Relative paths inside the file are
// resolved against the file's directory.
func LoadFile(path string) ([]Track, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".m3u", ".m3u8":
		return loadM3U(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func loadYAML(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tracks := make([]Track, 0, len(fc.Tracks))
	for _, e := range fc.Tracks {
		tracks = append(tracks, Track{
			ID:       e.ID,
			Title:    e.Title,
			Artist:   e.Artist,
			MediaRef: resolve(dir, e.File),
			ImageRef: resolve(dir, e.Image),
		})
	}
	return tracks, nil
}

func loadM3U(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	defer f.Close()

	p, err := m3u.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tracks := make([]Track, 0, len(p))
	for _, entry := range p {
		if entry.Path == "" {
			continue
		}
		t := Track{
			MediaRef: resolve(dir, entry.Path),
			Duration: time.Duration(entry.Time) * time.Second,
		}
		// #EXTINF titles are conventionally "Artist - Title".
		if artist, title, ok := strings.Cut(entry.Title, " - "); ok {
			t.Artist = strings.TrimSpace(artist)
			t.Title = strings.TrimSpace(title)
		} else {
			t.Title = strings.TrimSpace(entry.Title)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func resolve(dir, ref string) string {
	if ref == "" || filepath.IsAbs(ref) {
		return ref
	}
	if ref[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ref[1:])
		}
	}
	return filepath.Join(dir, ref)
}
