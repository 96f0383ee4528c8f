// Package artwork produces cover thumbnails for desktop surfaces (MPRIS art
// URL, notification icon). Thumbnails are cached on disk as PNG.
package artwork

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for cover files
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"

	"github.com/llehouerou/tunedeck/internal/catalog"
)

const (
	cacheDirName = "tunedeck/artwork"
	cacheMaxAge  = 30 * 24 * time.Hour

	// ThumbnailSize is the maximum edge of a thumbnail in pixels.
	ThumbnailSize = 256
)

// ErrNoArtwork means the track has neither an image nor embedded art.
var ErrNoArtwork = errors.New("no artwork")

// Cache stores resized cover art under a directory.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// NewCache creates the cache directory. An empty dir uses
// $XDG_CACHE_HOME/tunedeck/artwork.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, cacheDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir}
	go c.prune()
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Thumbnail returns the path of a PNG thumbnail for track, creating it on
// first use. The track image wins over art embedded in the audio file,
// which wins over a cover file beside it.
func (c *Cache) Thumbnail(track catalog.Track) (string, error) {
	source := track.ImageRef
	if source == "" {
		source = track.MediaRef
	}

	path := filepath.Join(c.dir, cacheKey(source)+".png")

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		now := time.Now()
		_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort
		return path, nil
	}

	img, err := load(track)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	thumb := resize.Thumbnail(ThumbnailSize, ThumbnailSize, img, resize.Lanczos3)
	if err := png.Encode(&buf, thumb); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func load(track catalog.Track) (image.Image, error) {
	if track.ImageRef != "" {
		data, err := os.ReadFile(track.ImageRef)
		if err == nil {
			return decode(data)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if pic, err := catalog.Picture(track.MediaRef); err == nil && pic != nil && len(pic.Data) > 0 {
		return decode(pic.Data)
	}

	if cover := findCover(track.MediaRef); cover != "" {
		data, err := os.ReadFile(cover)
		if err != nil {
			return nil, err
		}
		return decode(data)
	}
	return nil, ErrNoArtwork
}

// coverNames are looked up next to the audio file, in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

func findCover(mediaRef string) string {
	if mediaRef == "" {
		return ""
	}
	dir := filepath.Dir(mediaRef)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}
	return img, nil
}

func cacheKey(source string) string {
	data := fmt.Sprintf("%s:%d", source, ThumbnailSize)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// prune removes entries not used within cacheMaxAge.
func (c *Cache) prune() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-cacheMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
