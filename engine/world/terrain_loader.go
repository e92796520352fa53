package world

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrTerrainLoad is wrapped by every terrain loading failure.
var ErrTerrainLoad = errors.New("world: terrain load failed")

// DefaultFlatSize is the number of cells along each axis of a generated terrain.
const DefaultFlatSize = 32

// TerrainSettings controls how a heightmap is turned into a Heightfield.
type TerrainSettings struct {
	Cell   float32
	Height float32
	Smooth float64
}

// TerrainLoader loads and caches terrains by path.
type TerrainLoader interface {
	// Load returns the terrain stored at path, loading it on first use.
	// An empty path yields a generated flat terrain.
	//
	// Parameters:
	//   - path: the heightmap image path
	//   - settings: cell size, height scale and smoothing radius
	//
	// Returns:
	//   - Terrain: the terrain
	//   - error: an error wrapping ErrTerrainLoad if loading fails
	Load(path string, settings TerrainSettings) (Terrain, error)

	// Evict drops a cached terrain.
	Evict(path string)
}

// heightmapBackend decodes a heightmap file into an image.
type heightmapBackend interface {
	Open(path string) (image.Image, error)
}

// imageBackend decodes PNG, JPEG, BMP and TIFF heightmaps.
type imageBackend struct{}

func (imageBackend) Open(path string) (image.Image, error) {
	return imgio.Open(path)
}

// terrainLoader is the implementation of TerrainLoader.
type terrainLoader struct {
	mu    sync.RWMutex
	cache map[string]Terrain

	backends map[string]heightmapBackend
}

var _ TerrainLoader = &terrainLoader{}

// NewTerrainLoader creates a TerrainLoader for image heightmaps.
//
// Returns:
//   - TerrainLoader: the loader
func NewTerrainLoader() TerrainLoader {
	img := imageBackend{}
	return &terrainLoader{
		cache: make(map[string]Terrain),
		backends: map[string]heightmapBackend{
			".png":  img,
			".jpg":  img,
			".jpeg": img,
			".bmp":  img,
			".tif":  img,
			".tiff": img,
		},
	}
}

func (l *terrainLoader) Load(path string, settings TerrainSettings) (Terrain, error) {
	if settings.Cell <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %v", ErrTerrainLoad, settings.Cell)
	}

	l.mu.RLock()
	if cached, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	var t Terrain
	if path == "" {
		t = NewFlatHeightfield(DefaultFlatSize, DefaultFlatSize, settings.Cell)
	} else {
		backend, ok := l.backends[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported heightmap format %q", ErrTerrainLoad, filepath.Ext(path))
		}
		img, err := backend.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTerrainLoad, path, err)
		}
		if settings.Smooth > 0 {
			img = blur.Gaussian(img, settings.Smooth)
		}
		hf, err := NewHeightfieldFromImage(img, settings.Cell, settings.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTerrainLoad, path, err)
		}
		t = hf
	}

	l.mu.Lock()
	l.cache[path] = t
	l.mu.Unlock()
	return t, nil
}

func (l *terrainLoader) Evict(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}
