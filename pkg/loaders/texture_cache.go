package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// AssetID identifies a loaded texture independently of its name
type AssetID string

func makeAssetID() AssetID {
	return AssetID(uuid.NewString())
}

// textureExtensions are the file types LoadDir picks up
var textureExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// TextureCache owns decoded textures shared by every material that names them.
// Lookups are safe for concurrent use.
type TextureCache struct {
	mu       sync.RWMutex
	opts     TextureOptions
	logger   core.Logger
	names    map[string]AssetID
	textures map[AssetID]*material.Texture
}

// NewTextureCache creates an empty cache; a nil logger discards output
func NewTextureCache(opts TextureOptions, logger core.Logger) *TextureCache {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &TextureCache{
		opts:     opts,
		logger:   logger,
		names:    make(map[string]AssetID),
		textures: make(map[AssetID]*material.Texture),
	}
}

// Add registers an already decoded texture under name, replacing any previous one
func (tc *TextureCache) Add(name string, tex *material.Texture) AssetID {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if old, ok := tc.names[name]; ok {
		delete(tc.textures, old)
	}
	id := makeAssetID()
	tc.names[name] = id
	tc.textures[id] = tex
	return id
}

// Load decodes path and registers it under name
func (tc *TextureCache) Load(name, path string) (AssetID, error) {
	tex, err := LoadTexture(path, tc.opts)
	if err != nil {
		return "", fmt.Errorf("failed to load texture %q: %w", name, err)
	}
	id := tc.Add(name, tex)
	tc.logger.Debugf("loaded texture %s from %s (%dx%d, %d mips)", name, path, tex.Width(), tex.Height(), tex.MipLevels())
	return id, nil
}

// LoadDir loads every image in dir, naming each by its file name without
// extension. A missing directory is not an error; an undecodable file is.
func (tc *TextureCache) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		tc.logger.Warnf("texture directory %s not found, using flat colors", dir)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to scan texture directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !textureExtensions[ext] {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, err := tc.Load(name, filepath.Join(dir, entry.Name())); err != nil {
			return loaded, err
		}
		loaded++
	}

	tc.logger.Infof("loaded %d textures from %s", loaded, dir)
	return loaded, nil
}

// Texture returns the texture registered under name, or nil
func (tc *TextureCache) Texture(name string) *material.Texture {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	id, ok := tc.names[name]
	if !ok {
		return nil
	}
	return tc.textures[id]
}

// Get returns the texture with the given asset ID
func (tc *TextureCache) Get(id AssetID) (*material.Texture, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	tex, ok := tc.textures[id]
	return tex, ok
}

// ID returns the asset ID registered under name
func (tc *TextureCache) ID(name string) (AssetID, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	id, ok := tc.names[name]
	return id, ok
}

// Names returns the registered names in sorted order
func (tc *TextureCache) Names() []string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	names := make([]string, 0, len(tc.names))
	for name := range tc.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered textures
func (tc *TextureCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.textures)
}
