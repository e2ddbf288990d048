// Package assets handles model and texture loading from CRF archives.
package assets

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/blackfen/darkmesh/pkg/crf"
	"github.com/blackfen/darkmesh/pkg/formats"
)

// Manager handles asset loading from CRF files.
type Manager struct {
	archives []*crf.Archive
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddArchive opens a CRF archive and adds it to the manager.
// Archives are searched in reverse order (last added = highest priority).
func (m *Manager) AddArchive(path string) error {
	archive, err := crf.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.Attach(archive)
	return nil
}

// Attach adds an already-open archive to the manager.
func (m *Manager) Attach(archive *crf.Archive) {
	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()
}

// Load loads a file from the archives by its full entry path.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("file not found: %s", name)
}

// LoadModel finds and parses a model by name, with or without its .bin
// extension, wherever it sits in the archives.
func (m *Manager) LoadModel(name string) (*formats.Model, error) {
	key := strings.ToLower(name)
	if path.Ext(key) == "" {
		key += ".bin"
	}

	data, err := m.Load(key)
	if err != nil {
		data, err = m.findByBase(key)
	}
	if err != nil {
		return nil, err
	}

	model, err := formats.ParseBin(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return model, nil
}

// findByBase searches every archive for an entry whose base name is
// key, highest-priority archive first.
func (m *Manager) findByBase(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		for _, p := range m.archives[i].List() {
			if path.Base(p) != key {
				continue
			}
			data, err := m.archives[i].Read(p)
			if err != nil {
				return nil, err
			}
			m.cache.Set(key, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("model not found: %s", key)
}

// TextureTable collects every entry under the given archive directory
// prefixes. No prefixes means the whole archive set. Later archives win
// duplicate names.
func (m *Manager) TextureTable(prefixes ...string) TextureTable {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table := make(TextureTable)
	for _, archive := range m.archives {
		for _, p := range archive.List() {
			if !underAnyPrefix(p, prefixes) {
				continue
			}
			data, err := archive.Read(p)
			if err != nil {
				continue
			}
			table[textureKey(p)] = data
		}
	}
	return table
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.cache.Clear()
}

// Stats exposes the cache hit and miss counters.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// TextureTable maps normalized texture names to their raw bytes. The
// bytes stay opaque; image decoding is the consumer's business.
type TextureTable map[string][]byte

// Lookup retrieves a texture under the table's name normalization:
// lower-cased base name, extension stripped.
func (t TextureTable) Lookup(name string) ([]byte, bool) {
	data, ok := t[textureKey(name)]
	return data, ok
}

// textureKey normalizes a path or bare name to the table key form.
func textureKey(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "\\", "/"))
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

func underAnyPrefix(p string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		prefix = strings.ToLower(strings.Trim(strings.ReplaceAll(prefix, "\\", "/"), "/"))
		if strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
