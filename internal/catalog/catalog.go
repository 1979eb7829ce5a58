// Package catalog discovers and tracks the set of image files shown by
// the slideshow. The catalog is built once at startup by walking the
// configured directory; after that a Watcher can feed add/remove
// updates as files appear and disappear.
package catalog

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// allowedExtensions is the case-insensitive set of file suffixes the
// scanner accepts.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

// IsImagePath reports whether path has one of the recognized image
// extensions.
func IsImagePath(path string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Catalog holds the ordered list of discovered image paths. Reads and
// updates are guarded so the watcher goroutine can apply changes while
// the viewer reads between ticks.
type Catalog struct {
	mu    sync.RWMutex
	root  string
	paths []string
}

// Scan walks root recursively and returns a catalog of matching files
// in lexicographic path order. A missing root or an empty result is an
// error; the slideshow has nothing to show without at least one image.
func Scan(root string) (*Catalog, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsImagePath(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %q: %w", root, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %q (looked for jpg, jpeg, png, bmp, gif)", root)
	}

	sort.Strings(paths)
	return &Catalog{root: root, paths: paths}, nil
}

// Root returns the directory this catalog was scanned from.
func (c *Catalog) Root() string {
	return c.root
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Path returns the catalog entry at index i.
func (c *Catalog) Path(i int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paths[i]
}

// RelativePath returns the entry at index i relative to the catalog
// root, for the paused overlay.
func (c *Catalog) RelativePath(i int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rel, err := filepath.Rel(c.root, c.paths[i])
	if err != nil {
		return c.paths[i]
	}
	return rel
}

// Paths returns a copy of the current path list.
func (c *Catalog) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

// Add inserts a newly discovered file at its lexicographic position so
// sequential playback order survives watcher additions. Returns false
// if the path is already present or is not an image.
func (c *Catalog) Add(path string) bool {
	if !IsImagePath(path) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.paths {
		if p == path {
			return false
		}
	}
	i := sort.SearchStrings(c.paths, path)
	c.paths = append(c.paths, "")
	copy(c.paths[i+1:], c.paths[i:])
	c.paths[i] = path
	return true
}

// Remove drops a path from the catalog. Returns the index it occupied
// and true, or -1 and false when the path was not present.
func (c *Catalog) Remove(path string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.paths {
		if p == path {
			c.paths = append(c.paths[:i], c.paths[i+1:]...)
			return i, true
		}
	}
	return -1, false
}

// Shuffle randomizes the catalog order in place.
func (c *Catalog) Shuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	rand.Shuffle(len(c.paths), func(i, j int) {
		c.paths[i], c.paths[j] = c.paths[j], c.paths[i]
	})
}
