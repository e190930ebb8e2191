// Package registry provides a global registry for built-in pictures.
// Pictures register themselves in init() functions, allowing the CLI and
// the SSH server to offer them without hardcoded dependencies.
package registry

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// Picture is a procedurally drawn source image.
type Picture interface {
	// ID returns a unique identifier (e.g., "rings") used on the command line
	// and in session history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Render draws the picture at side×side pixels.
	Render(side int) image.Image
}

// PictureInfo contains metadata about a registered picture.
type PictureInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a picture.
type Factory func() Picture

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a picture factory to the registry.
// Typically called from a picture's init() function.
// Panics if a picture with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: picture %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered pictures, sorted by ID.
func List() []PictureInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PictureInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PictureInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a picture by its ID.
// Returns an error if the picture ID is not registered.
func Create(id string) (Picture, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown picture %q", id)
	}

	return f(), nil
}

// Exists checks if a picture with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
