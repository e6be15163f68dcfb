package core

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Format is the interface implemented by all manifest format loaders.
type Format interface {
	// Name returns the format identifier (e.g. "pyproject", "pkg-info").
	Name() string

	// Parse reads a manifest from r.
	Parse(r io.Reader) (*Manifest, error)
}

// Factory creates a format loader instance.
type Factory func() Format

var (
	factories = make(map[string]Factory)
	filenames = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a format factory to the global registry.
// format is the format identifier (e.g. "pyproject", "pkg-info").
// defaultFilename is the conventional file name for the format.
func Register(format string, defaultFilename string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[format] = factory
	filenames[format] = defaultFilename
}

// NewFormat creates a loader for the given format.
func NewFormat(format string) (Format, error) {
	mu.RLock()
	factory, ok := factories[format]
	mu.RUnlock()

	if !ok {
		return nil, &UnknownFormatError{Format: format}
	}

	return factory(), nil
}

// Open loads a manifest file in the given format.
// If path is empty, the format's conventional file name is used.
func Open(format string, path string) (*Manifest, error) {
	loader, err := NewFormat(format)
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultFilename(format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	m, err := loader.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// SupportedFormats returns all registered format identifiers.
func SupportedFormats() []string {
	mu.RLock()
	defer mu.RUnlock()

	formats := make([]string, 0, len(factories))
	for f := range factories {
		formats = append(formats, f)
	}
	return formats
}

// DefaultFilename returns the conventional file name for a format.
func DefaultFilename(format string) string {
	mu.RLock()
	defer mu.RUnlock()
	return filenames[format]
}
