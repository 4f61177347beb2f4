package poseio

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"posekit/internal/pose"
)

// Format identifies a pose source file layout.
type Format string

const (
	// FormatNPY is the packed NumPy array format.
	FormatNPY Format = "npy"
	// FormatTable is a delimited per-frame coordinate table.
	FormatTable Format = "table"
)

// ErrUnknownFormat indicates a lookup for a format tag with no registered loader.
var ErrUnknownFormat = errors.New("unknown pose format")

// Loader reads one session's pose tensor from a source file.
type Loader interface {
	Load(path string) (*pose.Tensor, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*pose.Tensor, error)

// Load implements Loader.
func (f LoaderFunc) Load(path string) (*pose.Tensor, error) { return f(path) }

var (
	loadersMu sync.RWMutex
	loaders   = map[Format]Loader{
		FormatNPY:   LoaderFunc(loadNPY),
		FormatTable: LoaderFunc(loadTable),
	}
)

// Register installs a loader for a new format tag. Vendor collaborators use
// this to plug in their own layouts. Re-registering an existing tag errors
// rather than silently replacing the loader.
func Register(format Format, loader Loader) error {
	if loader == nil {
		return errors.New("poseio: nil loader")
	}
	loadersMu.Lock()
	defer loadersMu.Unlock()
	if _, ok := loaders[format]; ok {
		return fmt.Errorf("poseio: format %q already registered", format)
	}
	loaders[format] = loader
	return nil
}

// Lookup returns the loader registered for a format tag.
func Lookup(format Format) (Loader, error) {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	loader, ok := loaders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return loader, nil
}

// Formats returns every registered format tag, sorted.
func Formats() []Format {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	out := make([]Format, 0, len(loaders))
	for f := range loaders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
