package assistant

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Format describes one caller shape: how to recognise it, how to pull the
// search value out of it, and how to write the reply back.
type Format struct {
	Kind Kind

	// Order decides detection precedence; lower is checked first.
	Order int

	Matches func(env *envelope) bool
	Extract func(env *envelope) Request
	Write   func(w http.ResponseWriter, req Request, msg string) error
}

var (
	registry   = make(map[Kind]Format)
	registryMu sync.RWMutex
)

// Register adds a format to the registry.
// Panics if a format with the same kind is already registered.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[f.Kind]; exists {
		panic(fmt.Sprintf("caller format already registered: %s", f.Kind))
	}
	registry[f.Kind] = f
}

// Get returns the format for kind.
func Get(kind Kind) (Format, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[kind]
	return f, ok
}

// Formats returns all registered formats in detection order.
func Formats() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Format, 0, len(registry))
	for _, f := range registry {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Kind < result[j].Kind
	})

	return result
}
