package scorer

import (
	"fmt"
	"sort"
	"sync"
)

// Classifier is a threshold table with its output type erased.
// Table[T] implements it.
type Classifier interface {
	// Output returns the bucket output for value.
	Output(value float64) any
}

// Registry manages a collection of named classifiers.
type Registry struct {
	mu          sync.RWMutex
	classifiers map[string]Classifier
}

// NewRegistry creates an empty classifier registry.
func NewRegistry() *Registry {
	return &Registry{
		classifiers: make(map[string]Classifier),
	}
}

// DefaultRegistry returns a registry holding the built-in tables.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(TableTreesFromFlux, DefaultTreesFromFlux())
	r.MustRegister(TableTreesFromAmplitude, DefaultTreesFromAmplitude())
	r.MustRegister(TableLifeType, DefaultLifeTypes())
	return r
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, c Classifier) {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
}

// Register adds a classifier under name.
// Returns an error if a classifier with the same name is already registered.
func (r *Registry) Register(name string, c Classifier) error {
	if name == "" {
		return fmt.Errorf("scorer: classifier name must not be empty")
	}
	if c == nil {
		return fmt.Errorf("scorer: classifier %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classifiers[name]; exists {
		return fmt.Errorf("scorer: %q is already registered", name)
	}

	r.classifiers[name] = c
	return nil
}

// Replace registers c under name, overwriting any existing classifier.
func (r *Registry) Replace(name string, c Classifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classifiers[name] = c
}

// Get returns a classifier by name. Returns nil if not found.
func (r *Registry) Get(name string) Classifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classifiers[name]
}

// List returns the names of all registered classifiers, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classifiers))
	for name := range r.classifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
