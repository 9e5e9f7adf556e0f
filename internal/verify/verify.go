package verify

import (
	"fmt"
	"sort"
)

// Verifier checks a presented password against the configured secret.
// Implementations must be safe for concurrent use: a single Verifier is
// shared by every request the gate evaluates.
type Verifier interface {
	Name() string
	Verify(password string) bool
}

// Factory builds a Verifier from the configured secret. The meaning of
// the secret depends on the backend (clear password, bcrypt hash, ...).
type Factory func(secret string) (Verifier, error)

var (
	// factories holds the registered verifier factories.
	factories = make(map[string]Factory)
)

// RegisterFactory registers a verifier factory function.
// This is called by verifier implementations in their init() function.
func RegisterFactory(name string, factory Factory) {
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("verifier factory already registered: %s", name))
	}
	factories[name] = factory
}

// GetFactory retrieves a verifier factory by name.
func GetFactory(name string) (Factory, bool) {
	factory, ok := factories[name]
	return factory, ok
}

// List returns the names of all registered verifiers, sorted alphabetically.
func List() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
