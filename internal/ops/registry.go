// Package ops implements the registry of named operations reachable through
// otk.op.* directives, plus the built-in operations.
package ops

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/tree"
)

// Operation transforms a resolved directive payload into a subtree.
type Operation interface {
	Name() string
	Apply(value tree.Node) (tree.Node, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Operation{}
)

// ErrOperationExists is returned when registering a name twice.
var ErrOperationExists = errors.New("operation exists")

// Register adds op to the global table. Operation names must not contain
// dots; the directive parser treats everything after "otk.op." as the name.
func Register(op Operation) error {
	name := op.Name()
	if strings.Contains(name, ".") {
		return fmt.Errorf("operation name %q must not contain '.'", name)
	}
	mu.Lock()
	defer mu.Unlock()
	if _, present := registry[name]; present {
		return fmt.Errorf("%s: %w", name, ErrOperationExists)
	}
	registry[name] = op
	return nil
}

// Lookup returns the operation registered under name, or nil.
func Lookup(name string) Operation {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the registered operation names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry adapts the global table to resolve.OperationRegistry.
type Registry struct{}

// Apply invokes the operation registered under name.
func (Registry) Apply(name string, value tree.Node) (tree.Node, error) {
	op := Lookup(name)
	if op == nil {
		return nil, fmt.Errorf("%w: %s (have: %s)", resolve.ErrUnknownOperation, name, strings.Join(Names(), ", "))
	}
	return op.Apply(value)
}

func init() {
	Register(Join())
	Register(Template())
}
