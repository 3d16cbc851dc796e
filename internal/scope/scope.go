// Package scope holds the variable bindings of one resolution session.
package scope

import (
	"strconv"
	"strings"

	"github.com/osbuild/otk/internal/tree"
)

// Scope is the mutable name→value store threaded through a resolution
// session. Bindings made while resolving one branch of the document are
// visible to every branch resolved afterwards; they are never rolled back.
// A scope belongs to exactly one session and is not safe for concurrent use.
type Scope struct {
	vars map[string]tree.Node
}

// New returns an empty scope.
func New() *Scope {
	return &Scope{vars: make(map[string]tree.Node)}
}

// Define binds name to value, replacing any previous binding.
func (s *Scope) Define(name string, value tree.Node) {
	s.vars[name] = value
}

// Lookup resolves name to its bound value. A dotted name traverses into
// mapping values and indexes into sequences: with "a" bound to {b: [1, 2]},
// "a.b.1" yields 2. An exact binding wins over traversal.
func (s *Scope) Lookup(name string) (tree.Node, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	parts := strings.Split(name, ".")
	v, ok := s.vars[parts[0]]
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		switch cur := v.(type) {
		case *tree.Mapping:
			v, ok = cur.Get(part)
			if !ok {
				return nil, false
			}
		case tree.Sequence:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(cur) {
				return nil, false
			}
			v = cur[i]
		default:
			return nil, false
		}
	}
	return v, true
}

// Names returns the bound top-level names, for diagnostics.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	return names
}
