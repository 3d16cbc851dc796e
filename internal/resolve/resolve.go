// Package resolve implements the omnifest resolver: a depth-first,
// document-order rewrite of a parsed tree that applies otk.* directives
// until the result is plain data.
//
// The resolver owns only the tree-walking and directive semantics.
// Interpolation, include loading, named operations, and externals are
// injected collaborators; their default implementations live in the sibling
// packages interp, include, ops, and external.
package resolve

import (
	"path/filepath"

	"github.com/osbuild/otk/internal/scope"
	"github.com/osbuild/otk/internal/tree"
)

// DefaultMaxDepth bounds document nesting plus include chaining. Omnifests
// are written by hand; anything deeper than this is a runaway include.
const DefaultMaxDepth = 256

// Interpolator expands a raw string against the scope. The result may be any
// node kind: a string that is exactly one variable reference takes the type
// of the bound value.
type Interpolator interface {
	Expand(sc *scope.Scope, raw string) (tree.Node, error)
}

// IncludeLoader locates and parses included documents.
type IncludeLoader interface {
	// Resolve canonicalizes ref relative to the base directory. The
	// canonical form is what cycle detection compares.
	Resolve(base, ref string) (string, error)
	// Load reads and parses the document at a canonical path, returning
	// its root node and the directory nested includes resolve against.
	Load(path string) (node tree.Node, base string, err error)
}

// OperationRegistry applies a named operation (otk.op.*) to a resolved
// payload.
type OperationRegistry interface {
	Apply(name string, value tree.Node) (tree.Node, error)
}

// ExternalBridge invokes a named external (otk.external.*) with a resolved
// payload.
type ExternalBridge interface {
	Call(name string, value tree.Node) (tree.Node, error)
}

// Resolver rewrites omnifest trees. All collaborator fields must be set;
// MaxDepth defaults to DefaultMaxDepth when zero.
type Resolver struct {
	Interp    Interpolator
	Includes  IncludeLoader
	Ops       OperationRegistry
	Externals ExternalBridge
	MaxDepth  int
}

// Resolve expands root into a directive-free tree. docPath is the path of
// the document root was parsed from; include references resolve relative to
// its directory, and it seeds the include chain so a document including
// itself fails rather than recursing. sc is the session scope; bindings it
// accumulates survive the call.
//
// The input tree is not modified.
func (r *Resolver) Resolve(root tree.Node, docPath string, sc *scope.Scope) (tree.Node, error) {
	st := state{
		doc:   docPath,
		base:  filepath.Dir(docPath),
		scope: sc,
		chain: []string{docPath},
	}
	return r.resolveNode(root, st)
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxDepth
}

// resolveNode dispatches on the node kind. Mappings carry the directive
// semantics; sequences and scalars only recurse or interpolate.
func (r *Resolver) resolveNode(n tree.Node, st state) (tree.Node, error) {
	st.depth++
	if st.depth > r.maxDepth() {
		return nil, st.errf(ErrDepthExceeded, "more than %d levels", r.maxDepth())
	}
	switch n := n.(type) {
	case *tree.Mapping:
		return r.resolveMapping(n, st)
	case tree.Sequence:
		return r.resolveSequence(n, st)
	case tree.String:
		expanded, err := r.Interp.Expand(st.scope, string(n))
		if err != nil {
			return nil, st.wrap(err)
		}
		return expanded, nil
	case tree.Int, tree.Float, tree.Bool, tree.Null:
		return n, nil
	default:
		return nil, st.errf(ErrUnsupportedNodeKind, "%T", n)
	}
}

func (r *Resolver) resolveSequence(seq tree.Sequence, st state) (tree.Node, error) {
	res := make(tree.Sequence, len(seq))
	for i, item := range seq {
		v, err := r.resolveNode(item, st.index(i))
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}
