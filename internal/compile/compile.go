// Package compile wires the resolver and its default collaborators into a
// resolution session over an omnifest file, and selects the build target to
// emit.
package compile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/osbuild/otk/internal/external"
	"github.com/osbuild/otk/internal/include"
	"github.com/osbuild/otk/internal/interp"
	"github.com/osbuild/otk/internal/ops"
	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/scope"
	"github.com/osbuild/otk/internal/tree"
)

// targetPrefix introduces the passthrough target markers in a resolved
// document.
const targetPrefix = "otk.target."

var (
	// ErrNotAMapping indicates an omnifest whose document root is not a
	// mapping.
	ErrNotAMapping = errors.New("omnifest root must be a mapping")

	// ErrMissingVersion indicates an omnifest without an otk.version key.
	ErrMissingVersion = errors.New("omnifest has no otk.version")

	// ErrNoTargets indicates a resolved omnifest without otk.target.*
	// keys.
	ErrNoTargets = errors.New("omnifest defines no targets")

	// ErrAmbiguousTarget indicates multiple targets and no selection.
	ErrAmbiguousTarget = errors.New("multiple targets, select one")

	// ErrUnknownTarget indicates a selection matching no target.
	ErrUnknownTarget = errors.New("no such target")
)

// Options configures a resolution session.
type Options struct {
	// Defines seeds scope bindings before resolution starts, from -D
	// flags.
	Defines map[string]string

	// ExternalPath lists the directories searched for external binaries.
	ExternalPath []string

	// MaxDepth overrides the resolver's nesting bound when positive.
	MaxDepth int
}

// Target is one otk.target.* entry of a resolved omnifest.
type Target struct {
	// Key is the full mapping key, e.g. "otk.target.osbuild.qcow2".
	Key string

	// Name is the part after the prefix, e.g. "osbuild.qcow2".
	Name string

	// Tree is the target's subtree, the document handed to the builder.
	Tree tree.Node
}

// Result is a fully resolved omnifest.
type Result struct {
	// Root is the resolved, directive-free document.
	Root *tree.Mapping

	// Version is the rendered otk.version value, empty when absent.
	Version string

	// Targets lists the target markers in document order.
	Targets []Target
}

// Document resolves the omnifest at path. The returned result has not been
// checked for a version or targets; callers enforce what their command
// needs.
func Document(path string, opts Options) (*Result, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	loader := include.NewLoader()
	root, _, err := loader.Load(canonical)
	if err != nil {
		return nil, err
	}

	sc := scope.New()
	for name, value := range opts.Defines {
		sc.Define(name, scalarFromString(value))
	}

	r := &resolve.Resolver{
		Interp:    interp.New(),
		Includes:  loader,
		Ops:       ops.Registry{},
		Externals: external.NewBridge(opts.ExternalPath),
		MaxDepth:  opts.MaxDepth,
	}
	resolved, err := r.Resolve(root, canonical, sc)
	if err != nil {
		return nil, err
	}

	mapping, ok := resolved.(*tree.Mapping)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAMapping, path)
	}

	res := &Result{Root: mapping}
	if v, ok := mapping.Get("otk.version"); ok {
		res.Version = renderScalar(v)
	}
	for _, key := range mapping.Keys() {
		if !strings.HasPrefix(key, targetPrefix) {
			continue
		}
		v, _ := mapping.Get(key)
		res.Targets = append(res.Targets, Target{
			Key:  key,
			Name: strings.TrimPrefix(key, targetPrefix),
			Tree: v,
		})
	}
	return res, nil
}

// Select picks a target by name. An empty name selects the only target and
// fails when there are none or several.
func (r *Result) Select(name string) (Target, error) {
	if name == "" {
		switch len(r.Targets) {
		case 0:
			return Target{}, ErrNoTargets
		case 1:
			return r.Targets[0], nil
		default:
			return Target{}, fmt.Errorf("%w: %s", ErrAmbiguousTarget, strings.Join(r.TargetNames(), ", "))
		}
	}
	for _, t := range r.Targets {
		if t.Name == name {
			return t, nil
		}
	}
	if len(r.Targets) == 0 {
		return Target{}, ErrNoTargets
	}
	return Target{}, fmt.Errorf("%w: %s (have: %s)", ErrUnknownTarget, name, strings.Join(r.TargetNames(), ", "))
}

// TargetNames returns the target names in document order.
func (r *Result) TargetNames() []string {
	names := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		names[i] = t.Name
	}
	return names
}

// scalarFromString parses a -D value into a typed scalar, so -D size=5
// binds an integer. Values that would parse to collections stay strings.
func scalarFromString(value string) tree.Node {
	node, err := tree.Unmarshal([]byte(value))
	if err != nil {
		return tree.String(value)
	}
	switch node.(type) {
	case *tree.Mapping, tree.Sequence:
		return tree.String(value)
	}
	return node
}

func renderScalar(n tree.Node) string {
	switch n := n.(type) {
	case tree.String:
		return string(n)
	case tree.Int:
		return fmt.Sprintf("%d", int64(n))
	case tree.Float:
		return fmt.Sprintf("%g", float64(n))
	case tree.Bool:
		return fmt.Sprintf("%t", bool(n))
	default:
		return ""
	}
}
