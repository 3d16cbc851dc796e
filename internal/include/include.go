// Package include loads omnifest documents referenced by otk.include.
package include

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/tree"
)

// Loader is the default resolve.IncludeLoader, reading YAML documents from
// the filesystem.
type Loader struct{}

// NewLoader returns a filesystem-backed loader.
func NewLoader() Loader {
	return Loader{}
}

// Resolve canonicalizes ref relative to the base directory. Absolute
// references ignore base.
func (Loader) Resolve(base, ref string) (string, error) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, ref)
	}
	canonical, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", resolve.ErrIncludeResolution, ref, err)
	}
	return canonical, nil
}

// Load reads and parses the document at path. The returned base is the
// document's directory, so includes nested in the loaded file resolve
// relative to it.
func (Loader) Load(path string) (tree.Node, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s: file not found", resolve.ErrIncludeResolution, path)
		}
		return nil, "", fmt.Errorf("%w: %s: %v", resolve.ErrIncludeResolution, path, err)
	}
	node, err := tree.Unmarshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", resolve.ErrIncludeResolution, path, err)
	}
	return node, filepath.Dir(path), nil
}
