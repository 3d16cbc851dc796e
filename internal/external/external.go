// Package external bridges otk.external.* directives to external binaries.
//
// An external named gen-depsolve is a binary otk-external-gen-depsolve found
// on the bridge's search path. It receives {"tree": <payload>} as JSON on
// stdin and must write {"tree": <result>} to stdout. A non-zero exit or a
// malformed reply fails the resolution.
package external

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/tree"
)

// binaryPrefix is prepended to the external name to form the binary name.
const binaryPrefix = "otk-external-"

// Bridge is the default resolve.ExternalBridge.
type Bridge struct {
	// SearchPath lists the directories probed for external binaries, in
	// order.
	SearchPath []string
}

// NewBridge returns a bridge probing the given directories.
func NewBridge(searchPath []string) *Bridge {
	return &Bridge{SearchPath: searchPath}
}

// request and reply frame the JSON exchanged with the external process.
type request struct {
	Tree json.RawMessage `json:"tree"`
}

type reply struct {
	Tree json.RawMessage `json:"tree"`
}

// Call runs the external registered under name with value as its payload
// and parses the subtree it returns.
func (b *Bridge) Call(name string, value tree.Node) (tree.Node, error) {
	bin, err := b.find(name)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("external %s: encode payload: %w", name, err)
	}
	input, err := json.Marshal(request{Tree: payload})
	if err != nil {
		return nil, fmt.Errorf("external %s: encode request: %w", name, err)
	}

	cmd := exec.Command(bin)
	cmd.Stdin = bytes.NewReader(input)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("external %s exited with %d: %s", name, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("external %s: %w", name, err)
	}

	var rep reply
	if err := json.Unmarshal(output, &rep); err != nil {
		return nil, fmt.Errorf("external %s: malformed reply: %w", name, err)
	}
	if rep.Tree == nil {
		return nil, fmt.Errorf("external %s: reply has no \"tree\" key", name)
	}
	node, err := tree.Unmarshal(rep.Tree)
	if err != nil {
		return nil, fmt.Errorf("external %s: malformed reply tree: %w", name, err)
	}
	return node, nil
}

// find locates the binary for name on the search path.
func (b *Bridge) find(name string) (string, error) {
	bin := binaryPrefix + name
	for _, dir := range b.SearchPath {
		path := filepath.Join(dir, bin)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s (no %s on %s)", resolve.ErrUnknownExternal, name, bin, strings.Join(b.SearchPath, ":"))
}

// List returns the external names discoverable on the search path, sorted.
func (b *Bridge) List() []string {
	seen := map[string]bool{}
	for _, dir := range b.SearchPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(entry.Name(), binaryPrefix) {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			seen[strings.TrimPrefix(entry.Name(), binaryPrefix)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
