// Package interp implements ${name} variable interpolation for omnifest
// strings.
package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/scope"
	"github.com/osbuild/otk/internal/tree"
)

// varPattern matches ${name} references. Names may be dotted to traverse
// into mappings and sequences (see scope.Lookup).
var varPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_.]*)\}`)

// Interpolator is the default resolve.Interpolator.
type Interpolator struct{}

// New returns the default interpolator.
func New() Interpolator {
	return Interpolator{}
}

// Expand substitutes variable references in raw. A string that is exactly
// one reference resolves to the bound node, whatever its type; references
// embedded in surrounding text stringify, which only scalars support.
// Strings without references pass through unchanged.
func (Interpolator) Expand(sc *scope.Scope, raw string) (tree.Node, error) {
	if !strings.Contains(raw, "${") {
		return tree.String(raw), nil
	}

	// A whole-string reference keeps the bound value's type, so
	// "${packages}" can splice a sequence or mapping into the tree.
	if m := varPattern.FindStringSubmatch(raw); m != nil && m[0] == raw {
		v, ok := sc.Lookup(m[1])
		if !ok {
			return nil, fmt.Errorf("%w: %s", resolve.ErrUndefinedVariable, m[1])
		}
		return v, nil
	}

	var missing []string
	var bad []string
	result := varPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		v, ok := sc.Lookup(name)
		if !ok {
			missing = append(missing, name)
			return match
		}
		s, ok := stringify(v)
		if !ok {
			bad = append(bad, name)
			return match
		}
		return s
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", resolve.ErrUndefinedVariable, strings.Join(missing, ", "))
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("cannot interpolate non-scalar variable into string: %s", strings.Join(bad, ", "))
	}
	return tree.String(result), nil
}

func stringify(n tree.Node) (string, bool) {
	switch n := n.(type) {
	case tree.String:
		return string(n), true
	case tree.Int:
		return strconv.FormatInt(int64(n), 10), true
	case tree.Float:
		return strconv.FormatFloat(float64(n), 'g', -1, 64), true
	case tree.Bool:
		return strconv.FormatBool(bool(n)), true
	default:
		return "", false
	}
}
