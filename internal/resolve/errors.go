package resolve

import "errors"

// Resolution error taxonomy. None of these are recovered during a session;
// the first failure aborts the whole resolution with no partial result.
// Collaborator implementations wrap the matching sentinel so callers can use
// errors.Is regardless of which layer failed.
var (
	// ErrStructural indicates a directive payload of the wrong shape, such
	// as an otk.define whose value is not a mapping.
	ErrStructural = errors.New("malformed directive payload")

	// ErrUnknownDirective indicates a reserved-prefix key that names no
	// known directive.
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrUnknownOperation indicates an otk.op.* name with no registered
	// operation.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownExternal indicates an otk.external.* name with no matching
	// external.
	ErrUnknownExternal = errors.New("unknown external")

	// ErrUndefinedVariable indicates an interpolation referencing a name
	// not yet defined at that point in document order.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrIncludeResolution indicates an include target that cannot be
	// located or parsed.
	ErrIncludeResolution = errors.New("cannot resolve include")

	// ErrIncludeCycle indicates a file including itself, directly or
	// transitively.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrUnsupportedNodeKind indicates a tree value outside the closed set
	// of node kinds.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")

	// ErrDepthExceeded indicates the defensive bound on nesting plus
	// include chaining was hit.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
)
