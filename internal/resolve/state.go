package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osbuild/otk/internal/scope"
)

// state is threaded through every recursive call. It is passed by value;
// the slices are extended copy-on-write via clipped appends so sibling
// branches never observe each other's key chain or include chain. The scope
// pointer is deliberately shared: bindings flow forward in document order.
type state struct {
	// doc is the path of the document currently being resolved, for
	// diagnostics.
	doc string
	// base is the directory include references are resolved against.
	base string
	scope *scope.Scope
	// chain holds the canonical paths of the active include chain,
	// outermost first. Re-entering any of them is a cycle.
	chain []string
	// at is the key chain from the document root to the current node.
	at []string
	depth int
}

func (st state) field(key string) state {
	st.at = append(st.at[:len(st.at):len(st.at)], key)
	return st
}

func (st state) index(i int) state {
	st.at = append(st.at[:len(st.at):len(st.at)], "["+strconv.Itoa(i)+"]")
	return st
}

func (st state) enter(doc, base string) state {
	st.chain = append(st.chain[:len(st.chain):len(st.chain)], doc)
	st.doc = doc
	st.base = base
	return st
}

func (st state) active(path string) bool {
	for _, p := range st.chain {
		if p == path {
			return true
		}
	}
	return false
}

// location renders the key chain, e.g. "pipelines.[2].otk.include".
func (st state) location() string {
	if len(st.at) == 0 {
		return "(root)"
	}
	return strings.Join(st.at, ".")
}

// errf wraps sentinel with detail and the document location.
func (st state) errf(sentinel error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s (at %s in %s)", sentinel, detail, st.location(), st.doc)
}

// wrap attaches the document location to a collaborator error, which is
// expected to already wrap one of the taxonomy sentinels.
func (st state) wrap(err error) error {
	return fmt.Errorf("%w (at %s in %s)", err, st.location(), st.doc)
}
