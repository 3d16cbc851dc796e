package resolve

import (
	"strings"

	"github.com/osbuild/otk/internal/tree"
)

// resolveMapping applies directive semantics to one mapping. Keys are
// iterated from a snapshot taken up front, in document order, but values are
// read from the working copy at processing time: a directive's merge result
// is what a later plain key observes, which is how include output wins over
// a pre-existing sibling. Directive results merge with right-biased
// overwrite; otk.version and otk.target.* pass through untouched.
//
// The input mapping is never modified; all rewriting happens on a clone.
func (r *Resolver) resolveMapping(m *tree.Mapping, st state) (tree.Node, error) {
	work := m.Clone()
	for _, key := range m.Keys() {
		val, ok := work.Get(key)
		if !ok {
			// Removed by an earlier directive in this mapping.
			continue
		}
		if !strings.HasPrefix(key, Prefix) {
			resolved, err := r.resolveNode(val, st.field(key))
			if err != nil {
				return nil, err
			}
			work.Set(key, resolved)
			continue
		}

		dir, _ := parseDirective(key)
		switch dir.kind {
		case directiveDefine:
			if err := r.applyDefine(val, st.field(key)); err != nil {
				return nil, err
			}
			work.Delete(key)
		case directiveVersion, directiveTarget:
			// Passthrough markers for the downstream consumer; never
			// resolved, retained verbatim.
		case directiveInclude:
			sub, err := r.applyInclude(val, st.field(key))
			if err != nil {
				return nil, err
			}
			work.Delete(key)
			work.Merge(sub)
		case directiveOp, directiveExternal:
			sub, err := r.applyCall(dir, val, st.field(key))
			if err != nil {
				return nil, err
			}
			work.Delete(key)
			work.Merge(sub)
		default:
			return nil, st.field(key).errf(ErrUnknownDirective, "%s", key)
		}
	}
	return work, nil
}

// applyDefine resolves each entry of the payload mapping and binds it in the
// session scope. Defined values are not re-emitted as output fields; they
// are reachable only through interpolation.
func (r *Resolver) applyDefine(val tree.Node, st state) error {
	payload, ok := val.(*tree.Mapping)
	if !ok {
		return st.errf(ErrStructural, "otk.define expects a mapping, got %s", kindName(val))
	}
	for _, name := range payload.Keys() {
		raw, _ := payload.Get(name)
		resolved, err := r.resolveNode(raw, st.field(name))
		if err != nil {
			return err
		}
		st.scope.Define(name, resolved)
	}
	return nil
}

// applyInclude resolves the payload to a path, loads the referenced document
// with the loader, and resolves it against the same scope but the included
// file's own directory, so includes nested inside an include rebase
// correctly.
func (r *Resolver) applyInclude(val tree.Node, st state) (*tree.Mapping, error) {
	resolved, err := r.resolveNode(val, st)
	if err != nil {
		return nil, err
	}
	ref, ok := resolved.(tree.String)
	if !ok {
		return nil, st.errf(ErrStructural, "otk.include expects a path string, got %s", kindName(resolved))
	}

	canonical, err := r.Includes.Resolve(st.base, string(ref))
	if err != nil {
		return nil, st.wrap(err)
	}
	if st.active(canonical) {
		return nil, st.errf(ErrIncludeCycle, "%s\n  chain: %s", canonical, strings.Join(st.chain, "\n   -> "))
	}
	raw, newBase, err := r.Includes.Load(canonical)
	if err != nil {
		return nil, st.wrap(err)
	}

	sub, err := r.resolveNode(raw, st.enter(canonical, newBase))
	if err != nil {
		return nil, err
	}
	mapping, ok := sub.(*tree.Mapping)
	if !ok {
		return nil, st.errf(ErrStructural, "included document %s must be a mapping, got %s", canonical, kindName(sub))
	}
	return mapping, nil
}

// applyCall handles otk.op.* and otk.external.*: resolve the payload, hand
// it to the registry or bridge, then resolve the returned subtree so results
// may themselves use interpolation or further directives.
func (r *Resolver) applyCall(dir directive, val tree.Node, st state) (*tree.Mapping, error) {
	payload, err := r.resolveNode(val, st)
	if err != nil {
		return nil, err
	}

	var result tree.Node
	switch dir.kind {
	case directiveOp:
		result, err = r.Ops.Apply(dir.name, payload)
	case directiveExternal:
		result, err = r.Externals.Call(dir.name, payload)
	}
	if err != nil {
		return nil, st.wrap(err)
	}

	resolved, err := r.resolveNode(result, st)
	if err != nil {
		return nil, err
	}
	mapping, ok := resolved.(*tree.Mapping)
	if !ok {
		return nil, st.errf(ErrStructural, "%s result must be a mapping to merge, got %s", dir.key, kindName(resolved))
	}
	return mapping, nil
}

func kindName(n tree.Node) string {
	switch n.(type) {
	case *tree.Mapping:
		return "mapping"
	case tree.Sequence:
		return "sequence"
	case tree.String:
		return "string"
	case tree.Int:
		return "integer"
	case tree.Float:
		return "float"
	case tree.Bool:
		return "boolean"
	case tree.Null:
		return "null"
	default:
		return "unknown"
	}
}
