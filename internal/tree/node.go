// Package tree defines the document tree that omnifests are parsed into and
// resolved over.
//
// A tree is built from a closed set of node kinds: Mapping, Sequence, and the
// scalars String, Int, Float, Bool, and Null. Mappings preserve insertion
// order; the resolver depends on that order for its define-before-use and
// merge semantics.
package tree

// Node is a value in a document tree. The set of implementations in this
// package is closed; the resolver rejects anything else as malformed input.
type Node interface {
	node()
}

// Mapping is an ordered collection of name→Node entries.
// The zero value is not usable; construct with NewMapping.
type Mapping struct {
	keys   []string
	values map[string]Node
}

// Sequence is an ordered list of nodes.
type Sequence []Node

// String is a string scalar.
type String string

// Int is an integer scalar.
type Int int64

// Float is a floating point scalar.
type Float float64

// Bool is a boolean scalar.
type Bool bool

// Null is the null scalar.
type Null struct{}

func (*Mapping) node() {}
func (Sequence) node() {}
func (String) node()   {}
func (Int) node()      {}
func (Float) node()    {}
func (Bool) node()     {}
func (Null) node()     {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy, so
// callers may mutate the mapping while iterating it.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (m *Mapping) Set(key string, value Node) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, preserving the order of the remaining entries.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a copy of the mapping. The value nodes are shared; only the
// entry bookkeeping is copied.
func (m *Mapping) Clone() *Mapping {
	res := &Mapping{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]Node, len(m.values)),
	}
	copy(res.keys, m.keys)
	for k, v := range m.values {
		res.values[k] = v
	}
	return res
}

// Merge copies every entry of other into m with right-biased overwrite: keys
// from other replace existing entries (keeping their position) and new keys
// are appended in other's order.
func (m *Mapping) Merge(other *Mapping) {
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
}

// Equal reports whether two nodes are structurally identical, including
// mapping entry order.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Mapping:
		bm, ok := b.(*Mapping)
		if !ok || len(a.keys) != len(bm.keys) {
			return false
		}
		for i, k := range a.keys {
			if bm.keys[i] != k || !Equal(a.values[k], bm.values[k]) {
				return false
			}
		}
		return true
	case Sequence:
		bs, ok := b.(Sequence)
		if !ok || len(a) != len(bs) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bs[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Plain converts a node into plain Go values: map[string]any, []any, string,
// int64, float64, bool, or nil. Mapping order is lost; use Plain only where
// order does not matter, such as template data.
func Plain(n Node) any {
	switch n := n.(type) {
	case *Mapping:
		res := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			res[k] = Plain(n.values[k])
		}
		return res
	case Sequence:
		res := make([]any, len(n))
		for i, v := range n {
			res[i] = Plain(v)
		}
		return res
	case String:
		return string(n)
	case Int:
		return int64(n)
	case Float:
		return float64(n)
	case Bool:
		return bool(n)
	default:
		return nil
	}
}
