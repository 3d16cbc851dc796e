package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", Int(1))
	m.Set("a", Int(2))
	m.Set("c", Int(3))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	// Overwriting keeps the original position.
	m.Set("a", Int(9))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(9), v)
}

func TestMappingDelete(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("c", Int(3))
	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))

	// Deleting a missing key is a no-op.
	m.Delete("missing")
	assert.Equal(t, 2, m.Len())

	// Re-adding a deleted key appends it.
	m.Set("b", Int(4))
	assert.Equal(t, []string{"a", "c", "b"}, m.Keys())
}

func TestMappingMerge(t *testing.T) {
	base := NewMapping()
	base.Set("a", Int(1))
	base.Set("b", Int(2))

	overlay := NewMapping()
	overlay.Set("b", Int(20))
	overlay.Set("c", Int(30))

	base.Merge(overlay)
	assert.Equal(t, []string{"a", "b", "c"}, base.Keys(), "existing keys keep position, new keys append")
	v, _ := base.Get("b")
	assert.Equal(t, Int(20), v, "overlay wins")
}

func TestMappingClone(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	clone := m.Clone()
	clone.Set("a", Int(2))
	clone.Set("b", Int(3))

	v, _ := m.Get("a")
	assert.Equal(t, Int(1), v)
	assert.False(t, m.Has("b"))
}

func TestEqual(t *testing.T) {
	mk := func(keys ...string) *Mapping {
		m := NewMapping()
		for i, k := range keys {
			m.Set(k, Int(int64(i)))
		}
		return m
	}
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{name: "equal scalars", a: Int(1), b: Int(1), want: true},
		{name: "different scalar kinds", a: Int(1), b: Float(1), want: false},
		{name: "equal null", a: Null{}, b: Null{}, want: true},
		{name: "equal sequences", a: Sequence{Int(1), String("x")}, b: Sequence{Int(1), String("x")}, want: true},
		{name: "sequence order matters", a: Sequence{Int(1), Int(2)}, b: Sequence{Int(2), Int(1)}, want: false},
		{name: "equal mappings", a: mk("a", "b"), b: mk("a", "b"), want: true},
		{name: "mapping order matters", a: mk("a", "b"), b: mk("b", "a"), want: false},
		{name: "mapping vs sequence", a: mk("a"), b: Sequence{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestPlain(t *testing.T) {
	m := NewMapping()
	m.Set("s", String("x"))
	m.Set("n", Int(1))
	m.Set("f", Float(2.5))
	m.Set("b", Bool(true))
	m.Set("z", Null{})
	m.Set("list", Sequence{Int(1)})

	want := map[string]any{
		"s":    "x",
		"n":    int64(1),
		"f":    2.5,
		"b":    true,
		"z":    nil,
		"list": []any{int64(1)},
	}
	assert.Equal(t, want, Plain(m))
}
