package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalJSON encodes the mapping as a JSON object in insertion order.
// The stock encoding/json map encoder sorts keys, which would lose the
// document order the resolver preserved.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalJSON(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the sequence as a JSON array.
func (s Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := marshalJSON(item)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON encodes null; the stock encoder would render the empty struct
// as {}.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func marshalJSON(n Node) ([]byte, error) {
	switch n := n.(type) {
	case *Mapping:
		return n.MarshalJSON()
	case Sequence:
		return n.MarshalJSON()
	case String:
		return json.Marshal(string(n))
	case Int:
		return []byte(strconv.FormatInt(int64(n), 10)), nil
	case Float:
		return json.Marshal(float64(n))
	case Bool:
		return []byte(strconv.FormatBool(bool(n))), nil
	case Null:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("cannot encode node of type %T", n)
	}
}

// EncodeJSON renders a tree as indented JSON with a trailing newline.
func EncodeJSON(n Node) ([]byte, error) {
	raw, err := marshalJSON(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
