package ops

import (
	"fmt"

	"github.com/osbuild/otk/internal/tree"
)

// Join returns the join operation: otk.op.join concatenates the sequences,
// or unions the mappings, listed under its "values" key.
func Join() Operation {
	return joinOp{}
}

type joinOp struct{}

func (joinOp) Name() string { return "join" }

// Apply expects a mapping payload {"values": [...]}. All listed items must
// be sequences, which concatenate in order, or all mappings, which union
// with later items overriding earlier ones.
func (joinOp) Apply(value tree.Node) (tree.Node, error) {
	payload, ok := value.(*tree.Mapping)
	if !ok {
		return nil, fmt.Errorf("join expects a mapping payload with a 'values' key")
	}
	raw, ok := payload.Get("values")
	if !ok {
		return nil, fmt.Errorf("join payload is missing the 'values' key")
	}
	items, ok := raw.(tree.Sequence)
	if !ok {
		return nil, fmt.Errorf("join 'values' must be a sequence")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("join 'values' is empty")
	}

	switch items[0].(type) {
	case tree.Sequence:
		var res tree.Sequence
		for i, item := range items {
			seq, ok := item.(tree.Sequence)
			if !ok {
				return nil, fmt.Errorf("join 'values' mixes sequences and other kinds (item %d)", i)
			}
			res = append(res, seq...)
		}
		return res, nil
	case *tree.Mapping:
		res := tree.NewMapping()
		for i, item := range items {
			m, ok := item.(*tree.Mapping)
			if !ok {
				return nil, fmt.Errorf("join 'values' mixes mappings and other kinds (item %d)", i)
			}
			res.Merge(m)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("join 'values' items must be sequences or mappings")
	}
}
