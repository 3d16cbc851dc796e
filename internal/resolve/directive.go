package resolve

import "strings"

// Prefix is the reserved namespace for directive keys.
const Prefix = "otk."

// directiveKind is the closed set of directive classifications. Every
// reserved-prefix key parses to exactly one kind, so the dispatcher's switch
// is exhaustive.
type directiveKind int

const (
	directiveUnknown directiveKind = iota
	directiveDefine
	directiveVersion
	directiveTarget
	directiveInclude
	directiveOp
	directiveExternal
)

// directive is a parsed reserved-prefix mapping key.
type directive struct {
	key  string
	kind directiveKind
	// name is the operation or external name for otk.op.* and
	// otk.external.* keys.
	name string
}

// parseDirective classifies a mapping key. It returns false for keys outside
// the reserved namespace; reserved keys that match no directive parse to
// directiveUnknown.
//
// otk.define and otk.include accept a dotted suffix (otk.include.base) so
// one mapping can carry several of them under distinct keys.
func parseDirective(key string) (directive, bool) {
	rest, ok := strings.CutPrefix(key, Prefix)
	if !ok {
		return directive{}, false
	}
	d := directive{key: key}
	switch {
	case rest == "define" || strings.HasPrefix(rest, "define."):
		d.kind = directiveDefine
	case rest == "version":
		d.kind = directiveVersion
	case strings.HasPrefix(rest, "target."):
		d.kind = directiveTarget
		d.name = strings.TrimPrefix(rest, "target.")
	case rest == "include" || strings.HasPrefix(rest, "include."):
		d.kind = directiveInclude
	case strings.HasPrefix(rest, "op.") && len(rest) > len("op."):
		d.kind = directiveOp
		d.name = strings.TrimPrefix(rest, "op.")
	case strings.HasPrefix(rest, "external.") && len(rest) > len("external."):
		d.kind = directiveExternal
		d.name = strings.TrimPrefix(rest, "external.")
	default:
		d.kind = directiveUnknown
	}
	return d, true
}
