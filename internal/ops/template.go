package ops

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/osbuild/otk/internal/tree"
)

// Template returns the template operation: otk.op.template renders a Go
// text/template with the sprig function map.
func Template() Operation {
	return templateOp{}
}

type templateOp struct{}

func (templateOp) Name() string { return "template" }

// Apply expects a mapping payload with a "text" string and an optional
// "vars" mapping used as template data. The rendered text is parsed back as
// a YAML document, so a template can produce structured results.
func (templateOp) Apply(value tree.Node) (tree.Node, error) {
	payload, ok := value.(*tree.Mapping)
	if !ok {
		return nil, fmt.Errorf("template expects a mapping payload with a 'text' key")
	}
	rawText, ok := payload.Get("text")
	if !ok {
		return nil, fmt.Errorf("template payload is missing the 'text' key")
	}
	text, ok := rawText.(tree.String)
	if !ok {
		return nil, fmt.Errorf("template 'text' must be a string")
	}

	data := map[string]any{}
	if rawVars, ok := payload.Get("vars"); ok {
		vars, ok := rawVars.(*tree.Mapping)
		if !ok {
			return nil, fmt.Errorf("template 'vars' must be a mapping")
		}
		data = tree.Plain(vars).(map[string]any)
	}

	tmpl, err := template.New("otk.op.template").Funcs(sprig.TxtFuncMap()).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("template parse: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("template render: %w", err)
	}
	node, err := tree.Unmarshal(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("template output is not valid YAML: %w", err)
	}
	return node, nil
}
