package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"

	"draftexp/draft"
)

// Element decorates entities with configurable element. Attribute values
// come either from Attrs as is or from entity data keys listed in DataAttrs.
type Element struct {
	Tag       string
	Attrs     map[string]string
	DataAttrs map[string]string
}

func (e *Element) Wrap(data map[string]any) *etree.Element {
	el := etree.NewElement(e.Tag)
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		el.CreateAttr(k, e.Attrs[k])
	}
	for _, k := range slices.Sorted(maps.Keys(e.DataAttrs)) {
		if _, ok := data[e.DataAttrs[k]]; ok {
			el.CreateAttr(k, draft.ValueString(data, e.DataAttrs[k]))
		}
	}
	return el
}

// TextElement is Element which also replaces entity text with the result of
// template executed against entity data.
type TextElement struct {
	Element
	text *template.Template
}

func (e *TextElement) RenderText(data map[string]any) string {
	buf := new(bytes.Buffer)
	if err := e.text.Execute(buf, data); err != nil {
		// template was validated on creation, data does not fit it - show nothing computed
		return ""
	}
	return buf.String()
}

// NewTextElement prepares decorator with display text template. Template
// has access to slim-sprig functions, entity data is dot.
func NewTextElement(el Element, textTemplate string) (*TextElement, error) {
	tmpl, err := template.New(el.Tag).Funcs(sprig.FuncMap()).Option("missingkey=zero").Parse(textTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse text template for %s: %w", el.Tag, err)
	}
	return &TextElement{Element: el, text: tmpl}, nil
}
