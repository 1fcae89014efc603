// Package render provides built-in entity decorators and block renderers.
package render

import (
	"github.com/beevik/etree"

	"draftexp/draft"
)

// Link decorates LINK entities with anchor pointing to entity "url".
type Link struct {
	Class  string
	Target string
}

func (l *Link) Wrap(data map[string]any) *etree.Element {
	a := etree.NewElement("a")
	a.CreateAttr("href", draft.ValueString(data, "url"))
	if l.Class != "" {
		a.CreateAttr("class", l.Class)
	}
	if l.Target != "" {
		a.CreateAttr("target", l.Target)
		if l.Target == "_blank" {
			a.CreateAttr("rel", "noopener noreferrer")
		}
	}
	return a
}
