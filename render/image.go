package render

import (
	"github.com/beevik/etree"

	"draftexp/draft"
)

// Image renders atomic image blocks as aligned paragraph with image inside.
type Image struct{}

func (Image) Render(b *draft.Block) *etree.Element {
	align := b.DataString("alignment")
	if align == "" {
		align = "default"
	}
	p := etree.NewElement("p")
	p.CreateAttr("align", align)

	img := p.CreateElement("img")
	img.CreateAttr("src", b.DataString("src"))
	if alt := b.DataString("alt"); alt != "" {
		img.CreateAttr("alt", alt)
	}
	return p
}

// NumberedList renders ordered list container continuing numbering from
// "start" of the first block data when it is present.
type NumberedList struct{}

func (NumberedList) Render(b *draft.Block) *etree.Element {
	ol := etree.NewElement("ol")
	if start := b.DataString("start"); start != "" {
		ol.CreateAttr("start", start)
	}
	return ol
}

// Renderer is the same as export.BlockRenderer, repeated here so built-ins
// do not depend on the engine.
type Renderer interface {
	Render(b *draft.Block) *etree.Element
}

// Renderers returns built-in block and wrapper renderers by name.
func Renderers() map[string]Renderer {
	return map[string]Renderer{
		"image":         Image{},
		"numbered-list": NumberedList{},
	}
}
