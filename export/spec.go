package export

import (
	"maps"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"draftexp/draft"
)

// BlockRenderer builds detached element for a block. Exporter attaches
// returned element and fills it with block content.
type BlockRenderer interface {
	Render(b *draft.Block) *etree.Element
}

// EntityDecorator builds detached element wrapping text of an entity.
// Returning nil leaves entity text undecorated.
type EntityDecorator interface {
	Wrap(data map[string]any) *etree.Element
}

// TextRenderer is implemented by decorators which present computed text
// instead of the text entity covers.
type TextRenderer interface {
	RenderText(data map[string]any) string
}

// WrapperSpec describes container shared by consecutive blocks of the same
// kind, e.g. list around list items.
type WrapperSpec struct {
	Element string
	Attrs   map[string]string
	// ChildElement, when set, is created inside container and receives blocks.
	ChildElement string
	// Renderer, when set, builds container instead of Element and Attrs.
	// Element still identifies wrapper when blocks are compared.
	Renderer BlockRenderer
}

// signature identifies wrapper so blocks with equal signatures share container.
func (w *WrapperSpec) signature() string {
	var sb strings.Builder
	sb.WriteString(w.Element)
	for _, k := range slices.Sorted(maps.Keys(w.Attrs)) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(w.Attrs[k])
	}
	if w.ChildElement != "" {
		sb.WriteByte('>')
		sb.WriteString(w.ChildElement)
	}
	return sb.String()
}

func (w *WrapperSpec) build(b *draft.Block) *etree.Element {
	if w.Renderer != nil {
		if el := w.Renderer.Render(b); el != nil {
			return el
		}
	}
	return newElement(w.Element, w.Attrs)
}

// BlockSpec describes how block of particular type is rendered. It is either
// declarative (Element, Attrs, Prefix) or callable (Renderer).
type BlockSpec struct {
	Element string
	Attrs   map[string]string
	// Prefix is text placed into element before block content.
	Prefix  string
	Wrapper *WrapperSpec
	// Renderer, when set, builds block element instead of declarative fields.
	Renderer BlockRenderer
	// Anchor adds id attribute derived from block text.
	Anchor bool
}

func (s *BlockSpec) build(b *draft.Block) *etree.Element {
	if s.Renderer != nil {
		if el := s.Renderer.Render(b); el != nil {
			return el
		}
	}
	el := newElement(s.Element, s.Attrs)
	if s.Prefix != "" {
		el.CreateText(s.Prefix)
	}
	return el
}

// AtomicMatch selects declarative spec for atomic block when every Data
// value equals block data value under the same key.
type AtomicMatch struct {
	Data map[string]any
	Spec BlockSpec
}

func (m *AtomicMatch) matches(b *draft.Block) bool {
	if len(m.Data) == 0 {
		return false
	}
	for k := range m.Data {
		if _, ok := b.Data[k]; !ok || draft.ValueString(b.Data, k) != draft.ValueString(m.Data, k) {
			return false
		}
	}
	return true
}

// Config is complete set of registries exporter works with.
type Config struct {
	// Blocks maps block type to its spec, "unstyled" entry is used for
	// unknown types.
	Blocks map[string]BlockSpec
	// Styles maps style name to inline CSS properties.
	Styles map[string]map[string]string
	// StyleTags maps style name to element wrapping styled text.
	StyleTags map[string]string
	// Decorators maps entity type to its decorator.
	Decorators map[string]EntityDecorator
	// Atomic maps value of block data field AtomicKey to specialized renderer.
	Atomic        map[string]BlockRenderer
	AtomicMatches []AtomicMatch
	AtomicKey     string
}

const defaultAtomicKey = "type"

var defaultUnstyled = BlockSpec{Element: "div"}

func newElement(tag string, attrs map[string]string) *etree.Element {
	el := etree.NewElement(tag)
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		el.CreateAttr(k, attrs[k])
	}
	return el
}
