package export

import (
	"fmt"

	"github.com/beevik/etree"

	"draftexp/draft"
)

// blockContents fills block element with block text split into segments by
// style and entity ranges.
func (x *exporter) blockContents(el *etree.Element, b *draft.Block) error {
	text := b.Runes()
	styles := newStyleStack(x.cfg.Styles, x.cfg.StyleTags)
	entities := newEntityTracker(el, x.doc.EntityMap, x.cfg.Decorators, x.log)

	for _, g := range groupCommands(b, len(text)) {
		for _, c := range g.commands {
			if err := entities.apply(c); err != nil {
				return fmt.Errorf("block %q: %w", b.Key, err)
			}
			styles.apply(c)
		}

		segment := g.slice(text)
		if _, started := g.startedEntity(); started {
			// computed text replaces the first segment only
			if s, ok := entities.displayText(); ok {
				segment = s
			}
		}
		if segment == "" {
			continue
		}
		appendSegment(entities.parent(), segment, styles)
	}
	return nil
}

// appendSegment builds chain of style elements under parent and puts text
// into the innermost one. Text is escaped on serialization.
func appendSegment(parent *etree.Element, text string, styles *styleStack) {
	for _, tag := range styles.elementTags() {
		parent = parent.CreateElement(tag)
	}
	if css := styles.inlineStyle(); css != "" {
		parent = parent.CreateElement("span")
		parent.CreateAttr("style", css)
	}
	parent.CreateText(text)
}
