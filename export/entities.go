package export

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"draftexp/draft"
)

// entityTracker keeps single entity open at current position of a block.
// Entities may not nest or overlap.
type entityTracker struct {
	block      *etree.Element
	entities   map[draft.EntityKey]draft.Entity
	decorators map[string]EntityDecorator
	log        *zap.Logger

	active    bool
	key       draft.EntityKey
	entity    draft.Entity
	decorator EntityDecorator
	node      *etree.Element
}

func newEntityTracker(block *etree.Element, entities map[draft.EntityKey]draft.Entity, decorators map[string]EntityDecorator, log *zap.Logger) *entityTracker {
	return &entityTracker{block: block, entities: entities, decorators: decorators, log: log}
}

func (t *entityTracker) apply(c command) error {
	switch c.kind {
	case entityStart:
		if t.active {
			return fmt.Errorf("entity %q at %d while %q is open: %w", c.entity, c.index, t.key, ErrInvalidEntityOverlap)
		}
		entity, ok := t.entities[c.entity]
		if !ok {
			return fmt.Errorf("entity %q at %d: %w", c.entity, c.index, ErrMissingEntityReference)
		}
		t.active, t.key, t.entity, t.node = true, c.entity, entity, nil
		t.decorator = t.decorators[entity.Type]
		if t.decorator == nil {
			t.log.Debug("No decorator for entity type, leaving text as is", zap.String("type", entity.Type), zap.String("key", string(c.entity)))
		}
	case entityStop:
		t.active, t.key, t.decorator, t.node = false, "", nil, nil
	}
	return nil
}

// parent returns element new content of the block goes to. Decorated entity
// gets its wrapping element on first use, following segments reuse it.
func (t *entityTracker) parent() *etree.Element {
	if !t.active || t.decorator == nil {
		return t.block
	}
	if t.node == nil {
		t.node = t.decorator.Wrap(t.entity.Data)
		if t.node == nil {
			t.decorator = nil
			return t.block
		}
		t.block.AddChild(t.node)
	}
	return t.node
}

// displayText returns text computed by decorator of the open entity.
func (t *entityTracker) displayText() (string, bool) {
	if !t.active || t.decorator == nil {
		return "", false
	}
	tr, ok := t.decorator.(TextRenderer)
	if !ok {
		return "", false
	}
	return tr.RenderText(t.entity.Data), true
}
