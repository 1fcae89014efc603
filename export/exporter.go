// Package export converts editor content state into HTML markup.
package export

import (
	"fmt"
	"maps"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"draftexp/draft"
)

// Exporter holds registries only, all per document state is created by
// Export, so single Exporter could be used concurrently.
type Exporter struct {
	cfg Config
	log *zap.Logger
}

// New creates exporter for the given registries.
func New(cfg Config, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.AtomicKey == "" {
		cfg.AtomicKey = defaultAtomicKey
	}
	if _, ok := cfg.Blocks[draft.UnstyledType]; !ok {
		blocks := make(map[string]BlockSpec, len(cfg.Blocks)+1)
		maps.Copy(blocks, cfg.Blocks)
		blocks[draft.UnstyledType] = defaultUnstyled
		cfg.Blocks = blocks
	}
	return &Exporter{cfg: cfg, log: log.Named("export")}
}

// exporter is state of a single Export call threaded through all stages.
type exporter struct {
	cfg      *Config
	log      *zap.Logger
	doc      *draft.Document
	tree     *etree.Document
	wrappers *wrapperState
	anchors  map[string]int
}

// Export renders document. Any structural error aborts whole document and no
// markup is returned.
func (e *Exporter) Export(doc *draft.Document, opts Options) (string, error) {
	tree := etree.NewDocument()
	x := &exporter{
		cfg:      &e.cfg,
		log:      e.log,
		doc:      doc,
		tree:     tree,
		wrappers: newWrapperState(&tree.Element),
		anchors:  make(map[string]int),
	}

	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		el := x.elementFor(b)
		if err := x.blockContents(el, b); err != nil {
			return "", err
		}
	}

	out, err := serialize(tree, opts)
	if err != nil {
		return "", err
	}
	e.log.Debug("Document exported", zap.Int("blocks", len(doc.Blocks)), zap.Int("entities", len(doc.EntityMap)), zap.Int("bytes", len(out)))
	return out, nil
}

// elementFor creates block element and attaches it to the proper place of the tree.
func (x *exporter) elementFor(b *draft.Block) *etree.Element {
	typ := b.BlockType()

	if typ == draft.AtomicType {
		name := b.DataString(x.cfg.AtomicKey)
		if r, ok := x.cfg.Atomic[name]; ok {
			if el := r.Render(b); el != nil {
				x.wrappers.reset().AddChild(el)
				return el
			}
		}
		for i := range x.cfg.AtomicMatches {
			if m := &x.cfg.AtomicMatches[i]; m.matches(b) {
				return x.createElement(b, &m.Spec)
			}
		}
		x.log.Debug("No renderer for atomic block, rendering as unstyled", zap.String("key", b.Key), zap.String(x.cfg.AtomicKey, name))
		return x.createElement(b, x.unstyled())
	}

	spec, ok := x.cfg.Blocks[typ]
	if !ok {
		x.log.Debug("Unknown block type, rendering as unstyled", zap.String("key", b.Key), zap.String("type", typ))
		return x.createElement(b, x.unstyled())
	}
	return x.createElement(b, &spec)
}

func (x *exporter) unstyled() *BlockSpec {
	spec := x.cfg.Blocks[draft.UnstyledType]
	return &spec
}

func (x *exporter) createElement(b *draft.Block, spec *BlockSpec) *etree.Element {
	el := spec.build(b)
	if spec.Anchor {
		if id := x.anchor(b.Text); id != "" {
			el.CreateAttr("id", id)
		}
	}
	x.wrappers.parentFor(b, spec.Wrapper).AddChild(el)
	return el
}

// anchor returns id unique within exported document.
func (x *exporter) anchor(text string) string {
	id := slug.Make(text)
	if id == "" {
		return ""
	}
	n := x.anchors[id]
	x.anchors[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, n+1)
}
