package draft

import (
	"maps"
	"slices"

	"github.com/maruel/natural"

	"draftexp/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed document. It exists solely for
// inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(d *Document) treeWriter {
	tw.Line(0, "Document blocks=%d entities=%d", len(d.Blocks), len(d.EntityMap))
	for i := range d.Blocks {
		tw.block(1, i, &d.Blocks[i])
	}
	if len(d.EntityMap) > 0 {
		tw.Line(1, "EntityMap")
		for _, k := range sortedKeys(d.EntityMap) {
			e := d.EntityMap[k]
			tw.Line(2, "Entity[%s] type=%q mutability=%q", k, e.Type, e.Mutability)
			tw.Map(3, "Data", e.Data)
		}
	}
	return tw
}

func (tw treeWriter) block(depth, i int, b *Block) {
	tw.Line(depth, "Block[%d] key=%q type=%q depth=%d", i, b.Key, b.Type, b.Depth)
	tw.TextBlock(depth+1, "Text", b.Text)
	for _, r := range b.InlineStyleRanges {
		tw.Line(depth+1, "Style %s [%d+%d]", r.Style, r.Offset, r.Length)
	}
	for _, r := range b.EntityRanges {
		tw.Line(depth+1, "Entity %s [%d+%d]", r.Key, r.Offset, r.Length)
	}
	tw.Map(depth+1, "Data", b.Data)
}

func sortedKeys(m map[EntityKey]Entity) []EntityKey {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b EntityKey) int {
		switch {
		case natural.Less(string(a), string(b)):
			return -1
		case natural.Less(string(b), string(a)):
			return 1
		}
		return 0
	})
	return keys
}
