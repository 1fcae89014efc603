package export

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"

	"draftexp/draft"
	"draftexp/render"
)

func writeChildren(tree *etree.Document) string {
	var buf bytes.Buffer
	for _, el := range tree.ChildElements() {
		el.WriteTo(&buf, &tree.WriteSettings)
	}
	return buf.String()
}

func TestWrapperState(t *testing.T) {
	ul := &WrapperSpec{Element: "ul"}
	ol := &WrapperSpec{Element: "ol"}

	steps := []struct {
		spec  *WrapperSpec
		depth int
		want  int
	}{
		{ul, 3, 1}, // nothing open, depth is ignored
		{ul, 1, 2},
		{ul, 4, 3}, // deeper by several levels, only one container opened
		{ol, 2, 3}, // different wrapper below top level goes to existing level
		{ol, 0, 1},
		{nil, 0, 0},
		{ol, 0, 1},
	}

	tree := etree.NewDocument()
	w := newWrapperState(&tree.Element)
	for i, s := range steps {
		parent := w.parentFor(&draft.Block{Depth: s.depth}, s.spec)
		parent.CreateElement("li").CreateText(string(rune('a' + i)))
		if len(w.frames) != s.want {
			t.Errorf("step %d: %d containers open, want %d", i, len(w.frames), s.want)
		}
	}

	want := `<ul><li>a<ul><li>b<ul><li>c</li><li>d</li></ul></li></ul></li></ul><ol><li>e</li></ol><li>f</li><ol><li>g</li></ol>`
	if got := writeChildren(tree); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestWrapperState_Renderer(t *testing.T) {
	rendered := &WrapperSpec{Element: "ol", Renderer: render.NumberedList{}}
	plain := &WrapperSpec{Element: "ol"}
	if rendered.signature() != plain.signature() {
		t.Fatalf("renderer changed signature: %q != %q", rendered.signature(), plain.signature())
	}

	steps := []struct {
		spec  *WrapperSpec
		block draft.Block
		want  int
	}{
		{rendered, draft.Block{Data: map[string]any{"start": "3"}}, 1},
		{plain, draft.Block{}, 1}, // same signature, container is shared
		{rendered, draft.Block{Depth: 1}, 2},
	}

	tree := etree.NewDocument()
	w := newWrapperState(&tree.Element)
	for i, s := range steps {
		w.parentFor(&s.block, s.spec).CreateElement("li").CreateText(string(rune('a' + i)))
		if len(w.frames) != s.want {
			t.Errorf("step %d: %d containers open, want %d", i, len(w.frames), s.want)
		}
	}

	want := `<ol start="3"><li>a</li><li>b<ol><li>c</li></ol></li></ol>`
	if got := writeChildren(tree); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestWrapperState_NegativeDepth(t *testing.T) {
	ul := &WrapperSpec{Element: "ul"}

	tree := etree.NewDocument()
	w := newWrapperState(&tree.Element)
	for i, depth := range []int{-1, 0, 1, -2} {
		w.parentFor(&draft.Block{Depth: depth}, ul).CreateElement("li").CreateText(string(rune('a' + i)))
	}
	if len(w.frames) != 1 {
		t.Errorf("%d containers open, want 1", len(w.frames))
	}

	want := `<ul><li>a</li><li>b<ul><li>c</li></ul></li><li>d</li></ul>`
	if got := writeChildren(tree); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestWrapperSpec_Signature(t *testing.T) {
	a := &WrapperSpec{Element: "ul", Attrs: map[string]string{"class": "x", "id": "y"}}
	b := &WrapperSpec{Element: "ul", Attrs: map[string]string{"id": "y", "class": "x"}}
	c := &WrapperSpec{Element: "ul", Attrs: map[string]string{"class": "x", "id": "y"}, ChildElement: "li"}
	if a.signature() != b.signature() {
		t.Errorf("signature depends on attribute order: %q != %q", a.signature(), b.signature())
	}
	if a.signature() == c.signature() {
		t.Errorf("child element ignored in signature %q", c.signature())
	}
}
