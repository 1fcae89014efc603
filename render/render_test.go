package render

import (
	"encoding/json"
	"bytes"
	"testing"

	"github.com/beevik/etree"

	"draftexp/draft"
)

func write(t *testing.T, el *etree.Element) string {
	t.Helper()
	var buf bytes.Buffer
	el.WriteTo(&buf, &etree.WriteSettings{CanonicalEndTags: true})
	return buf.String()
}

func TestLink(t *testing.T) {
	tests := []struct {
		name string
		link Link
		data map[string]any
		want string
	}{
		{"plain", Link{}, map[string]any{"url": "http://example.com"}, `<a href="http://example.com"></a>`},
		{"class", Link{Class: "foobar-baz"}, map[string]any{"url": "http://example.com"}, `<a href="http://example.com" class="foobar-baz"></a>`},
		{"blank", Link{Target: "_blank"}, map[string]any{"url": "/x"}, `<a href="/x" target="_blank" rel="noopener noreferrer"></a>`},
		{"no url", Link{}, nil, `<a href=""></a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := write(t, tt.link.Wrap(tt.data)); got != tt.want {
				t.Errorf("Wrap() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestElement(t *testing.T) {
	e := &Element{
		Tag:       "abbr",
		Attrs:     map[string]string{"class": "term"},
		DataAttrs: map[string]string{"title": "meaning", "lang": "language"},
	}
	got := write(t, e.Wrap(map[string]any{"meaning": "HyperText Markup Language"}))
	want := `<abbr class="term" title="HyperText Markup Language"></abbr>`
	if got != want {
		t.Errorf("Wrap() = %s, want %s", got, want)
	}
}

func TestTextElement(t *testing.T) {
	e, err := NewTextElement(Element{Tag: "span", Attrs: map[string]string{"class": "mention"}}, `@{{ .name | lower }}`)
	if err != nil {
		t.Fatalf("NewTextElement() error = %v", err)
	}
	if got := e.RenderText(map[string]any{"name": "Alice"}); got != "@alice" {
		t.Errorf("RenderText() = %q, want %q", got, "@alice")
	}
	if got := write(t, e.Wrap(nil)); got != `<span class="mention"></span>` {
		t.Errorf("Wrap() = %s", got)
	}
}

func TestNewTextElement_BadTemplate(t *testing.T) {
	if _, err := NewTextElement(Element{Tag: "span"}, `{{ .name `); err == nil {
		t.Fatal("expected template parse error")
	}
}

func TestImage(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"aligned", map[string]any{"type": "image", "src": "/x.png", "alignment": "left"}, `<p align="left"><img src="/x.png"/></p>`},
		{"default", map[string]any{"src": "/x.png", "alt": "X"}, `<p align="default"><img src="/x.png" alt="X"/></p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &draft.Block{Type: draft.AtomicType, Data: tt.data}
			var buf bytes.Buffer
			Image{}.Render(b).WriteTo(&buf, &etree.WriteSettings{})
			if got := buf.String(); got != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNumberedList(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"no start", nil, `<ol></ol>`},
		{"start", map[string]any{"start": "4"}, `<ol start="4"></ol>`},
		{"numeric start", map[string]any{"start": json.Number("7")}, `<ol start="7"></ol>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := write(t, NumberedList{}.Render(&draft.Block{Data: tt.data})); got != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderers(t *testing.T) {
	for _, name := range []string{"image", "numbered-list"} {
		if _, ok := Renderers()[name]; !ok {
			t.Errorf("%s renderer is not registered", name)
		}
	}
}
