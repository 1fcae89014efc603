package draft

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = `{
  "entityMap": {
    "0": {"type": "LINK", "mutability": "MUTABLE", "data": {"url": "http://example.com"}},
    "1": {"type": "MENTION", "data": {"id": 42}}
  },
  "blocks": [
    {
      "key": "dem5p",
      "text": "some paragraph text",
      "type": "unstyled",
      "depth": 0,
      "inlineStyleRanges": [{"offset": 0, "length": 4, "style": "BOLD"}],
      "entityRanges": [{"offset": 5, "length": 9, "key": 0}, {"offset": 15, "length": 4, "key": "1"}],
      "data": {}
    },
    {
      "key": "img1",
      "text": " ",
      "type": "atomic",
      "depth": 0,
      "inlineStyleRanges": [],
      "entityRanges": [],
      "data": {"type": "image", "src": "a.png", "width": 640}
    },
    {"key": "x", "text": "no type"}
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(doc.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(doc.Blocks))
	}
	if len(doc.EntityMap) != 2 {
		t.Fatalf("entities = %d, want 2", len(doc.EntityMap))
	}

	b := doc.Blocks[0]
	if b.Key != "dem5p" || b.Text != "some paragraph text" {
		t.Errorf("unexpected block %+v", b)
	}
	if len(b.InlineStyleRanges) != 1 || b.InlineStyleRanges[0].Style != "BOLD" {
		t.Errorf("style ranges = %+v", b.InlineStyleRanges)
	}

	// numeric and string keys must address the same map
	for _, r := range b.EntityRanges {
		if _, ok := doc.EntityMap[r.Key]; !ok {
			t.Errorf("entity key %q not found in entity map", r.Key)
		}
	}
	if doc.EntityMap["0"].Data["url"] != "http://example.com" {
		t.Errorf("link data = %v", doc.EntityMap["0"].Data)
	}

	if got := doc.Blocks[1].DataString("width"); got != "640" {
		t.Errorf("DataString(width) = %q, want 640", got)
	}
	if got := doc.Blocks[1].DataString("missing"); got != "" {
		t.Errorf("DataString(missing) = %q, want empty", got)
	}
	if got := doc.Blocks[2].BlockType(); got != UnstyledType {
		t.Errorf("BlockType() = %q, want %q", got, UnstyledType)
	}
}

func TestDecode_EmptyEntityMap(t *testing.T) {
	doc, err := DecodeBytes([]byte(`{"blocks": []}`))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if doc.EntityMap == nil {
		t.Error("EntityMap must never be nil")
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `<html/>`},
		{"truncated", `{"blocks": [`},
		{"bad entity key", `{"blocks": [{"key": "a", "text": "x", "entityRanges": [{"offset": 0, "length": 1, "key": true}]}]}`},
		{"negative depth", `{"blocks": [{"key": "a", "text": "x", "depth": -1}]}`},
		{"negative offset", `{"blocks": [{"key": "a", "text": "x", "inlineStyleRanges": [{"offset": -1, "length": 1, "style": "BOLD"}]}]}`},
		{"negative length", `{"blocks": [{"key": "a", "text": "x", "entityRanges": [{"offset": 0, "length": -2, "key": 0}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("error %v is not ErrMalformedDocument", err)
			}
		})
	}
}

func TestBlock_Runes(t *testing.T) {
	b := Block{Text: "Привет, мир!"}
	if got := len(b.Runes()); got != 12 {
		t.Errorf("len(Runes()) = %d, want 12", got)
	}
}

func TestDocument_String(t *testing.T) {
	doc, err := DecodeBytes([]byte(`{"blocks": [{"key": "k1", "text": "Hi\tyou", "type": "atomic", "depth": 1,
  "inlineStyleRanges": [{"offset": 0, "length": 2, "style": "BOLD"}],
  "entityRanges": [{"offset": 3, "length": 3, "key": 10}], "data": {"type": "image"}}],
  "entityMap": {"10": {"type": "LINK", "mutability": "MUTABLE", "data": {"url": "/x"}}, "2": {"type": "TAG"}}}`))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	want := `Document blocks=1 entities=2
  Block[0] key="k1" type="atomic" depth=1
    Text: "Hi\tyou"
    Style BOLD [0+2]
    Entity 10 [3+3]
    Data: type=image
  EntityMap
    Entity[2] type="TAG" mutability=""
    Entity[10] type="LINK" mutability="MUTABLE"
      Data: url=/x
`
	if got := doc.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	var nilDoc *Document
	if got := nilDoc.String(); got != "<nil Document>" {
		t.Errorf("String() on nil = %q", got)
	}
}
