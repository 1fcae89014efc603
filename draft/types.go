package draft

import (
	"fmt"
	"strconv"
)

// Type definitions for the raw content state produced by the editor.

// UnstyledType is the block type used for blocks without explicit type and
// as fallback for types absent from configuration.
const UnstyledType = "unstyled"

// AtomicType marks blocks representing embedded non-text units.
const AtomicType = "atomic"

// Document mirrors raw content state: ordered blocks and entities addressed
// by key.
type Document struct {
	Blocks    []Block              `json:"blocks"`
	EntityMap map[EntityKey]Entity `json:"entityMap"`
}

// Block is a single paragraph, list item, header etc.
type Block struct {
	Key               string         `json:"key"`
	Text              string         `json:"text"`
	Type              string         `json:"type"`
	Depth             int            `json:"depth"`
	InlineStyleRanges []StyleRange   `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange  `json:"entityRanges"`
	Data              map[string]any `json:"data,omitempty"`
}

// StyleRange applies inline style to Length code points starting at Offset.
type StyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EntityRange attaches entity Key to Length code points starting at Offset.
type EntityRange struct {
	Offset int       `json:"offset"`
	Length int       `json:"length"`
	Key    EntityKey `json:"key"`
}

// Entity is annotation data shared between ranges, e.g. link target.
type Entity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// EntityKey addresses entity in Document.EntityMap. Editor emits keys as
// numbers in ranges and as strings in the map, both forms are accepted.
type EntityKey string

func (k *EntityKey) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("entity key: %w", err)
		}
		*k = EntityKey(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("entity key %s: must be string or integer", data)
	}
	*k = EntityKey(strconv.FormatInt(n, 10))
	return nil
}

// BlockType returns block type defaulting to unstyled.
func (b *Block) BlockType() string {
	if b.Type == "" {
		return UnstyledType
	}
	return b.Type
}

// Runes returns code point view of block text, all range offsets refer to it.
func (b *Block) Runes() []rune {
	return []rune(b.Text)
}

// DataString returns block data value under key as text, empty if absent.
func (b *Block) DataString(key string) string {
	return ValueString(b.Data, key)
}

// ValueString formats data value under key, empty if absent or nil.
func ValueString(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
