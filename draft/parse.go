// Package draft defines editor content model and reads it from JSON.
package draft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedDocument is returned when input cannot be read as raw content state.
var ErrMalformedDocument = errors.New("malformed document")

// Decode reads single raw content state from r.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if err := doc.check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if doc.EntityMap == nil {
		doc.EntityMap = make(map[EntityKey]Entity)
	}
	return &doc, nil
}

// DecodeBytes is Decode for in-memory data.
func DecodeBytes(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// check rejects what cannot be addressed at all. Everything else, including
// ranges reaching past the end of text, is left to the exporter.
func (d *Document) check() error {
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.Depth < 0 {
			return fmt.Errorf("block %d (%s): negative depth %d", i, b.Key, b.Depth)
		}
		for _, r := range b.InlineStyleRanges {
			if r.Offset < 0 || r.Length < 0 {
				return fmt.Errorf("block %d (%s): bad style range %d+%d", i, b.Key, r.Offset, r.Length)
			}
		}
		for _, r := range b.EntityRanges {
			if r.Offset < 0 || r.Length < 0 {
				return fmt.Errorf("block %d (%s): bad entity range %d+%d", i, b.Key, r.Offset, r.Length)
			}
		}
	}
	return nil
}
