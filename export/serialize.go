package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Options control serialization of exported tree.
type Options struct {
	// Encoding is IANA name of output charset, characters it cannot represent
	// are written as numeric character references. Empty means UTF-8.
	Encoding string
	// Separator is placed between top level elements.
	Separator string
}

// Validate checks that requested output charset could be produced.
func (o Options) Validate() error {
	if o.Encoding == "" {
		return nil
	}
	_, err := lookupEncoding(o.Encoding)
	return err
}

// HTML elements which never have content.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

func serialize(tree *etree.Document, opts Options) (string, error) {
	settings := tree.WriteSettings

	var buf bytes.Buffer
	for i, el := range tree.ChildElements() {
		closeEmpty(el)
		if i > 0 {
			buf.WriteString(opts.Separator)
		}
		el.WriteTo(&buf, &settings)
	}
	// etree uses XML apostrophe entity which is not defined in HTML 4
	out := strings.ReplaceAll(buf.String(), "&apos;", "&#39;")

	if opts.Encoding == "" {
		return out, nil
	}
	return transcode(out, opts.Encoding)
}

// closeEmpty makes sure non void elements without content get end tag
// instead of being written self closed.
func closeEmpty(el *etree.Element) {
	if len(el.Child) == 0 {
		if !voidElements[el.Tag] {
			el.CreateText("")
		}
		return
	}
	for _, child := range el.ChildElements() {
		closeEmpty(child)
	}
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownEncoding, charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, charset)
	}
	return enc, nil
}

func transcode(s, charset string) (string, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}
	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).String(s)
	if err != nil {
		return "", fmt.Errorf("unable to encode output as %s: %w", charset, err)
	}
	return out, nil
}
