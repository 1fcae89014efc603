// Package css reads inline CSS used by style registry.
package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS declaration lists (content of style attribute).
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Declarations parses "name: value; ..." into property map. Property names
// are lower cased, later declaration of the same property wins. Custom
// properties and at-rules are ignored.
func (p *Parser) Declarations(data string) (map[string]string, error) {
	props := make(map[string]string)

	parser := css.NewParser(parse.NewInputString(data), true)
	for {
		gt, _, name := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("bad CSS declarations %q: %w", data, err)
			}
			return props, nil

		case css.DeclarationGrammar:
			value := declarationValue(parser.Values())
			if value == "" {
				return nil, fmt.Errorf("bad CSS declarations %q: property %s has no value", data, name)
			}
			props[string(name)] = value

		case css.CustomPropertyGrammar:
			p.log.Debug("Skipping custom property", zap.ByteString("name", name))

		default:
			p.log.Debug("Skipping unexpected CSS", zap.Stringer("grammar", gt), zap.ByteString("data", name))
		}
	}
}

// declarationValue joins value tokens, whitespace between tokens is
// collapsed to single space.
func declarationValue(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			sb.Write(t.Data)
		} else if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}
