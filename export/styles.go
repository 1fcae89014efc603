package export

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// styleStack tracks inline styles open at current position of a block.
type styleStack struct {
	css  map[string]map[string]string
	tags map[string]string
	open []string
}

func newStyleStack(css map[string]map[string]string, tags map[string]string) *styleStack {
	return &styleStack{css: css, tags: tags}
}

func (s *styleStack) apply(c command) {
	switch c.kind {
	case styleStart:
		s.open = append(s.open, c.style)
	case styleStop:
		// most recently opened entry, ranges are not required to close in order
		for i := len(s.open) - 1; i >= 0; i-- {
			if s.open[i] == c.style {
				s.open = slices.Delete(s.open, i, i+1)
				break
			}
		}
	}
}

// elementTags returns tags for open styles, outermost first. Styles without
// tag mapping and repeated styles produce nothing.
func (s *styleStack) elementTags() []string {
	var (
		tags []string
		seen = make(map[string]bool, len(s.open))
	)
	for _, style := range s.open {
		if seen[style] {
			continue
		}
		seen[style] = true
		if tag, ok := s.tags[style]; ok && tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// inlineStyle merges CSS properties of open styles, later opened styles win.
// Result is empty when no open style has properties.
func (s *styleStack) inlineStyle() string {
	props := make(map[string]string)
	for _, style := range s.open {
		for k, v := range s.css[style] {
			props[cssPropertyName(k)] = v
		}
	}
	if len(props) == 0 {
		return ""
	}
	decls := make([]string, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		decls = append(decls, k+": "+props[k]+";")
	}
	return strings.Join(decls, " ")
}

// cssPropertyName converts camel case names (fontStyle) to CSS (font-style).
func cssPropertyName(name string) string {
	if strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
