package export

import (
	"slices"
	"testing"
)

func TestStyleStack(t *testing.T) {
	s := newStyleStack(
		map[string]map[string]string{
			"ITALIC": {"fontStyle": "italic"},
			"RED":    {"color": "red", "fontWeight": "normal"},
			"BLUE":   {"color": "blue"},
		},
		map[string]string{"ITALIC": "i", "BOLD": "b", "UNDERLINE": "u"},
	)

	start := func(style string) { s.apply(command{kind: styleStart, style: style}) }
	stop := func(style string) { s.apply(command{kind: styleStop, style: style}) }

	if tags, css := s.elementTags(), s.inlineStyle(); len(tags) != 0 || css != "" {
		t.Fatalf("empty stack produced %v %q", tags, css)
	}

	start("UNDERLINE")
	start("ITALIC")
	start("BOLD")
	if got, want := s.elementTags(), []string{"u", "i", "b"}; !slices.Equal(got, want) {
		t.Errorf("elementTags() = %v, want %v", got, want)
	}
	if got, want := s.inlineStyle(), "font-style: italic;"; got != want {
		t.Errorf("inlineStyle() = %q, want %q", got, want)
	}

	// closing out of order keeps the rest in opening order
	stop("ITALIC")
	if got, want := s.elementTags(), []string{"u", "b"}; !slices.Equal(got, want) {
		t.Errorf("elementTags() = %v, want %v", got, want)
	}

	start("BOLD")
	if got, want := s.elementTags(), []string{"u", "b"}; !slices.Equal(got, want) {
		t.Errorf("repeated style: elementTags() = %v, want %v", got, want)
	}
	stop("BOLD")
	if got, want := s.elementTags(), []string{"u", "b"}; !slices.Equal(got, want) {
		t.Errorf("after closing one of repeated: elementTags() = %v, want %v", got, want)
	}

	start("RED")
	start("BLUE")
	if got, want := s.elementTags(), []string{"u", "b"}; !slices.Equal(got, want) {
		t.Errorf("unmapped styles produced tags: %v", got)
	}
	if got, want := s.inlineStyle(), "color: blue; font-weight: normal;"; got != want {
		t.Errorf("inlineStyle() = %q, want %q", got, want)
	}

	stop("NOT-OPEN")
	if len(s.open) != 4 {
		t.Errorf("stopping style which is not open changed stack: %v", s.open)
	}
}

func TestCSSPropertyName(t *testing.T) {
	tests := map[string]string{
		"fontStyle":       "font-style",
		"color":           "color",
		"backgroundColor": "background-color",
		"text-decoration": "text-decoration",
		"WebkitBoxShadow": "webkit-box-shadow",
	}
	for in, want := range tests {
		if got := cssPropertyName(in); got != want {
			t.Errorf("cssPropertyName(%q) = %q, want %q", in, got, want)
		}
	}
}
