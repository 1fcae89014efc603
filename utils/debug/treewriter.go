// Package debug has helpers producing human readable dumps of program data.
package debug

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// TreeWriter accumulates indented lines, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes labeled text quoted, so control characters and trailing
// spaces stay visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Map writes labeled map on one line with keys in natural order.
func (tw TreeWriter) Map(depth int, label string, m map[string]any) {
	if len(m) == 0 {
		return
	}
	keys := slices.Collect(maps.Keys(m))
	sort.Sort(natural.StringSlice(keys))

	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(":")
	for _, k := range keys {
		fmt.Fprintf(tw.w, " %s=%v", k, m[k])
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
