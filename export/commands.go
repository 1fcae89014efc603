package export

import (
	"cmp"
	"slices"

	"draftexp/draft"
)

type commandKind int

const (
	blockStart commandKind = iota
	blockStop
	styleStart
	styleStop
	entityStart
	entityStop
)

var commandNames = [...]string{"block-start", "block-stop", "style-start", "style-stop", "entity-start", "entity-stop"}

func (k commandKind) String() string {
	return commandNames[k]
}

// command is point event at code point index of block text.
type command struct {
	kind   commandKind
	index  int
	style  string
	entity draft.EntityKey
}

// commandGroup holds all commands sharing index and text segment starting there.
type commandGroup struct {
	start, stop int
	commands    []command
}

// buildCommands produces boundary commands followed by style and entity
// commands, each kind in order ranges were declared.
func buildCommands(b *draft.Block, length int) []command {
	cmds := make([]command, 0, 2+2*len(b.InlineStyleRanges)+2*len(b.EntityRanges))
	cmds = append(cmds,
		command{kind: blockStart, index: 0},
		command{kind: blockStop, index: length},
	)
	for _, r := range b.InlineStyleRanges {
		cmds = append(cmds,
			command{kind: styleStart, index: r.Offset, style: r.Style},
			command{kind: styleStop, index: r.Offset + r.Length, style: r.Style},
		)
	}
	for _, r := range b.EntityRanges {
		cmds = append(cmds,
			command{kind: entityStart, index: r.Offset, entity: r.Key},
			command{kind: entityStop, index: r.Offset + r.Length, entity: r.Key},
		)
	}
	return cmds
}

// groupCommands groups block commands by index in ascending order. Relative
// order of commands inside group is preserved. Segment of every group ends
// where next group starts, last one at the end of text.
func groupCommands(b *draft.Block, length int) []commandGroup {
	cmds := buildCommands(b, length)
	slices.SortStableFunc(cmds, func(a, b command) int {
		return cmp.Compare(a.index, b.index)
	})

	var groups []commandGroup
	for _, c := range cmds {
		if n := len(groups); n > 0 && groups[n-1].start == c.index {
			groups[n-1].commands = append(groups[n-1].commands, c)
			continue
		}
		groups = append(groups, commandGroup{start: c.index, commands: []command{c}})
	}
	for i := range groups {
		if i+1 < len(groups) {
			groups[i].stop = groups[i+1].start
		} else {
			groups[i].stop = length
		}
	}
	return groups
}

// slice returns segment text, indices outside of text are clamped.
func (g *commandGroup) slice(text []rune) string {
	start, stop := min(max(g.start, 0), len(text)), min(max(g.stop, 0), len(text))
	if start >= stop {
		return ""
	}
	return string(text[start:stop])
}

// startedEntity returns entity opened by this group if any.
func (g *commandGroup) startedEntity() (draft.EntityKey, bool) {
	for _, c := range g.commands {
		if c.kind == entityStart {
			return c.entity, true
		}
	}
	return "", false
}
