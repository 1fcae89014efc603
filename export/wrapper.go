package export

import (
	"github.com/beevik/etree"

	"draftexp/draft"
)

// wrapperFrame is open container blocks of one nesting level attach to.
type wrapperFrame struct {
	signature string
	node      *etree.Element
}

// wrapperState reconstructs container hierarchy from flat sequence of
// (type, depth) pairs. Root is kept aside, frames hold only real containers,
// frames[0] being top level one attached to root.
type wrapperState struct {
	root   *etree.Element
	frames []wrapperFrame
}

func newWrapperState(root *etree.Element) *wrapperState {
	return &wrapperState{root: root}
}

// reset closes all containers and returns root.
func (w *wrapperState) reset() *etree.Element {
	w.frames = w.frames[:0]
	return w.root
}

func (w *wrapperState) top() *etree.Element {
	if len(w.frames) == 0 {
		return w.root
	}
	return w.frames[len(w.frames)-1].node
}

func (w *wrapperState) topSignature() (string, bool) {
	if len(w.frames) == 0 {
		return "", false
	}
	return w.frames[len(w.frames)-1].signature, true
}

// parentFor returns element block should be attached to, opening and closing
// containers as necessary. Depth increase of any size opens one level only.
func (w *wrapperState) parentFor(b *draft.Block, spec *WrapperSpec) *etree.Element {
	if spec == nil {
		return w.reset()
	}

	signature := spec.signature()
	depth := 0
	if len(w.frames) > 0 {
		// documents built in code may carry negative depth
		depth = max(b.Depth, 0)
	}

	if current, open := w.topSignature(); (!open || current != signature) && depth == 0 {
		w.open(spec, signature, b, false)
	}

	if diff := depth - (len(w.frames) - 1); diff > 0 {
		w.open(spec, signature, b, true)
	} else {
		w.frames = w.frames[:len(w.frames)+diff]
	}
	return w.top()
}

// open creates container either nested into last element of current level or
// as new top level container replacing everything which was open.
func (w *wrapperState) open(spec *WrapperSpec, signature string, b *draft.Block, nest bool) {
	el := spec.build(b)

	var target *etree.Element
	if nest {
		target = w.top()
		if children := target.ChildElements(); len(children) > 0 {
			target = children[len(children)-1]
		}
	} else {
		target = w.reset()
	}
	target.AddChild(el)

	frame := wrapperFrame{signature: signature, node: el}
	if spec.ChildElement != "" {
		frame.node = el.CreateElement(spec.ChildElement)
	}
	w.frames = append(w.frames, frame)
}
