package emit

import (
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

// YAMLOption configures a YAML emit call.
type YAMLOption func(*yamlEmitter)

// WithYAMLHandler installs a custom error/abort handler.
func WithYAMLHandler(h tymlerr.Handler) YAMLOption {
	return func(e *yamlEmitter) { e.handler = h }
}

type yamlEmitter struct {
	t       *tree.Tree
	w       Writer
	handler tymlerr.Handler
}

// YAML emits the subtree rooted at id to w as YAML, per spec.md §4.5,
// and returns the number of bytes the emitter produced (which may
// exceed what a bounded Writer actually stored).
func YAML(t *tree.Tree, id tree.NodeID, w Writer, opts ...YAMLOption) int {
	e := &yamlEmitter{t: t, w: w, handler: tymlerr.PanicHandler{}}
	for _, opt := range opts {
		opt(e)
	}

	typ := t.Type(id)
	switch {
	case typ.IsStream():
		e.emitStream(id)
	default:
		// A document node and any other root are laid out alike: a
		// non-empty map or seq starts its entries at column 0.
		e.emitDoc(id, false)
	}
	return w.Written()
}

func (e *yamlEmitter) write(s string) { e.w.Write([]byte(s)) }

func (e *yamlEmitter) emitStream(id tree.NodeID) {
	t := e.t
	first := true
	for doc := t.FirstChild(id); doc != tree.NoneID; doc = t.NextSibling(doc) {
		e.emitDoc(doc, !first)
		first = false
	}
}

func (e *yamlEmitter) emitDoc(id tree.NodeID, leadingSeparator bool) {
	t := e.t
	if leadingSeparator {
		e.write("---\n")
	}
	typ := t.Type(id)
	switch {
	case typ.IsMap():
		if !t.HasChildren(id) {
			e.write("{}\n")
			return
		}
		e.emitMapChildren(id, 0)
	case typ.IsSeq():
		if !t.HasChildren(id) {
			e.write("[]\n")
			return
		}
		e.emitSeqChildren(id, 0)
	default:
		e.emitValue(id, 0)
		e.write("\n")
	}
}

func indentStr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// emitValue writes the prefix metadata (tag, anchor) and scalar/
// container body for id's val side, WITHOUT a trailing newline and
// without any leading key/dash text. Used for top-level scalars and for
// map-entry values that are scalars or empty containers; a non-empty
// nested container under a key is written by emitMapEntryLine itself,
// on the next line at increased indent.
func (e *yamlEmitter) emitValue(id tree.NodeID, indent int) {
	t := e.t
	typ := t.Type(id)
	val := t.Val(id)

	prefix := e.valPrefix(typ, val)
	e.write(prefix)

	switch {
	case typ.IsMap():
		if !t.HasChildren(id) {
			e.write("{}")
			return
		}
		e.write("\n")
		e.emitMapChildren(id, indent+2)
	case typ.IsSeq():
		if !t.HasChildren(id) {
			e.write("[]")
			return
		}
		e.write("\n")
		e.emitSeqChildren(id, indent+2)
	default:
		e.write(e.renderScalarVal(val, indent))
	}
}

func (e *yamlEmitter) valPrefix(typ tree.TypeFlags, val tree.ScalarSide) string {
	s := ""
	if typ.IsValTagged() {
		s += string(val.Tag) + " "
	}
	if typ.IsValAnchor() {
		s += "&" + string(val.Anchor) + " "
	}
	return s
}

func (e *yamlEmitter) renderScalarVal(val tree.ScalarSide, indent int) string {
	if val.Scalar.IsNull() {
		return "~"
	}
	s := val.Scalar.String()
	if s == "" {
		return "''"
	}
	return renderScalar(s, indent)
}

func (e *yamlEmitter) emitMapChildren(id tree.NodeID, indent int) {
	t := e.t
	pad := indentStr(indent)
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		e.write(pad)
		e.emitMapEntryLine(c, indent)
	}
}

// emitMapEntryLine writes "<keytag><keyanchor><key>: <val>\n" for a
// single map entry node, assuming the cursor is already at the start
// of the line (indentation already written by the caller).
func (e *yamlEmitter) emitMapEntryLine(c tree.NodeID, indent int) {
	t := e.t
	typ := t.Type(c)
	key := t.Key(c)

	if typ.IsKeyTagged() {
		e.write(string(key.Tag) + " ")
	}
	if typ.IsKeyAnchor() {
		e.write("&" + string(key.Anchor) + " ")
	}
	e.write(e.renderKeyText(key) + ":")
	if typ.IsContainer() && t.HasChildren(c) {
		// A non-empty nested container drops to the next line at
		// increased indent; each of its entries ends its own line.
		if prefix := e.valPrefix(typ, t.Val(c)); prefix != "" {
			e.write(" " + prefix[:len(prefix)-1])
		}
		e.write("\n")
		if typ.IsMap() {
			e.emitMapChildren(c, indent+2)
		} else {
			e.emitSeqChildren(c, indent+2)
		}
		return
	}
	e.write(" ")
	e.emitValue(c, indent)
	e.write("\n")
}

func (e *yamlEmitter) renderKeyText(key tree.ScalarSide) string {
	if key.Scalar.IsNull() {
		return "~"
	}
	s := key.Scalar.String()
	if s == "" {
		return "''"
	}
	return renderScalar(s, 0)
}

func (e *yamlEmitter) emitSeqChildren(id tree.NodeID, indent int) {
	t := e.t
	pad := indentStr(indent)
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		e.write(pad + "- ")
		e.emitSeqItemValue(c, indent+2)
	}
}

// emitSeqItemValue writes a seq item's value immediately following
// "<pad>- ": a nested non-empty container continues inline on the
// dash's own line and its later entries indent at indent, matching
// spec.md §4.5 "nested containers follow after the `- `" (unlike map
// nesting, which always drops to the next line).
func (e *yamlEmitter) emitSeqItemValue(id tree.NodeID, indent int) {
	t := e.t
	typ := t.Type(id)
	val := t.Val(id)
	e.write(e.valPrefix(typ, val))

	switch {
	case typ.IsMap() && t.HasChildren(id):
		e.emitMapChildrenInline(id, indent)
	case typ.IsMap():
		e.write("{}\n")
	case typ.IsSeq() && t.HasChildren(id):
		e.emitSeqChildrenInline(id, indent)
	case typ.IsSeq():
		e.write("[]\n")
	default:
		e.write(e.renderScalarVal(val, indent))
		e.write("\n")
	}
}

// emitMapChildrenInline writes id's map entries with the first entry
// continuing on the current line (no indentation written) and later
// entries padded at indent.
func (e *yamlEmitter) emitMapChildrenInline(id tree.NodeID, indent int) {
	t := e.t
	pad := indentStr(indent)
	first := true
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		if !first {
			e.write(pad)
		}
		first = false
		e.emitMapEntryLine(c, indent)
	}
}

// emitSeqChildrenInline writes id's seq entries with the first "- "
// continuing on the current line and later entries padded at indent.
func (e *yamlEmitter) emitSeqChildrenInline(id tree.NodeID, indent int) {
	t := e.t
	pad := indentStr(indent)
	first := true
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		if first {
			e.write("- ")
			first = false
		} else {
			e.write(pad + "- ")
		}
		e.emitSeqItemValue(c, indent+2)
	}
}

// fail reports an emitter failure (currently unused by the YAML path
// itself; kept for parity with the JSON emitter's tag/anchor
// rejection, which does fail).
func (e *yamlEmitter) fail(reason tymlerr.ReasonCode, err error) {
	e.handler.Handle(tymlerr.New(reason, err, nil))
}
