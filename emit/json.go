package emit

import (
	"fmt"
	"strings"

	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

// JSONOption configures a JSON emit call.
type JSONOption func(*jsonEmitter)

// WithJSONHandler installs a custom error/abort handler.
func WithJSONHandler(h tymlerr.Handler) JSONOption {
	return func(e *jsonEmitter) { e.handler = h }
}

type jsonEmitter struct {
	t       *tree.Tree
	w       Writer
	handler tymlerr.Handler
}

// JSON emits the subtree rooted at id to w as JSON, per spec.md §4.5.
// JSON has no syntax for tags or anchors, so any tagged or anchored
// node is rejected via the handler (ReasonCodeUnrepresentable) rather
// than silently dropping the metadata. A document stream emits only
// its first document; JSON has no multi-document notion.
func JSON(t *tree.Tree, id tree.NodeID, w Writer, opts ...JSONOption) int {
	e := &jsonEmitter{t: t, w: w, handler: tymlerr.PanicHandler{}}
	for _, opt := range opts {
		opt(e)
	}

	typ := t.Type(id)
	switch {
	case typ.IsStream():
		if first := t.FirstChild(id); first != tree.NoneID {
			e.emitNode(first)
		}
	case typ.IsDoc():
		e.emitNode(id)
	default:
		e.emitNode(id)
	}
	e.write("\n")
	return w.Written()
}

func (e *jsonEmitter) write(s string) { e.w.Write([]byte(s)) }

func (e *jsonEmitter) fail(reason tymlerr.ReasonCode, err error) {
	e.handler.Handle(tymlerr.New(reason, err, nil))
}

func (e *jsonEmitter) checkRepresentable(typ tree.TypeFlags, what string) {
	if typ.IsValTagged() {
		e.fail(tymlerr.ReasonCodeUnrepresentable, fmt.Errorf("%s has a tag, which JSON cannot represent", what))
	}
	if typ.IsValAnchor() {
		e.fail(tymlerr.ReasonCodeUnrepresentable, fmt.Errorf("%s has an anchor, which JSON cannot represent", what))
	}
}

func (e *jsonEmitter) emitNode(id tree.NodeID) {
	t := e.t
	typ := t.Type(id)
	e.checkRepresentable(typ, "value")

	switch {
	case typ.IsMap():
		e.emitMap(id)
	case typ.IsSeq():
		e.emitSeq(id)
	default:
		e.write(e.renderVal(t.Val(id)))
	}
}

func (e *jsonEmitter) emitMap(id tree.NodeID) {
	t := e.t
	e.write("{")
	first := true
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		if !first {
			e.write(",")
		}
		first = false

		ctyp := t.Type(c)
		if ctyp.IsKeyTagged() {
			e.fail(tymlerr.ReasonCodeUnrepresentable, fmt.Errorf("key %q has a tag, which JSON cannot represent", t.Key(c).Scalar.String()))
		}
		if ctyp.IsKeyAnchor() {
			e.fail(tymlerr.ReasonCodeUnrepresentable, fmt.Errorf("key %q has an anchor, which JSON cannot represent", t.Key(c).Scalar.String()))
		}

		e.write(quoteJSONString(t.Key(c).Scalar.String()))
		e.write(": ")
		e.emitNode(c)
	}
	e.write("}")
}

func (e *jsonEmitter) emitSeq(id tree.NodeID) {
	t := e.t
	e.write("[")
	first := true
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		if !first {
			e.write(",")
		}
		first = false
		e.emitNode(c)
	}
	e.write("]")
}

// renderVal renders a scalar's JSON representation: a recognisable
// number or boolean/null literal is emitted bare, everything else is a
// double-quoted string (spec.md §4.5).
func (e *jsonEmitter) renderVal(val tree.ScalarSide) string {
	if val.Scalar.IsNull() {
		return "null"
	}
	s := val.Scalar.String()
	switch s {
	case "true", "false", "null":
		return s
	}
	if isNumber(s) {
		return s
	}
	return quoteJSONString(s)
}

func quoteJSONString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
