// Package tymlerr defines the error type and the non-returning error
// callback contract used throughout tyml (spec.md §6.4, §7).
package tymlerr

import (
	"fmt"
	"strings"

	"github.com/tymlgo/tyml/source"
)

// ReasonCode identifies the class of failure for programmatic handling,
// mirroring the teacher's errors.ErrorReasonCode but scoped to the
// concerns of a YAML/JSON processor rather than a deployment engine.
type ReasonCode string

const (
	// ReasonCodeSyntax covers malformed input: unterminated quoted
	// scalars, bad indentation, forbidden tokens in plain scalars,
	// invalid document separator context (spec.md §4.2.6).
	ReasonCodeSyntax ReasonCode = "syntax_error"
	// ReasonCodeAliasNotFound is raised by the resolver when an alias
	// has no matching preceding anchor (spec.md §4.4 step 2).
	ReasonCodeAliasNotFound ReasonCode = "alias_not_found"
	// ReasonCodeInvalidTransition is raised on a structural violation,
	// e.g. a to_val transition attempted on a node with children
	// (spec.md §4.1).
	ReasonCodeInvalidTransition ReasonCode = "invalid_node_transition"
	// ReasonCodeOutOfMemory is raised when a host allocator reports
	// failure while growing the node pool or string arena.
	ReasonCodeOutOfMemory ReasonCode = "out_of_memory"
	// ReasonCodeContractViolation is raised for caller precondition
	// breaches, e.g. an invalid node id or removing the tree's root.
	ReasonCodeContractViolation ReasonCode = "contract_violation"
	// ReasonCodeUnrepresentable is raised by the JSON emitter when a
	// node carries a tag or anchor, which JSON has no syntax for
	// (spec.md §4.5).
	ReasonCodeUnrepresentable ReasonCode = "unrepresentable_in_json"
)

// Error is the single error type produced by every tyml package. It
// carries enough source position information to render the
// file:line:col + caret-underline diagnostics required by spec.md §7.
type Error struct {
	ReasonCode ReasonCode
	Err        error
	// File is the source file name, if one was supplied to Parse; empty
	// for anonymous buffers.
	File string
	Line        int
	Column      int
	EndLine     int
	EndColumn   int
	SourceLine  string
	ChildErrors []error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%s:", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	}
	b.WriteString(string(e.ReasonCode))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if len(e.ChildErrors) > 0 {
		fmt.Fprintf(&b, " (%d child error(s))", len(e.ChildErrors))
	}
	if e.SourceLine != "" {
		b.WriteByte('\n')
		b.WriteString(e.SourceLine)
		b.WriteByte('\n')
		b.WriteString(caret(e.Column))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func caret(column int) string {
	if column <= 0 {
		return "^"
	}
	return strings.Repeat(" ", column-1) + "^"
}

// New constructs an Error with a position derived from meta.
func New(reason ReasonCode, err error, meta *source.Meta) *Error {
	e := &Error{ReasonCode: reason, Err: err}
	if meta != nil {
		e.Line = meta.Line
		e.Column = meta.Column
		if meta.EndPosition != nil {
			e.EndLine = meta.EndPosition.Line
			e.EndColumn = meta.EndPosition.Column
		}
	}
	return e
}

// WithFile returns a copy of e with File set, used once the parser
// knows which named source produced it.
func (e *Error) WithFile(file string) *Error {
	cp := *e
	cp.File = file
	return &cp
}

// WithSourceLine returns a copy of e with the offending source line
// attached, for the caret-underline rendering in Error().
func (e *Error) WithSourceLine(line string) *Error {
	cp := *e
	cp.SourceLine = line
	return &cp
}

// Handler is the non-returning error callback contracted by spec.md
// §6.4 and §7: "error(msg, len, location) — must not return". Go has no
// non-local abort primitive as strong as a hosted abort(), so a Handler
// is required to either panic or otherwise halt the calling goroutine;
// tyml's internals assume execution never resumes after Handle returns
// control via panic/recover at a boundary the host controls.
type Handler interface {
	Handle(err *Error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(err *Error)

func (f HandlerFunc) Handle(err *Error) {
	f(err)
}

// PanicHandler is the default Handler: it panics with err as the panic
// value. This is Go's equivalent of the hosted abort()/exception the
// spec assumes (§9 Design Notes).
type PanicHandler struct{}

func (PanicHandler) Handle(err *Error) {
	panic(err)
}
