// Package parse implements the parser state machine (spec.md §4.2): a
// lexer-free, character-by-character dispatch over a pushdown stack of
// frames that builds an Arena Tree directly, without an intermediate
// token stream.
package parse

import (
	"errors"

	"github.com/tymlgo/tyml/source"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
	"go.uber.org/zap"
)

// Option configures a Parse call.
type Option func(*Parser)

// WithHandler installs a custom error/abort handler (spec.md §6.4).
func WithHandler(h tymlerr.Handler) Option {
	return func(p *Parser) { p.handler = h }
}

// WithLogger installs a logger the parser uses for diagnostic-level
// tracing (each frame pop, with depth, flags and node id); never for
// errors, which always go through handler.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithFile records a file name for error messages.
func WithFile(name string) Option {
	return func(p *Parser) { p.file = name }
}

// Parser holds the scanning cursor and frame stack for one Parse call.
type Parser struct {
	t   *tree.Tree
	src []byte

	pos       int
	line      int // 0-indexed
	lineStart int

	handler tymlerr.Handler
	logger  *zap.Logger
	file    string

	frames     []*frame
	streamRoot tree.NodeID
	docNode    tree.NodeID
	inDoc      bool
}

// Parse scans src as a stream of zero or more YAML documents and
// builds it under a freshly-claimed Stream node in t, returning that
// node's id. The result always has a Stream root, even for
// single-document input, so downstream code (emit, path, resolve) can
// dispatch uniformly on IsStream()/IsDoc() regardless of how many
// `---`-separated documents the source contained.
func Parse(t *tree.Tree, src []byte, opts ...Option) tree.NodeID {
	p := &Parser{
		t:       t,
		src:     src,
		handler: tymlerr.PanicHandler{},
	}
	for _, opt := range opts {
		opt(p)
	}

	t.ToStream(t.Root())
	p.streamRoot = t.Root()

	p.run()
	return p.streamRoot
}

func (p *Parser) run() {
	for p.pos < len(p.src) {
		if p.pos >= p.curLineEnd() {
			p.advanceToNextLine()
			continue
		}
		if p.pos == p.lineStart {
			if p.beginLine() {
				continue
			}
		}
		p.step()
	}
	p.endDocument()
}

func (p *Parser) curLineEnd() int {
	end, _ := lineBounds(p.src, p.lineStart)
	return end
}

func (p *Parser) advanceToNextLine() {
	_, next := lineBounds(p.src, p.lineStart)
	if next <= p.pos {
		// Defensive: lineBounds should always move forward at EOF.
		p.pos = len(p.src)
		return
	}
	p.pos = next
	p.line++
	p.lineStart = next
}

func (p *Parser) top() *frame { return p.frames[len(p.frames)-1] }

func (p *Parser) push(f *frame) { p.frames = append(p.frames, f) }

func (p *Parser) popFrame() {
	if p.logger != nil {
		f := p.top()
		p.debug("pop frame", zap.Int("depth", len(p.frames)-1), zap.String("flags", f.flags.String()), zap.Int("node", int(f.nodeID)))
	}
	p.frames = p.frames[:len(p.frames)-1]
}

func (p *Parser) fail(reason tymlerr.ReasonCode, msg string) {
	meta := &source.Meta{Position: source.Position{Line: p.line + 1, Column: p.pos - p.lineStart + 1}}
	sourceLine := string(p.src[p.lineStart:p.curLineEnd()])
	err := tymlerr.New(reason, errors.New(msg), meta).WithFile(p.file).WithSourceLine(sourceLine)
	p.handler.Handle(err)
}

func (p *Parser) debug(msg string, fields ...zap.Field) {
	if p.logger != nil {
		p.logger.Debug(msg, fields...)
	}
}
