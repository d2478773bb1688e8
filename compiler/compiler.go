// Package compiler implements the single-pass Pratt-parsing compiler (C5):
// it scans and parses in lockstep with a precedence-climbing expression
// parser, emitting bytecode directly into a chunk.Chunk with no
// intermediate AST.
package compiler

import (
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"nilox/chunk"
	"nilox/config"
	"nilox/lexer"
	"nilox/token"
	"nilox/value"
)

// Precedence orders binary operators from loosest to tightest binding.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality   // == !=
	PrecComparison // < > <= >=
	PrecTerm       // + -
	PrecFactor     // * /
	PrecUnary      // ! -
	PrecCall       // . ()
	PrecPrimary
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   Precedence
}

var rules [token.KindCount]parseRule

func init() {
	rules[token.LeftParen] = parseRule{prefix: (*Compiler).grouping}
	rules[token.Minus] = parseRule{prefix: (*Compiler).unary, infix: (*Compiler).binary, prec: PrecTerm}
	rules[token.Plus] = parseRule{infix: (*Compiler).binary, prec: PrecTerm}
	rules[token.Slash] = parseRule{infix: (*Compiler).binary, prec: PrecFactor}
	rules[token.Star] = parseRule{infix: (*Compiler).binary, prec: PrecFactor}
	rules[token.Bang] = parseRule{prefix: (*Compiler).unary}
	rules[token.BangEqual] = parseRule{infix: (*Compiler).binary, prec: PrecEquality}
	rules[token.EqualEqual] = parseRule{infix: (*Compiler).binary, prec: PrecEquality}
	rules[token.Greater] = parseRule{infix: (*Compiler).binary, prec: PrecComparison}
	rules[token.GreaterEqual] = parseRule{infix: (*Compiler).binary, prec: PrecComparison}
	rules[token.Less] = parseRule{infix: (*Compiler).binary, prec: PrecComparison}
	rules[token.LessEqual] = parseRule{infix: (*Compiler).binary, prec: PrecComparison}
	rules[token.Number] = parseRule{prefix: (*Compiler).number}
	rules[token.String] = parseRule{prefix: (*Compiler).string_}
	rules[token.False] = parseRule{prefix: (*Compiler).literal}
	rules[token.Nil] = parseRule{prefix: (*Compiler).literal}
	rules[token.True] = parseRule{prefix: (*Compiler).literal}
}

func ruleFor(k token.Kind) *parseRule { return &rules[k] }

// Compiler turns a source string into a chunk.Chunk in a single pass: the
// scanner and parser advance together, with no AST built in between.
type Compiler struct {
	scanner *lexer.Scanner
	chunk   *chunk.Chunk
	intern  func(chars string) *value.ObjString
	debug   config.Debug

	previous token.Token
	current  token.Token

	errors    *multierror.Error
	panicMode bool
}

// New returns a Compiler that will intern string constants through intern
// and honor the given debug flags. intern is typically a thin wrapper
// around the VM's own intern table, so string literals dedupe against
// whatever the VM has already interned at runtime and any newly interned
// object gets threaded onto the VM's owned-object list.
func New(intern func(chars string) *value.ObjString, debug config.Debug) *Compiler {
	return &Compiler{intern: intern, debug: debug}
}

// Compile scans and parses source, returning the resulting chunk. A non-nil
// error is always a *multierror.Error aggregating every CompileError found
// at each synchronization boundary.
func (c *Compiler) Compile(source string) (*chunk.Chunk, error) {
	c.scanner = lexer.New(source)
	c.chunk = chunk.New()
	c.errors = nil
	c.panicMode = false

	c.advance()
	c.expression()
	c.consume(token.EOF, "expect end of expression")
	c.endCompiler()

	return c.chunk, c.errors.ErrorOrNil()
}

func (c *Compiler) currentChunk() *chunk.Chunk { return c.chunk }

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := ruleFor(c.previous.Kind).prefix
	if prefix == nil {
		c.error("expect expression")
		return
	}
	prefix(c)

	for prec <= ruleFor(c.current.Kind).prec {
		c.advance()
		infix := ruleFor(c.previous.Kind).infix
		infix(c)
	}
}

func (c *Compiler) number() {
	v, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("invalid number literal")
		return
	}
	c.emitConstant(value.Number(v))
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "expect ')' after expression")
}

func (c *Compiler) unary() {
	opKind := c.previous.Kind
	line := c.previous.Line

	c.parsePrecedence(PrecUnary)

	switch opKind {
	case token.Bang:
		c.emitByte(byte(chunk.OpNot), line)
	case token.Minus:
		c.emitByte(byte(chunk.OpNegate), line)
	}
}

func (c *Compiler) binary() {
	opKind := c.previous.Kind
	line := c.previous.Line
	rule := ruleFor(opKind)
	c.parsePrecedence(rule.prec + 1)

	switch opKind {
	case token.BangEqual:
		c.emitByte(byte(chunk.OpEqual), line)
		c.emitByte(byte(chunk.OpNot), line)
	case token.EqualEqual:
		c.emitByte(byte(chunk.OpEqual), line)
	case token.Greater:
		c.emitByte(byte(chunk.OpGreater), line)
	case token.GreaterEqual:
		c.emitByte(byte(chunk.OpLess), line)
		c.emitByte(byte(chunk.OpNot), line)
	case token.Less:
		c.emitByte(byte(chunk.OpLess), line)
	case token.LessEqual:
		c.emitByte(byte(chunk.OpGreater), line)
		c.emitByte(byte(chunk.OpNot), line)
	case token.Plus:
		c.emitByte(byte(chunk.OpAdd), line)
	case token.Minus:
		c.emitByte(byte(chunk.OpSubtract), line)
	case token.Star:
		c.emitByte(byte(chunk.OpMultiply), line)
	case token.Slash:
		c.emitByte(byte(chunk.OpDivide), line)
	}
}

func (c *Compiler) literal() {
	line := c.previous.Line
	switch c.previous.Kind {
	case token.False:
		c.emitByte(byte(chunk.OpFalse), line)
	case token.Nil:
		c.emitByte(byte(chunk.OpNil), line)
	case token.True:
		c.emitByte(byte(chunk.OpTrue), line)
	}
}

func (c *Compiler) string_() {
	lexeme := c.previous.Lexeme
	unquoted := lexeme[1 : len(lexeme)-1] // strip the surrounding quotes
	str := c.intern(unquoted)
	c.emitConstant(value.ObjValue(str))
}

/* parser plumbing */

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

/* emission helpers */

func (c *Compiler) emitByte(b byte, line int) {
	c.currentChunk().Write(b, line)
}

func (c *Compiler) emitConstant(v value.Value) {
	if err := c.currentChunk().WriteConstant(v, c.previous.Line); err != nil {
		c.error(err.Error())
	}
}

func (c *Compiler) endCompiler() {
	c.emitByte(byte(chunk.OpReturn), c.previous.Line)
	if c.debug.PrintCode && c.errors.ErrorOrNil() == nil {
		chunk.DisassembleChunk(c.currentChunk(), "code")
		logrus.Debug("end compiler")
	}
}

/* error handling */

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	where := "'" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "end"
	}

	c.errors = multierror.Append(c.errors, &CompileError{
		Line:    tok.Line,
		Where:   where,
		Message: message,
	})
}
