package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/octm/log"
)

// DefaultMaxDepth is the maximum expression nesting depth.
const DefaultMaxDepth = 100

// Option configures parsing behavior.
type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth for expressions.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// ParseString parses a complete source document.
// Options can be provided to customize parsing behavior.
//
// On failure the returned error is a *SyntaxError unless the failure was
// environmental (context cancellation, depth limit).
func ParseString(ctx context.Context, input string, opts ...Option) (*Program, error) {
	p := newParser(input, opts...)

	p.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	prog, err := p.parseProgram(ctx)
	if err != nil {
		if errors.Is(err, errBacktrack) {
			serr := p.syntaxError()
			p.logger.TraceContext(ctx, "parse failed", slog.Any("error", serr))

			return nil, serr
		}

		return nil, err
	}

	p.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("statements", len(prog.Stmts)),
	)

	return prog, nil
}

// ParseReader reads r to completion and parses its contents.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// parser is a cursor over the source text.
//
// Backtracking restores the cursor through mark/reset; the furthest
// failure survives every reset so the final diagnostic points at the
// deepest position any alternative reached.
type parser struct {
	src      string
	off      int
	line     int
	col      int
	depth    int
	maxDepth int
	logger   log.Logger

	failPos      Position
	failExpected []string
}

func newParser(src string, opts ...Option) *parser {
	p := &parser{src: src, line: 1, col: 1, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// mark captures the cursor for later reset.
type mark struct{ off, line, col int }

func (p *parser) mark() mark   { return mark{p.off, p.line, p.col} }
func (p *parser) reset(m mark) { p.off, p.line, p.col = m.off, m.line, m.col }
func (p *parser) eof() bool    { return p.off >= len(p.src) }

func (p *parser) position() Position {
	return Position{Offset: p.off, Line: p.line, Column: p.col}
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.src[p.off:])

	return r
}

func (p *parser) advance() rune {
	r, n := utf8.DecodeRuneInString(p.src[p.off:])
	p.off += n

	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	return r
}

// expect consumes r if it is next and reports whether it did.
func (p *parser) expect(r rune) bool {
	if !p.eof() && p.peek() == r {
		p.advance()

		return true
	}

	return false
}

// skipSpace consumes whitespace and returns how many runes it skipped.
func (p *parser) skipSpace() int {
	n := 0

	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.advance()
			n++
		default:
			return n
		}
	}

	return n
}

// fail records expected constructs at the cursor and returns the
// backtrack sentinel. A failure beyond the furthest recorded position
// replaces the expected set; one at the same position merges into it.
func (p *parser) fail(expected ...string) error {
	pos := p.position()

	switch {
	case pos.Offset > p.failPos.Offset || p.failExpected == nil:
		p.failPos = pos
		p.failExpected = slices.Clone(expected)
	case pos.Offset == p.failPos.Offset:
		p.failExpected = append(p.failExpected, expected...)
	}

	return errBacktrack
}

func (p *parser) syntaxError() *SyntaxError {
	exp := slices.Clone(p.failExpected)
	slices.Sort(exp)

	return &SyntaxError{
		Pos:      p.failPos,
		Expected: slices.Compact(exp),
		Source:   p.src,
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrMaxDepthExceeded.With(slog.Int("depth", p.depth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseProgram(ctx context.Context) (*Program, error) {
	prog := &Program{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, WrapError(err, "parse canceled")
		}

		p.skipSpace()

		if p.eof() {
			return prog, nil
		}

		stmt, err := p.parseStmt(ctx)
		if err != nil {
			return nil, err
		}

		prog.Stmts = append(prog.Stmts, stmt)

		p.logger.TraceContext(
			ctx,
			"statement parsed",
			slog.String("span", stmt.Span.String()),
			slog.Bool("assignment", stmt.Assignment()),
		)
	}
}

// parseStmt parses one statement. Assignment is tried first; anything
// that is not "identifier =" reparses as a bare expression.
func (p *parser) parseStmt(ctx context.Context) (*Stmt, error) {
	start := p.position()
	m := p.mark()

	if isIdentStart(p.peek()) {
		name, span := p.scanIdentifier()
		p.skipSpace()

		if p.expect('=') {
			p.skipSpace()

			value, err := p.parseExpr(ctx)
			if err != nil {
				return nil, err
			}

			return p.finishStmt(&Stmt{
				Target:     name,
				TargetSpan: span,
				Value:      value,
			}, start), nil
		}

		p.reset(m)
	}

	value, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	return p.finishStmt(&Stmt{Value: value}, start), nil
}

func (p *parser) finishStmt(stmt *Stmt, start Position) *Stmt {
	m := p.mark()
	p.skipSpace()

	if p.expect(';') {
		stmt.Suppressed = true
	} else {
		p.reset(m)
	}

	stmt.Span = Span{Start: start, End: p.position()}

	return stmt
}

// parseExpr parses a chain optionally extended to a two- or three-part
// range. A fourth ':' is never consumed here; it fails in whatever
// context contains the expression.
func (p *parser) parseExpr(ctx context.Context) (*Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.parseChain(ctx)
	if err != nil {
		return nil, err
	}

	parts := []*Expr{first}

	for len(parts) < 3 {
		m := p.mark()
		p.skipSpace()

		if !p.expect(':') {
			p.reset(m)

			break
		}

		p.skipSpace()

		next, err := p.parseChain(ctx)
		if err != nil {
			return nil, err
		}

		parts = append(parts, next)
	}

	if len(parts) == 1 {
		return first, nil
	}

	return &Expr{
		Kind:  KindRange,
		Span:  Span{Start: first.Span.Start, End: parts[len(parts)-1].Span.End},
		Parts: parts,
	}, nil
}

// parseChain parses an atom followed by any number of operator-atom
// pairs. The result is flat; consecutive operators never regroup.
func (p *parser) parseChain(ctx context.Context) (*Expr, error) {
	first, err := p.parseAtom(ctx)
	if err != nil {
		return nil, err
	}

	var ops []ChainOp

	for {
		m := p.mark()
		p.skipSpace()

		op, ok := chainOp(p.peek())
		if !ok {
			p.reset(m)

			break
		}

		p.advance()
		p.skipSpace()

		operand, err := p.parseAtom(ctx)
		if err != nil {
			return nil, err
		}

		ops = append(ops, ChainOp{Op: op, Operand: operand})
	}

	if len(ops) == 0 {
		return first, nil
	}

	return &Expr{
		Kind:  KindChain,
		Span:  Span{Start: first.Span.Start, End: ops[len(ops)-1].Operand.Span.End},
		First: first,
		Ops:   ops,
	}, nil
}

func chainOp(r rune) (Op, bool) {
	switch r {
	case '+', '-', '*', '/', '^', '.':
		return Op(r), true
	}

	return 0, false
}

func (p *parser) parseAtom(ctx context.Context) (*Expr, error) {
	switch r := p.peek(); {
	case r == '[':
		return p.parseMatrix(ctx)
	case r == '"' || r == '\'':
		return p.parseString()
	case r == '-' || isDigit(r):
		return p.parseNumber()
	case isIdentStart(r):
		name, span := p.scanIdentifier()
		m := p.mark()
		p.skipSpace()

		if p.expect('(') {
			return p.parseCall(ctx, name, span)
		}

		p.reset(m)

		return &Expr{Kind: KindIdentifier, Span: span, Text: name}, nil
	}

	return nil, p.fail("number", "string", "identifier", "[")
}

// parseCall parses the argument list of name, with the cursor just past
// the opening parenthesis. Arguments are full expressions.
func (p *parser) parseCall(ctx context.Context, name string, nameSpan Span) (*Expr, error) {
	call := &Expr{Kind: KindCall, Text: name}

	p.skipSpace()

	if !p.expect(')') {
		for {
			arg, err := p.parseExpr(ctx)
			if err != nil {
				return nil, err
			}

			call.Args = append(call.Args, arg)

			p.skipSpace()

			if p.expect(',') {
				p.skipSpace()

				continue
			}

			if p.expect(')') {
				break
			}

			return nil, p.fail(",", ")")
		}
	}

	call.Span = Span{Start: nameSpan.Start, End: p.position()}

	return call, nil
}

// parseMatrix parses a bracketed literal with semicolon-separated rows.
// Rows may be empty; "[]" is a matrix with one empty row.
func (p *parser) parseMatrix(ctx context.Context) (*Expr, error) {
	start := p.position()
	p.advance() // consume '['

	mat := &Expr{Kind: KindMatrix}

	for {
		row, err := p.parseRow(ctx)
		if err != nil {
			return nil, err
		}

		mat.Rows = append(mat.Rows, row)

		if p.expect(';') {
			continue
		}

		if p.expect(']') {
			break
		}

		if len(row) == 0 {
			return nil, p.fail("number", "string", "identifier", ";", "]")
		}

		return nil, p.fail(",", ";", "]")
	}

	mat.Span = Span{Start: start, End: p.position()}

	return mat, nil
}

// parseRow parses the literals of one matrix row. This is the only
// context where whitespace separates: after a literal, either a comma or
// at least one space may introduce the next element. The row ends at the
// first rune that is neither, which the caller validates.
func (p *parser) parseRow(ctx context.Context) ([]*Expr, error) {
	row := []*Expr{}

	p.skipSpace()

	if !p.startsLiteral() {
		return row, nil
	}

	for {
		lit, err := p.parseLiteral(ctx)
		if err != nil {
			return nil, err
		}

		row = append(row, lit)

		ws := p.skipSpace()

		if p.expect(',') {
			p.skipSpace()

			if !p.startsLiteral() {
				return nil, p.fail("number", "string", "identifier")
			}

			continue
		}

		if ws > 0 && p.startsLiteral() {
			continue
		}

		return row, nil
	}
}

func (p *parser) startsLiteral() bool {
	r := p.peek()

	return r == '"' || r == '\'' || r == '-' || isDigit(r) || isIdentStart(r)
}

// parseLiteral parses a row element: number, string, or bare identifier.
// Calls, chains, ranges, and nested matrices are not row elements.
func (p *parser) parseLiteral(_ context.Context) (*Expr, error) {
	switch r := p.peek(); {
	case r == '"' || r == '\'':
		return p.parseString()
	case r == '-' || isDigit(r):
		return p.parseNumber()
	case isIdentStart(r):
		name, span := p.scanIdentifier()

		return &Expr{Kind: KindIdentifier, Span: span, Text: name}, nil
	}

	return nil, p.fail("number", "string", "identifier")
}

func (p *parser) scanIdentifier() (string, Span) {
	start := p.position()

	for !p.eof() && isIdentPart(p.peek()) {
		p.advance()
	}

	end := p.position()

	return p.src[start.Offset:end.Offset], Span{Start: start, End: end}
}

// parseNumber scans a number literal:
//
//	'-'? ('0' | [1-9][0-9]*) ('.' [0-9]*)? ([eE] [+-]? [0-9]+)?
//
// A trailing bare '.' belongs to the literal even with no fraction digits
// after it. An exponent marker not completed by a digit is not consumed;
// the literal ends before it.
func (p *parser) parseNumber() (*Expr, error) {
	start := p.position()

	if p.peek() == '-' {
		p.advance()
	}

	if !isDigit(p.peek()) {
		return nil, p.fail("number")
	}

	if p.peek() == '0' {
		p.advance()
	} else {
		for isDigit(p.peek()) {
			p.advance()
		}
	}

	if p.peek() == '.' {
		p.advance()

		for isDigit(p.peek()) {
			p.advance()
		}
	}

	if r := p.peek(); r == 'e' || r == 'E' {
		m := p.mark()
		p.advance()

		if r := p.peek(); r == '+' || r == '-' {
			p.advance()
		}

		if isDigit(p.peek()) {
			for isDigit(p.peek()) {
				p.advance()
			}
		} else {
			p.reset(m)
		}
	}

	end := p.position()

	return &Expr{
		Kind: KindNumber,
		Span: Span{Start: start, End: end},
		Text: p.src[start.Offset:end.Offset],
	}, nil
}

// parseString scans a quoted literal and decodes its escapes. Either
// quote style delimits; the other quote passes through verbatim.
func (p *parser) parseString() (*Expr, error) {
	start := p.position()
	quote := p.advance()

	var sb strings.Builder

	for {
		if p.eof() {
			return nil, p.fail(string(quote))
		}

		r := p.advance()

		switch r {
		case quote:
			return &Expr{
				Kind: KindString,
				Span: Span{Start: start, End: p.position()},
				Text: sb.String(),
			}, nil
		case '\\':
			if err := p.scanEscape(&sb); err != nil {
				return nil, err
			}
		default:
			sb.WriteRune(r)
		}
	}
}

// scanEscape decodes one escape sequence, cursor just past the
// backslash.
func (p *parser) scanEscape(sb *strings.Builder) error {
	if p.eof() {
		return p.fail("escape sequence")
	}

	switch r := p.advance(); r {
	case '"', '\'', '\\', '/':
		sb.WriteRune(r)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		var v rune

		for range 4 {
			if p.eof() || !isHex(p.peek()) {
				return p.fail("hex digit")
			}

			v = v<<4 | rune(hexVal(p.advance()))
		}

		sb.WriteRune(v)
	default:
		return p.fail("escape sequence")
	}

	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexVal(r rune) int {
	switch {
	case r >= 'a':
		return int(r-'a') + 10
	case r >= 'A':
		return int(r-'A') + 10
	default:
		return int(r - '0')
	}
}
