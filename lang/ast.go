package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the expression variants of the syntax tree.
type Kind int

// Expression kinds.
const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindIdentifier
	KindChain
	KindCall
	KindMatrix
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	case KindChain:
		return "chain"
	case KindCall:
		return "call"
	case KindMatrix:
		return "matrix"
	case KindRange:
		return "range"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds serialize as
// their names rather than integers.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op is one of the six binary operators.
//
// All six share a single precedence level; see the package documentation.
type Op rune

// Binary operators.
const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
	OpDot Op = '.'
)

func (o Op) String() string { return string(rune(o)) }

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// ChainOp is one operator-operand pair in the tail of a chain.
type ChainOp struct {
	Op      Op    `json:"op"      yaml:"op"`
	Operand *Expr `json:"operand" yaml:"operand"`
}

// Expr is a node in the expression tree. Kind selects which of the
// remaining fields are meaningful:
//
//	KindNumber      Text is the literal as written, e.g. "-1.5e3".
//	KindString      Text is the decoded value, escapes resolved.
//	KindIdentifier  Text is the name.
//	KindChain       First is the head operand, Ops the operator tail.
//	KindCall        Text is the callee name, Args the arguments.
//	KindMatrix      Rows holds the row-major elements.
//	KindRange       Parts holds start and stop, with a step between
//	                them when three parts were written.
//
// Unused fields are zero. Span always covers the node's full source
// extent.
type Expr struct {
	Kind  Kind      `json:"kind"            yaml:"kind"`
	Span  Span      `json:"span"            yaml:"span"`
	Text  string    `json:"text,omitempty"  yaml:"text,omitempty"`
	First *Expr     `json:"first,omitempty" yaml:"first,omitempty"`
	Ops   []ChainOp `json:"ops,omitempty"   yaml:"ops,omitempty"`
	Args  []*Expr   `json:"args,omitempty"  yaml:"args,omitempty"`
	Rows  [][]*Expr `json:"rows,omitempty"  yaml:"rows,omitempty"`
	Parts []*Expr   `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// Float converts a number literal to its floating-point value.
func (e *Expr) Float() (float64, error) {
	if e.Kind != KindNumber {
		return 0, fmt.Errorf("%w: %s is not a number", ErrWrongKind, e.Kind)
	}
	v, err := strconv.ParseFloat(e.Text, 64)
	if err != nil {
		return 0, WrapError(err, "parse number "+strconv.Quote(e.Text))
	}
	return v, nil
}

// Shape returns the row and column counts of a matrix literal. Ragged
// rows are legal at parse time; Columns is then the widest row.
func (e *Expr) Shape() (rows, cols int) {
	if e.Kind != KindMatrix {
		return 0, 0
	}
	for _, row := range e.Rows {
		cols = max(cols, len(row))
	}
	return len(e.Rows), cols
}

// Rectangular reports whether every row of a matrix literal has the same
// number of elements. Non-matrix nodes are trivially rectangular.
func (e *Expr) Rectangular() bool {
	if e.Kind != KindMatrix || len(e.Rows) == 0 {
		return true
	}
	w := len(e.Rows[0])
	for _, row := range e.Rows[1:] {
		if len(row) != w {
			return false
		}
	}
	return true
}

func (e *Expr) String() string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

// Stmt is a single statement: an assignment when Target is non-empty,
// otherwise a bare expression. Suppressed marks the trailing semicolon
// that silences output in the source language.
type Stmt struct {
	Target     string `json:"target,omitempty"     yaml:"target,omitempty"`
	TargetSpan Span   `json:"targetSpan,omitzero"  yaml:"targetspan,omitempty"`
	Value      *Expr  `json:"value"                yaml:"value"`
	Suppressed bool   `json:"suppressed,omitempty" yaml:"suppressed,omitempty"`
	Span       Span   `json:"span"                 yaml:"span"`
}

// Assignment reports whether the statement binds a name.
func (s *Stmt) Assignment() bool { return s.Target != "" }

func (s *Stmt) String() string {
	var sb strings.Builder
	writeStmt(&sb, s)
	return sb.String()
}

// Program is the root of a parsed document.
type Program struct {
	Stmts []*Stmt `json:"stmts" yaml:"stmts"`
}

func (p *Program) String() string { return Format(p) }
