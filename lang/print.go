package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print writes an indented tree rendering of the program to w, one node
// per line with its kind, source span, and salient content.
func (p *Program) Print(w io.Writer) {
	for _, stmt := range p.Stmts {
		printStmt(w, stmt)
	}
}

func printStmt(w io.Writer, s *Stmt) {
	label := "expr"
	if s.Assignment() {
		label = "assign " + s.Target
	}

	if s.Suppressed {
		label += " (suppressed)"
	}

	fmt.Fprintf(w, "stmt %s  %s\n", s.Span, label)
	printExpr(w, s.Value, 1)
}

func printExpr(w io.Writer, e *Expr, depth int) {
	if e == nil {
		return
	}

	indent := strings.Repeat("  ", depth)

	switch e.Kind {
	case KindNumber, KindIdentifier:
		fmt.Fprintf(w, "%s%s %s  %s\n", indent, e.Kind, e.Span, e.Text)

	case KindString:
		fmt.Fprintf(w, "%s%s %s  %s\n", indent, e.Kind, e.Span, strconv.Quote(e.Text))

	case KindChain:
		fmt.Fprintf(w, "%s%s %s\n", indent, e.Kind, e.Span)
		printExpr(w, e.First, depth+1)

		for _, op := range e.Ops {
			fmt.Fprintf(w, "%s  op %s\n", indent, op.Op)
			printExpr(w, op.Operand, depth+2)
		}

	case KindCall:
		fmt.Fprintf(w, "%s%s %s  %s/%d\n", indent, e.Kind, e.Span, e.Text, len(e.Args))

		for _, arg := range e.Args {
			printExpr(w, arg, depth+1)
		}

	case KindMatrix:
		rows, cols := e.Shape()
		fmt.Fprintf(w, "%s%s %s  %dx%d\n", indent, e.Kind, e.Span, rows, cols)

		for i, row := range e.Rows {
			fmt.Fprintf(w, "%s  row %d\n", indent, i)

			for _, lit := range row {
				printExpr(w, lit, depth+2)
			}
		}

	case KindRange:
		fmt.Fprintf(w, "%s%s %s  %d parts\n", indent, e.Kind, e.Span, len(e.Parts))

		for _, part := range e.Parts {
			printExpr(w, part, depth+1)
		}

	case KindInvalid:
		fmt.Fprintf(w, "%sinvalid %s\n", indent, e.Span)
	}
}
