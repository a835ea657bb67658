package lang

import "iter"

// All returns an iterator over the program's statements.
func (p *Program) All() iter.Seq[*Stmt] {
	return func(yield func(*Stmt) bool) {
		for _, stmt := range p.Stmts {
			if !yield(stmt) {
				return
			}
		}
	}
}

// Exprs returns an iterator over every expression node in the program,
// parents before children, in source order.
func (p *Program) Exprs() iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		for _, stmt := range p.Stmts {
			if !walkExpr(stmt.Value, yield) {
				return
			}
		}
	}
}

func walkExpr(e *Expr, yield func(*Expr) bool) bool {
	if e == nil {
		return true
	}

	if !yield(e) {
		return false
	}

	switch e.Kind {
	case KindChain:
		if !walkExpr(e.First, yield) {
			return false
		}

		for _, op := range e.Ops {
			if !walkExpr(op.Operand, yield) {
				return false
			}
		}

	case KindCall:
		for _, arg := range e.Args {
			if !walkExpr(arg, yield) {
				return false
			}
		}

	case KindMatrix:
		for _, row := range e.Rows {
			for _, lit := range row {
				if !walkExpr(lit, yield) {
					return false
				}
			}
		}

	case KindRange:
		for _, part := range e.Parts {
			if !walkExpr(part, yield) {
				return false
			}
		}

	case KindNumber, KindString, KindIdentifier, KindInvalid:
	}

	return true
}

// NodeAt returns the innermost expression whose span covers pos, or nil
// when pos falls outside every statement. Editor integrations use this
// to resolve the node under a cursor.
func (p *Program) NodeAt(pos Position) *Expr {
	var found *Expr

	for expr := range p.Exprs() {
		if !expr.Span.Contains(pos) {
			continue
		}

		// Children always sit inside their parent, so the last hit in
		// preorder is the innermost.
		if found == nil || found.Span.Contains(expr.Span.Start) {
			found = expr
		}
	}

	return found
}

// StmtAt returns the statement whose span covers pos, or nil.
func (p *Program) StmtAt(pos Position) *Stmt {
	for stmt := range p.All() {
		if stmt.Span.Contains(pos) {
			return stmt
		}
	}

	return nil
}

// Bindings returns the names assigned by the program, in order of first
// assignment, without duplicates.
func (p *Program) Bindings() []string {
	var (
		names []string
		seen  = map[string]struct{}{}
	)

	for stmt := range p.All() {
		if !stmt.Assignment() {
			continue
		}

		if _, ok := seen[stmt.Target]; ok {
			continue
		}

		seen[stmt.Target] = struct{}{}
		names = append(names, stmt.Target)
	}

	return names
}
