// Package lang parses Octave-style matrix scripts into a syntax tree that
// downstream tooling (formatters, diagnostics, editor integrations) can
// consume.
//
// # Philosophy
//
// The grammar is small enough for a hand-written recursive descent parser
// with backtracking. No parser generator. No separate tokenization phase:
// literals are scanned on demand at the cursor position. The parser is
// stateless and re-entrant; concurrent parses of separate documents need no
// coordination.
//
// # Grammar
//
// Informal EBNF:
//
//	Program    → Statement* EOF
//	Statement  → (Identifier '=' Expr | Expr) ';'?
//	Expr       → Chain (':' Chain (':' Chain)?)?
//	Chain      → Atom (Op Atom)*
//	Op         → '+' | '-' | '*' | '/' | '^' | '.'
//	Atom       → Call | Matrix | Literal
//	Call       → Identifier '(' (Expr (',' Expr)*)? ')'
//	Matrix     → '[' Row (';' Row)* ']'
//	Row        → (Literal ((','|space+) Literal)*)?
//	Literal    → Number | String | Identifier
//
// Two properties of this grammar are deliberate and preserved verbatim in
// the tree shape:
//
//   - Operator chains are flat. There is no precedence or associativity
//     among the six operators: "1+2*3" produces the chain (1, [+2, *3]),
//     never 1+(2*3). Imposing conventional precedence is a consumer
//     concern, not a parsing one.
//
//   - Whitespace is a separator only inside matrix rows. Everywhere else
//     it is insignificant. "[1 2;3 4]" and "[1,2;3,4]" are the same
//     matrix. This context sensitivity lives in the row sub-parser, not in
//     shared lexer state.
//
// Matrix rows accept only literals: calls, operator chains, and nested
// matrices inside a row are parse errors. Call arguments, by contrast, are
// unrestricted expressions.
//
// Statements juxtapose with no required separator. Parsing restarts at the
// first character after each accepted statement, so "007" is three
// statements and "1e" is the number 1 followed by the identifier e. A
// literal consumes the longest prefix its own grammar allows and no more.
//
// # Errors
//
// A failed parse yields a single *SyntaxError carrying the furthest
// position reached across all backtracking alternatives and the set of
// grammar constructs attempted there. There is no error recovery: a syntax
// error anywhere aborts the whole-document parse.
//
// # Example
//
//	prog, err := lang.ParseString(ctx, "a = [1 2; 3 4]\nsin(a);")
//	if err != nil {
//		var serr *lang.SyntaxError
//		if errors.As(err, &serr) {
//			// serr.Pos, serr.Expected
//		}
//	}
package lang
